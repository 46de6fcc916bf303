package mapper

import (
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-bridal/app/catalog"
	"github.com/vibast-solutions/ms-go-bridal/app/dto"
	"github.com/vibast-solutions/ms-go-bridal/app/entity"
	"github.com/vibast-solutions/ms-go-bridal/app/search"
	"github.com/vibast-solutions/ms-go-bridal/app/service"
	"github.com/vibast-solutions/ms-go-bridal/config"
)

type urlResolver interface {
	PublicURL(bucket, key string) string
}

// Mapper turns entities into API responses, resolving stored object keys
// into public URLs.
type Mapper struct {
	urls          urlResolver
	planBucket    string
	profileBucket string
}

func New(urls urlResolver, cfg config.StorageConfig) *Mapper {
	return &Mapper{
		urls:          urls,
		planBucket:    cfg.PlanImagesBucket,
		profileBucket: cfg.ProfileImagesBucket,
	}
}

func (m *Mapper) Plan(item *entity.Plan) dto.PlanResponse {
	urls := make([]string, 0, len(item.Images))
	for _, key := range item.Images {
		urls = append(urls, m.urls.PublicURL(m.planBucket, key))
	}

	return dto.PlanResponse{
		ID:            item.ID,
		ProviderID:    item.ProviderID,
		Title:         item.Title,
		Price:         item.Price,
		Scale:         item.Scale,
		WorldViews:    nonNil(item.WorldViews),
		Location:      item.Location,
		Purpose:       item.Purpose,
		DateRange:     item.DateRange,
		Images:        nonNil(item.Images),
		ImageURLs:     urls,
		SummaryPoints: nonNil(item.SummaryPoints),
		Description:   item.Description,
		CTA:           cta(item.CTAType, item.CTAValue),
		CreatedAt:     formatTime(item.CreatedAt),
		UpdatedAt:     formatTime(item.UpdatedAt),
	}
}

func (m *Mapper) Plans(items []*entity.Plan) []dto.PlanResponse {
	result := make([]dto.PlanResponse, 0, len(items))
	for _, item := range items {
		result = append(result, m.Plan(item))
	}
	return result
}

func (m *Mapper) PlanList(items []*entity.Plan) *dto.ListPlansResponse {
	plans := m.Plans(items)
	return &dto.ListPlansResponse{Plans: plans, Count: len(plans)}
}

func (m *Mapper) PlanDetail(item *entity.PlanWithProvider, favorite *bool) *dto.PlanDetailResponse {
	return &dto.PlanDetailResponse{
		Plan:     m.Plan(item.Plan),
		Provider: m.PublicProvider(item.Provider),
		Favorite: favorite,
	}
}

// PublicProvider leaves out the login email.
func (m *Mapper) PublicProvider(item *entity.Provider) dto.ProviderResponse {
	resp := dto.ProviderResponse{
		ID:           item.ID,
		Name:         item.Name,
		Bio:          item.Bio,
		ProfileImage: item.ProfileImage,
		SNSLinks:     item.SNSLinks,
		CreatedAt:    formatTime(item.CreatedAt),
		UpdatedAt:    formatTime(item.UpdatedAt),
	}
	if resp.SNSLinks == nil {
		resp.SNSLinks = map[string]string{}
	}
	if item.ProfileImage != nil {
		resp.ProfileImageURL = m.urls.PublicURL(m.profileBucket, *item.ProfileImage)
	}
	return resp
}

func (m *Mapper) Provider(item *entity.Provider) dto.ProviderResponse {
	resp := m.PublicProvider(item)
	resp.Email = item.Email
	return resp
}

func (m *Mapper) ProviderProfile(profile *service.ProviderProfile) *dto.ProviderProfileResponse {
	return &dto.ProviderProfileResponse{
		Provider: m.PublicProvider(profile.Provider),
		Plans:    m.Plans(profile.Plans),
	}
}

func User(item *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        item.ID,
		Email:     item.Email,
		Name:      item.Name,
		CreatedAt: formatTime(item.CreatedAt),
	}
}

func Inquiry(item *entity.Inquiry) dto.InquiryResponse {
	return dto.InquiryResponse{
		ID:        item.ID,
		PlanID:    item.PlanID,
		PlanTitle: item.PlanTitle,
		UserID:    item.UserID,
		Name:      item.Name,
		Email:     item.Email,
		Phone:     item.Phone,
		Message:   item.Message,
		CreatedAt: formatTime(item.CreatedAt),
	}
}

func Inquiries(items []*entity.Inquiry) []dto.InquiryResponse {
	result := make([]dto.InquiryResponse, 0, len(items))
	for _, item := range items {
		result = append(result, Inquiry(item))
	}
	return result
}

func SweepResult(result *service.SweepResult) *dto.SweepResponse {
	return &dto.SweepResponse{
		PlanImagesDeleted:    result.PlanImagesDeleted,
		ProfileImagesDeleted: result.ProfileImagesDeleted,
		Failed:               result.Failed,
	}
}

func CatalogOptions() *dto.CatalogOptionsResponse {
	regions := make([]dto.RegionResponse, 0, len(catalog.Regions))
	for _, region := range catalog.Regions {
		regions = append(regions, dto.RegionResponse{Name: region.Name, Prefectures: region.Prefectures})
	}
	tiers := make([]dto.OptionResponse, 0, len(search.PriceTiers))
	for _, tier := range search.PriceTiers {
		tiers = append(tiers, dto.OptionResponse{Value: tier.Code, Label: tier.Label})
	}
	sorts := make([]dto.OptionResponse, 0, len(search.SortOptions))
	for _, option := range search.SortOptions {
		sorts = append(sorts, dto.OptionResponse{Value: string(option.Value), Label: option.Label})
	}

	return &dto.CatalogOptionsResponse{
		Scales:      catalog.Scales,
		WorldViews:  catalog.WorldViews,
		Purposes:    catalog.Purposes,
		Prefectures: catalog.Prefectures,
		Regions:     regions,
		PriceTiers:  tiers,
		SortOptions: sorts,
	}
}

func cta(ctaType, ctaValue *string) *dto.CTAResponse {
	if ctaType == nil || ctaValue == nil || *ctaType == "" || *ctaValue == "" {
		return nil
	}
	return &dto.CTAResponse{Type: *ctaType, Value: *ctaValue, Href: ctaHref(*ctaType, *ctaValue)}
}

func ctaHref(ctaType, value string) string {
	switch ctaType {
	case entity.CTATypePhone:
		var b strings.Builder
		for _, r := range value {
			if (r >= '0' && r <= '9') || r == '+' {
				b.WriteRune(r)
			}
		}
		return "tel:" + b.String()
	case entity.CTATypeEmail:
		return "mailto:" + value
	case entity.CTATypeLink:
		if strings.HasPrefix(value, "http") {
			return value
		}
		return "https://" + value
	default:
		return ""
	}
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
