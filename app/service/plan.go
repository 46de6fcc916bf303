package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-bridal/app/catalog"
	"github.com/vibast-solutions/ms-go-bridal/app/entity"
	"github.com/vibast-solutions/ms-go-bridal/app/factory"
	"github.com/vibast-solutions/ms-go-bridal/app/metrics"
	"github.com/vibast-solutions/ms-go-bridal/app/repository"
	"github.com/vibast-solutions/ms-go-bridal/app/search"
	"github.com/vibast-solutions/ms-go-bridal/app/storage"
	"github.com/vibast-solutions/ms-go-bridal/config"
)

type planInput interface {
	GetTitle() string
	GetPrice() int64
	GetScale() string
	GetWorldViews() []string
	GetLocation() string
	GetPurpose() string
	GetDateRange() string
	GetSummaryPoints() []string
	GetDescription() string
	GetCtaType() string
	GetCtaValue() string
}

type updatePlanInput interface {
	planInput
	GetHasImages() bool
	GetImages() []string
}

type planRepository interface {
	Create(ctx context.Context, plan *entity.Plan) error
	Update(ctx context.Context, plan *entity.Plan, edit repository.ImageEdit) error
	EditImages(ctx context.Context, id, providerID string, updatedAt time.Time, edit repository.ImageEdit) ([]string, error)
	Delete(ctx context.Context, id, providerID string) error
	FindByID(ctx context.Context, id string) (*entity.Plan, error)
	FindByIDForProvider(ctx context.Context, id, providerID string) (*entity.Plan, error)
	ListByProvider(ctx context.Context, providerID string) ([]*entity.Plan, error)
	Search(ctx context.Context, f search.Filter) ([]*entity.Plan, error)
}

type planProviderRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Provider, error)
}

type AddImagesResult struct {
	Plan *entity.Plan
	// Skipped lists the uploaded filenames that could not be stored.
	Skipped []string
}

type PlanService struct {
	planRepo     planRepository
	providerRepo planProviderRepository
	store        objectStore
	images       imagePreparer
	storageCfg   config.StorageConfig
	uploadCfg    config.UploadConfig
	logger       logrus.FieldLogger
}

func NewPlanService(
	planRepo planRepository,
	providerRepo planProviderRepository,
	store objectStore,
	images imagePreparer,
	storageCfg config.StorageConfig,
	uploadCfg config.UploadConfig,
) *PlanService {
	return &PlanService{
		planRepo:     planRepo,
		providerRepo: providerRepo,
		store:        store,
		images:       images,
		storageCfg:   storageCfg,
		uploadCfg:    uploadCfg,
		logger:       factory.NewModuleLogger("plan-service"),
	}
}

// SearchPlans runs the pushed-down predicates in the repository and the
// free-text query over the fetched rows.
func (s *PlanService) SearchPlans(ctx context.Context, params search.Params) ([]*entity.Plan, error) {
	f := search.Build(params)

	items, err := s.planRepo.Search(ctx, f)
	if err != nil {
		return nil, err
	}
	items = search.ApplyText(f, items)

	metrics.ObserveSearch(len(items))
	return items, nil
}

func (s *PlanService) GetPlanDetail(ctx context.Context, id string) (*entity.PlanWithProvider, error) {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}

	provider, err := s.providerRepo.FindByID(ctx, plan.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, ErrPlanNotFound
	}

	return &entity.PlanWithProvider{Plan: plan, Provider: provider}, nil
}

func (s *PlanService) ListProviderPlans(ctx context.Context, providerID string) ([]*entity.Plan, error) {
	return s.planRepo.ListByProvider(ctx, providerID)
}

func (s *PlanService) GetProviderPlan(ctx context.Context, providerID, id string) (*entity.Plan, error) {
	plan, err := s.planRepo.FindByIDForProvider(ctx, id, providerID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

func (s *PlanService) CreatePlan(ctx context.Context, providerID string, req planInput) (*entity.Plan, error) {
	now := time.Now().UTC()
	plan := &entity.Plan{
		ID:         uuid.New().String(),
		ProviderID: providerID,
		Images:     []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := applyPlanInput(plan, req); err != nil {
		return nil, err
	}

	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// UpdatePlan rewrites the plan fields. When the request carries an image
// list, it may only reorder or drop keys the plan holds at write time;
// dropped objects are removed from storage after the row is saved.
func (s *PlanService) UpdatePlan(ctx context.Context, providerID, id string, req updatePlanInput) (*entity.Plan, error) {
	plan, err := s.GetProviderPlan(ctx, providerID, id)
	if err != nil {
		return nil, err
	}

	if err := applyPlanInput(plan, req); err != nil {
		return nil, err
	}

	var dropped []string
	var edit repository.ImageEdit
	if req.GetHasImages() {
		requested := req.GetImages()
		edit = func(current []string) ([]string, error) {
			kept, err := keepImages(current, requested)
			if err != nil {
				return nil, err
			}
			dropped = difference(current, kept)
			return kept, nil
		}
	}
	plan.UpdatedAt = time.Now().UTC()

	if err := s.planRepo.Update(ctx, plan, edit); err != nil {
		if errors.Is(err, repository.ErrPlanNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	s.deleteImages(ctx, plan.ID, dropped)
	return plan, nil
}

// AddPlanImages stores each file and appends the stored keys to the plan's
// current image list. A file that fails validation or upload is skipped.
func (s *PlanService) AddPlanImages(ctx context.Context, providerID, id string, files []UploadFile) (*AddImagesResult, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files uploaded", ErrInvalidRequest)
	}
	if s.uploadCfg.MaxFiles > 0 && len(files) > s.uploadCfg.MaxFiles {
		return nil, ErrTooManyFiles
	}

	plan, err := s.GetProviderPlan(ctx, providerID, id)
	if err != nil {
		return nil, err
	}

	result := &AddImagesResult{Plan: plan, Skipped: []string{}}
	used := make(map[string]bool, len(plan.Images)+len(files))
	for _, key := range plan.Images {
		used[key] = true
	}

	added := make([]string, 0, len(files))
	for _, file := range files {
		l := s.logger.WithField("plan_id", plan.ID).WithField("filename", file.Filename)

		img, err := s.images.Prepare(file.Filename, file.Data)
		if err != nil {
			l.WithError(err).Warn("Skipping invalid plan image")
			result.Skipped = append(result.Skipped, file.Filename)
			continue
		}

		now := time.Now()
		key := storage.PlanImageKey(now, file.Filename, img.Ext)
		for used[key] {
			now = now.Add(time.Millisecond)
			key = storage.PlanImageKey(now, file.Filename, img.Ext)
		}

		if err := s.store.Put(ctx, s.storageCfg.PlanImagesBucket, key, img.Data, img.ContentType); err != nil {
			l.WithError(err).Error("Plan image upload failed")
			result.Skipped = append(result.Skipped, file.Filename)
			continue
		}
		used[key] = true
		added = append(added, key)
	}

	if len(added) == 0 {
		return result, nil
	}

	updatedAt := time.Now().UTC()
	images, err := s.planRepo.EditImages(ctx, plan.ID, providerID, updatedAt, func(current []string) ([]string, error) {
		return append(append(make([]string, 0, len(current)+len(added)), current...), added...), nil
	})
	if err != nil {
		s.deleteImages(ctx, plan.ID, added)
		if errors.Is(err, repository.ErrPlanNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	plan.Images = images
	plan.UpdatedAt = updatedAt
	return result, nil
}

// DeletePlan removes the plan's image objects one by one and then the row.
// Object failures are logged and left for the orphan sweep.
func (s *PlanService) DeletePlan(ctx context.Context, providerID, id string) error {
	plan, err := s.GetProviderPlan(ctx, providerID, id)
	if err != nil {
		return err
	}

	s.deleteImages(ctx, plan.ID, plan.Images)

	if err := s.planRepo.Delete(ctx, plan.ID, providerID); err != nil {
		if errors.Is(err, repository.ErrPlanNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	return nil
}

func (s *PlanService) deleteImages(ctx context.Context, planID string, keys []string) {
	bucket := s.storageCfg.PlanImagesBucket
	for _, key := range keys {
		if err := s.store.Delete(ctx, bucket, key); err != nil {
			metrics.ImageDeleteFailures.WithLabelValues(bucket).Inc()
			s.logger.WithError(err).
				WithField("plan_id", planID).
				WithField("key", key).
				Warn("Plan image delete failed")
		}
	}
}

func applyPlanInput(plan *entity.Plan, req planInput) error {
	title := strings.TrimSpace(req.GetTitle())
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidRequest)
	}
	if req.GetPrice() < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidRequest)
	}

	scale := strings.TrimSpace(req.GetScale())
	if !catalog.IsScale(scale) {
		return fmt.Errorf("%w: unknown scale %q", ErrInvalidRequest, scale)
	}
	location := strings.TrimSpace(req.GetLocation())
	if !catalog.IsPrefecture(location) {
		return fmt.Errorf("%w: unknown location %q", ErrInvalidRequest, location)
	}
	purpose := strings.TrimSpace(req.GetPurpose())
	if !catalog.IsPurpose(purpose) {
		return fmt.Errorf("%w: unknown purpose %q", ErrInvalidRequest, purpose)
	}

	worldViews := uniqueNonEmpty(req.GetWorldViews())
	if len(worldViews) == 0 {
		return fmt.Errorf("%w: at least one world view is required", ErrInvalidRequest)
	}
	for _, wv := range worldViews {
		if !catalog.IsWorldView(wv) {
			return fmt.Errorf("%w: unknown world view %q", ErrInvalidRequest, wv)
		}
	}

	ctaType := normalizeOptionalString(req.GetCtaType())
	ctaValue := normalizeOptionalString(req.GetCtaValue())
	if ctaType == nil || ctaValue == nil {
		ctaType, ctaValue = nil, nil
	} else if !isCTAType(*ctaType) {
		return fmt.Errorf("%w: unknown cta_type %q", ErrInvalidRequest, *ctaType)
	}

	plan.Title = title
	plan.Price = req.GetPrice()
	plan.Scale = scale
	plan.WorldViews = worldViews
	plan.Location = location
	plan.Purpose = purpose
	plan.DateRange = normalizeOptionalString(req.GetDateRange())
	plan.SummaryPoints = nonEmpty(req.GetSummaryPoints())
	plan.Description = normalizeOptionalString(req.GetDescription())
	plan.CTAType = ctaType
	plan.CTAValue = ctaValue
	return nil
}

func isCTAType(v string) bool {
	switch v {
	case entity.CTATypePhone, entity.CTATypeEmail, entity.CTATypeLink:
		return true
	default:
		return false
	}
}

func keepImages(current, requested []string) ([]string, error) {
	known := make(map[string]bool, len(current))
	for _, key := range current {
		known[key] = true
	}

	kept := make([]string, 0, len(requested))
	seen := make(map[string]bool, len(requested))
	for _, key := range requested {
		key = strings.TrimSpace(key)
		if key == "" || seen[key] {
			continue
		}
		if !known[key] {
			return nil, fmt.Errorf("%w: image %q does not belong to this plan", ErrInvalidRequest, key)
		}
		seen[key] = true
		kept = append(kept, key)
	}
	return kept, nil
}

func difference(all, keep []string) []string {
	kept := make(map[string]bool, len(keep))
	for _, key := range keep {
		kept[key] = true
	}
	out := make([]string, 0)
	for _, key := range all {
		if !kept[key] {
			out = append(out, key)
		}
	}
	return out
}

func uniqueNonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func normalizeOptionalString(v string) *string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
