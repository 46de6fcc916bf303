package types

// Request messages shared by the HTTP handlers, the gRPC catalog API and the
// service layer. Getters are nil-safe.

type SearchPlansRequest struct {
	Query     string `json:"query"`
	Price     string `json:"price"`
	Scale     string `json:"scale"`
	Worldview string `json:"worldview"`
	Location  string `json:"location"`
	Purpose   string `json:"purpose"`
	Date      string `json:"date"`
	Sort      string `json:"sort"`
}

type GetPlanRequest struct {
	Id string `json:"id" validate:"required,uuid"`
}

func (r *GetPlanRequest) GetId() string {
	if r == nil {
		return ""
	}
	return r.Id
}

type PlanRequest struct {
	Id            string   `json:"-"`
	Title         string   `json:"title" validate:"required,max=200"`
	Price         int64    `json:"price" validate:"gte=0"`
	Scale         string   `json:"scale" validate:"required"`
	WorldViews    []string `json:"world_views" validate:"required,min=1,dive,required"`
	Location      string   `json:"location" validate:"required"`
	Purpose       string   `json:"purpose" validate:"required"`
	DateRange     string   `json:"date_range" validate:"max=200"`
	SummaryPoints []string `json:"summary_points" validate:"max=20"`
	Description   string   `json:"description"`
	CtaType       string   `json:"cta_type" validate:"omitempty,oneof=phone email link"`
	CtaValue      string   `json:"cta_value" validate:"max=500"`
	HasImages     bool     `json:"-"`
	Images        []string `json:"images"`
}

func (r *PlanRequest) GetId() string {
	if r == nil {
		return ""
	}
	return r.Id
}

func (r *PlanRequest) GetTitle() string {
	if r == nil {
		return ""
	}
	return r.Title
}

func (r *PlanRequest) GetPrice() int64 {
	if r == nil {
		return 0
	}
	return r.Price
}

func (r *PlanRequest) GetScale() string {
	if r == nil {
		return ""
	}
	return r.Scale
}

func (r *PlanRequest) GetWorldViews() []string {
	if r == nil {
		return nil
	}
	return r.WorldViews
}

func (r *PlanRequest) GetLocation() string {
	if r == nil {
		return ""
	}
	return r.Location
}

func (r *PlanRequest) GetPurpose() string {
	if r == nil {
		return ""
	}
	return r.Purpose
}

func (r *PlanRequest) GetDateRange() string {
	if r == nil {
		return ""
	}
	return r.DateRange
}

func (r *PlanRequest) GetSummaryPoints() []string {
	if r == nil {
		return nil
	}
	return r.SummaryPoints
}

func (r *PlanRequest) GetDescription() string {
	if r == nil {
		return ""
	}
	return r.Description
}

func (r *PlanRequest) GetCtaType() string {
	if r == nil {
		return ""
	}
	return r.CtaType
}

func (r *PlanRequest) GetCtaValue() string {
	if r == nil {
		return ""
	}
	return r.CtaValue
}

func (r *PlanRequest) GetHasImages() bool {
	if r == nil {
		return false
	}
	return r.HasImages
}

func (r *PlanRequest) GetImages() []string {
	if r == nil {
		return nil
	}
	return r.Images
}

type ProviderSignupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	Name      string `json:"name" validate:"required,max=100"`
	Bio       string `json:"bio" validate:"max=2000"`
	Instagram string `json:"instagram" validate:"omitempty,url"`
}

func (r *ProviderSignupRequest) GetEmail() string {
	if r == nil {
		return ""
	}
	return r.Email
}

func (r *ProviderSignupRequest) GetPassword() string {
	if r == nil {
		return ""
	}
	return r.Password
}

func (r *ProviderSignupRequest) GetName() string {
	if r == nil {
		return ""
	}
	return r.Name
}

func (r *ProviderSignupRequest) GetBio() string {
	if r == nil {
		return ""
	}
	return r.Bio
}

func (r *ProviderSignupRequest) GetInstagram() string {
	if r == nil {
		return ""
	}
	return r.Instagram
}

type UpdateProfileRequest struct {
	HasName      bool   `json:"-"`
	Name         string `json:"name" validate:"max=100"`
	HasBio       bool   `json:"-"`
	Bio          string `json:"bio" validate:"max=2000"`
	HasInstagram bool   `json:"-"`
	Instagram    string `json:"instagram" validate:"omitempty,url"`
}

func (r *UpdateProfileRequest) GetHasName() bool {
	if r == nil {
		return false
	}
	return r.HasName
}

func (r *UpdateProfileRequest) GetName() string {
	if r == nil {
		return ""
	}
	return r.Name
}

func (r *UpdateProfileRequest) GetHasBio() bool {
	if r == nil {
		return false
	}
	return r.HasBio
}

func (r *UpdateProfileRequest) GetBio() string {
	if r == nil {
		return ""
	}
	return r.Bio
}

func (r *UpdateProfileRequest) GetHasInstagram() bool {
	if r == nil {
		return false
	}
	return r.HasInstagram
}

func (r *UpdateProfileRequest) GetInstagram() string {
	if r == nil {
		return ""
	}
	return r.Instagram
}

type UserSignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name" validate:"required,max=100"`
}

func (r *UserSignupRequest) GetEmail() string {
	if r == nil {
		return ""
	}
	return r.Email
}

func (r *UserSignupRequest) GetPassword() string {
	if r == nil {
		return ""
	}
	return r.Password
}

func (r *UserSignupRequest) GetName() string {
	if r == nil {
		return ""
	}
	return r.Name
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) GetEmail() string {
	if r == nil {
		return ""
	}
	return r.Email
}

func (r *LoginRequest) GetPassword() string {
	if r == nil {
		return ""
	}
	return r.Password
}

type FavoriteRequest struct {
	PlanId string `json:"plan_id" validate:"required,uuid"`
}

func (r *FavoriteRequest) GetPlanId() string {
	if r == nil {
		return ""
	}
	return r.PlanId
}

type CreateInquiryRequest struct {
	PlanId  string `json:"plan_id" validate:"required,uuid"`
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"max=30"`
	Message string `json:"message" validate:"required,max=5000"`
}

func (r *CreateInquiryRequest) GetPlanId() string {
	if r == nil {
		return ""
	}
	return r.PlanId
}

func (r *CreateInquiryRequest) GetName() string {
	if r == nil {
		return ""
	}
	return r.Name
}

func (r *CreateInquiryRequest) GetEmail() string {
	if r == nil {
		return ""
	}
	return r.Email
}

func (r *CreateInquiryRequest) GetPhone() string {
	if r == nil {
		return ""
	}
	return r.Phone
}

func (r *CreateInquiryRequest) GetMessage() string {
	if r == nil {
		return ""
	}
	return r.Message
}
