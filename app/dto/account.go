package dto

type ProviderResponse struct {
	ID              string            `json:"id"`
	Email           string            `json:"email,omitempty"`
	Name            string            `json:"name"`
	Bio             *string           `json:"bio,omitempty"`
	ProfileImage    *string           `json:"profile_image,omitempty"`
	ProfileImageURL string            `json:"profile_image_url,omitempty"`
	SNSLinks        map[string]string `json:"sns_links"`
	CreatedAt       string            `json:"created_at"`
	UpdatedAt       string            `json:"updated_at"`
}

type ProviderEnvelopeResponse struct {
	Provider ProviderResponse `json:"provider"`
}

type ProviderProfileResponse struct {
	Provider ProviderResponse `json:"provider"`
	Plans    []PlanResponse   `json:"plans"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type UserEnvelopeResponse struct {
	User UserResponse `json:"user"`
}

type InquiryResponse struct {
	ID        string  `json:"id"`
	PlanID    string  `json:"plan_id"`
	PlanTitle string  `json:"plan_title,omitempty"`
	UserID    *string `json:"user_id,omitempty"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
	Message   string  `json:"message"`
	CreatedAt string  `json:"created_at"`
}

type InquiryEnvelopeResponse struct {
	Inquiry InquiryResponse `json:"inquiry"`
}

type ListInquiriesResponse struct {
	Inquiries []InquiryResponse `json:"inquiries"`
}
