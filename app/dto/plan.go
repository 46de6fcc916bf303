package dto

type CTAResponse struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	// Href is the link the call-to-action button opens: tel:, mailto: or the URL itself.
	Href string `json:"href"`
}

type PlanResponse struct {
	ID            string       `json:"id"`
	ProviderID    string       `json:"provider_id"`
	Title         string       `json:"title"`
	Price         int64        `json:"price"`
	Scale         string       `json:"scale"`
	WorldViews    []string     `json:"world_views"`
	Location      string       `json:"location"`
	Purpose       string       `json:"purpose"`
	DateRange     *string      `json:"date_range,omitempty"`
	Images        []string     `json:"images"`
	ImageURLs     []string     `json:"image_urls"`
	SummaryPoints []string     `json:"summary_points"`
	Description   *string      `json:"description,omitempty"`
	CTA           *CTAResponse `json:"cta,omitempty"`
	CreatedAt     string       `json:"created_at"`
	UpdatedAt     string       `json:"updated_at"`
}

type ListPlansResponse struct {
	Plans []PlanResponse `json:"plans"`
	Count int            `json:"count"`
}

type PlanEnvelopeResponse struct {
	Plan PlanResponse `json:"plan"`
}

type PlanDetailResponse struct {
	Plan     PlanResponse     `json:"plan"`
	Provider ProviderResponse `json:"provider"`
	// Favorite is only set when a user session is present.
	Favorite *bool `json:"favorite,omitempty"`
}

type AddImagesResponse struct {
	Plan    PlanResponse `json:"plan"`
	Skipped []string     `json:"skipped"`
}

type FavoriteStatusResponse struct {
	PlanID   string `json:"plan_id"`
	Favorite bool   `json:"favorite"`
}
