package entity

import "time"

const (
	CTATypePhone = "phone"
	CTATypeEmail = "email"
	CTATypeLink  = "link"
)

type Plan struct {
	ID            string
	ProviderID    string
	Title         string
	Price         int64
	Scale         string
	WorldViews    []string
	Location      string
	Purpose       string
	DateRange     *string
	Images        []string
	SummaryPoints []string
	Description   *string
	CTAType       *string
	CTAValue      *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type PlanWithProvider struct {
	Plan     *Plan
	Provider *Provider
}
