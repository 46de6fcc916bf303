package entity

import "time"

type Inquiry struct {
	ID         string
	PlanID     string
	ProviderID string
	UserID     *string
	Name       string
	Email      string
	Phone      *string
	Message    string
	CreatedAt  time.Time

	// PlanTitle is filled by provider listings.
	PlanTitle string
}
