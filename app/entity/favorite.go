package entity

import "time"

type Favorite struct {
	UserID    string
	PlanID    string
	CreatedAt time.Time
}
