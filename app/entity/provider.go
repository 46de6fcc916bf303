package entity

import "time"

type Provider struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Bio          *string
	ProfileImage *string
	SNSLinks     map[string]string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
