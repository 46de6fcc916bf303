package service

import "errors"

var (
	ErrPlanNotFound           = errors.New("plan not found")
	ErrProviderNotFound       = errors.New("provider not found")
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrInvalidRequest         = errors.New("invalid request")
	ErrInvalidImage           = errors.New("invalid image")
	ErrTooManyFiles           = errors.New("too many files")
	ErrNoFieldsToUpdate       = errors.New("no fields provided for update")
)
