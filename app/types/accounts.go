package types

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
)

func NewProviderSignupRequestFromContext(ctx echo.Context) (*ProviderSignupRequest, error) {
	var body ProviderSignupRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.Email = strings.TrimSpace(body.Email)
	body.Name = strings.TrimSpace(body.Name)
	body.Bio = strings.TrimSpace(body.Bio)
	body.Instagram = strings.TrimSpace(body.Instagram)
	return &body, nil
}

func (r *ProviderSignupRequest) Validate() error {
	return validateStruct(r)
}

func NewUserSignupRequestFromContext(ctx echo.Context) (*UserSignupRequest, error) {
	var body UserSignupRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.Email = strings.TrimSpace(body.Email)
	body.Name = strings.TrimSpace(body.Name)
	return &body, nil
}

func (r *UserSignupRequest) Validate() error {
	return validateStruct(r)
}

func NewLoginRequestFromContext(ctx echo.Context) (*LoginRequest, error) {
	var body LoginRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.Email = strings.TrimSpace(body.Email)
	return &body, nil
}

func (r *LoginRequest) Validate() error {
	return validateStruct(r)
}

// NewUpdateProfileRequestFromContext marks which fields the PATCH body
// carries so absent fields are left untouched.
func NewUpdateProfileRequestFromContext(ctx echo.Context) (*UpdateProfileRequest, error) {
	var body struct {
		Name      *string `json:"name"`
		Bio       *string `json:"bio"`
		Instagram *string `json:"instagram"`
	}
	var raw json.RawMessage
	if err := ctx.Bind(&raw); err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
	}

	req := &UpdateProfileRequest{}
	if body.Name != nil {
		req.HasName = true
		req.Name = strings.TrimSpace(*body.Name)
	}
	if body.Bio != nil {
		req.HasBio = true
		req.Bio = strings.TrimSpace(*body.Bio)
	}
	if body.Instagram != nil {
		req.HasInstagram = true
		req.Instagram = strings.TrimSpace(*body.Instagram)
	}
	return req, nil
}

func (r *UpdateProfileRequest) Validate() error {
	if !r.GetHasName() && !r.GetHasBio() && !r.GetHasInstagram() {
		return errors.New("at least one of name, bio or instagram is required")
	}
	if r.GetHasName() && r.GetName() == "" {
		return errors.New("name must not be empty")
	}
	return validateStruct(r)
}
