package types

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/vibast-solutions/ms-go-bridal/app/search"
)

// NewSearchPlansRequestFromContext reads the filter query parameters,
// folding legacy parameter names into their canonical fields.
func NewSearchPlansRequestFromContext(ctx echo.Context) *SearchPlansRequest {
	return NewSearchPlansRequest(search.ParamsFromLookup(ctx.QueryParam))
}

func NewSearchPlansRequest(p search.Params) *SearchPlansRequest {
	return &SearchPlansRequest{
		Query:     p.Query,
		Price:     p.Price,
		Scale:     p.Scale,
		Worldview: p.WorldView,
		Location:  p.Location,
		Purpose:   p.Purpose,
		Date:      p.Date,
		Sort:      p.Sort,
	}
}

// Params returns the canonical search parameters. Unknown price or sort
// codes are passed through; the query builder ignores them.
func (r *SearchPlansRequest) Params() search.Params {
	if r == nil {
		return search.Params{}
	}
	return search.Params{
		Query:     strings.TrimSpace(r.Query),
		Price:     strings.TrimSpace(r.Price),
		Scale:     strings.TrimSpace(r.Scale),
		WorldView: strings.TrimSpace(r.Worldview),
		Location:  strings.TrimSpace(r.Location),
		Purpose:   strings.TrimSpace(r.Purpose),
		Date:      strings.TrimSpace(r.Date),
		Sort:      strings.TrimSpace(r.Sort),
	}
}

func NewGetPlanRequestFromContext(ctx echo.Context) *GetPlanRequest {
	return &GetPlanRequest{Id: strings.TrimSpace(ctx.Param("id"))}
}

func (r *GetPlanRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return errors.New("invalid plan id")
	}
	return nil
}

func NewCreatePlanRequestFromContext(ctx echo.Context) (*PlanRequest, error) {
	var body PlanRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.Images = nil
	body.HasImages = false
	return &body, nil
}

func NewUpdatePlanRequestFromContext(ctx echo.Context) (*PlanRequest, error) {
	var raw json.RawMessage
	if err := ctx.Bind(&raw); err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}

	var body PlanRequest
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	var presence struct {
		Images *[]string `json:"images"`
	}
	if err := json.Unmarshal(raw, &presence); err != nil {
		return nil, err
	}

	body.Id = strings.TrimSpace(ctx.Param("id"))
	if presence.Images != nil {
		body.HasImages = true
		body.Images = *presence.Images
	}
	return &body, nil
}

func (r *PlanRequest) Validate() error {
	return validateStruct(r)
}

func NewFavoriteRequestFromContext(ctx echo.Context) *FavoriteRequest {
	return &FavoriteRequest{PlanId: strings.TrimSpace(ctx.Param("plan_id"))}
}

func (r *FavoriteRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return errors.New("invalid plan id")
	}
	return nil
}

func NewCreateInquiryRequestFromContext(ctx echo.Context) (*CreateInquiryRequest, error) {
	var body CreateInquiryRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.PlanId = strings.TrimSpace(ctx.Param("id"))
	body.Name = strings.TrimSpace(body.Name)
	body.Email = strings.TrimSpace(body.Email)
	body.Phone = strings.TrimSpace(body.Phone)
	body.Message = strings.TrimSpace(body.Message)
	return &body, nil
}

func (r *CreateInquiryRequest) Validate() error {
	return validateStruct(r)
}
