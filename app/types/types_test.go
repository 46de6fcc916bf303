package types

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"google.golang.org/protobuf/types/known/structpb"
)

const planID = "3f1c2a9e-5b7d-4c1e-9a8f-0d2b6e4c7a11"

func newJSONContext(method, target, body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestNewSearchPlansRequestFromContextFoldsAliases(t *testing.T) {
	ctx := newJSONContext("GET", "/plans?world_view=%E6%B5%B7&date_range=6%E6%9C%88&price=3&sort=price_asc", "")

	req := NewSearchPlansRequestFromContext(ctx)
	if req.Worldview != "海" || req.Date != "6月" || req.Price != "3" || req.Sort != "price_asc" {
		t.Fatalf("unexpected request: %+v", req)
	}

	p := req.Params()
	if p.WorldView != "海" || p.Date != "6月" {
		t.Fatalf("unexpected params: %+v", p)
	}
}

func TestNewSearchPlansRequestFromStruct(t *testing.T) {
	in, err := structpb.NewStruct(map[string]interface{}{
		"query":      " 桜 ",
		"world_view": "森",
		"price":      float64(3),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	p := NewSearchPlansRequestFromStruct(in).Params()
	if p.Query != "桜" || p.WorldView != "森" {
		t.Fatalf("unexpected params: %+v", p)
	}
	if p.Price != "" {
		t.Fatalf("expected non-string price to be ignored, got %q", p.Price)
	}
}

func TestGetPlanValidate(t *testing.T) {
	if err := (&GetPlanRequest{Id: "not-a-uuid"}).Validate(); err == nil {
		t.Fatal("expected validation error")
	}
	if err := (&GetPlanRequest{Id: planID}).Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}

func TestPlanRequestValidate(t *testing.T) {
	valid := func() *PlanRequest {
		return &PlanRequest{
			Title:      "Garden",
			Price:      250000,
			Scale:      "ふたりのみ",
			WorldViews: []string{"海"},
			Location:   "東京",
			Purpose:    "前撮り",
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	req := valid()
	req.Title = ""
	if err := req.Validate(); err == nil || !strings.Contains(err.Error(), "title") {
		t.Fatalf("expected title error, got %v", err)
	}

	req = valid()
	req.Price = -1
	if err := req.Validate(); err == nil || !strings.Contains(err.Error(), "price") {
		t.Fatalf("expected price error, got %v", err)
	}

	req = valid()
	req.WorldViews = nil
	if err := req.Validate(); err == nil || !strings.Contains(err.Error(), "world_views") {
		t.Fatalf("expected world_views error, got %v", err)
	}

	req = valid()
	req.CtaType = "fax"
	if err := req.Validate(); err == nil || !strings.Contains(err.Error(), "cta_type") {
		t.Fatalf("expected cta_type error, got %v", err)
	}
}

func TestNewCreatePlanRequestIgnoresImages(t *testing.T) {
	ctx := newJSONContext("POST", "/provider/plans", `{"title":"Garden","images":["a.jpg"]}`)

	req, err := NewCreatePlanRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if req.GetHasImages() || len(req.GetImages()) != 0 {
		t.Fatalf("expected images to be dropped, got %+v", req)
	}
}

func TestNewUpdatePlanRequestTracksImagePresence(t *testing.T) {
	ctx := newJSONContext("PUT", "/provider/plans/"+planID, `{"title":"Garden","images":[]}`)
	ctx.SetParamNames("id")
	ctx.SetParamValues(planID)

	req, err := NewUpdatePlanRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !req.GetHasImages() || len(req.GetImages()) != 0 || req.GetId() != planID {
		t.Fatalf("unexpected request: %+v", req)
	}

	ctx = newJSONContext("PUT", "/provider/plans/"+planID, `{"title":"Garden"}`)
	req, err = NewUpdatePlanRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if req.GetHasImages() {
		t.Fatal("expected images to be absent")
	}
}

func TestSignupValidate(t *testing.T) {
	req := &UserSignupRequest{Email: "a@example.com", Password: "12345", Name: "A"}
	if err := req.Validate(); err == nil || !strings.Contains(err.Error(), "password") {
		t.Fatalf("expected password error, got %v", err)
	}

	req.Password = "123456"
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	req.Password = strings.Repeat("x", 73)
	if err := req.Validate(); err == nil || !strings.Contains(err.Error(), "password") {
		t.Fatalf("expected password length error, got %v", err)
	}

	provider := &ProviderSignupRequest{Email: "bad", Password: "123456", Name: "Studio"}
	if err := provider.Validate(); err == nil || !strings.Contains(err.Error(), "email") {
		t.Fatalf("expected email error, got %v", err)
	}

	provider = &ProviderSignupRequest{Email: "s@example.com", Password: "123456", Name: "Studio", Instagram: "not a url"}
	if err := provider.Validate(); err == nil || !strings.Contains(err.Error(), "instagram") {
		t.Fatalf("expected instagram error, got %v", err)
	}
}

func TestNewUpdateProfileRequestFromContext(t *testing.T) {
	ctx := newJSONContext("PATCH", "/provider/profile", `{"bio":"  hello  "}`)

	req, err := NewUpdateProfileRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if req.GetHasName() || !req.GetHasBio() || req.GetBio() != "hello" || req.GetHasInstagram() {
		t.Fatalf("unexpected request: %+v", req)
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	if err := (&UpdateProfileRequest{}).Validate(); err == nil {
		t.Fatal("expected error for empty update")
	}
	if err := (&UpdateProfileRequest{HasName: true}).Validate(); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestCreateInquiryValidate(t *testing.T) {
	ctx := newJSONContext("POST", "/plans/"+planID+"/inquiries", `{"name":" Hanako ","email":"h@example.com","message":" hi "}`)
	ctx.SetParamNames("id")
	ctx.SetParamValues(planID)

	req, err := NewCreateInquiryRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if req.GetPlanId() != planID || req.GetName() != "Hanako" || req.GetMessage() != "hi" {
		t.Fatalf("unexpected request: %+v", req)
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	req.Message = ""
	if err := req.Validate(); err == nil || !strings.Contains(err.Error(), "message") {
		t.Fatalf("expected message error, got %v", err)
	}
}

func TestFavoriteValidate(t *testing.T) {
	if err := (&FavoriteRequest{PlanId: "x"}).Validate(); err == nil {
		t.Fatal("expected validation error")
	}
	if err := (&FavoriteRequest{PlanId: planID}).Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}

func TestToStruct(t *testing.T) {
	type payload struct {
		ID     string   `json:"id"`
		Price  int64    `json:"price"`
		Images []string `json:"images"`
	}

	s, err := ToStruct(payload{ID: "a", Price: 250000, Images: []string{"x"}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if s.GetFields()["id"].GetStringValue() != "a" {
		t.Fatalf("unexpected struct: %v", s)
	}
	if s.GetFields()["price"].GetNumberValue() != 250000 || len(s.GetFields()["images"].GetListValue().GetValues()) != 1 {
		t.Fatalf("unexpected struct: %v", s)
	}
}

func TestNilGetters(t *testing.T) {
	var req *PlanRequest
	if req.GetTitle() != "" || req.GetPrice() != 0 || req.GetWorldViews() != nil || req.GetHasImages() {
		t.Fatal("expected zero values from nil request")
	}
}
