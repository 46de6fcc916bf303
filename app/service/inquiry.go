package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vibast-solutions/ms-go-bridal/app/entity"
)

type createInquiryRequest interface {
	GetName() string
	GetEmail() string
	GetPhone() string
	GetMessage() string
}

type inquiryRepository interface {
	Create(ctx context.Context, inquiry *entity.Inquiry) error
	ListByProvider(ctx context.Context, providerID string) ([]*entity.Inquiry, error)
}

type inquiryPlanRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Plan, error)
}

type InquiryService struct {
	inquiryRepo inquiryRepository
	planRepo    inquiryPlanRepository
}

func NewInquiryService(inquiryRepo inquiryRepository, planRepo inquiryPlanRepository) *InquiryService {
	return &InquiryService{inquiryRepo: inquiryRepo, planRepo: planRepo}
}

// CreateInquiry records a message to the plan's provider. userID is nil for
// anonymous visitors.
func (s *InquiryService) CreateInquiry(ctx context.Context, planID string, userID *string, req createInquiryRequest) (*entity.Inquiry, error) {
	name := strings.TrimSpace(req.GetName())
	message := strings.TrimSpace(req.GetMessage())
	if name == "" || message == "" {
		return nil, fmt.Errorf("%w: name and message are required", ErrInvalidRequest)
	}
	email, err := normalizeEmail(req.GetEmail())
	if err != nil {
		return nil, err
	}

	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}

	inquiry := &entity.Inquiry{
		ID:         uuid.New().String(),
		PlanID:     plan.ID,
		ProviderID: plan.ProviderID,
		UserID:     userID,
		Name:       name,
		Email:      email,
		Phone:      normalizeOptionalString(req.GetPhone()),
		Message:    message,
		CreatedAt:  time.Now().UTC(),
		PlanTitle:  plan.Title,
	}
	if err := s.inquiryRepo.Create(ctx, inquiry); err != nil {
		return nil, err
	}
	return inquiry, nil
}

func (s *InquiryService) ListProviderInquiries(ctx context.Context, providerID string) ([]*entity.Inquiry, error) {
	return s.inquiryRepo.ListByProvider(ctx, providerID)
}
