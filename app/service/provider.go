package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-bridal/app/entity"
	"github.com/vibast-solutions/ms-go-bridal/app/factory"
	"github.com/vibast-solutions/ms-go-bridal/app/metrics"
	"github.com/vibast-solutions/ms-go-bridal/app/repository"
	"github.com/vibast-solutions/ms-go-bridal/app/security"
	"github.com/vibast-solutions/ms-go-bridal/app/storage"
	"github.com/vibast-solutions/ms-go-bridal/config"
)

const snsInstagram = "instagram"

type providerSignupRequest interface {
	GetEmail() string
	GetPassword() string
	GetName() string
	GetBio() string
	GetInstagram() string
}

type updateProfileRequest interface {
	GetHasName() bool
	GetName() string
	GetHasBio() bool
	GetBio() string
	GetHasInstagram() bool
	GetInstagram() string
}

type providerRepository interface {
	Create(ctx context.Context, provider *entity.Provider) error
	Update(ctx context.Context, provider *entity.Provider) error
	FindByID(ctx context.Context, id string) (*entity.Provider, error)
	FindByEmail(ctx context.Context, email string) (*entity.Provider, error)
}

type providerPlanLister interface {
	ListByProvider(ctx context.Context, providerID string) ([]*entity.Plan, error)
}

type ProviderProfile struct {
	Provider *entity.Provider
	Plans    []*entity.Plan
}

type ProviderService struct {
	providerRepo providerRepository
	planRepo     providerPlanLister
	store        objectStore
	images       imagePreparer
	storageCfg   config.StorageConfig
	logger       logrus.FieldLogger
}

func NewProviderService(
	providerRepo providerRepository,
	planRepo providerPlanLister,
	store objectStore,
	images imagePreparer,
	storageCfg config.StorageConfig,
) *ProviderService {
	return &ProviderService{
		providerRepo: providerRepo,
		planRepo:     planRepo,
		store:        store,
		images:       images,
		storageCfg:   storageCfg,
		logger:       factory.NewModuleLogger("provider-service"),
	}
}

func (s *ProviderService) Signup(ctx context.Context, req providerSignupRequest) (*entity.Provider, error) {
	email, err := normalizeEmail(req.GetEmail())
	if err != nil {
		return nil, err
	}
	if err := checkPassword(req.GetPassword()); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.GetName())
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidRequest)
	}

	hash, err := security.HashPassword(req.GetPassword())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	provider := &entity.Provider{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Bio:          normalizeOptionalString(req.GetBio()),
		SNSLinks:     map[string]string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if instagram := strings.TrimSpace(req.GetInstagram()); instagram != "" {
		provider.SNSLinks[snsInstagram] = instagram
	}

	if err := s.providerRepo.Create(ctx, provider); err != nil {
		if errors.Is(err, repository.ErrProviderAlreadyExists) {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, err
	}
	return provider, nil
}

// Authenticate reports ErrInvalidCredentials for an unknown email and for a
// wrong password alike.
func (s *ProviderService) Authenticate(ctx context.Context, email, password string) (*entity.Provider, error) {
	provider, err := s.providerRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, ErrInvalidCredentials
	}
	if err := security.CheckPassword(provider.PasswordHash, password); err != nil {
		if errors.Is(err, security.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return provider, nil
}

func (s *ProviderService) GetProvider(ctx context.Context, id string) (*entity.Provider, error) {
	provider, err := s.providerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, ErrProviderNotFound
	}
	return provider, nil
}

// GetPublicProfile returns the provider with its plans, newest first.
func (s *ProviderService) GetPublicProfile(ctx context.Context, id string) (*ProviderProfile, error) {
	provider, err := s.GetProvider(ctx, id)
	if err != nil {
		return nil, err
	}
	plans, err := s.planRepo.ListByProvider(ctx, provider.ID)
	if err != nil {
		return nil, err
	}
	return &ProviderProfile{Provider: provider, Plans: plans}, nil
}

func (s *ProviderService) UpdateProfile(ctx context.Context, id string, req updateProfileRequest) (*entity.Provider, error) {
	if !req.GetHasName() && !req.GetHasBio() && !req.GetHasInstagram() {
		return nil, ErrNoFieldsToUpdate
	}

	provider, err := s.GetProvider(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.GetHasName() {
		name := strings.TrimSpace(req.GetName())
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidRequest)
		}
		provider.Name = name
	}
	if req.GetHasBio() {
		provider.Bio = normalizeOptionalString(req.GetBio())
	}
	if req.GetHasInstagram() {
		if provider.SNSLinks == nil {
			provider.SNSLinks = map[string]string{}
		}
		if instagram := strings.TrimSpace(req.GetInstagram()); instagram != "" {
			provider.SNSLinks[snsInstagram] = instagram
		} else {
			delete(provider.SNSLinks, snsInstagram)
		}
	}
	provider.UpdatedAt = time.Now().UTC()

	if err := s.providerRepo.Update(ctx, provider); err != nil {
		if errors.Is(err, repository.ErrProviderNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}
	return provider, nil
}

// ReplaceProfileImage deletes the current profile image, if any, and stores
// file as the new one.
func (s *ProviderService) ReplaceProfileImage(ctx context.Context, id string, file UploadFile) (*entity.Provider, error) {
	provider, err := s.GetProvider(ctx, id)
	if err != nil {
		return nil, err
	}

	img, err := s.images.Prepare(file.Filename, file.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidImage, err.Error())
	}

	bucket := s.storageCfg.ProfileImagesBucket
	if provider.ProfileImage != nil {
		if err := s.store.Delete(ctx, bucket, *provider.ProfileImage); err != nil {
			metrics.ImageDeleteFailures.WithLabelValues(bucket).Inc()
			s.logger.WithError(err).
				WithField("provider_id", provider.ID).
				WithField("key", *provider.ProfileImage).
				Warn("Old profile image delete failed")
		}
	}

	key := storage.ProfileImageKey(provider.ID, time.Now(), img.Ext)
	if err := s.store.Put(ctx, bucket, key, img.Data, img.ContentType); err != nil {
		return nil, err
	}

	provider.ProfileImage = &key
	provider.UpdatedAt = time.Now().UTC()
	if err := s.providerRepo.Update(ctx, provider); err != nil {
		if errors.Is(err, repository.ErrProviderNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}
	return provider, nil
}

func normalizeEmail(v string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(v))
	if email == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidRequest)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%w: invalid email", ErrInvalidRequest)
	}
	return email, nil
}

func checkPassword(password string) error {
	if len([]rune(password)) < security.MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidRequest, security.MinPasswordLength)
	}
	if len(password) > security.MaxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidRequest, security.MaxPasswordBytes)
	}
	return nil
}
