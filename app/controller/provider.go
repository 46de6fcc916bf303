package controller

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-bridal/app/dto"
	"github.com/vibast-solutions/ms-go-bridal/app/entity"
	"github.com/vibast-solutions/ms-go-bridal/app/factory"
	"github.com/vibast-solutions/ms-go-bridal/app/mapper"
	"github.com/vibast-solutions/ms-go-bridal/app/service"
	"github.com/vibast-solutions/ms-go-bridal/app/session"
	"github.com/vibast-solutions/ms-go-bridal/app/types"
	"github.com/vibast-solutions/ms-go-bridal/config"
)

type sessionManager interface {
	Start(c echo.Context, kind session.Kind, subjectID, email string) (*session.Session, error)
	End(c echo.Context) error
}

type providerInquiryLister interface {
	ListProviderInquiries(ctx context.Context, providerID string) ([]*entity.Inquiry, error)
}

type ProviderController struct {
	providerService *service.ProviderService
	inquiryService  providerInquiryLister
	sessions        sessionManager
	mapper          *mapper.Mapper
	uploadCfg       config.UploadConfig
	logger          logrus.FieldLogger
}

func NewProviderController(
	providerService *service.ProviderService,
	inquiryService providerInquiryLister,
	sessions sessionManager,
	m *mapper.Mapper,
	uploadCfg config.UploadConfig,
) *ProviderController {
	return &ProviderController{
		providerService: providerService,
		inquiryService:  inquiryService,
		sessions:        sessions,
		mapper:          m,
		uploadCfg:       uploadCfg,
		logger:          factory.NewModuleLogger("providers-controller"),
	}
}

func (c *ProviderController) Signup(ctx echo.Context) error {
	req, err := types.NewProviderSignupRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	provider, err := c.providerService.Signup(ctx.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			return writeError(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrEmailAlreadyRegistered):
			return writeError(ctx, http.StatusConflict, "email already registered")
		default:
			c.logger.WithError(err).Error("Provider signup failed")
			return writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	if _, err := c.sessions.Start(ctx, session.KindProvider, provider.ID, provider.Email); err != nil {
		c.logger.WithError(err).Error("Session start failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusCreated, &dto.ProviderEnvelopeResponse{Provider: c.mapper.Provider(provider)})
}

func (c *ProviderController) Login(ctx echo.Context) error {
	req, err := types.NewLoginRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	provider, err := c.providerService.Authenticate(ctx.Request().Context(), req.GetEmail(), req.GetPassword())
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return writeError(ctx, http.StatusUnauthorized, "invalid email or password")
		}
		c.logger.WithError(err).Error("Provider login failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	if _, err := c.sessions.Start(ctx, session.KindProvider, provider.ID, provider.Email); err != nil {
		c.logger.WithError(err).Error("Session start failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &dto.ProviderEnvelopeResponse{Provider: c.mapper.Provider(provider)})
}

func (c *ProviderController) Logout(ctx echo.Context) error {
	if err := c.sessions.End(ctx); err != nil {
		c.logger.WithError(err).Error("Logout failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}
	return ctx.JSON(http.StatusOK, &dto.MessageResponse{Message: "Logged out"})
}

func (c *ProviderController) GetProfile(ctx echo.Context) error {
	provider, err := c.providerService.GetProvider(ctx.Request().Context(), subjectID(ctx))
	if err != nil {
		if errors.Is(err, service.ErrProviderNotFound) {
			return writeError(ctx, http.StatusNotFound, "provider not found")
		}
		c.logger.WithError(err).Error("Get provider profile failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}
	return ctx.JSON(http.StatusOK, &dto.ProviderEnvelopeResponse{Provider: c.mapper.Provider(provider)})
}

func (c *ProviderController) UpdateProfile(ctx echo.Context) error {
	req, err := types.NewUpdateProfileRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	provider, err := c.providerService.UpdateProfile(ctx.Request().Context(), subjectID(ctx), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest), errors.Is(err, service.ErrNoFieldsToUpdate):
			return writeError(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrProviderNotFound):
			return writeError(ctx, http.StatusNotFound, "provider not found")
		default:
			c.logger.WithError(err).Error("Update provider profile failed")
			return writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusOK, &dto.ProviderEnvelopeResponse{Provider: c.mapper.Provider(provider)})
}

func (c *ProviderController) ReplaceProfileImage(ctx echo.Context) error {
	header, err := ctx.FormFile("image")
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "no file uploaded")
	}
	file, err := readUpload(header, c.uploadCfg.MaxImageBytes)
	if err != nil {
		return writeUploadError(ctx, err)
	}

	provider, err := c.providerService.ReplaceProfileImage(ctx.Request().Context(), subjectID(ctx), file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidImage):
			return writeError(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrProviderNotFound):
			return writeError(ctx, http.StatusNotFound, "provider not found")
		default:
			c.logger.WithError(err).Error("Replace profile image failed")
			return writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusOK, &dto.ProviderEnvelopeResponse{Provider: c.mapper.Provider(provider)})
}

func (c *ProviderController) GetPublicProfile(ctx echo.Context) error {
	id := strings.TrimSpace(ctx.Param("id"))
	if id == "" {
		return writeError(ctx, http.StatusBadRequest, "invalid provider id")
	}

	profile, err := c.providerService.GetPublicProfile(ctx.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProviderNotFound) {
			return writeError(ctx, http.StatusNotFound, "provider not found")
		}
		c.logger.WithError(err).Error("Get public profile failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, c.mapper.ProviderProfile(profile))
}

func (c *ProviderController) ListInquiries(ctx echo.Context) error {
	items, err := c.inquiryService.ListProviderInquiries(ctx.Request().Context(), subjectID(ctx))
	if err != nil {
		c.logger.WithError(err).Error("List inquiries failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}
	return ctx.JSON(http.StatusOK, &dto.ListInquiriesResponse{Inquiries: mapper.Inquiries(items)})
}
