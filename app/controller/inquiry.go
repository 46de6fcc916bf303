package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-bridal/app/dto"
	"github.com/vibast-solutions/ms-go-bridal/app/factory"
	"github.com/vibast-solutions/ms-go-bridal/app/mapper"
	"github.com/vibast-solutions/ms-go-bridal/app/service"
	"github.com/vibast-solutions/ms-go-bridal/app/types"
)

type InquiryController struct {
	inquiryService *service.InquiryService
	logger         logrus.FieldLogger
}

func NewInquiryController(inquiryService *service.InquiryService) *InquiryController {
	return &InquiryController{
		inquiryService: inquiryService,
		logger:         factory.NewModuleLogger("inquiries-controller"),
	}
}

// CreateInquiry accepts anonymous visitors. A logged-in user is attached to
// the inquiry.
func (c *InquiryController) CreateInquiry(ctx echo.Context) error {
	req, err := types.NewCreateInquiryRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.inquiryService.CreateInquiry(ctx.Request().Context(), req.GetPlanId(), currentUserID(ctx), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			return writeError(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrPlanNotFound):
			return writeError(ctx, http.StatusNotFound, "plan not found")
		default:
			c.logger.WithError(err).Error("Create inquiry failed")
			return writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusCreated, &dto.InquiryEnvelopeResponse{Inquiry: mapper.Inquiry(item)})
}
