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
	"github.com/vibast-solutions/ms-go-bridal/config"
)

type PlanController struct {
	planService     *service.PlanService
	favoriteService *service.FavoriteService
	mapper          *mapper.Mapper
	uploadCfg       config.UploadConfig
	logger          logrus.FieldLogger
}

func NewPlanController(
	planService *service.PlanService,
	favoriteService *service.FavoriteService,
	m *mapper.Mapper,
	uploadCfg config.UploadConfig,
) *PlanController {
	return &PlanController{
		planService:     planService,
		favoriteService: favoriteService,
		mapper:          m,
		uploadCfg:       uploadCfg,
		logger:          factory.NewModuleLogger("plans-controller"),
	}
}

// SearchPlans never rejects filter parameters: unknown price or sort codes
// simply do not restrict or reorder the result.
func (c *PlanController) SearchPlans(ctx echo.Context) error {
	req := types.NewSearchPlansRequestFromContext(ctx)

	items, err := c.planService.SearchPlans(ctx.Request().Context(), req.Params())
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Search plans failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, c.mapper.PlanList(items))
}

func (c *PlanController) GetPlan(ctx echo.Context) error {
	req := types.NewGetPlanRequestFromContext(ctx)
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.planService.GetPlanDetail(ctx.Request().Context(), req.GetId())
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			return writeError(ctx, http.StatusNotFound, "plan not found")
		}
		c.logger.WithError(err).Error("Get plan failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	var favorite *bool
	if userID := currentUserID(ctx); userID != nil {
		isFavorite, err := c.favoriteService.IsFavorite(ctx.Request().Context(), *userID, item.Plan.ID)
		if err != nil {
			c.logger.WithError(err).Error("Favorite lookup failed")
			return writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
		favorite = &isFavorite
	}

	return ctx.JSON(http.StatusOK, c.mapper.PlanDetail(item, favorite))
}

func (c *PlanController) ListProviderPlans(ctx echo.Context) error {
	items, err := c.planService.ListProviderPlans(ctx.Request().Context(), subjectID(ctx))
	if err != nil {
		c.logger.WithError(err).Error("List provider plans failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}
	return ctx.JSON(http.StatusOK, c.mapper.PlanList(items))
}

func (c *PlanController) GetProviderPlan(ctx echo.Context) error {
	req := types.NewGetPlanRequestFromContext(ctx)
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.planService.GetProviderPlan(ctx.Request().Context(), subjectID(ctx), req.GetId())
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			return writeError(ctx, http.StatusNotFound, "plan not found")
		}
		c.logger.WithError(err).Error("Get provider plan failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &dto.PlanEnvelopeResponse{Plan: c.mapper.Plan(item)})
}

func (c *PlanController) CreatePlan(ctx echo.Context) error {
	req, err := types.NewCreatePlanRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.planService.CreatePlan(ctx.Request().Context(), subjectID(ctx), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			return writeError(ctx, http.StatusBadRequest, err.Error())
		}
		c.logger.WithError(err).Error("Create plan failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusCreated, &dto.PlanEnvelopeResponse{Plan: c.mapper.Plan(item)})
}

func (c *PlanController) UpdatePlan(ctx echo.Context) error {
	req, err := types.NewUpdatePlanRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.planService.UpdatePlan(ctx.Request().Context(), subjectID(ctx), req.GetId(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			return writeError(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrPlanNotFound):
			return writeError(ctx, http.StatusNotFound, "plan not found")
		default:
			c.logger.WithError(err).Error("Update plan failed")
			return writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusOK, &dto.PlanEnvelopeResponse{Plan: c.mapper.Plan(item)})
}

func (c *PlanController) AddPlanImages(ctx echo.Context) error {
	req := types.NewGetPlanRequestFromContext(ctx)
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	files, err := readUploads(ctx, "images", c.uploadCfg.MaxImageBytes, c.uploadCfg.MaxFiles)
	if err != nil {
		return writeUploadError(ctx, err)
	}

	result, err := c.planService.AddPlanImages(ctx.Request().Context(), subjectID(ctx), req.GetId(), files)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest), errors.Is(err, service.ErrTooManyFiles):
			return writeError(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrPlanNotFound):
			return writeError(ctx, http.StatusNotFound, "plan not found")
		default:
			c.logger.WithError(err).Error("Add plan images failed")
			return writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusOK, &dto.AddImagesResponse{
		Plan:    c.mapper.Plan(result.Plan),
		Skipped: result.Skipped,
	})
}

func (c *PlanController) DeletePlan(ctx echo.Context) error {
	req := types.NewGetPlanRequestFromContext(ctx)
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	if err := c.planService.DeletePlan(ctx.Request().Context(), subjectID(ctx), req.GetId()); err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			return writeError(ctx, http.StatusNotFound, "plan not found")
		}
		c.logger.WithError(err).Error("Delete plan failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &dto.MessageResponse{Message: "Plan deleted successfully"})
}
