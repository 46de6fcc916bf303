package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-bridal/app/factory"
	"github.com/vibast-solutions/ms-go-bridal/app/mapper"
	"github.com/vibast-solutions/ms-go-bridal/app/service"
)

type MaintenanceController struct {
	maintenanceService *service.MaintenanceService
	logger             logrus.FieldLogger
}

func NewMaintenanceController(maintenanceService *service.MaintenanceService) *MaintenanceController {
	return &MaintenanceController{
		maintenanceService: maintenanceService,
		logger:             factory.NewModuleLogger("maintenance-controller"),
	}
}

func (c *MaintenanceController) SweepOrphanImages(ctx echo.Context) error {
	result, err := c.maintenanceService.SweepOrphanImages(ctx.Request().Context())
	if err != nil {
		c.logger.WithError(err).Error("Orphan image sweep failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	factory.LoggerWithContext(c.logger, ctx).
		WithField("plan_images_deleted", result.PlanImagesDeleted).
		WithField("profile_images_deleted", result.ProfileImagesDeleted).
		WithField("failed", result.Failed).
		Info("Orphan image sweep finished")
	return ctx.JSON(http.StatusOK, mapper.SweepResult(result))
}
