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

type FavoriteController struct {
	favoriteService *service.FavoriteService
	mapper          *mapper.Mapper
	logger          logrus.FieldLogger
}

func NewFavoriteController(favoriteService *service.FavoriteService, m *mapper.Mapper) *FavoriteController {
	return &FavoriteController{
		favoriteService: favoriteService,
		mapper:          m,
		logger:          factory.NewModuleLogger("favorites-controller"),
	}
}

func (c *FavoriteController) ListFavorites(ctx echo.Context) error {
	items, err := c.favoriteService.ListFavorites(ctx.Request().Context(), subjectID(ctx))
	if err != nil {
		c.logger.WithError(err).Error("List favorites failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}
	return ctx.JSON(http.StatusOK, c.mapper.PlanList(items))
}

func (c *FavoriteController) GetFavorite(ctx echo.Context) error {
	req := types.NewFavoriteRequestFromContext(ctx)
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	favorite, err := c.favoriteService.IsFavorite(ctx.Request().Context(), subjectID(ctx), req.GetPlanId())
	if err != nil {
		c.logger.WithError(err).Error("Get favorite failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}
	return ctx.JSON(http.StatusOK, &dto.FavoriteStatusResponse{PlanID: req.GetPlanId(), Favorite: favorite})
}

func (c *FavoriteController) AddFavorite(ctx echo.Context) error {
	req := types.NewFavoriteRequestFromContext(ctx)
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	if err := c.favoriteService.AddFavorite(ctx.Request().Context(), subjectID(ctx), req.GetPlanId()); err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			return writeError(ctx, http.StatusNotFound, "plan not found")
		}
		c.logger.WithError(err).Error("Add favorite failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}
	return ctx.JSON(http.StatusOK, &dto.FavoriteStatusResponse{PlanID: req.GetPlanId(), Favorite: true})
}

func (c *FavoriteController) RemoveFavorite(ctx echo.Context) error {
	req := types.NewFavoriteRequestFromContext(ctx)
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	if err := c.favoriteService.RemoveFavorite(ctx.Request().Context(), subjectID(ctx), req.GetPlanId()); err != nil {
		c.logger.WithError(err).Error("Remove favorite failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}
	return ctx.JSON(http.StatusOK, &dto.FavoriteStatusResponse{PlanID: req.GetPlanId(), Favorite: false})
}
