package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/vibast-solutions/ms-go-bridal/app/dto"
	"github.com/vibast-solutions/ms-go-bridal/app/mapper"
)

type CatalogController struct{}

func NewCatalogController() *CatalogController {
	return &CatalogController{}
}

func (c *CatalogController) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, &dto.HealthResponse{Status: "ok"})
}

func (c *CatalogController) Options(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, mapper.CatalogOptions())
}
