package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice/internal/dto"
	"backoffice/internal/services"
	apperrors "backoffice/pkg/errors"
	"backoffice/pkg/utils"
)

type CountryController struct {
	countryService services.CountryServiceInterface
	logger         *zap.Logger
}

func NewCountryController(countryService services.CountryServiceInterface, logger *zap.Logger) *CountryController {
	return &CountryController{countryService: countryService, logger: logger}
}

func (c *CountryController) FindCountry(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.countryService.FindCountry(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Successfully", http.StatusOK)
}

func (c *CountryController) CreateCountry(ctx echo.Context) error {
	var req dto.CreateCountryDTO
	if err := ctx.Bind(&req); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequest("Неверное тело запроса", err), c.logger)
	}

	res, err := c.countryService.CreateCountry(ctx.Request().Context(), req)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Successfully created", http.StatusCreated)
}

func (c *CountryController) UpdateCountry(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var req dto.UpdateCountryDTO
	if err := ctx.Bind(&req); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequest("Неверное тело запроса", err), c.logger)
	}

	res, err := c.countryService.UpdateCountry(ctx.Request().Context(), id, req)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Successfully updated", http.StatusOK)
}

func (c *CountryController) DeleteCountry(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.countryService.DeleteCountry(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Successfully deleted", http.StatusOK)
}
