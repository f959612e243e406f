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

type JobOfferController struct {
	jobOfferService services.JobOfferServiceInterface
	logger          *zap.Logger
}

func NewJobOfferController(jobOfferService services.JobOfferServiceInterface, logger *zap.Logger) *JobOfferController {
	return &JobOfferController{jobOfferService: jobOfferService, logger: logger}
}

func (c *JobOfferController) FindJobOffer(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.jobOfferService.FindJobOffer(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Successfully", http.StatusOK)
}

func (c *JobOfferController) CreateJobOffer(ctx echo.Context) error {
	var req dto.CreateJobOfferDTO
	if err := ctx.Bind(&req); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequest("Неверное тело запроса", err), c.logger)
	}

	res, err := c.jobOfferService.CreateJobOffer(ctx.Request().Context(), req)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Successfully created", http.StatusCreated)
}

func (c *JobOfferController) UpdateJobOffer(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var req dto.UpdateJobOfferDTO
	if err := ctx.Bind(&req); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequest("Неверное тело запроса", err), c.logger)
	}

	res, err := c.jobOfferService.UpdateJobOffer(ctx.Request().Context(), id, req)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Successfully updated", http.StatusOK)
}

func (c *JobOfferController) DeleteJobOffer(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.jobOfferService.DeleteJobOffer(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Successfully deleted", http.StatusOK)
}

func (c *JobOfferController) Publish(ctx echo.Context) error { return c.setPublished(ctx, true) }

func (c *JobOfferController) Unpublish(ctx echo.Context) error { return c.setPublished(ctx, false) }

func (c *JobOfferController) setPublished(ctx echo.Context, published bool) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.jobOfferService.SetPublished(ctx.Request().Context(), id, published)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Successfully updated", http.StatusOK)
}
