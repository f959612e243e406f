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

type HelpCenterController struct {
	helpCenterService services.HelpCenterServiceInterface
	logger            *zap.Logger
}

func NewHelpCenterController(helpCenterService services.HelpCenterServiceInterface, logger *zap.Logger) *HelpCenterController {
	return &HelpCenterController{helpCenterService: helpCenterService, logger: logger}
}

func (c *HelpCenterController) FindArticle(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.helpCenterService.FindArticle(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Successfully", http.StatusOK)
}

func (c *HelpCenterController) CreateArticle(ctx echo.Context) error {
	var req dto.CreateHelpArticleDTO
	if err := ctx.Bind(&req); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequest("Неверное тело запроса", err), c.logger)
	}

	res, err := c.helpCenterService.CreateArticle(ctx.Request().Context(), req)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Successfully created", http.StatusCreated)
}

func (c *HelpCenterController) UpdateArticle(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var req dto.UpdateHelpArticleDTO
	if err := ctx.Bind(&req); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequest("Неверное тело запроса", err), c.logger)
	}

	res, err := c.helpCenterService.UpdateArticle(ctx.Request().Context(), id, req)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Successfully updated", http.StatusOK)
}

func (c *HelpCenterController) DeleteArticle(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.helpCenterService.DeleteArticle(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Successfully deleted", http.StatusOK)
}

// UploadImage принимает multipart: file и необязательное alt.
func (c *HelpCenterController) UploadImage(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequest("Файл не передан", err), c.logger)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequest("Не удалось прочитать файл", err), c.logger)
	}
	defer file.Close()

	meta := dto.ImageMetaDTO{Alt: ctx.FormValue("alt")}
	res, err := c.helpCenterService.UploadImage(ctx.Request().Context(), id, fileHeader.Filename, file, meta)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Successfully uploaded", http.StatusOK)
}

func (c *HelpCenterController) Categories(ctx echo.Context) error {
	res, err := c.helpCenterService.Categories(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Successfully", http.StatusOK)
}
