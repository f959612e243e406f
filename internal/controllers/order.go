package controllers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice/internal/dto"
	"backoffice/internal/repositories"
	"backoffice/internal/services"
	apperrors "backoffice/pkg/errors"
	"backoffice/pkg/utils"
)

type OrderController struct {
	orderService  services.OrderServiceInterface
	exportService services.ExportServiceInterface
	stores        *repositories.StateStoreFactory
	logger        *zap.Logger
}

func NewOrderController(
	orderService services.OrderServiceInterface,
	exportService services.ExportServiceInterface,
	stores *repositories.StateStoreFactory,
	logger *zap.Logger,
) *OrderController {
	return &OrderController{
		orderService:  orderService,
		exportService: exportService,
		stores:        stores,
		logger:        logger,
	}
}

func (c *OrderController) FindOrder(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.orderService.FindOrder(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Successfully", http.StatusOK)
}

func (c *OrderController) UpdateStatus(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var req dto.UpdateOrderStatusDTO
	if err := ctx.Bind(&req); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequest("Неверное тело запроса", err), c.logger)
	}
	if err := ctx.Validate(&req); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.orderService.UpdateStatus(ctx.Request().Context(), id, req)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Successfully updated", http.StatusOK)
}

func (c *OrderController) Statuses(ctx echo.Context) error {
	res, err := c.orderService.Statuses(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Successfully", http.StatusOK)
}

func (c *OrderController) Stores(ctx echo.Context) error {
	res, err := c.orderService.Stores(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Successfully", http.StatusOK)
}

// Export отдаёт файл по текущим фильтрам пользователя (или только отмеченные строки).
func (c *OrderController) Export(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	user, err := utils.GetUserFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var req dto.ExportQueryDTO
	if err := ctx.Bind(&req); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequest("Неверные параметры запроса", err), c.logger)
	}
	if err := ctx.Validate(&req); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	store, key := c.stores.For(ctx, services.ScopeOrders, user)
	file, err := c.exportService.ExportOrders(reqCtx, store, key, user, req.Format)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Name))
	return ctx.Blob(http.StatusOK, file.ContentType, file.Data)
}
