package controllers

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice/internal/services"
	"backoffice/pkg/api"
	"backoffice/pkg/utils"
)

type AuditController struct {
	auditService services.AuditServiceInterface
	logger       *zap.Logger
}

func NewAuditController(auditService services.AuditServiceInterface, logger *zap.Logger) *AuditController {
	return &AuditController{auditService: auditService, logger: logger}
}

// GetEntries: ?search=&filter[action]=&sort[created_at]=desc&limit=&page=
func (c *AuditController) GetEntries(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	entries, total, err := c.auditService.GetEntries(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessList(ctx, "Successfully", entries, total, filter.Page, filter.Limit)
}
