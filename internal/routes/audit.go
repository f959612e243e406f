package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice/internal/controllers"
	"backoffice/internal/services"
)

func runAuditRouter(secureGroup *echo.Group, auditService services.AuditServiceInterface, logger *zap.Logger) {
	auditCtrl := controllers.NewAuditController(auditService, logger)
	secureGroup.GET("/audit", auditCtrl.GetEntries)
}
