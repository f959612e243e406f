package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice/internal/controllers"
	"backoffice/internal/services"
)

func runTaxFreeRouter(requests *echo.Group, taxFreeService services.TaxFreeServiceInterface, logger *zap.Logger) {
	taxFreeCtrl := controllers.NewTaxFreeController(taxFreeService, logger)

	requests.GET("/:id", taxFreeCtrl.FindRequest)
	requests.POST("/:id/approve", taxFreeCtrl.Approve)
	requests.POST("/:id/reject", taxFreeCtrl.Reject)
}
