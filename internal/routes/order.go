package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice/internal/controllers"
	"backoffice/internal/repositories"
	"backoffice/internal/services"
)

func runOrderRouter(
	orders *echo.Group,
	orderService services.OrderServiceInterface,
	exportService services.ExportServiceInterface,
	stores *repositories.StateStoreFactory,
	logger *zap.Logger,
) {
	orderCtrl := controllers.NewOrderController(orderService, exportService, stores, logger)

	orders.GET("/export", orderCtrl.Export)
	orders.GET("/statuses", orderCtrl.Statuses)
	orders.GET("/stores", orderCtrl.Stores)
	orders.GET("/:id", orderCtrl.FindOrder)
	orders.PUT("/:id/status", orderCtrl.UpdateStatus)
}
