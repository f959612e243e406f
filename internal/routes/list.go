package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice/internal/controllers"
	"backoffice/internal/repositories"
	"backoffice/internal/services"
)

// runListRouter вешает /{scope}, /{scope}/state, /{scope}/selection
// и возвращает группу для остальных ручек ресурса.
func runListRouter[T services.Identifiable](
	secureGroup *echo.Group,
	page *services.ListPageService[T],
	stores *repositories.StateStoreFactory,
	logger *zap.Logger,
) *echo.Group {
	listCtrl := controllers.NewListController(page, stores, logger)

	group := secureGroup.Group("/" + page.Scope())
	group.GET("", listCtrl.List)
	group.GET("/state", listCtrl.State)
	group.POST("/selection", listCtrl.Select)
	return group
}
