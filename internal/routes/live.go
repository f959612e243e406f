package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice/internal/controllers"
	"backoffice/internal/repositories"
	"backoffice/internal/services"
	appwebsocket "backoffice/pkg/websocket"
)

func runLiveRouter(
	secureGroup *echo.Group,
	pages []services.ListPage,
	stores *repositories.StateStoreFactory,
	sessions *services.LiveSessionService,
	hub *appwebsocket.Hub,
	origins []string,
	logger *zap.Logger,
) {
	liveCtrl := controllers.NewLiveController(pages, stores, sessions, hub, origins, logger)
	secureGroup.GET("/live/:scope", liveCtrl.ServeWs)
}
