package controllers

import (
	"net/http"
	"slices"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice/internal/repositories"
	"backoffice/internal/services"
	apperrors "backoffice/pkg/errors"
	"backoffice/pkg/utils"
	appwebsocket "backoffice/pkg/websocket"
)

type LiveController struct {
	pages    map[string]services.ListPage
	stores   *repositories.StateStoreFactory
	sessions *services.LiveSessionService
	hub      *appwebsocket.Hub
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewLiveController: allowedOrigins пустой - принимаются любые Origin.
func NewLiveController(
	pages []services.ListPage,
	stores *repositories.StateStoreFactory,
	sessions *services.LiveSessionService,
	hub *appwebsocket.Hub,
	allowedOrigins []string,
	logger *zap.Logger,
) *LiveController {
	byScope := make(map[string]services.ListPage, len(pages))
	for _, p := range pages {
		byScope[p.Scope()] = p
	}
	return &LiveController{
		pages:    byScope,
		stores:   stores,
		sessions: sessions,
		hub:      hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowedOrigins) == 0 || origin == "" || slices.Contains(allowedOrigins, origin)
			},
		},
		logger: logger,
	}
}

// ServeWs открывает живой список /api/live/:scope. Токен проверяет AuthMiddleware
// (в браузере он приходит в ?token=).
func (c *LiveController) ServeWs(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	scope := ctx.Param("scope")

	page, ok := c.pages[scope]
	if !ok {
		return utils.ErrorResponse(ctx, apperrors.ErrUnknownScope, c.logger)
	}
	user, err := utils.GetUserFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	store, key := c.stores.ForSession(ctx, scope, user)

	conn, err := c.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		c.logger.Error("WebSocket: не удалось улучшить соединение", zap.Error(err))
		return nil
	}

	client := appwebsocket.NewClient(c.hub, conn, user, scope, c.logger)
	session := c.sessions.Open(services.SessionContext(reqCtx), page, store, key, user, client)
	client.SetHandler(session)

	if !c.hub.Add(client) {
		session.Close()
		_ = conn.Close()
		return nil
	}

	go client.WritePump()
	session.Start()
	go client.ReadPump()

	c.logger.Info("WebSocket: клиент подключен", zap.String("user", user), zap.String("scope", scope), zap.String("session", session.ID))
	return nil
}
