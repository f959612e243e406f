package listeners

import (
	"context"

	"go.uber.org/zap"

	"backoffice/internal/events"
	"backoffice/pkg/eventbus"
	"backoffice/pkg/websocket"
)

// LiveListener перечитывает открытые живые списки после изменений.
type LiveListener struct {
	hub    *websocket.Hub
	logger *zap.Logger
}

func NewLiveListener(hub *websocket.Hub, logger *zap.Logger) *LiveListener {
	return &LiveListener{hub: hub, logger: logger}
}

func (l *LiveListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.MutationEventName, l.handleMutation)
}

func (l *LiveListener) handleMutation(_ context.Context, event eventbus.Event) error {
	e, ok := event.(events.MutationEvent)
	if !ok {
		return nil
	}
	if n := l.hub.Invalidate(e.Resource); n > 0 {
		l.logger.Debug("Живые списки обновляются", zap.String("scope", e.Resource), zap.Int("sessions", n))
	}
	return nil
}
