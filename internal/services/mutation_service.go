package services

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"backoffice/internal/adminapi"
	"backoffice/internal/events"
	"backoffice/internal/repositories"
	"backoffice/pkg/eventbus"
)

// mutationService - общее у сервисов, которые меняют сущности через admin API.
// Проверки данных делает бэкенд, его ошибки возвращаются как есть.
type mutationService struct {
	*BaseService
	client   *adminapi.Client
	bus      *eventbus.Bus
	resource string
}

func newMutationService(client *adminapi.Client, bus *eventbus.Bus, cache repositories.CacheRepositoryInterface, resource string, logger *zap.Logger) mutationService {
	return mutationService{
		BaseService: NewBaseService(cache, logger.Named(resource)),
		client:      client,
		bus:         bus,
		resource:    resource,
	}
}

func (s *mutationService) published(ctx context.Context, action string, id *int64, payload any) {
	user, requestID := s.Actor(ctx)
	var raw json.RawMessage
	if payload != nil {
		if data, err := json.Marshal(payload); err == nil {
			raw = data
		}
	}
	// последние страницы списка устарели у всех пользователей
	s.CacheDelPrefix(ctx, repositories.PagePrefix(s.resource))
	s.logger.Info("Изменение через admin API",
		zap.String("resource", s.resource),
		zap.String("action", action),
		zap.String("user", user),
	)
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.MutationEvent{
		UserKey:    user,
		RequestID:  requestID,
		Resource:   s.resource,
		Action:     action,
		ResourceID: id,
		Payload:    raw,
	})
}

func idPtr(id int64) *int64 { return &id }
