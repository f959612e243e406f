package services

import (
	"context"

	"go.uber.org/zap"

	"backoffice/internal/adminapi"
	"backoffice/internal/dto"
	"backoffice/internal/entities"
	"backoffice/internal/repositories"
	"backoffice/pkg/eventbus"
)

type OrderServiceInterface interface {
	FindOrder(ctx context.Context, id int64) (*entities.Order, error)
	UpdateStatus(ctx context.Context, id int64, payload dto.UpdateOrderStatusDTO) (*entities.Order, error)
	Statuses(ctx context.Context) ([]entities.OrderStatus, error)
	Stores(ctx context.Context) ([]entities.Store, error)
}

type OrderService struct {
	mutationService
}

func NewOrderService(client *adminapi.Client, bus *eventbus.Bus, cache repositories.CacheRepositoryInterface, logger *zap.Logger) OrderServiceInterface {
	return &OrderService{mutationService: newMutationService(client, bus, cache, ScopeOrders, logger)}
}

func (s *OrderService) FindOrder(ctx context.Context, id int64) (*entities.Order, error) {
	return adminapi.Get[entities.Order](ctx, s.client, adminapi.Path(true, "orders", adminapi.ID(id)))
}

func (s *OrderService) UpdateStatus(ctx context.Context, id int64, payload dto.UpdateOrderStatusDTO) (*entities.Order, error) {
	body := payload.Payload()
	order, err := adminapi.Update[entities.Order](ctx, s.client, adminapi.Path(true, "orders", adminapi.ID(id), "status"), body)
	if err != nil {
		return nil, err
	}
	s.published(ctx, "update_status", idPtr(id), body)
	return order, nil
}

func (s *OrderService) Statuses(ctx context.Context) ([]entities.OrderStatus, error) {
	return s.client.OrderStatuses(ctx)
}

func (s *OrderService) Stores(ctx context.Context) ([]entities.Store, error) {
	return s.client.Stores(ctx)
}
