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

type TaxFreeServiceInterface interface {
	FindRequest(ctx context.Context, id int64) (*entities.TaxFreeRequest, error)
	Approve(ctx context.Context, id int64, payload dto.ApproveTaxFreeDTO) (*entities.TaxFreeRequest, error)
	Reject(ctx context.Context, id int64, payload dto.RejectTaxFreeDTO) (*entities.TaxFreeRequest, error)
}

type TaxFreeService struct {
	mutationService
}

func NewTaxFreeService(client *adminapi.Client, bus *eventbus.Bus, cache repositories.CacheRepositoryInterface, logger *zap.Logger) TaxFreeServiceInterface {
	return &TaxFreeService{mutationService: newMutationService(client, bus, cache, ScopeTaxFree, logger)}
}

func (s *TaxFreeService) FindRequest(ctx context.Context, id int64) (*entities.TaxFreeRequest, error) {
	return adminapi.Get[entities.TaxFreeRequest](ctx, s.client, adminapi.Path(false, "tax-free", adminapi.ID(id)))
}

func (s *TaxFreeService) Approve(ctx context.Context, id int64, payload dto.ApproveTaxFreeDTO) (*entities.TaxFreeRequest, error) {
	body := payload.Payload()
	req, err := adminapi.Action[entities.TaxFreeRequest](ctx, s.client, adminapi.Path(false, "tax-free", adminapi.ID(id), "approve"), body)
	if err != nil {
		return nil, err
	}
	s.published(ctx, "approve", idPtr(id), body)
	return req, nil
}

func (s *TaxFreeService) Reject(ctx context.Context, id int64, payload dto.RejectTaxFreeDTO) (*entities.TaxFreeRequest, error) {
	req, err := adminapi.Action[entities.TaxFreeRequest](ctx, s.client, adminapi.Path(false, "tax-free", adminapi.ID(id), "reject"), payload)
	if err != nil {
		return nil, err
	}
	s.published(ctx, "reject", idPtr(id), payload)
	return req, nil
}
