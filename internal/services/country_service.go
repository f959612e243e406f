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

type CountryServiceInterface interface {
	FindCountry(ctx context.Context, id int64) (*entities.Country, error)
	CreateCountry(ctx context.Context, payload dto.CreateCountryDTO) (*entities.Country, error)
	UpdateCountry(ctx context.Context, id int64, payload dto.UpdateCountryDTO) (*entities.Country, error)
	DeleteCountry(ctx context.Context, id int64) error
}

type CountryService struct {
	mutationService
}

func NewCountryService(client *adminapi.Client, bus *eventbus.Bus, cache repositories.CacheRepositoryInterface, logger *zap.Logger) CountryServiceInterface {
	return &CountryService{mutationService: newMutationService(client, bus, cache, ScopeCountries, logger)}
}

func (s *CountryService) FindCountry(ctx context.Context, id int64) (*entities.Country, error) {
	return adminapi.Get[entities.Country](ctx, s.client, adminapi.Path(false, "countries", adminapi.ID(id)))
}

func (s *CountryService) CreateCountry(ctx context.Context, payload dto.CreateCountryDTO) (*entities.Country, error) {
	country, err := adminapi.Create[entities.Country](ctx, s.client, adminapi.Path(false, "countries"), payload)
	if err != nil {
		return nil, err
	}
	s.published(ctx, "create", idPtr(country.ID), payload)
	return country, nil
}

func (s *CountryService) UpdateCountry(ctx context.Context, id int64, payload dto.UpdateCountryDTO) (*entities.Country, error) {
	body := payload.Payload()
	country, err := adminapi.Update[entities.Country](ctx, s.client, adminapi.Path(false, "countries", adminapi.ID(id)), body)
	if err != nil {
		return nil, err
	}
	s.published(ctx, "update", idPtr(id), body)
	return country, nil
}

func (s *CountryService) DeleteCountry(ctx context.Context, id int64) error {
	if err := adminapi.Delete(ctx, s.client, adminapi.Path(false, "countries", adminapi.ID(id))); err != nil {
		return err
	}
	s.published(ctx, "delete", idPtr(id), nil)
	return nil
}
