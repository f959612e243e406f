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

type JobOfferServiceInterface interface {
	FindJobOffer(ctx context.Context, id int64) (*entities.JobOffer, error)
	CreateJobOffer(ctx context.Context, payload dto.CreateJobOfferDTO) (*entities.JobOffer, error)
	UpdateJobOffer(ctx context.Context, id int64, payload dto.UpdateJobOfferDTO) (*entities.JobOffer, error)
	DeleteJobOffer(ctx context.Context, id int64) error
	SetPublished(ctx context.Context, id int64, published bool) (*entities.JobOffer, error)
}

type JobOfferService struct {
	mutationService
}

func NewJobOfferService(client *adminapi.Client, bus *eventbus.Bus, cache repositories.CacheRepositoryInterface, logger *zap.Logger) JobOfferServiceInterface {
	return &JobOfferService{mutationService: newMutationService(client, bus, cache, ScopeJobOffers, logger)}
}

func (s *JobOfferService) FindJobOffer(ctx context.Context, id int64) (*entities.JobOffer, error) {
	return adminapi.Get[entities.JobOffer](ctx, s.client, adminapi.Path(false, "job-offers", adminapi.ID(id)))
}

func (s *JobOfferService) CreateJobOffer(ctx context.Context, payload dto.CreateJobOfferDTO) (*entities.JobOffer, error) {
	offer, err := adminapi.Create[entities.JobOffer](ctx, s.client, adminapi.Path(false, "job-offers"), payload)
	if err != nil {
		return nil, err
	}
	s.published(ctx, "create", idPtr(offer.ID), payload)
	return offer, nil
}

func (s *JobOfferService) UpdateJobOffer(ctx context.Context, id int64, payload dto.UpdateJobOfferDTO) (*entities.JobOffer, error) {
	body := payload.Payload()
	offer, err := adminapi.Update[entities.JobOffer](ctx, s.client, adminapi.Path(false, "job-offers", adminapi.ID(id)), body)
	if err != nil {
		return nil, err
	}
	s.published(ctx, "update", idPtr(id), body)
	return offer, nil
}

func (s *JobOfferService) DeleteJobOffer(ctx context.Context, id int64) error {
	if err := adminapi.Delete(ctx, s.client, adminapi.Path(false, "job-offers", adminapi.ID(id))); err != nil {
		return err
	}
	s.published(ctx, "delete", idPtr(id), nil)
	return nil
}

// SetPublished - POST .../publish или .../unpublish.
func (s *JobOfferService) SetPublished(ctx context.Context, id int64, published bool) (*entities.JobOffer, error) {
	action := "unpublish"
	if published {
		action = "publish"
	}
	offer, err := adminapi.Action[entities.JobOffer](ctx, s.client, adminapi.Path(false, "job-offers", adminapi.ID(id), action), nil)
	if err != nil {
		return nil, err
	}
	s.published(ctx, action, idPtr(id), nil)
	return offer, nil
}
