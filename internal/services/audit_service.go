package services

import (
	"context"

	"go.uber.org/zap"

	"backoffice/internal/dto"
	"backoffice/internal/repositories"
	"backoffice/pkg/types"
)

type AuditServiceInterface interface {
	GetEntries(ctx context.Context, filter types.Filter) ([]dto.AuditEntryDTO, uint64, error)
}

type AuditService struct {
	auditRepo repositories.AuditRepositoryInterface
	logger    *zap.Logger
}

func NewAuditService(auditRepo repositories.AuditRepositoryInterface, logger *zap.Logger) AuditServiceInterface {
	return &AuditService{auditRepo: auditRepo, logger: logger}
}

func (s *AuditService) GetEntries(ctx context.Context, filter types.Filter) ([]dto.AuditEntryDTO, uint64, error) {
	entries, total, err := s.auditRepo.GetAll(ctx, filter)
	if err != nil {
		s.logger.Error("Ошибка чтения журнала", zap.Error(err))
		return nil, 0, err
	}
	out := make([]dto.AuditEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.AuditEntryDTO{
			ID:         e.ID,
			User:       e.UserKey,
			Action:     e.Action,
			Resource:   e.Resource,
			ResourceID: e.ResourceID,
			RequestID:  e.RequestID,
			Payload:    e.Payload,
			CreatedAt:  dto.FormatTime(e.CreatedAt),
		})
	}
	return out, total, nil
}
