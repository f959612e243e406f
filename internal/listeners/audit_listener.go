package listeners

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"backoffice/internal/entities"
	"backoffice/internal/events"
	"backoffice/internal/repositories"
	"backoffice/pkg/eventbus"
)

// AuditListener пишет изменения и выгрузки в audit_log.
type AuditListener struct {
	auditRepo repositories.AuditRepositoryInterface
	logger    *zap.Logger
}

func NewAuditListener(auditRepo repositories.AuditRepositoryInterface, logger *zap.Logger) *AuditListener {
	return &AuditListener{auditRepo: auditRepo, logger: logger}
}

func (l *AuditListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.MutationEventName, l.handleMutation)
	bus.Subscribe(events.ExportEventName, l.handleExport)
	l.logger.Info("AuditListener подписан на события", zap.Strings("events", []string{events.MutationEventName, events.ExportEventName}))
}

func (l *AuditListener) handleMutation(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.MutationEvent)
	if !ok {
		return nil
	}
	return l.auditRepo.Create(ctx, &entities.AuditEntry{
		UserKey:    e.UserKey,
		Action:     e.Action,
		Resource:   e.Resource,
		ResourceID: e.ResourceID,
		RequestID:  e.RequestID,
		Payload:    e.Payload,
	})
}

func (l *AuditListener) handleExport(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.ExportEvent)
	if !ok {
		return nil
	}
	payload, err := json.Marshal(map[string]any{
		"format":   e.Format,
		"rows":     e.Rows,
		"selected": e.Selected,
		"filters":  e.Filters,
	})
	if err != nil {
		return err
	}
	return l.auditRepo.Create(ctx, &entities.AuditEntry{
		UserKey:   e.UserKey,
		Action:    "export",
		Resource:  e.Resource,
		RequestID: e.RequestID,
		Payload:   payload,
	})
}
