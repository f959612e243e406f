package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"backoffice/internal/entities"
	db "backoffice/internal/infrastructure/bd"
	"backoffice/pkg/types"
)

const auditTable = "audit_log"

var auditAllowedFields = map[string]string{
	"id":          "id",
	"user":        "user_key",
	"action":      "action",
	"resource":    "resource",
	"resource_id": "resource_id",
	"created_at":  "created_at",
}

var auditColumns = []string{"id", "user_key", "action", "resource", "resource_id", "request_id", "payload", "created_at"}

type AuditRepositoryInterface interface {
	Create(ctx context.Context, entry *entities.AuditEntry) error
	GetAll(ctx context.Context, filter types.Filter) ([]entities.AuditEntry, uint64, error)
}

type AuditRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewAuditRepository(storage *pgxpool.Pool, logger *zap.Logger) AuditRepositoryInterface {
	return &AuditRepository{storage: storage, logger: logger}
}

func (r *AuditRepository) Create(ctx context.Context, entry *entities.AuditEntry) error {
	return insertAudit(ctx, r.storage, entry)
}

func insertAudit(ctx context.Context, q querier, entry *entities.AuditEntry) error {
	var payload any
	if len(entry.Payload) > 0 {
		payload = []byte(entry.Payload)
	}
	query, args, err := sq.Insert(auditTable).
		Columns("user_key", "action", "resource", "resource_id", "request_id", "payload").
		Values(entry.UserKey, entry.Action, entry.Resource, entry.ResourceID, entry.RequestID, payload).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return err
	}
	if err := q.QueryRow(ctx, query, args...).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return fmt.Errorf("ошибка записи в журнал: %w", err)
	}
	return nil
}

func (r *AuditRepository) GetAll(ctx context.Context, filter types.Filter) ([]entities.AuditEntry, uint64, error) {
	countBuilder := sq.Select("COUNT(*)").From(auditTable).PlaceholderFormat(sq.Dollar)
	countBuilder = db.ApplyFilters(countBuilder, filter, auditAllowedFields)
	countBuilder = db.ApplySearch(countBuilder, filter.Search, "user_key", "action", "resource")
	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчёта записей журнала: %w", err)
	}
	if total == 0 {
		return []entities.AuditEntry{}, 0, nil
	}

	if len(filter.Sort) == 0 {
		filter.Sort = map[string]string{"created_at": "desc", "id": "desc"}
	}
	builder := sq.Select(auditColumns...).From(auditTable).PlaceholderFormat(sq.Dollar)
	builder = db.ApplySearch(builder, filter.Search, "user_key", "action", "resource")
	builder = db.ApplyListParams(builder, filter, auditAllowedFields)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка чтения журнала: %w", err)
	}
	defer rows.Close()

	entries := make([]entities.AuditEntry, 0)
	for rows.Next() {
		var (
			e         entities.AuditEntry
			requestID *string
			payload   []byte
		)
		if err := rows.Scan(&e.ID, &e.UserKey, &e.Action, &e.Resource, &e.ResourceID, &requestID, &payload, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		if requestID != nil {
			e.RequestID = *requestID
		}
		e.Payload = payload
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}
