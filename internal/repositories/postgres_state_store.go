package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"backoffice/internal/listkit"
)

const searchStatesTable = "search_states"

// PostgresStateStore хранит состояние списков в таблице search_states.
// Просроченные строки не читаются и удаляются PurgeExpired.
type PostgresStateStore struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewPostgresStateStore(storage *pgxpool.Pool, logger *zap.Logger) *PostgresStateStore {
	return &PostgresStateStore{storage: storage, logger: logger}
}

func (s *PostgresStateStore) Load(ctx context.Context, key string) ([]byte, error) {
	query, args, err := sq.Select("state").
		From(searchStatesTable).
		Where(sq.Eq{"key": key}).
		Where(sq.Expr("expires_at > NOW()")).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var blob []byte
	if err := s.storage.QueryRow(ctx, query, args...).Scan(&blob); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, listkit.ErrStateNotFound
		}
		return nil, fmt.Errorf("ошибка чтения состояния %s: %w", key, err)
	}
	return blob, nil
}

func (s *PostgresStateStore) Save(ctx context.Context, key string, blob []byte, ttl time.Duration) error {
	expiresAt := time.Now().Add(ttl)
	query, args, err := sq.Insert(searchStatesTable).
		Columns("key", "state", "expires_at", "updated_at").
		Values(key, blob, expiresAt, sq.Expr("NOW()")).
		Suffix("ON CONFLICT (key) DO UPDATE SET state = EXCLUDED.state, expires_at = EXCLUDED.expires_at, updated_at = NOW()").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.storage.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("ошибка сохранения состояния %s: %w", key, err)
	}
	return nil
}

// PurgeExpired удаляет просроченные состояния и возвращает их количество.
func (s *PostgresStateStore) PurgeExpired(ctx context.Context) (int64, error) {
	query, args, err := sq.Delete(searchStatesTable).
		Where(sq.Expr("expires_at <= NOW()")).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}
	tag, err := s.storage.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	if n := tag.RowsAffected(); n > 0 {
		s.logger.Info("Удалены просроченные состояния списков", zap.Int64("count", n))
	}
	return tag.RowsAffected(), nil
}
