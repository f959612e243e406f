package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"backoffice/internal/listkit"
)

type SelectionRepositoryInterface interface {
	Load(ctx context.Context, scope, user string) (*listkit.Selection[int64], error)
	Save(ctx context.Context, scope, user string, sel *listkit.Selection[int64]) error
}

// SelectionRepository держит выбор строк таблицы в Redis между запросами.
type SelectionRepository struct {
	cache CacheRepositoryInterface
	ttl   time.Duration
}

func NewSelectionRepository(cache CacheRepositoryInterface, ttl time.Duration) SelectionRepositoryInterface {
	return &SelectionRepository{cache: cache, ttl: ttl}
}

func selectionKey(scope, user string) string {
	return fmt.Sprintf("selection:%s:%s", scope, user)
}

// Load возвращает пустой выбор, если ничего не сохранено.
func (r *SelectionRepository) Load(ctx context.Context, scope, user string) (*listkit.Selection[int64], error) {
	raw, err := r.cache.Get(ctx, selectionKey(scope, user))
	if errors.Is(err, ErrCacheMiss) {
		return listkit.NewSelection[int64](), nil
	}
	if err != nil {
		return nil, err
	}

	var snap listkit.SelectionSnapshot[int64]
	if err := json.Unmarshal(raw, &snap); err != nil {
		return listkit.NewSelection[int64](), nil
	}
	return listkit.RestoreSelection(snap), nil
}

func (r *SelectionRepository) Save(ctx context.Context, scope, user string, sel *listkit.Selection[int64]) error {
	raw, err := json.Marshal(sel.Snapshot())
	if err != nil {
		return err
	}
	return r.cache.Set(ctx, selectionKey(scope, user), raw, r.ttl)
}
