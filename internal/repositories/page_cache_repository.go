package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

type PageCacheRepositoryInterface interface {
	Save(ctx context.Context, scope, user string, page any) error
	Load(ctx context.Context, scope, user string, out any) error
}

// PageCacheRepository - последняя успешно загруженная страница списка.
// Отдаётся вместо свежей, если API не ответил.
type PageCacheRepository struct {
	cache CacheRepositoryInterface
	ttl   time.Duration
}

func NewPageCacheRepository(cache CacheRepositoryInterface, ttl time.Duration) PageCacheRepositoryInterface {
	return &PageCacheRepository{cache: cache, ttl: ttl}
}

func PageKey(scope, user string) string {
	return PagePrefix(scope) + user
}

// PagePrefix - общий префикс последних страниц всех пользователей списка.
func PagePrefix(scope string) string {
	return fmt.Sprintf("last_page:%s:", scope)
}

func (r *PageCacheRepository) Save(ctx context.Context, scope, user string, page any) error {
	raw, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return r.cache.Set(ctx, PageKey(scope, user), raw, r.ttl)
}

// Load возвращает ErrCacheMiss, если страницы нет.
func (r *PageCacheRepository) Load(ctx context.Context, scope, user string, out any) error {
	raw, err := r.cache.Get(ctx, PageKey(scope, user))
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
