package repositories

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss - ключа нет в кеше.
var ErrCacheMiss = errors.New("ключ не найден в кеше")

// CacheRepositoryInterface - общее хранилище JSON-снимков: выбор, последние страницы, справочники.
type CacheRepositoryInterface interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) error
	// DelPrefix удаляет все ключи с префиксом и возвращает их число.
	DelPrefix(ctx context.Context, prefix string) (int, error)
}
