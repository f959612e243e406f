package repositories

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"backoffice/internal/listkit"
)

// StateKey - ключ состояния списка пользователя в общем хранилище.
func StateKey(scope, user string) string {
	return fmt.Sprintf("search_state:%s:%s", scope, user)
}

// CookieName - имя cookie состояния списка, cookie и так принадлежит одному браузеру.
func CookieName(scope string) string {
	return "search_" + scope
}

// RedisStateStore хранит состояние списков в Redis.
type RedisStateStore struct {
	cache CacheRepositoryInterface
}

func NewRedisStateStore(cache CacheRepositoryInterface) *RedisStateStore {
	return &RedisStateStore{cache: cache}
}

func (s *RedisStateStore) Load(ctx context.Context, key string) ([]byte, error) {
	val, err := s.cache.Get(ctx, key)
	if errors.Is(err, ErrCacheMiss) {
		return nil, listkit.ErrStateNotFound
	}
	return val, err
}

func (s *RedisStateStore) Save(ctx context.Context, key string, blob []byte, ttl time.Duration) error {
	return s.cache.Set(ctx, key, blob, ttl)
}

// CookieStateStore хранит состояние в cookie ответа. Живёт один запрос.
// Ключ здесь - имя cookie.
type CookieStateStore struct {
	c      echo.Context
	secure bool
}

func NewCookieStateStore(c echo.Context) *CookieStateStore {
	return &CookieStateStore{c: c, secure: c.IsTLS()}
}

func (s *CookieStateStore) Load(_ context.Context, key string) ([]byte, error) {
	cookie, err := s.c.Cookie(key)
	if err != nil || cookie.Value == "" {
		return nil, listkit.ErrStateNotFound
	}
	blob, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil, fmt.Errorf("cookie %s: %w", key, err)
	}
	return blob, nil
}

func (s *CookieStateStore) Save(_ context.Context, key string, blob []byte, ttl time.Duration) error {
	s.c.SetCookie(&http.Cookie{
		Name:     key,
		Value:    base64.RawURLEncoding.EncodeToString(blob),
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
