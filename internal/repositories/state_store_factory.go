package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"backoffice/internal/listkit"
)

const (
	StateStoreCookie   = "cookie"
	StateStoreRedis    = "redis"
	StateStorePostgres = "postgres"
)

// StateStoreFactory выбирает хранилище состояния по STATE_STORE.
// Для cookie хранилище своё у каждого запроса, для redis/postgres общее.
type StateStoreFactory struct {
	kind   string
	shared listkit.StateStore
}

func NewStateStoreFactory(kind string, shared listkit.StateStore) *StateStoreFactory {
	if kind == "" {
		kind = StateStoreCookie
	}
	return &StateStoreFactory{kind: kind, shared: shared}
}

func (f *StateStoreFactory) Kind() string { return f.kind }

// For возвращает хранилище и ключ состояния страницы scope для пользователя.
func (f *StateStoreFactory) For(c echo.Context, scope, user string) (listkit.StateStore, string) {
	if f.kind == StateStoreCookie || f.shared == nil {
		return NewCookieStateStore(c), CookieName(scope)
	}
	return f.shared, StateKey(scope, user)
}

// ForSession - хранилище для WebSocket-сессии. После апгрейда cookie
// уже не выставить: состояние из cookie читается один раз при подключении,
// дальше живёт в памяти сессии и уходит клиенту сообщением state.
func (f *StateStoreFactory) ForSession(c echo.Context, scope, user string) (listkit.StateStore, string) {
	store, key := f.For(c, scope, user)
	if f.kind != StateStoreCookie && f.shared != nil {
		return store, key
	}
	session := NewSessionStateStore()
	if blob, err := store.Load(c.Request().Context(), key); err == nil {
		session.blobs[key] = blob
	}
	return session, key
}

// SessionStateStore - состояние в памяти одной сессии.
type SessionStateStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewSessionStateStore() *SessionStateStore {
	return &SessionStateStore{blobs: make(map[string][]byte)}
}

func (s *SessionStateStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	blob, ok := s.blobs[key]
	if !ok {
		return nil, listkit.ErrStateNotFound
	}
	return blob, nil
}

func (s *SessionStateStore) Save(_ context.Context, key string, blob []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = append([]byte(nil), blob...)
	return nil
}
