package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"backoffice/internal/listkit"
	"backoffice/internal/repositories"
)

type fakeLookups struct {
	mu    sync.Mutex
	names map[LookupKind]map[int64]string
	calls map[LookupKind]int
}

func newFakeLookups() *fakeLookups {
	return &fakeLookups{
		names: map[LookupKind]map[int64]string{
			LookupStores:        {7: "Paris Opéra"},
			LookupOrderStatuses: {1: "Новый", 4: "Оплачен"},
		},
		calls: map[LookupKind]int{},
	}
}

func (f *fakeLookups) Names(_ context.Context, kind LookupKind) map[int64]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[kind]++
	return f.names[kind]
}

func (f *fakeLookups) Invalidate(context.Context, ...LookupKind) {}

type memoryStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemoryStore() *memoryStore { return &memoryStore{blobs: map[string][]byte{}} }

func (m *memoryStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.blobs[key]
	if !ok {
		return nil, listkit.ErrStateNotFound
	}
	return b, nil
}

func (m *memoryStore) Save(_ context.Context, key string, blob []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = blob
	return nil
}

type testRow struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (r testRow) GetID() int64 { return r.ID }

// fakeBackend - управляемый FetchFunc: запоминает состояния, может падать.
type fakeBackend struct {
	mu     sync.Mutex
	states []listkit.SearchState
	rows   []testRow
	total  int
	err    error
}

func (b *fakeBackend) fetch(_ context.Context, state listkit.SearchState) (listkit.Page[testRow], error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.states = append(b.states, state.Clone())
	if b.err != nil {
		return listkit.Page[testRow]{}, b.err
	}
	return listkit.Page[testRow]{Items: append([]testRow(nil), b.rows...), Total: b.total}, nil
}

func (b *fakeBackend) fail(err error) {
	b.mu.Lock()
	b.err = err
	b.mu.Unlock()
}

func (b *fakeBackend) calls() []listkit.SearchState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]listkit.SearchState(nil), b.states...)
}

var errUpstream = errors.New("upstream недоступен")

func newTestCache(t *testing.T) repositories.CacheRepositoryInterface {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return repositories.NewRedisCacheRepository(client)
}

func testPageDefinition(backend *fakeBackend) ListPageDefinition[testRow] {
	return ListPageDefinition[testRow]{
		Scope:    "orders",
		Defaults: defaults(25, "created_at", listkit.SortDesc),
		Reducer:  listkit.Reducer{ResetPageOnFilter: true},
		Fields: []FilterField{
			{Key: "search", Label: "Поиск", Kind: FilterString},
			{Key: "statusId", Label: "Статус", Kind: FilterIntList, Lookup: LookupOrderStatuses},
			{Key: "storeId", Label: "Магазин", Kind: FilterInt, Lookup: LookupStores},
			{Key: "email", Label: "Email", Kind: FilterString},
			{Key: "dateFrom", Label: "Дата с", Kind: FilterDate},
		},
		Sortable: []string{"created_at", "total"},
		Fetch:    backend.fetch,
	}
}

func newTestListPage(t *testing.T, backend *fakeBackend) (*ListPageService[testRow], *fakeLookups) {
	t.Helper()
	cache := newTestCache(t)
	lookups := newFakeLookups()
	svc := NewListPageService(
		testPageDefinition(backend),
		lookups,
		repositories.NewSelectionRepository(cache, time.Hour),
		repositories.NewPageCacheRepository(cache, time.Hour),
		listkit.DefaultStateTTL,
		zap.NewNop(),
	)
	return svc, lookups
}
