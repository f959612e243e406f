package repositories

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/entities"
	"backoffice/internal/listkit"
	"backoffice/pkg/database/postgresql"
	"backoffice/pkg/types"
)

// testPool поднимается только при заданном TEST_DATABASE_URL.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL не задан, интеграционные тесты пропущены")
	}
	pool, err := postgresql.Connect(context.Background(), dsn)
	require.NoError(t, err)
	require.NoError(t, postgresql.Migrate(dsn))
	t.Cleanup(pool.Close)

	_, err = pool.Exec(context.Background(), `TRUNCATE TABLE search_states, audit_log RESTART IDENTITY`)
	require.NoError(t, err)
	return pool
}

func TestPostgresStateStore_Integration(t *testing.T) {
	pool := testPool(t)
	store := NewPostgresStateStore(pool, zapNop())
	ctx := context.Background()

	_, err := store.Load(ctx, "search_state:orders:1")
	assert.ErrorIs(t, err, listkit.ErrStateNotFound)

	require.NoError(t, store.Save(ctx, "search_state:orders:1", []byte(`{"page":1}`), time.Hour))
	require.NoError(t, store.Save(ctx, "search_state:orders:1", []byte(`{"page":2}`), time.Hour))
	blob, err := store.Load(ctx, "search_state:orders:1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"page":2}`, string(blob))

	require.NoError(t, store.Save(ctx, "search_state:orders:2", []byte(`{}`), -time.Minute))
	_, err = store.Load(ctx, "search_state:orders:2")
	assert.ErrorIs(t, err, listkit.ErrStateNotFound)

	n, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestAuditRepository_Integration(t *testing.T) {
	pool := testPool(t)
	repo := NewAuditRepository(pool, zapNop())
	ctx := context.Background()

	id := int64(5)
	for _, e := range []entities.AuditEntry{
		{UserKey: "1", Action: "create", Resource: "countries", ResourceID: &id, Payload: []byte(`{"name":"France"}`)},
		{UserKey: "1", Action: "delete", Resource: "countries", ResourceID: &id},
		{UserKey: "2", Action: "export", Resource: "orders", RequestID: "req-1"},
	} {
		entry := e
		require.NoError(t, repo.Create(ctx, &entry))
		assert.NotZero(t, entry.ID)
	}

	entries, total, err := repo.GetAll(ctx, types.Filter{
		Filter:         map[string]interface{}{"resource": "countries"},
		Limit:          10,
		WithPagination: true,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	require.Len(t, entries, 2)
	assert.Equal(t, "delete", entries[0].Action)

	entries, total, err = repo.GetAll(ctx, types.Filter{Search: "export"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	assert.Equal(t, "req-1", entries[0].RequestID)
}
