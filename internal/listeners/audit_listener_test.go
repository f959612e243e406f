package listeners

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"backoffice/internal/entities"
	"backoffice/internal/events"
	"backoffice/pkg/eventbus"
	"backoffice/pkg/types"
)

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []entities.AuditEntry
}

func (f *fakeAuditRepo) Create(_ context.Context, e *entities.AuditEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeAuditRepo) GetAll(context.Context, types.Filter) ([]entities.AuditEntry, uint64, error) {
	return f.entries, uint64(len(f.entries)), nil
}

func TestAuditListener_WritesEvents(t *testing.T) {
	repo := &fakeAuditRepo{}
	bus := eventbus.New(zap.NewNop())
	NewAuditListener(repo, zap.NewNop()).Register(bus)

	id := int64(9)
	bus.Publish(context.Background(), events.MutationEvent{UserKey: "1", Resource: "countries", Action: "delete", ResourceID: &id})
	bus.Wait()
	bus.Publish(context.Background(), events.ExportEvent{UserKey: "1", Resource: "orders", Format: "csv", Rows: 3, Selected: 3})
	bus.Wait()

	require.Len(t, repo.entries, 2)
	assert.Equal(t, "delete", repo.entries[0].Action)
	assert.Equal(t, &id, repo.entries[0].ResourceID)

	assert.Equal(t, "export", repo.entries[1].Action)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(repo.entries[1].Payload, &payload))
	assert.Equal(t, "csv", payload["format"])
	assert.Equal(t, float64(3), payload["rows"])
}
