package eventbus

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type testEvent struct{ name string }

func (e testEvent) Name() string { return e.name }

func TestBus_PublishDeliversToSubscribers(t *testing.T) {
	bus := New(zap.NewNop())
	var calls atomic.Int32

	bus.Subscribe("list.mutation", func(ctx context.Context, event Event) error {
		calls.Add(1)
		return nil
	})
	bus.Subscribe("list.mutation", func(ctx context.Context, event Event) error {
		calls.Add(1)
		return errors.New("сломался")
	})
	bus.Subscribe("list.export", func(ctx context.Context, event Event) error {
		t.Error("чужое событие")
		return nil
	})

	bus.Publish(context.Background(), testEvent{name: "list.mutation"})
	bus.Wait()

	assert.Equal(t, int32(2), calls.Load())
}

func TestBus_NoSubscribers(t *testing.T) {
	bus := New(zap.NewNop())
	bus.Publish(context.Background(), testEvent{name: "nobody"})
	bus.Wait()
}
