package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradelink/backend/internal/domain/shared"
	"go.uber.org/zap"
)

type recordingHandler struct {
	types    []string
	received []shared.DomainEvent
	fail     bool
	panics   bool
}

func (h *recordingHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	if h.panics {
		panic("boom")
	}
	h.received = append(h.received, evt)
	if h.fail {
		return errors.New("handler failure")
	}
	return nil
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func newEvent(eventType string) shared.DomainEvent {
	evt := shared.NewEventBase(eventType, "Order", uuid.New())
	return &evt
}

func TestInMemoryEventBusRouting(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	placed := &recordingHandler{types: []string{"order.placed"}}
	all := &recordingHandler{}
	bus.Subscribe(placed)
	bus.Subscribe(all)

	require.NoError(t, bus.Publish(context.Background(), newEvent("order.placed"), newEvent("order.status_changed")))

	assert.Len(t, placed.received, 1)
	assert.Len(t, all.received, 2)
}

func TestInMemoryEventBusIsolatesFailures(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	failing := &recordingHandler{types: []string{"order.placed"}, fail: true}
	panicking := &recordingHandler{types: []string{"order.placed"}, panics: true}
	healthy := &recordingHandler{types: []string{"order.placed"}}
	bus.Subscribe(failing)
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	// A failing or panicking handler never surfaces to the publisher
	require.NoError(t, bus.Publish(context.Background(), newEvent("order.placed")))
	assert.Len(t, healthy.received, 1)
}

func TestInMemoryEventBusUnsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	h := &recordingHandler{types: []string{"order.placed"}}
	bus.Subscribe(h)
	bus.Unsubscribe(h)

	require.NoError(t, bus.Publish(context.Background(), newEvent("order.placed")))
	assert.Empty(t, h.received)
}
