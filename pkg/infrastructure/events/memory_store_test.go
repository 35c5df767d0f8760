package events

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vsinha/liquorstore/pkg/domain/entities"
)

func placedOrder(id string) *entities.Order {
	return &entities.Order{
		ID:        id,
		UserID:    "u1",
		Lines:     []entities.CartLine{{ProductID: "p1", UnitPrice: decimal.NewFromInt(10), Quantity: 2}},
		Total:     decimal.RequireFromString("21.60"),
		CreatedAt: time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC),
	}
}

func TestInMemoryEventStore_AppendAndRead(t *testing.T) {
	store := NewInMemoryEventStore(nil)

	require.NoError(t, store.AppendEvent(OrderStreamID("o1"), NewOrderPlaced(placedOrder("o1"))))
	require.NoError(t, store.AppendEvent(OrderStreamID("o1"), NewOrderStatusChanged("o1", entities.Processing, entities.Shipped, time.Now())))
	require.NoError(t, store.AppendEvent(OrderStreamID("o2"), NewOrderPlaced(placedOrder("o2"))))

	stream, err := store.ReadEvents("order-o1", 0)
	require.NoError(t, err)
	require.Len(t, stream, 2)
	assert.Equal(t, 1, stream[0].Version())
	assert.Equal(t, 2, stream[1].Version())
	assert.Equal(t, OrderStatusChangedEvent, stream[1].Type())
	assert.NotEmpty(t, stream[0].ID())

	placed, ok := stream[0].Data().(OrderPlaced)
	require.True(t, ok)
	assert.Equal(t, 2, placed.TotalItems)
	assert.True(t, placed.Total.Equal(decimal.RequireFromString("21.60")))

	fromTwo, err := store.ReadEvents("order-o1", 2)
	require.NoError(t, err)
	assert.Len(t, fromTwo, 1)

	all, err := store.ReadAllEvents(1)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	missing, err := store.ReadEvents("order-none", 1)
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestInMemoryEventStore_NotifiesSubscribers(t *testing.T) {
	store := NewInMemoryEventStore(nil)
	received := make(chan Event, 1)
	handler := &HandlerFunc{
		Types: []string{OrderPlacedEvent},
		Fn: func(e Event) error {
			received <- e
			return nil
		},
	}
	require.NoError(t, store.Subscribe([]string{OrderPlacedEvent}, handler))

	require.NoError(t, store.AppendEvent(OrderStreamID("o1"), NewOrderPlaced(placedOrder("o1"))))

	select {
	case e := <-received:
		assert.Equal(t, "order-o1", e.StreamID())
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber was not notified")
	}

	require.NoError(t, store.Unsubscribe(handler))
}

func TestInMemoryEventStore_LogsHandlerFailure(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	store := NewInMemoryEventStore(zap.New(core))
	handler := &HandlerFunc{
		Types: []string{OrderPlacedEvent},
		Fn:    func(Event) error { return errors.New("mailer down") },
	}
	require.NoError(t, store.Subscribe([]string{OrderPlacedEvent}, handler))

	require.NoError(t, store.AppendEvent(OrderStreamID("o1"), NewOrderPlaced(placedOrder("o1"))))

	assert.Eventually(t, func() bool {
		return logs.FilterMessage("event handler failed").Len() == 1
	}, 2*time.Second, 10*time.Millisecond)
}
