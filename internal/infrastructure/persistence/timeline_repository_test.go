package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradelink/backend/internal/domain/order"
)

func TestGormTimelineRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormTimelineRepository(db)
	ctx := context.Background()

	orderID := uuid.New()

	// Insert out of order to prove ListForOrder sorts by occurrence time
	shipped := order.NewTimelineEvent(orderID, order.StatusShipped, "Order has been Shipped")
	shipped.OccurredAt = time.Now().Add(time.Minute)
	placed := order.NewTimelineEvent(orderID, order.StatusOrdered, "Order placed")

	require.NoError(t, repo.Append(ctx, shipped))
	require.NoError(t, repo.Append(ctx, placed))
	require.NoError(t, repo.Append(ctx, order.NewTimelineEvent(uuid.New(), order.StatusOrdered, "other order")))

	events, err := repo.ListForOrder(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, order.StatusOrdered, events[0].Status)
	assert.Equal(t, order.StatusShipped, events[1].Status)
	assert.True(t, events[0].OccurredAt.Before(events[1].OccurredAt))
}
