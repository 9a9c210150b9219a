package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradelink/backend/internal/domain/order"
	"github.com/tradelink/backend/internal/domain/shared"
	"gorm.io/gorm"
)

func seedOrder(t *testing.T, db *gorm.DB, repo *GormOrderRepository, number string, retailerID, sellerID uuid.UUID, qty int, price int64) *order.Order {
	t.Helper()
	o, err := order.NewOrder(number, retailerID, sellerID, uuid.New(),
		"Bulk Rice 25kg", "bag", qty, decimal.NewFromInt(price), "")
	require.NoError(t, err)
	o.ClearEvents()
	require.NoError(t, repo.Save(context.Background(), o))
	return o
}

func TestGormOrderRepositorySaveAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	o := seedOrder(t, db, repo, "ORD-2026-00001", uuid.New(), uuid.New(), 10, 100)

	found, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.OrderNumber, found.OrderNumber)
	assert.Equal(t, order.StatusOrdered, found.Status)
	assert.True(t, found.TotalAmount.Equal(decimal.NewFromInt(1000)))

	byNumber, err := repo.FindByOrderNumber(ctx, "ORD-2026-00001")
	require.NoError(t, err)
	assert.Equal(t, o.ID, byNumber.ID)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormOrderRepositorySaveWithLock(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	o := seedOrder(t, db, repo, "ORD-2026-00001", uuid.New(), uuid.New(), 10, 100)

	t.Run("updates status and bumps version", func(t *testing.T) {
		loaded, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)

		require.NoError(t, loaded.TransitionTo(order.StatusShipped))
		require.NoError(t, repo.SaveWithLock(ctx, loaded))

		reloaded, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusShipped, reloaded.Status)
		assert.Equal(t, 2, reloaded.Version)
		assert.NotNil(t, reloaded.ShippedAt)
	})

	t.Run("stale version loses with concurrency conflict", func(t *testing.T) {
		// Two actors load version 2; the first commit wins
		first, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		second, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)

		require.NoError(t, first.TransitionTo(order.StatusOutForDelivery))
		require.NoError(t, repo.SaveWithLock(ctx, first))

		require.NoError(t, second.TransitionTo(order.StatusCancelled))
		err = repo.SaveWithLock(ctx, second)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

		reloaded, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusOutForDelivery, reloaded.Status)
	})
}

func TestGormOrderRepositoryGenerateOrderNumber(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	first, err := repo.GenerateOrderNumber(ctx)
	require.NoError(t, err)
	assert.Regexp(t, `^ORD-\d{4}-00001$`, first)

	seedOrder(t, db, repo, first, uuid.New(), uuid.New(), 5, 10)

	second, err := repo.GenerateOrderNumber(ctx)
	require.NoError(t, err)
	assert.Regexp(t, `^ORD-\d{4}-00002$`, second)
	assert.NotEqual(t, first, second)
}

func TestGormOrderRepositoryAggregates(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	retailerID := uuid.New()
	sellerID := uuid.New()

	// 3 orders for the pair: one delivered, one cancelled, one open
	delivered := seedOrder(t, db, repo, "ORD-2026-00001", retailerID, sellerID, 10, 100) // 1000
	cancelled := seedOrder(t, db, repo, "ORD-2026-00002", retailerID, sellerID, 5, 100)  // 500, excluded from sums
	seedOrder(t, db, repo, "ORD-2026-00003", retailerID, sellerID, 2, 250)               // 500

	require.NoError(t, delivered.TransitionTo(order.StatusShipped))
	require.NoError(t, repo.SaveWithLock(ctx, delivered))
	require.NoError(t, delivered.TransitionTo(order.StatusOutForDelivery))
	require.NoError(t, repo.SaveWithLock(ctx, delivered))
	require.NoError(t, delivered.TransitionTo(order.StatusDelivered))
	require.NoError(t, repo.SaveWithLock(ctx, delivered))

	require.NoError(t, cancelled.TransitionTo(order.StatusCancelled))
	require.NoError(t, repo.SaveWithLock(ctx, cancelled))

	// Unrelated order must not leak into either side
	seedOrder(t, db, repo, "ORD-2026-00004", uuid.New(), uuid.New(), 3, 10)

	total, err := repo.CountForUser(ctx, retailerID, false)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	deliveredCount, err := repo.CountByStatus(ctx, sellerID, true, order.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deliveredCount)

	orderedCount, err := repo.CountByStatus(ctx, sellerID, true, order.StatusOrdered)
	require.NoError(t, err)
	assert.Equal(t, int64(1), orderedCount)

	// Cancelled excluded: 1000 + 500
	spent, err := repo.SumAmountForUser(ctx, retailerID, false)
	require.NoError(t, err)
	assert.True(t, spent.Equal(decimal.NewFromInt(1500)), "got %s", spent)

	sales, err := repo.SumAmountForUser(ctx, sellerID, true)
	require.NoError(t, err)
	assert.True(t, sales.Equal(decimal.NewFromInt(1500)))

	// No orders yet: sum is zero, not an error
	empty, err := repo.SumAmountForUser(ctx, uuid.New(), false)
	require.NoError(t, err)
	assert.True(t, empty.IsZero())
}

func TestGormOrderRepositoryPlatformAggregates(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	// Empty table: zero counts, zero sum, empty feed
	count, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	sum, err := repo.SumAmountAll(ctx)
	require.NoError(t, err)
	assert.True(t, sum.IsZero())

	seedOrder(t, db, repo, "ORD-2026-00001", uuid.New(), uuid.New(), 10, 100) // 1000
	seedOrder(t, db, repo, "ORD-2026-00002", uuid.New(), uuid.New(), 2, 250)  // 500
	cancelled := seedOrder(t, db, repo, "ORD-2026-00003", uuid.New(), uuid.New(), 5, 100)
	require.NoError(t, cancelled.TransitionTo(order.StatusCancelled))
	require.NoError(t, repo.SaveWithLock(ctx, cancelled))

	count, err = repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	// Cancelled orders count toward totals but not toward sales
	sum, err = repo.SumAmountAll(ctx)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(1500)), "got %s", sum)

	recent, err := repo.FindRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "ORD-2026-00003", recent[0].OrderNumber)
	assert.Equal(t, "ORD-2026-00002", recent[1].OrderNumber)
}

func TestGormOrderRepositoryListings(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	retailerID := uuid.New()
	sellerID := uuid.New()
	for i := 1; i <= 3; i++ {
		seedOrder(t, db, repo, "ORD-2026-0000"+string(rune('0'+i)), retailerID, sellerID, 5, 10)
	}

	orders, total, err := repo.FindByRetailer(ctx, retailerID, order.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, orders, 3)

	orders, total, err = repo.FindBySeller(ctx, sellerID, order.ListQuery{Status: order.StatusOrdered})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, orders, 3)

	_, total, err = repo.FindBySeller(ctx, sellerID, order.ListQuery{Status: order.StatusShipped})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}
