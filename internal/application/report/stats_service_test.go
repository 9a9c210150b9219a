package report

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradelink/backend/internal/domain/order"
	"github.com/tradelink/backend/internal/domain/shared"
)

// statOrder is the slice of order state the stats service reads
type statOrder struct {
	retailerID uuid.UUID
	sellerID   uuid.UUID
	status     order.Status
	amount     decimal.Decimal
}

type fakeOrderRepo struct {
	orders []statOrder
}

func (r *fakeOrderRepo) FindByID(context.Context, uuid.UUID) (*order.Order, error) {
	return nil, shared.ErrNotFound
}
func (r *fakeOrderRepo) FindByOrderNumber(context.Context, string) (*order.Order, error) {
	return nil, shared.ErrNotFound
}
func (r *fakeOrderRepo) FindByRetailer(context.Context, uuid.UUID, order.ListQuery) ([]order.Order, int64, error) {
	return nil, 0, nil
}
func (r *fakeOrderRepo) FindBySeller(context.Context, uuid.UUID, order.ListQuery) ([]order.Order, int64, error) {
	return nil, 0, nil
}
func (r *fakeOrderRepo) Save(context.Context, *order.Order) error         { return nil }
func (r *fakeOrderRepo) SaveWithLock(context.Context, *order.Order) error { return nil }
func (r *fakeOrderRepo) GenerateOrderNumber(context.Context) (string, error) {
	return "", nil
}

func (r *fakeOrderRepo) CountByStatus(_ context.Context, userID uuid.UUID, asSeller bool, status order.Status) (int64, error) {
	var n int64
	for _, o := range r.orders {
		if o.matches(userID, asSeller) && o.status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeOrderRepo) CountForUser(_ context.Context, userID uuid.UUID, asSeller bool) (int64, error) {
	var n int64
	for _, o := range r.orders {
		if o.matches(userID, asSeller) {
			n++
		}
	}
	return n, nil
}

func (r *fakeOrderRepo) SumAmountForUser(_ context.Context, userID uuid.UUID, asSeller bool) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, o := range r.orders {
		if o.matches(userID, asSeller) && o.status != order.StatusCancelled {
			sum = sum.Add(o.amount)
		}
	}
	return sum, nil
}

func (r *fakeOrderRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *fakeOrderRepo) SumAmountAll(_ context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, o := range r.orders {
		if o.status != order.StatusCancelled {
			sum = sum.Add(o.amount)
		}
	}
	return sum, nil
}

func (r *fakeOrderRepo) FindRecent(context.Context, int) ([]order.Order, error) {
	return nil, nil
}

func (o statOrder) matches(userID uuid.UUID, asSeller bool) bool {
	if asSeller {
		return o.sellerID == userID
	}
	return o.retailerID == userID
}

func TestStatsService(t *testing.T) {
	retailerID := uuid.New()
	sellerID := uuid.New()
	otherRetailer := uuid.New()

	repo := &fakeOrderRepo{orders: []statOrder{
		{retailerID, sellerID, order.StatusOrdered, decimal.NewFromInt(500)},
		{retailerID, sellerID, order.StatusShipped, decimal.NewFromInt(300)},
		{retailerID, sellerID, order.StatusOutForDelivery, decimal.NewFromInt(200)},
		{retailerID, sellerID, order.StatusDelivered, decimal.NewFromInt(1000)},
		// Cancelled orders count toward totals but not money
		{retailerID, sellerID, order.StatusCancelled, decimal.NewFromInt(9999)},
		// Another retailer's order only shows up on the seller side
		{otherRetailer, sellerID, order.StatusDelivered, decimal.NewFromInt(400)},
	}}

	svc := NewStatsService(repo)
	ctx := context.Background()

	t.Run("retailer", func(t *testing.T) {
		stats, err := svc.ForRetailer(ctx, retailerID)
		require.NoError(t, err)

		assert.Equal(t, int64(5), stats.TotalOrders)
		assert.Equal(t, int64(3), stats.PendingOrders)
		assert.Equal(t, int64(1), stats.ByStatus.Cancelled)
		assert.True(t, decimal.NewFromInt(2000).Equal(stats.TotalSpent),
			"cancelled amounts must be excluded, got %s", stats.TotalSpent)
	})

	t.Run("seller", func(t *testing.T) {
		stats, err := svc.ForSeller(ctx, sellerID)
		require.NoError(t, err)

		assert.Equal(t, int64(6), stats.TotalOrders)
		assert.Equal(t, int64(3), stats.PendingOrders)
		assert.Equal(t, int64(2), stats.ByStatus.Delivered)
		assert.True(t, decimal.NewFromInt(2400).Equal(stats.TotalSales))
	})

	t.Run("no orders", func(t *testing.T) {
		stats, err := svc.ForRetailer(ctx, uuid.New())
		require.NoError(t, err)
		assert.Zero(t, stats.TotalOrders)
		assert.True(t, stats.TotalSpent.IsZero())
	})
}
