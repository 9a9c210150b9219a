package report

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tradelink/backend/internal/domain/order"
)

// StatusCounts breaks order totals down by lifecycle status
type StatusCounts struct {
	Ordered        int64 `json:"ordered"`
	Shipped        int64 `json:"shipped"`
	OutForDelivery int64 `json:"out_for_delivery"`
	Delivered      int64 `json:"delivered"`
	Cancelled      int64 `json:"cancelled"`
}

// RetailerStats summarizes a retailer's purchasing activity. Pending
// covers every order that is placed but not yet delivered or cancelled.
// TotalSpent excludes cancelled orders.
type RetailerStats struct {
	TotalOrders   int64           `json:"total_orders"`
	PendingOrders int64           `json:"pending_orders"`
	ByStatus      StatusCounts    `json:"by_status"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
}

// SellerStats summarizes a seller's sales activity. TotalSales excludes
// cancelled orders.
type SellerStats struct {
	TotalOrders   int64           `json:"total_orders"`
	PendingOrders int64           `json:"pending_orders"`
	ByStatus      StatusCounts    `json:"by_status"`
	TotalSales    decimal.Decimal `json:"total_sales"`
}

// StatsService aggregates order statistics per account
type StatsService struct {
	orders order.Repository
}

// NewStatsService creates a new StatsService
func NewStatsService(orders order.Repository) *StatsService {
	return &StatsService{orders: orders}
}

// ForRetailer computes purchasing statistics for a retailer
func (s *StatsService) ForRetailer(ctx context.Context, retailerID uuid.UUID) (*RetailerStats, error) {
	total, counts, sum, err := s.collect(ctx, retailerID, false)
	if err != nil {
		return nil, err
	}
	return &RetailerStats{
		TotalOrders:   total,
		PendingOrders: pending(counts),
		ByStatus:      counts,
		TotalSpent:    sum,
	}, nil
}

// ForSeller computes sales statistics for a seller
func (s *StatsService) ForSeller(ctx context.Context, sellerID uuid.UUID) (*SellerStats, error) {
	total, counts, sum, err := s.collect(ctx, sellerID, true)
	if err != nil {
		return nil, err
	}
	return &SellerStats{
		TotalOrders:   total,
		PendingOrders: pending(counts),
		ByStatus:      counts,
		TotalSales:    sum,
	}, nil
}

func (s *StatsService) collect(ctx context.Context, userID uuid.UUID, asSeller bool) (int64, StatusCounts, decimal.Decimal, error) {
	var counts StatusCounts

	total, err := s.orders.CountForUser(ctx, userID, asSeller)
	if err != nil {
		return 0, counts, decimal.Zero, err
	}

	for status, dest := range map[order.Status]*int64{
		order.StatusOrdered:        &counts.Ordered,
		order.StatusShipped:        &counts.Shipped,
		order.StatusOutForDelivery: &counts.OutForDelivery,
		order.StatusDelivered:      &counts.Delivered,
		order.StatusCancelled:      &counts.Cancelled,
	} {
		n, err := s.orders.CountByStatus(ctx, userID, asSeller, status)
		if err != nil {
			return 0, counts, decimal.Zero, err
		}
		*dest = n
	}

	sum, err := s.orders.SumAmountForUser(ctx, userID, asSeller)
	if err != nil {
		return 0, counts, decimal.Zero, err
	}

	return total, counts, sum, nil
}

func pending(c StatusCounts) int64 {
	return c.Ordered + c.Shipped + c.OutForDelivery
}
