package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListQuery narrows and paginates order listings.
type ListQuery struct {
	Status   Status
	Page     int
	PageSize int
}

// Normalized clamps pagination to sane bounds.
func (q ListQuery) Normalized() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}
	return q
}

// Repository defines the interface for order persistence
type Repository interface {
	// FindByID finds an order by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByOrderNumber finds an order by its human-readable number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)

	// FindByRetailer returns orders placed by a retailer, newest first
	FindByRetailer(ctx context.Context, retailerID uuid.UUID, query ListQuery) ([]Order, int64, error)

	// FindBySeller returns orders received by a seller, newest first
	FindBySeller(ctx context.Context, sellerID uuid.UUID, query ListQuery) ([]Order, int64, error)

	// Save persists a new order
	Save(ctx context.Context, o *Order) error

	// SaveWithLock persists an existing order using optimistic locking.
	// Returns shared.ErrConcurrencyConflict when the stored version does
	// not match, so concurrent transitions against one order serialize and
	// exactly one wins.
	SaveWithLock(ctx context.Context, o *Order) error

	// CountByStatus counts a user's orders in the given status, scoped to
	// the seller or retailer side per the role flag
	CountByStatus(ctx context.Context, userID uuid.UUID, asSeller bool, status Status) (int64, error)

	// CountForUser counts all of a user's orders, cancelled included
	CountForUser(ctx context.Context, userID uuid.UUID, asSeller bool) (int64, error)

	// SumAmountForUser sums TotalAmount over the user's non-cancelled orders
	SumAmountForUser(ctx context.Context, userID uuid.UUID, asSeller bool) (decimal.Decimal, error)

	// CountAll counts every order on the platform, cancelled included
	CountAll(ctx context.Context) (int64, error)

	// SumAmountAll sums TotalAmount over all non-cancelled orders
	SumAmountAll(ctx context.Context) (decimal.Decimal, error)

	// FindRecent returns the latest orders across the platform, newest first
	FindRecent(ctx context.Context, limit int) ([]Order, error)

	// GenerateOrderNumber produces the next unique order number
	GenerateOrderNumber(ctx context.Context) (string, error)
}

// TimelineRepository defines the append-only audit trail persistence.
// No update or delete operations exist on timeline events.
type TimelineRepository interface {
	// Append inserts one timeline event
	Append(ctx context.Context, event *TimelineEvent) error

	// ListForOrder returns all events for an order ascending by occurrence
	// time
	ListForOrder(ctx context.Context, orderID uuid.UUID) ([]TimelineEvent, error)
}
