package order

import (
	"context"

	"github.com/tradelink/backend/internal/domain/catalog"
	"github.com/tradelink/backend/internal/domain/order"
)

// UnitOfWork runs a function against repositories bound to one database
// transaction. Either every write inside fn commits or none do, which
// keeps stock decrements, order inserts, and timeline appends atomic.
type UnitOfWork interface {
	WithinTransaction(ctx context.Context, fn func(orders order.Repository, products catalog.ProductRepository, timeline order.TimelineRepository) error) error
}
