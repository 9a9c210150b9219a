package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// Create creates a new product listing
	Create(ctx context.Context, product *Product) error

	// Update updates an existing product listing
	Update(ctx context.Context, product *Product) error

	// FindByID finds a product by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySeller returns all products listed by a seller
	FindBySeller(ctx context.Context, sellerID uuid.UUID) ([]*Product, error)

	// FindActive returns active listings with pagination
	FindActive(ctx context.Context, page, pageSize int) ([]*Product, int64, error)

	// Count counts every listing, inactive included
	Count(ctx context.Context) (int64, error)

	// CountActive counts orderable listings
	CountActive(ctx context.Context) (int64, error)

	// DecrementStock atomically decrements stock if and only if at least
	// qty units are available. Returns shared.ErrInsufficientStock when the
	// guard fails so concurrent placements can never oversell.
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) error

	// RestoreStock adds qty units back, used when an order is cancelled
	RestoreStock(ctx context.Context, id uuid.UUID, qty int) error
}
