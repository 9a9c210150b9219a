package persistence

import (
	"context"

	"gorm.io/gorm"

	orderapp "github.com/tradelink/backend/internal/application/order"
	"github.com/tradelink/backend/internal/domain/catalog"
	"github.com/tradelink/backend/internal/domain/order"
)

// GormUnitOfWork implements the order application's UnitOfWork on a
// GORM transaction.
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GormUnitOfWork
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// WithinTransaction runs fn with repositories bound to one transaction
func (u *GormUnitOfWork) WithinTransaction(ctx context.Context, fn func(orders order.Repository, products catalog.ProductRepository, timeline order.TimelineRepository) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(
			NewGormOrderRepository(tx),
			NewGormProductRepository(tx),
			NewGormTimelineRepository(tx),
		)
	})
}

var _ orderapp.UnitOfWork = (*GormUnitOfWork)(nil)
