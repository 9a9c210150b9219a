package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/tradelink/backend/internal/domain/order"
	"gorm.io/gorm"
)

// GormTimelineRepository implements order.TimelineRepository using GORM.
// The table is append-only; no update or delete path exists.
type GormTimelineRepository struct {
	db *gorm.DB
}

// NewGormTimelineRepository creates a new GormTimelineRepository
func NewGormTimelineRepository(db *gorm.DB) *GormTimelineRepository {
	return &GormTimelineRepository{db: db}
}

// Append inserts one timeline event
func (r *GormTimelineRepository) Append(ctx context.Context, event *order.TimelineEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// ListForOrder returns all events for an order ascending by occurrence time
func (r *GormTimelineRepository) ListForOrder(ctx context.Context, orderID uuid.UUID) ([]order.TimelineEvent, error) {
	var events []order.TimelineEvent
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("occurred_at ASC").
		Find(&events).Error
	return events, err
}
