package order

import (
	"time"

	"github.com/google/uuid"
)

// TimelineEvent is one immutable entry in an order's audit trail. One is
// appended per status change, including creation; entries are never
// updated or deleted.
type TimelineEvent struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Status     Status    `gorm:"type:varchar(20);not null"`
	Message    string    `gorm:"type:varchar(500)"`
	OccurredAt time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (TimelineEvent) TableName() string {
	return "order_timeline_events"
}

// NewTimelineEvent creates a timeline entry stamped with the current time
func NewTimelineEvent(orderID uuid.UUID, status Status, message string) *TimelineEvent {
	return &TimelineEvent{
		ID:         uuid.New(),
		OrderID:    orderID,
		Status:     status,
		Message:    message,
		OccurredAt: time.Now(),
	}
}
