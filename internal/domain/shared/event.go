package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DomainEvent is a fact recorded by an aggregate, published to
// interested handlers after the producing operation commits.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	AggregateID() uuid.UUID
	AggregateType() string
}

// EventBase supplies the DomainEvent plumbing so concrete events only
// declare their payload fields.
type EventBase struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	AggID     uuid.UUID `json:"aggregate_id"`
	AggType   string    `json:"aggregate_type"`
}

// NewEventBase stamps a new event with an ID and the current time.
func NewEventBase(eventType, aggType string, aggID uuid.UUID) EventBase {
	return EventBase{
		ID:        uuid.New(),
		Type:      eventType,
		Timestamp: time.Now(),
		AggID:     aggID,
		AggType:   aggType,
	}
}

func (e *EventBase) EventID() uuid.UUID     { return e.ID }
func (e *EventBase) EventType() string      { return e.Type }
func (e *EventBase) OccurredAt() time.Time  { return e.Timestamp }
func (e *EventBase) AggregateID() uuid.UUID { return e.AggID }

// AggregateType names the kind of aggregate that produced the event.
func (e *EventBase) AggregateType() string { return e.AggType }

// EventHandler consumes published domain events. EventTypes narrows
// the subscription; an empty slice means every event.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	EventTypes() []string
}

// EventPublisher hands events to their subscribed handlers. Handler
// failures must not surface to the publishing operation.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber registers and removes handlers.
type EventSubscriber interface {
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// EventBus is both sides of the in-process event pipeline.
type EventBus interface {
	EventPublisher
	EventSubscriber
}
