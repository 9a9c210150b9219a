package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity carries the identity and audit timestamps every persistent
// domain object shares.
type Entity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewEntity assigns a fresh UUID and stamps both timestamps.
func NewEntity() Entity {
	now := time.Now()
	return Entity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AggregateRoot extends Entity with an optimistic-lock version and a
// buffer of domain events recorded during state changes. The buffer is
// drained by the application layer after the change commits.
type AggregateRoot struct {
	Entity
	Version int           `gorm:"not null;default:1"`
	events  []DomainEvent `gorm:"-"`
}

// NewAggregateRoot creates an aggregate root at version 1.
func NewAggregateRoot() AggregateRoot {
	return AggregateRoot{
		Entity:  NewEntity(),
		Version: 1,
	}
}

// Record buffers a domain event for publication after commit.
func (a *AggregateRoot) Record(event DomainEvent) {
	a.events = append(a.events, event)
}

// Events returns the buffered domain events.
func (a *AggregateRoot) Events() []DomainEvent {
	return a.events
}

// ClearEvents drops the buffered events, typically right after they
// have been handed to the publisher.
func (a *AggregateRoot) ClearEvents() {
	a.events = nil
}

// IncrementVersion bumps the optimistic-lock version. Repositories
// compare the previous value in their UPDATE predicates.
func (a *AggregateRoot) IncrementVersion() {
	a.Version++
}
