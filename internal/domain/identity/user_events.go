package identity

import (
	"github.com/tradelink/backend/internal/domain/shared"
)

// Event types for the identity context
const (
	EventTypeUserRegistered = "identity.user.registered"
)

// UserRegisteredEvent is emitted when a new account is created
type UserRegisteredEvent struct {
	shared.EventBase
	BusinessName string `json:"business_name"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(user *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		EventBase:    shared.NewEventBase(EventTypeUserRegistered, "User", user.ID),
		BusinessName: user.BusinessName,
		Email:        user.Email,
		Role:         user.Role,
	}
}
