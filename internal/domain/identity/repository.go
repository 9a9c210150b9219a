package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for account persistence
type UserRepository interface {
	// Create creates a new account
	Create(ctx context.Context, user *User) error

	// Update updates an existing account
	Update(ctx context.Context, user *User) error

	// FindByID finds an account by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds an account by email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail checks if an email is already registered
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// FindAll returns accounts matching the filter with a total count
	FindAll(ctx context.Context, filter UserFilter) ([]*User, int64, error)

	// CountByRole counts accounts holding the given role
	CountByRole(ctx context.Context, role Role) (int64, error)
}

// UserFilter contains filter options for querying accounts
type UserFilter struct {
	// Search keyword for business name or email
	Keyword string

	// Filter by role
	Role *Role

	// Filter by active state
	IsActive *bool

	// Pagination
	Page     int
	PageSize int
}

// NewUserFilter creates a new UserFilter with default values
func NewUserFilter() UserFilter {
	return UserFilter{
		Page:     1,
		PageSize: 20,
	}
}

// Offset returns the offset for pagination
func (f UserFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

// Limit returns the limit for pagination
func (f UserFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
