package identity

import (
	"time"

	"github.com/tradelink/backend/internal/domain/identity"
	"github.com/tradelink/backend/internal/infrastructure/auth"
)

// RegisterInput contains the data needed to create an account
type RegisterInput struct {
	BusinessName string `json:"business_name" binding:"required,max=200"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	Phone        string `json:"phone" binding:"omitempty,phone"`
	Address      string `json:"address"`
	Role         string `json:"role" binding:"required,oneof=seller retailer"`
}

// LoginInput contains the credentials for authentication
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResult contains tokens and user info after successful login
type LoginResult struct {
	User   UserInfo        `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// RefreshInput contains a refresh token
type RefreshInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileInput contains the mutable profile fields
type UpdateProfileInput struct {
	BusinessName string `json:"business_name" binding:"omitempty,max=200"`
	Phone        string `json:"phone" binding:"omitempty,phone"`
	Address      string `json:"address"`
}

// UserInfo is the outward representation of an account
type UserInfo struct {
	ID           string    `json:"id"`
	BusinessName string    `json:"business_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToUserInfo converts a domain user to its outward representation
func ToUserInfo(u *identity.User) UserInfo {
	return UserInfo{
		ID:           u.ID.String(),
		BusinessName: u.BusinessName,
		Email:        u.Email,
		Phone:        u.Phone,
		Address:      u.Address,
		Role:         u.Role.String(),
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
	}
}
