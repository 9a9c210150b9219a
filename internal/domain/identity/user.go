package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/tradelink/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User represents a marketplace account (seller, retailer, or admin)
// It is the aggregate root for account-related operations
type User struct {
	shared.AggregateRoot
	BusinessName string `gorm:"type:varchar(200);not null"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Phone        string `gorm:"type:varchar(20)"`
	Address      string `gorm:"type:text"`
	Role         Role   `gorm:"type:varchar(20);not null"`
	// No default tag here: gorm would skip the zero value on insert and
	// store a deactivated account as active
	IsActive bool `gorm:"not null"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new account with a hashed password
func NewUser(businessName, email, password, phone, address string, role Role) (*User, error) {
	if strings.TrimSpace(businessName) == "" {
		return nil, shared.NewValidationError("Business name cannot be empty")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewValidationError("Role must be seller, retailer, or admin")
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := &User{
		AggregateRoot: shared.NewAggregateRoot(),
		BusinessName:  strings.TrimSpace(businessName),
		Email:         strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:  passwordHash,
		Phone:         strings.TrimSpace(phone),
		Address:       strings.TrimSpace(address),
		Role:          role,
		IsActive:      true,
	}

	user.Record(NewUserRegisteredEvent(user))

	return user, nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// UpdateProfile updates the mutable contact fields
func (u *User) UpdateProfile(businessName, phone, address string) error {
	if strings.TrimSpace(businessName) == "" {
		return shared.NewValidationError("Business name cannot be empty")
	}
	if len(phone) > 20 {
		return shared.NewValidationError("Phone cannot exceed 20 characters")
	}

	u.BusinessName = strings.TrimSpace(businessName)
	u.Phone = strings.TrimSpace(phone)
	u.Address = strings.TrimSpace(address)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// Deactivate disables the account
func (u *User) Deactivate() error {
	if !u.IsActive {
		return shared.NewDomainError(shared.CodeConflict, "Account is already deactivated")
	}

	u.IsActive = false
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// Activate re-enables the account
func (u *User) Activate() error {
	if u.IsActive {
		return shared.NewDomainError(shared.CodeConflict, "Account is already active")
	}

	u.IsActive = true
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewValidationError("Email cannot be empty")
	}
	if len(email) > 255 || !emailPattern.MatchString(email) {
		return shared.NewValidationError("Email format is invalid")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewValidationError("Password must be at least 8 characters")
	}
	if len(password) > 72 {
		// bcrypt input limit
		return shared.NewValidationError("Password cannot exceed 72 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
