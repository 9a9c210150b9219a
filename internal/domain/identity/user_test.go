package identity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradelink/backend/internal/domain/shared"
)

func TestNewUser(t *testing.T) {
	t.Run("creates active seller with hashed password", func(t *testing.T) {
		user, err := NewUser("Acme Wholesale", "ops@acme.example", "s3cret-pass", "+15550100", "1 Main St", RoleSeller)
		require.NoError(t, err)

		assert.Equal(t, "Acme Wholesale", user.BusinessName)
		assert.Equal(t, "ops@acme.example", user.Email)
		assert.Equal(t, RoleSeller, user.Role)
		assert.True(t, user.IsActive)
		assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
		assert.True(t, user.VerifyPassword("s3cret-pass"))
		assert.False(t, user.VerifyPassword("wrong"))
		assert.Len(t, user.Events(), 1)
	})

	t.Run("lowercases email", func(t *testing.T) {
		user, err := NewUser("Acme", "Ops@Acme.Example", "s3cret-pass", "", "", RoleRetailer)
		require.NoError(t, err)
		assert.Equal(t, "ops@acme.example", user.Email)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		cases := []struct {
			name     string
			business string
			email    string
			password string
			role     Role
		}{
			{"empty business name", "", "a@b.example", "s3cret-pass", RoleSeller},
			{"empty email", "Acme", "", "s3cret-pass", RoleSeller},
			{"malformed email", "Acme", "not-an-email", "s3cret-pass", RoleSeller},
			{"short password", "Acme", "a@b.example", "short", RoleSeller},
			{"unknown role", "Acme", "a@b.example", "s3cret-pass", Role("manager")},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := NewUser(tc.business, tc.email, tc.password, "", "", tc.role)
				require.Error(t, err)

				var domainErr *shared.DomainError
				require.True(t, errors.As(err, &domainErr))
				assert.Equal(t, shared.CodeValidation, domainErr.Code)
			})
		}
	})
}

func TestUserDeactivate(t *testing.T) {
	user, err := NewUser("Acme", "a@b.example", "s3cret-pass", "", "", RoleRetailer)
	require.NoError(t, err)

	require.NoError(t, user.Deactivate())
	assert.False(t, user.IsActive)

	err = user.Deactivate()
	require.Error(t, err)

	require.NoError(t, user.Activate())
	assert.True(t, user.IsActive)
}

func TestRoleCapabilities(t *testing.T) {
	assert.True(t, RoleSeller.CanListProducts())
	assert.False(t, RoleSeller.CanPlaceOrders())
	assert.True(t, RoleRetailer.CanPlaceOrders())
	assert.False(t, RoleRetailer.CanManageUsers())
	assert.True(t, RoleAdmin.CanManageUsers())
	assert.False(t, Role("manager").IsValid())
}
