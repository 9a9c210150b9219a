package identity

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tradelink/backend/internal/domain/identity"
	"github.com/tradelink/backend/internal/domain/shared"
	"github.com/tradelink/backend/internal/infrastructure/auth"
	"github.com/tradelink/backend/internal/infrastructure/config"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*identity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*identity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *identity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *identity.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return shared.ErrNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*identity.User, error) {
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context, _ identity.UserFilter) ([]*identity.User, int64, error) {
	out := make([]*identity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) CountByRole(context.Context, identity.Role) (int64, error) { return 0, nil }

func newAuthService(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars!!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "tradelink-test",
	})
	svc := NewAuthService(repo, jwtService, auth.NewInMemoryTokenBlacklist(), zap.NewNop())
	return svc, repo
}

func registerInput() RegisterInput {
	return RegisterInput{
		BusinessName: "Acme Wholesale",
		Email:        "Ops@Acme.example",
		Password:     "s3cret-pass",
		Phone:        "+15550000",
		Address:      "1 Industrial Way",
		Role:         "seller",
	}
}

func TestAuthServiceRegister(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	info, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)
	assert.Equal(t, "ops@acme.example", info.Email)
	assert.Equal(t, "seller", info.Role)
	assert.True(t, info.IsActive)

	// Same email again is rejected
	_, err = svc.Register(ctx, registerInput())
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeAlreadyExists, domainErr.Code)
}

func TestAuthServiceRegisterValidation(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	input := registerInput()
	input.Role = "wholesaler"
	_, err := svc.Register(ctx, input)
	assert.Error(t, err)

	input = registerInput()
	input.Password = "short"
	_, err = svc.Register(ctx, input)
	assert.Error(t, err)
}

func TestAuthServiceLogin(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	result, err := svc.Login(ctx, LoginInput{Email: "ops@acme.example", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.Equal(t, "Acme Wholesale", result.User.BusinessName)

	// Wrong password and unknown email produce the same error code
	_, err = svc.Login(ctx, LoginInput{Email: "ops@acme.example", Password: "wrong-pass"})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeUnauthorized, domainErr.Code)

	_, err = svc.Login(ctx, LoginInput{Email: "nobody@acme.example", Password: "s3cret-pass"})
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeUnauthorized, domainErr.Code)
}

func TestAuthServiceLoginDeactivated(t *testing.T) {
	svc, repo := newAuthService(t)
	ctx := context.Background()

	info, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	id := uuid.MustParse(info.ID)
	require.NoError(t, repo.users[id].Deactivate())

	_, err = svc.Login(ctx, LoginInput{Email: "ops@acme.example", Password: "s3cret-pass"})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeForbidden, domainErr.Code)
}

func TestAuthServiceRefreshAndLogout(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	result, err := svc.Login(ctx, LoginInput{Email: "ops@acme.example", Password: "s3cret-pass"})
	require.NoError(t, err)

	tokens, err := svc.Refresh(ctx, RefreshInput{RefreshToken: result.Tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)

	// Logout revokes the refresh token
	require.NoError(t, svc.Logout(ctx, result.Tokens.AccessToken, result.Tokens.RefreshToken))

	_, err = svc.Refresh(ctx, RefreshInput{RefreshToken: result.Tokens.RefreshToken})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeUnauthorized, domainErr.Code)
}

func TestAuthServiceUpdateProfile(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	info, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, uuid.MustParse(info.ID), UpdateProfileInput{
		BusinessName: "Acme Trading Co",
		Phone:        "+15550001",
		Address:      "2 Industrial Way",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Trading Co", updated.BusinessName)
	assert.Equal(t, "+15550001", updated.Phone)
}
