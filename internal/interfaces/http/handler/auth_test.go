package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	identityapp "github.com/tradelink/backend/internal/application/identity"
	"github.com/tradelink/backend/internal/domain/identity"
	"github.com/tradelink/backend/internal/domain/shared"
	"github.com/tradelink/backend/internal/infrastructure/auth"
	"github.com/tradelink/backend/internal/infrastructure/config"
	"github.com/tradelink/backend/internal/interfaces/http/dto"
	"github.com/tradelink/backend/internal/interfaces/http/router"
)

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*identity.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[uuid.UUID]*identity.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, user *identity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *memoryUserRepo) Update(_ context.Context, user *identity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return shared.ErrNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *memoryUserRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*identity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *memoryUserRepo) FindAll(_ context.Context, _ identity.UserFilter) ([]*identity.User, int64, error) {
	return nil, 0, nil
}

func (r *memoryUserRepo) CountByRole(context.Context, identity.Role) (int64, error) { return 0, nil }

func newAuthTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-test-secret-test-secret",
		AccessTokenExpiration:  time.Hour,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "tradelink-test",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()
	authService := identityapp.NewAuthService(newMemoryUserRepo(), jwtService, blacklist, zap.NewNop())

	return router.New(router.Config{
		Logger:     zap.NewNop(),
		JWTService: jwtService,
		Blacklist:  blacklist,
		Mode:       gin.TestMode,
	}, NewAuthHandler(authService, zap.NewNop()))
}

func postJSON(r *gin.Engine, path, token string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerPayload(email string) identityapp.RegisterInput {
	return identityapp.RegisterInput{
		BusinessName: "Basil Farms",
		Email:        email,
		Password:     "hunter2hunter2",
		Phone:        "+15550001111",
		Address:      "1 Greenhouse Way",
		Role:         "seller",
	}
}

func TestAuthEndpoints_RegisterAndLogin(t *testing.T) {
	r := newAuthTestServer(t)

	w := postJSON(r, "/api/v1/auth/register", "", registerPayload("basil@example.com"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Same email twice conflicts
	w = postJSON(r, "/api/v1/auth/register", "", registerPayload("basil@example.com"))
	assert.Equal(t, http.StatusConflict, w.Code)

	w = postJSON(r, "/api/v1/auth/login", "", identityapp.LoginInput{
		Email:    "basil@example.com",
		Password: "hunter2hunter2",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success bool                    `json:"success"`
		Data    identityapp.LoginResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data.Tokens)
	assert.NotEmpty(t, resp.Data.Tokens.AccessToken)
	assert.Equal(t, "basil@example.com", resp.Data.User.Email)

	w = postJSON(r, "/api/v1/auth/login", "", identityapp.LoginInput{
		Email:    "basil@example.com",
		Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthEndpoints_ProfileRequiresToken(t *testing.T) {
	r := newAuthTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/profile", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthEndpoints_LogoutRevokesToken(t *testing.T) {
	r := newAuthTestServer(t)

	postJSON(r, "/api/v1/auth/register", "", registerPayload("mint@example.com"))
	w := postJSON(r, "/api/v1/auth/login", "", identityapp.LoginInput{
		Email:    "mint@example.com",
		Password: "hunter2hunter2",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data identityapp.LoginResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	access := resp.Data.Tokens.AccessToken

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	before := httptest.NewRecorder()
	r.ServeHTTP(before, req)
	require.Equal(t, http.StatusOK, before.Code)

	w = postJSON(r, "/api/v1/auth/logout", access, identityapp.RefreshInput{
		RefreshToken: resp.Data.Tokens.RefreshToken,
	})
	require.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	after := httptest.NewRecorder()
	r.ServeHTTP(after, req)
	assert.Equal(t, http.StatusUnauthorized, after.Code)
}

func TestAuthEndpoints_InvalidBody(t *testing.T) {
	r := newAuthTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader("{nope"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeInvalidJSON, resp.Error.Code)
}
