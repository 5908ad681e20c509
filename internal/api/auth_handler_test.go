package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/pace-api/internal/domain"
	"github.com/phrazzld/pace-api/internal/mocks"
	"github.com/phrazzld/pace-api/internal/service"
	"github.com/phrazzld/pace-api/internal/service/auth"
	"github.com/phrazzld/pace-api/internal/store"
)

// mockUserService implements service.UserService with function fields
type mockUserService struct {
	GetUserFn            func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetUserByEmailFn     func(ctx context.Context, email string) (*domain.User, error)
	CreateUserFn         func(ctx context.Context, email, password string) (*domain.User, error)
	UpdateUserEmailFn    func(ctx context.Context, userID uuid.UUID, newEmail string) error
	UpdateUserPasswordFn func(ctx context.Context, userID uuid.UUID, newPassword string) error
	DeleteUserFn         func(ctx context.Context, userID uuid.UUID) error
}

var _ service.UserService = (*mockUserService)(nil)

func (m *mockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return m.GetUserFn(ctx, userID)
}

func (m *mockUserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.GetUserByEmailFn(ctx, email)
}

func (m *mockUserService) CreateUser(ctx context.Context, email, password string) (*domain.User, error) {
	return m.CreateUserFn(ctx, email, password)
}

func (m *mockUserService) UpdateUserEmail(ctx context.Context, userID uuid.UUID, newEmail string) error {
	return m.UpdateUserEmailFn(ctx, userID, newEmail)
}

func (m *mockUserService) UpdateUserPassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	return m.UpdateUserPasswordFn(ctx, userID, newPassword)
}

func (m *mockUserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return m.DeleteUserFn(ctx, userID)
}

func newAuthHandler(users service.UserService, jwt *mocks.MockJWTService, verifier *mocks.MockPasswordVerifier) *AuthHandler {
	if jwt == nil {
		jwt = &mocks.MockJWTService{Token: "access-token", RefreshToken: "refresh-token"}
	}
	if verifier == nil {
		verifier = &mocks.MockPasswordVerifier{ShouldSucceed: true}
	}
	return NewAuthHandler(users, jwt, verifier, time.Hour, nil)
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAuthHandlerRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates the account and returns a token pair", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		users := &mockUserService{
			CreateUserFn: func(ctx context.Context, email, password string) (*domain.User, error) {
				assert.Equal(t, "learner@example.com", email)
				return &domain.User{ID: userID, Email: email}, nil
			},
		}

		handler := newAuthHandler(users, nil, nil)
		rr := httptest.NewRecorder()
		handler.Register(rr, jsonRequest(http.MethodPost, "/api/auth/register",
			`{"email":"learner@example.com","password":"correct horse battery"}`))

		assert.Equal(t, http.StatusCreated, rr.Code)

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, userID, resp.UserID)
		assert.Equal(t, "access-token", resp.AccessToken)
		assert.Equal(t, "refresh-token", resp.RefreshToken)
		assert.NotEmpty(t, resp.ExpiresAt)
	})

	t.Run("duplicate email returns 409", func(t *testing.T) {
		t.Parallel()

		users := &mockUserService{
			CreateUserFn: func(ctx context.Context, email, password string) (*domain.User, error) {
				return nil, store.ErrEmailExists
			},
		}

		handler := newAuthHandler(users, nil, nil)
		rr := httptest.NewRecorder()
		handler.Register(rr, jsonRequest(http.MethodPost, "/api/auth/register",
			`{"email":"learner@example.com","password":"correct horse battery"}`))

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("short password is rejected before the service is called", func(t *testing.T) {
		t.Parallel()

		handler := newAuthHandler(&mockUserService{}, nil, nil)
		rr := httptest.NewRecorder()
		handler.Register(rr, jsonRequest(http.MethodPost, "/api/auth/register",
			`{"email":"learner@example.com","password":"short"}`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAuthHandlerLogin(t *testing.T) {
	t.Parallel()

	t.Run("valid credentials return a token pair", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		users := &mockUserService{
			GetUserByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
				return &domain.User{ID: userID, Email: email, HashedPassword: "hashed"}, nil
			},
		}
		verifier := &mocks.MockPasswordVerifier{ShouldSucceed: true}

		handler := newAuthHandler(users, nil, verifier)
		rr := httptest.NewRecorder()
		handler.Login(rr, jsonRequest(http.MethodPost, "/api/auth/login",
			`{"email":"learner@example.com","password":"correct horse battery"}`))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 1, verifier.CompareCallCount)
		assert.Equal(t, "hashed", verifier.CompareCalledWith.HashedPassword)
	})

	t.Run("unknown email returns 401 without detail", func(t *testing.T) {
		t.Parallel()

		users := &mockUserService{
			GetUserByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
				return nil, store.ErrUserNotFound
			},
		}

		handler := newAuthHandler(users, nil, nil)
		rr := httptest.NewRecorder()
		handler.Login(rr, jsonRequest(http.MethodPost, "/api/auth/login",
			`{"email":"nobody@example.com","password":"whatever password"}`))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid credentials")
		assert.NotContains(t, rr.Body.String(), "not found")
	})

	t.Run("wrong password returns the same 401", func(t *testing.T) {
		t.Parallel()

		users := &mockUserService{
			GetUserByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
				return &domain.User{ID: uuid.New(), Email: email, HashedPassword: "hashed"}, nil
			},
		}
		verifier := &mocks.MockPasswordVerifier{ShouldSucceed: false}

		handler := newAuthHandler(users, nil, verifier)
		rr := httptest.NewRecorder()
		handler.Login(rr, jsonRequest(http.MethodPost, "/api/auth/login",
			`{"email":"learner@example.com","password":"wrong password!"}`))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid credentials")
	})
}

func TestAuthHandlerRefreshToken(t *testing.T) {
	t.Parallel()

	t.Run("valid refresh token yields a new pair", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		jwt := &mocks.MockJWTService{
			Token:        "new-access",
			RefreshToken: "new-refresh",
			Claims:       &auth.Claims{UserID: userID, TokenType: "refresh"},
		}

		handler := newAuthHandler(&mockUserService{}, jwt, nil)
		rr := httptest.NewRecorder()
		handler.RefreshToken(rr, jsonRequest(http.MethodPost, "/api/auth/refresh",
			`{"refresh_token":"old-refresh"}`))

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp RefreshTokenResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "new-access", resp.AccessToken)
		assert.Equal(t, "new-refresh", resp.RefreshToken)
	})

	t.Run("expired refresh token returns 401", func(t *testing.T) {
		t.Parallel()

		jwt := &mocks.MockJWTService{ValidateErr: auth.ErrExpiredRefreshToken}

		handler := newAuthHandler(&mockUserService{}, jwt, nil)
		rr := httptest.NewRecorder()
		handler.RefreshToken(rr, jsonRequest(http.MethodPost, "/api/auth/refresh",
			`{"refresh_token":"stale"}`))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid refresh token")
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		t.Parallel()

		handler := newAuthHandler(&mockUserService{}, nil, nil)
		rr := httptest.NewRecorder()
		handler.RefreshToken(rr, jsonRequest(http.MethodPost, "/api/auth/refresh", `{}`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
