package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSigningSecret = "test-secret-that-is-long-enough-for-signing"

// fixedClockService builds the token service pinned to the given instant so
// expiry behavior is deterministic.
func fixedClockService(secret string, at time.Time) *hmacJWTService {
	return &hmacJWTService{
		signingKey:      []byte(secret),
		accessLifetime:  time.Hour,
		refreshLifetime: 72 * time.Hour,
		timeFunc:        func() time.Time { return at },
	}
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()
	svc := fixedClockService(testSigningSecret, issuedAt)

	t.Run("access token carries the learner identity", func(t *testing.T) {
		t.Parallel()

		token, err := svc.GenerateToken(context.Background(), userID)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.ValidateToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, userID.String(), claims.Subject)
		assert.Equal(t, issuedAt.Unix(), claims.IssuedAt.Unix())
		assert.Equal(t, issuedAt.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("refresh token has the longer lifetime", func(t *testing.T) {
		t.Parallel()

		token, err := svc.GenerateRefreshToken(context.Background(), userID)
		require.NoError(t, err)

		claims, err := svc.ValidateRefreshToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, issuedAt.Add(72*time.Hour).Unix(), claims.ExpiresAt.Unix())
	})
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	tests := []struct {
		name    string
		setup   func(t *testing.T) (*hmacJWTService, string)
		wantErr error
	}{
		{
			name: "valid token",
			setup: func(t *testing.T) (*hmacJWTService, string) {
				svc := fixedClockService(testSigningSecret, issuedAt)
				token, err := svc.GenerateToken(context.Background(), userID)
				require.NoError(t, err)
				return svc, token
			},
		},
		{
			name: "expired token",
			setup: func(t *testing.T) (*hmacJWTService, string) {
				issuer := fixedClockService(testSigningSecret, issuedAt)
				token, err := issuer.GenerateToken(context.Background(), userID)
				require.NoError(t, err)
				return fixedClockService(testSigningSecret, issuedAt.Add(2*time.Hour)), token
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "signature from a different secret",
			setup: func(t *testing.T) (*hmacJWTService, string) {
				issuer := fixedClockService("another-secret-that-is-long-enough-too", issuedAt)
				token, err := issuer.GenerateToken(context.Background(), userID)
				require.NoError(t, err)
				return fixedClockService(testSigningSecret, issuedAt), token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "malformed token",
			setup: func(t *testing.T) (*hmacJWTService, string) {
				return fixedClockService(testSigningSecret, issuedAt), "this.is.not.a.token"
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "refresh token rejected as access token",
			setup: func(t *testing.T) (*hmacJWTService, string) {
				svc := fixedClockService(testSigningSecret, issuedAt)
				token, err := svc.GenerateRefreshToken(context.Background(), userID)
				require.NoError(t, err)
				return svc, token
			},
			wantErr: ErrWrongTokenType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, token := tt.setup(t)
			claims, err := svc.ValidateToken(context.Background(), token)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, claims.UserID)
		})
	}
}

func TestValidateRefreshToken(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	t.Run("expired refresh token", func(t *testing.T) {
		t.Parallel()

		issuer := fixedClockService(testSigningSecret, issuedAt)
		token, err := issuer.GenerateRefreshToken(context.Background(), userID)
		require.NoError(t, err)

		later := fixedClockService(testSigningSecret, issuedAt.Add(73*time.Hour))
		_, err = later.ValidateRefreshToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrExpiredRefreshToken)
	})

	t.Run("access token rejected as refresh token", func(t *testing.T) {
		t.Parallel()

		svc := fixedClockService(testSigningSecret, issuedAt)
		token, err := svc.GenerateToken(context.Background(), userID)
		require.NoError(t, err)

		_, err = svc.ValidateRefreshToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrWrongTokenType)
	})

	t.Run("garbage refresh token", func(t *testing.T) {
		t.Parallel()

		svc := fixedClockService(testSigningSecret, issuedAt)
		_, err := svc.ValidateRefreshToken(context.Background(), "garbage")
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})
}
