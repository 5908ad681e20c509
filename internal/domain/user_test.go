package domain_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/pace-api/internal/domain"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("creates a valid user", func(t *testing.T) {
		t.Parallel()

		user, err := domain.NewUser("learner@example.com", "correct horse battery")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "learner@example.com", user.Email)
		assert.Equal(t, "correct horse battery", user.Password)
		assert.Empty(t, user.HashedPassword)
	})

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "empty email",
			email:    "",
			password: "correct horse battery",
			wantErr:  domain.ErrEmptyEmail,
		},
		{
			name:     "email without at sign",
			email:    "learner.example.com",
			password: "correct horse battery",
			wantErr:  domain.ErrInvalidEmail,
		},
		{
			name:     "email without domain dot",
			email:    "learner@localhost",
			password: "correct horse battery",
			wantErr:  domain.ErrInvalidEmail,
		},
		{
			name:     "password too short",
			email:    "learner@example.com",
			password: "short",
			wantErr:  domain.ErrPasswordTooShort,
		},
		{
			name:     "password too long",
			email:    "learner@example.com",
			password: strings.Repeat("x", 73),
			wantErr:  domain.ErrPasswordTooLong,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := domain.NewUser(tc.email, tc.password)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestUserValidateStoredUser(t *testing.T) {
	t.Parallel()

	t.Run("stored user validates with only a hash", func(t *testing.T) {
		t.Parallel()

		user := &domain.User{
			ID:             uuid.New(),
			Email:          "learner@example.com",
			HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
		}
		assert.NoError(t, user.Validate())
	})

	t.Run("neither password nor hash fails", func(t *testing.T) {
		t.Parallel()

		user := &domain.User{
			ID:    uuid.New(),
			Email: "learner@example.com",
		}
		assert.ErrorIs(t, user.Validate(), domain.ErrEmptyPassword)
	})
}
