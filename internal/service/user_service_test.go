package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/pace-api/internal/domain"
	"github.com/phrazzld/pace-api/internal/mocks"
	"github.com/phrazzld/pace-api/internal/store"
)

func newTestUserService(
	users *mocks.MockUserStore,
	profiles *mocks.MockProfileStore,
	progresses *mocks.MockProgressStore,
) *UserServiceImpl {
	s := NewUserService(users, profiles, progresses, nil, testLogger())
	s.runTx = func(ctx context.Context, fn store.TxFn) error {
		return fn(ctx, (*sql.Tx)(nil))
	}
	return s
}

func TestUserServiceCreateUser(t *testing.T) {
	t.Parallel()

	t.Run("provisions profile and progress with the account", func(t *testing.T) {
		t.Parallel()

		users := mocks.NewMockUserStore()
		profiles := mocks.NewMockProfileStore()
		progresses := mocks.NewMockProgressStore()

		svc := newTestUserService(users, profiles, progresses)

		user, err := svc.CreateUser(context.Background(), "learner@example.com", "correct horse battery")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)

		// Every committed account carries its default profile and baseline progress.
		profile, ok := profiles.Profiles[user.ID]
		require.True(t, ok)
		assert.Equal(t, 7.0, profile.TargetBand)
		assert.False(t, profile.OnboardingCompleted)

		progress, ok := progresses.Progresses[user.ID]
		require.True(t, ok)
		assert.Equal(t, domain.DefaultSkillLevel, progress.Levels[domain.SkillListening])
	})

	t.Run("duplicate email surfaces the store sentinel", func(t *testing.T) {
		t.Parallel()

		users := mocks.NewMockUserStore()
		users.CreateError = store.ErrEmailExists

		svc := newTestUserService(users, mocks.NewMockProfileStore(), mocks.NewMockProgressStore())

		_, err := svc.CreateUser(context.Background(), "taken@example.com", "correct horse battery")
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("invalid password fails before touching the store", func(t *testing.T) {
		t.Parallel()

		users := mocks.NewMockUserStore()
		svc := newTestUserService(users, mocks.NewMockProfileStore(), mocks.NewMockProgressStore())

		_, err := svc.CreateUser(context.Background(), "learner@example.com", "short")
		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
		assert.Empty(t, users.Users)
	})

	t.Run("profile creation failure aborts the account", func(t *testing.T) {
		t.Parallel()

		profiles := mocks.NewMockProfileStore()
		profiles.CreateFn = func(ctx context.Context, profile *domain.Profile) error {
			return errors.New("disk full")
		}

		svc := newTestUserService(mocks.NewMockUserStore(), profiles, mocks.NewMockProgressStore())

		_, err := svc.CreateUser(context.Background(), "learner@example.com", "correct horse battery")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create user")
	})
}

func TestUserServiceGetUserByEmail(t *testing.T) {
	t.Parallel()

	t.Run("returns the stored user", func(t *testing.T) {
		t.Parallel()

		users := mocks.NewMockUserStore()
		stored := &domain.User{ID: uuid.New(), Email: "learner@example.com", HashedPassword: "hashed"}
		users.Users[stored.Email] = stored

		svc := newTestUserService(users, mocks.NewMockProfileStore(), mocks.NewMockProgressStore())

		user, err := svc.GetUserByEmail(context.Background(), "learner@example.com")
		require.NoError(t, err)
		assert.Equal(t, stored.ID, user.ID)
	})

	t.Run("unknown email wraps the not-found sentinel", func(t *testing.T) {
		t.Parallel()

		svc := newTestUserService(mocks.NewMockUserStore(), mocks.NewMockProfileStore(), mocks.NewMockProgressStore())

		_, err := svc.GetUserByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestUserServiceUpdateUserEmail(t *testing.T) {
	t.Parallel()

	t.Run("rewrites the email on the stored user", func(t *testing.T) {
		t.Parallel()

		users := mocks.NewMockUserStore()
		stored := &domain.User{ID: uuid.New(), Email: "old@example.com", HashedPassword: "hashed"}
		users.Users[stored.Email] = stored

		svc := newTestUserService(users, mocks.NewMockProfileStore(), mocks.NewMockProgressStore())

		require.NoError(t, svc.UpdateUserEmail(context.Background(), stored.ID, "new@example.com"))

		updated, err := svc.GetUser(context.Background(), stored.ID)
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", updated.Email)
	})

	t.Run("unknown user fails", func(t *testing.T) {
		t.Parallel()

		svc := newTestUserService(mocks.NewMockUserStore(), mocks.NewMockProfileStore(), mocks.NewMockProgressStore())

		err := svc.UpdateUserEmail(context.Background(), uuid.New(), "new@example.com")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}
