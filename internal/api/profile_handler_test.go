package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/pace-api/internal/domain"
	"github.com/phrazzld/pace-api/internal/service"
	"github.com/phrazzld/pace-api/internal/store"
)

// mockProfileService implements service.ProfileService with function fields
type mockProfileService struct {
	GetProfileFn       func(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	UpdateProfileFn    func(ctx context.Context, userID uuid.UUID, update store.ProfileUpdate) (*domain.Profile, error)
	SubmitAssessmentFn func(ctx context.Context, userID uuid.UUID, levels map[domain.Skill]int) (*domain.Progress, error)
}

var _ service.ProfileService = (*mockProfileService)(nil)

func (m *mockProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	return m.GetProfileFn(ctx, userID)
}

func (m *mockProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, update store.ProfileUpdate) (*domain.Profile, error) {
	return m.UpdateProfileFn(ctx, userID, update)
}

func (m *mockProfileService) SubmitAssessment(ctx context.Context, userID uuid.UUID, levels map[domain.Skill]int) (*domain.Progress, error) {
	return m.SubmitAssessmentFn(ctx, userID, levels)
}

func TestProfileHandlerGet(t *testing.T) {
	t.Parallel()

	t.Run("returns the profile", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		svc := &mockProfileService{
			GetProfileFn: func(ctx context.Context, gotUserID uuid.UUID) (*domain.Profile, error) {
				assert.Equal(t, userID, gotUserID)
				profile, err := domain.NewProfile(userID)
				require.NoError(t, err)
				return profile, nil
			},
		}

		handler := NewProfileHandler(svc, nil)
		rr := httptest.NewRecorder()
		handler.Get(rr, authedRequest(t, http.MethodGet, "/api/profile", nil, userID))

		assert.Equal(t, http.StatusOK, rr.Code)

		var got domain.Profile
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, userID, got.UserID)
		assert.Equal(t, 7.0, got.TargetBand)
	})

	t.Run("missing profile returns 409", func(t *testing.T) {
		t.Parallel()

		svc := &mockProfileService{
			GetProfileFn: func(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
				return nil, service.ErrProfileIncomplete
			},
		}

		handler := NewProfileHandler(svc, nil)
		rr := httptest.NewRecorder()
		handler.Get(rr, authedRequest(t, http.MethodGet, "/api/profile", nil, uuid.New()))

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("missing auth context returns 401", func(t *testing.T) {
		t.Parallel()

		handler := NewProfileHandler(&mockProfileService{}, nil)
		rr := httptest.NewRecorder()
		handler.Get(rr, httptest.NewRequest(http.MethodGet, "/api/profile", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestProfileHandlerUpdate(t *testing.T) {
	t.Parallel()

	t.Run("parses the exam date and forwards the update", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		svc := &mockProfileService{
			UpdateProfileFn: func(ctx context.Context, gotUserID uuid.UUID, update store.ProfileUpdate) (*domain.Profile, error) {
				assert.Equal(t, userID, gotUserID)
				require.NotNil(t, update.ExamDate)
				assert.True(t, update.ExamDate.Valid)
				assert.Equal(t, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), update.ExamDate.Time)
				require.NotNil(t, update.TargetBand)
				assert.Equal(t, 7.5, *update.TargetBand)
				assert.Nil(t, update.DisplayName)

				profile, err := domain.NewProfile(userID)
				require.NoError(t, err)
				return profile, nil
			},
		}

		body := []byte(`{"exam_date":"2026-06-15","target_band":7.5}`)
		handler := NewProfileHandler(svc, nil)
		rr := httptest.NewRecorder()
		handler.Update(rr, authedRequest(t, http.MethodPatch, "/api/profile", body, userID))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("empty exam date clears the stored value", func(t *testing.T) {
		t.Parallel()

		svc := &mockProfileService{
			UpdateProfileFn: func(ctx context.Context, userID uuid.UUID, update store.ProfileUpdate) (*domain.Profile, error) {
				require.NotNil(t, update.ExamDate)
				assert.False(t, update.ExamDate.Valid)
				profile, err := domain.NewProfile(userID)
				require.NoError(t, err)
				return profile, nil
			},
		}

		handler := NewProfileHandler(svc, nil)
		rr := httptest.NewRecorder()
		handler.Update(rr, authedRequest(t, http.MethodPatch, "/api/profile", []byte(`{"exam_date":""}`), uuid.New()))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("malformed exam date returns 400", func(t *testing.T) {
		t.Parallel()

		handler := NewProfileHandler(&mockProfileService{}, nil)
		rr := httptest.NewRecorder()
		handler.Update(rr, authedRequest(t, http.MethodPatch, "/api/profile", []byte(`{"exam_date":"15/06/2026"}`), uuid.New()))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "exam_date")
	})

	t.Run("target band out of range returns 400", func(t *testing.T) {
		t.Parallel()

		handler := NewProfileHandler(&mockProfileService{}, nil)
		rr := httptest.NewRecorder()
		handler.Update(rr, authedRequest(t, http.MethodPatch, "/api/profile", []byte(`{"target_band":9.5}`), uuid.New()))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestProfileHandlerSubmitAssessment(t *testing.T) {
	t.Parallel()

	t.Run("converts skill names and returns progress", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		svc := &mockProfileService{
			SubmitAssessmentFn: func(ctx context.Context, gotUserID uuid.UUID, levels map[domain.Skill]int) (*domain.Progress, error) {
				assert.Equal(t, userID, gotUserID)
				assert.Equal(t, 60, levels[domain.SkillListening])
				assert.Equal(t, 40, levels[domain.SkillWriting])

				progress, err := domain.NewProgress(userID)
				require.NoError(t, err)
				return progress, nil
			},
		}

		body := []byte(`{"levels":{"listening":60,"writing":40}}`)
		handler := NewProfileHandler(svc, nil)
		rr := httptest.NewRecorder()
		handler.SubmitAssessment(rr, authedRequest(t, http.MethodPost, "/api/assessment", body, userID))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("empty levels map returns 400", func(t *testing.T) {
		t.Parallel()

		handler := NewProfileHandler(&mockProfileService{}, nil)
		rr := httptest.NewRecorder()
		handler.SubmitAssessment(rr, authedRequest(t, http.MethodPost, "/api/assessment", []byte(`{"levels":{}}`), uuid.New()))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown skill surfaces as 400", func(t *testing.T) {
		t.Parallel()

		svc := &mockProfileService{
			SubmitAssessmentFn: func(ctx context.Context, userID uuid.UUID, levels map[domain.Skill]int) (*domain.Progress, error) {
				return nil, domain.ErrInvalidSkill
			},
		}

		handler := NewProfileHandler(svc, nil)
		rr := httptest.NewRecorder()
		handler.SubmitAssessment(rr, authedRequest(t, http.MethodPost, "/api/assessment", []byte(`{"levels":{"grammar":50}}`), uuid.New()))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
