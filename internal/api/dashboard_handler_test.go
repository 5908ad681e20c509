package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/pace-api/internal/domain"
	"github.com/phrazzld/pace-api/internal/service"
)

// mockInsightService implements service.InsightService with function fields
type mockInsightService struct {
	GetDashboardFn func(ctx context.Context, userID uuid.UUID) (*service.Dashboard, error)
}

var _ service.InsightService = (*mockInsightService)(nil)

func (m *mockInsightService) GetDashboard(ctx context.Context, userID uuid.UUID) (*service.Dashboard, error) {
	return m.GetDashboardFn(ctx, userID)
}

func TestDashboardHandlerGet(t *testing.T) {
	t.Parallel()

	t.Run("returns the dashboard payload", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		insight := &mockInsightService{
			GetDashboardFn: func(ctx context.Context, gotUserID uuid.UUID) (*service.Dashboard, error) {
				assert.Equal(t, userID, gotUserID)
				return &service.Dashboard{
					Skills: []service.SkillInsight{
						{Skill: domain.SkillListening, Level: 55, Band: 6.0, FocusArea: true},
					},
					Timeline: "30 days (BALANCED)",
				}, nil
			},
		}

		handler := NewDashboardHandler(insight, nil)
		rr := httptest.NewRecorder()
		handler.Get(rr, authedRequest(t, http.MethodGet, "/api/dashboard", nil, userID))

		assert.Equal(t, http.StatusOK, rr.Code)

		var got service.Dashboard
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		require.Len(t, got.Skills, 1)
		assert.Equal(t, domain.SkillListening, got.Skills[0].Skill)
		assert.Equal(t, "30 days (BALANCED)", got.Timeline)
	})

	t.Run("incomplete onboarding returns 409", func(t *testing.T) {
		t.Parallel()

		insight := &mockInsightService{
			GetDashboardFn: func(ctx context.Context, userID uuid.UUID) (*service.Dashboard, error) {
				return nil, service.ErrProfileIncomplete
			},
		}

		handler := NewDashboardHandler(insight, nil)
		rr := httptest.NewRecorder()
		handler.Get(rr, authedRequest(t, http.MethodGet, "/api/dashboard", nil, uuid.New()))

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("missing auth context returns 401", func(t *testing.T) {
		t.Parallel()

		handler := NewDashboardHandler(&mockInsightService{}, nil)
		rr := httptest.NewRecorder()
		handler.Get(rr, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
