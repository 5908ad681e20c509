package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/pace-api/internal/api/shared"
	"github.com/phrazzld/pace-api/internal/service"
)

// DashboardHandler handles progress dashboard API requests.
type DashboardHandler struct {
	insightService service.InsightService
	logger         *slog.Logger
}

// NewDashboardHandler creates a new DashboardHandler with the given dependencies.
func NewDashboardHandler(insightService service.InsightService, logger *slog.Logger) *DashboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardHandler{
		insightService: insightService,
		logger:         logger.With(slog.String("component", "dashboard_handler")),
	}
}

// Get handles GET /dashboard.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	dashboard, err := h.insightService.GetDashboard(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get dashboard")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, dashboard)
}
