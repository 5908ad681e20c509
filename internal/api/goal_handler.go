package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/pace-api/internal/api/shared"
	"github.com/phrazzld/pace-api/internal/service"
)

// defaultCompletedLimit caps the completed-goal listing when the client
// does not supply one.
const defaultCompletedLimit = 20

// maxCompletedLimit is the largest page a single request may ask for.
const maxCompletedLimit = 100

// GoalHandler handles daily goal API requests.
type GoalHandler struct {
	plannerService service.PlannerService
	validator      *validator.Validate
	logger         *slog.Logger
}

// NewGoalHandler creates a new GoalHandler with the given dependencies.
func NewGoalHandler(plannerService service.PlannerService, logger *slog.Logger) *GoalHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GoalHandler{
		plannerService: plannerService,
		validator:      validator.New(),
		logger:         logger.With(slog.String("component", "goal_handler")),
	}
}

// GetToday handles GET /goals/today. It returns the goal for the current
// calendar day, generating one on first request.
func (h *GoalHandler) GetToday(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	record, err := h.plannerService.GetTodayGoal(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get today's goal")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, record)
}

// Complete handles POST /goals/{id}/complete. It records the session
// outcome, advances the streak, and bumps the focused skill level.
func (h *GoalHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, goalID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req CompleteGoalRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	result, err := h.plannerService.CompleteGoal(r.Context(), userID, goalID, *req.Score, req.TimeSpentMinutes)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to complete goal")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// StartRecovery handles POST /goals/recovery. It generates a catch-up
// session sized to the number of missed days.
func (h *GoalHandler) StartRecovery(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req RecoverySessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	record, err := h.plannerService.StartRecoverySession(r.Context(), userID, req.MissedDays)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to start recovery session")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, record)
}

// ListCompleted handles GET /goals/completed. The optional limit query
// parameter bounds the page size.
func (h *GoalHandler) ListCompleted(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	limit := defaultCompletedLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		if parsed > maxCompletedLimit {
			parsed = maxCompletedLimit
		}
		limit = parsed
	}

	records, err := h.plannerService.ListCompletedGoals(r.Context(), userID, limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list completed goals")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, records)
}
