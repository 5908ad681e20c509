package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/pace-api/internal/api/shared"
	"github.com/phrazzld/pace-api/internal/domain"
	"github.com/phrazzld/pace-api/internal/service"
	"github.com/phrazzld/pace-api/internal/store"
)

// examDateLayout is the wire format for exam dates.
const examDateLayout = "2006-01-02"

// ProfileHandler handles study profile and assessment API requests.
type ProfileHandler struct {
	profileService service.ProfileService
	validator      *validator.Validate
	logger         *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler with the given dependencies.
func NewProfileHandler(profileService service.ProfileService, logger *slog.Logger) *ProfileHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileHandler{
		profileService: profileService,
		validator:      validator.New(),
		logger:         logger.With(slog.String("component", "profile_handler")),
	}
}

// Get handles GET /profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	profile, err := h.profileService.GetProfile(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get profile")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profile)
}

// Update handles PATCH /profile. Only fields present in the request body
// are applied; an empty exam_date string clears the stored date.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req UpdateProfileRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	update := store.ProfileUpdate{
		DisplayName:         req.DisplayName,
		TargetBand:          req.TargetBand,
		DailyStudyMinutes:   req.DailyStudyMinutes,
		OnboardingCompleted: req.OnboardingCompleted,
	}

	if req.ExamDate != nil {
		if *req.ExamDate == "" {
			update.ExamDate = &sql.NullTime{}
		} else {
			examDate, err := time.ParseInLocation(examDateLayout, *req.ExamDate, time.UTC)
			if err != nil {
				shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid exam_date: expected YYYY-MM-DD")
				return
			}
			update.ExamDate = &sql.NullTime{Time: examDate, Valid: true}
		}
	}

	profile, err := h.profileService.UpdateProfile(r.Context(), userID, update)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update profile")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profile)
}

// SubmitAssessment handles POST /assessment. The body carries the
// diagnostic's per-skill proficiency levels.
func (h *ProfileHandler) SubmitAssessment(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req AssessmentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	levels := make(map[domain.Skill]int, len(req.Levels))
	for name, level := range req.Levels {
		levels[domain.Skill(name)] = level
	}

	progress, err := h.profileService.SubmitAssessment(r.Context(), userID, levels)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit assessment")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, progress)
}
