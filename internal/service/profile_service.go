package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/pace-api/internal/domain"
	"github.com/phrazzld/pace-api/internal/domain/band"
	"github.com/phrazzld/pace-api/internal/store"
)

// ProfileService provides profile and onboarding operations.
type ProfileService interface {
	// GetProfile retrieves the user's study profile.
	// Returns ErrProfileIncomplete if the user has no profile.
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)

	// UpdateProfile applies a partial update to the user's profile.
	UpdateProfile(ctx context.Context, userID uuid.UUID, update store.ProfileUpdate) (*domain.Profile, error)

	// SubmitAssessment records the onboarding diagnostic results: the
	// per-skill levels and the band estimate derived from them. Returns
	// the updated progress.
	SubmitAssessment(ctx context.Context, userID uuid.UUID, levels map[domain.Skill]int) (*domain.Progress, error)
}

// ProfileServiceImpl implements the ProfileService interface.
type ProfileServiceImpl struct {
	profileStore  store.ProfileStore
	progressStore store.ProgressStore
	logger        *slog.Logger
	timeFunc      func() time.Time // Injectable for testing
}

// Compile-time check that ProfileServiceImpl implements ProfileService
var _ ProfileService = (*ProfileServiceImpl)(nil)

// NewProfileService creates a new ProfileService.
func NewProfileService(
	profileStore store.ProfileStore,
	progressStore store.ProgressStore,
	logger *slog.Logger,
) *ProfileServiceImpl {
	// ALLOW-PANIC: Constructor enforces required dependencies
	if profileStore == nil {
		panic("profileStore cannot be nil")
	}
	if progressStore == nil {
		panic("progressStore cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &ProfileServiceImpl{
		profileStore:  profileStore,
		progressStore: progressStore,
		logger:        logger.With(slog.String("component", "profile_service")),
		timeFunc:      time.Now,
	}
}

// GetProfile retrieves the user's study profile.
func (s *ProfileServiceImpl) GetProfile(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.Profile, error) {
	profile, err := s.profileStore.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return nil, ErrProfileIncomplete
		}
		s.logger.Error("failed to retrieve profile",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to retrieve profile: %w", err)
	}

	return profile, nil
}

// UpdateProfile applies a partial update to the user's profile.
func (s *ProfileServiceImpl) UpdateProfile(
	ctx context.Context,
	userID uuid.UUID,
	update store.ProfileUpdate,
) (*domain.Profile, error) {
	profile, err := s.profileStore.Update(ctx, userID, update)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return nil, ErrProfileIncomplete
		}
		s.logger.Error("failed to update profile",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("profile updated",
		"user_id", userID,
		"onboarding_completed", profile.OnboardingCompleted)

	return profile, nil
}

// SubmitAssessment records the onboarding diagnostic. The band estimate is
// derived from the average of the assessed skill levels.
func (s *ProfileServiceImpl) SubmitAssessment(
	ctx context.Context,
	userID uuid.UUID,
	levels map[domain.Skill]int,
) (*domain.Progress, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("%w: assessment levels are required", domain.ErrValidation)
	}

	var sum int
	for skill, level := range levels {
		if !skill.IsValid() || skill == domain.SkillMixed {
			return nil, fmt.Errorf("%w: unexpected skill %q", domain.ErrInvalidSkill, skill)
		}
		if level < 0 || level > 100 {
			return nil, domain.ErrInvalidSkillLevel
		}
		sum += level
	}
	estimated := band.EstimateFromAssessment(float64(sum) / float64(len(levels)))

	err := s.progressStore.SetLevels(ctx, userID, levels, estimated)
	if err != nil {
		if errors.Is(err, store.ErrProgressNotFound) {
			// An account provisioned before the baseline row existed still
			// gets its diagnostic recorded.
			progress, buildErr := domain.NewProgress(userID)
			if buildErr != nil {
				return nil, fmt.Errorf("failed to build progress: %w", buildErr)
			}
			if createErr := s.progressStore.Create(ctx, progress); createErr != nil {
				return nil, fmt.Errorf("failed to create progress: %w", createErr)
			}
			err = s.progressStore.SetLevels(ctx, userID, levels, estimated)
		}
		if err != nil {
			s.logger.Error("failed to record assessment",
				"error", err,
				"user_id", userID)
			return nil, fmt.Errorf("failed to record assessment: %w", err)
		}
	}

	progress, err := s.progressStore.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload progress: %w", err)
	}

	s.logger.Info("assessment recorded",
		"user_id", userID,
		"estimated_band", estimated)

	return progress, nil
}
