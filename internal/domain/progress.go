package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Progress
var (
	ErrEmptyProgressUserID = errors.New("progress user ID cannot be empty")
	ErrInvalidSkillLevel   = errors.New("skill level must be between 0 and 100")
)

// DefaultSkillLevel is the proficiency assumed for a learner whose progress
// row is confirmed absent. It is never used to paper over a failed read.
const DefaultSkillLevel = 50

// Progress tracks the learner's proficiency level per skill on a 0-100
// scale, plus the band estimate shown during onboarding.
type Progress struct {
	UserID           uuid.UUID     `json:"user_id"`
	Levels           map[Skill]int `json:"levels"`
	EstimatedBand    float64       `json:"estimated_band"`
	LastAssessmentAt *time.Time    `json:"last_assessment_at,omitempty"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// NewProgress creates a Progress entry with every skill at the default
// baseline level.
func NewProgress(userID uuid.UUID) (*Progress, error) {
	levels := make(map[Skill]int, 4)
	for _, s := range ScoredSkills() {
		levels[s] = DefaultSkillLevel
	}

	progress := &Progress{
		UserID:    userID,
		Levels:    levels,
		UpdatedAt: time.Now().UTC(),
	}

	if err := progress.Validate(); err != nil {
		return nil, err
	}

	return progress, nil
}

// Level returns the proficiency level for the given skill. Unknown or mixed
// skills report the default baseline, mirroring how a blended session has no
// single level of its own.
func (p *Progress) Level(skill Skill) int {
	if level, ok := p.Levels[skill]; ok {
		return level
	}
	return DefaultSkillLevel
}

// Validate checks if the Progress has valid data.
// Returns an error if any field fails validation.
func (p *Progress) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrEmptyProgressUserID
	}

	for skill, level := range p.Levels {
		if !skill.IsValid() || skill == SkillMixed {
			return fmt.Errorf("%w: unexpected skill %q", ErrValidation, skill)
		}
		if level < 0 || level > 100 {
			return ErrInvalidSkillLevel
		}
	}

	return nil
}
