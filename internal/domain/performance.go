package domain

import "time"

// SkillScore is one completed goal's score attributed to the skill it
// focused on, used when selecting which skill needs attention.
type SkillScore struct {
	Skill      Skill     `json:"skill"`
	Score      int       `json:"score"`
	RecordedAt time.Time `json:"recorded_at"`
}

// UserPerformance is the read-side snapshot the pacing engine consumes. It
// aggregates proficiency levels, recent scores, and attendance so goal
// generation needs a single load instead of several store round-trips.
type UserPerformance struct {
	Levels       map[Skill]int `json:"levels"`
	RecentScores []SkillScore  `json:"recent_scores"`
	// CompletedGoals counts completed program days only. Recovery
	// sessions are excluded so they never advance the day counter.
	CompletedGoals        int `json:"completed_goals"`
	MissedDays            int `json:"missed_days"`
	AverageSessionMinutes int `json:"average_session_minutes"`
}

// Level returns the proficiency level for the given skill, falling back to
// the default baseline for skills without a recorded level.
func (p *UserPerformance) Level(skill Skill) int {
	if level, ok := p.Levels[skill]; ok {
		return level
	}
	return DefaultSkillLevel
}
