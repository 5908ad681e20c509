package pacing

import (
	"sort"

	"github.com/phrazzld/pace-api/internal/domain"
)

// selectSkillFocus picks which skill the day's goal should target.
//
// Week one is always a mixed foundation week. Weeks two and three rotate
// between the weakest and second-weakest skills so early preparation does
// not fixate on a single gap. From week four on, a struggling skill in the
// recent score history takes priority over the globally weakest one.
func selectSkillFocus(perf *domain.UserPerformance, weekNumber int, params *Params) domain.Skill {
	if weekNumber <= 1 {
		return domain.SkillMixed
	}

	ranked := skillsByLevel(perf)

	if weekNumber <= 3 {
		if weekNumber%2 == 0 {
			return ranked[0]
		}
		return ranked[1]
	}

	if weak, ok := strugglingSkill(perf.RecentScores, params); ok {
		return weak
	}
	return ranked[0]
}

// skillsByLevel orders the scored skills ascending by proficiency level.
// Ties keep the canonical skill order, so the result is deterministic.
func skillsByLevel(perf *domain.UserPerformance) []domain.Skill {
	ranked := domain.ScoredSkills()
	sort.SliceStable(ranked, func(i, j int) bool {
		return perf.Level(ranked[i]) < perf.Level(ranked[j])
	})
	return ranked
}

// strugglingSkill scans the recent scores for one below the weak threshold
// and returns the skill of the lowest such score. Mixed sessions carry a
// score too, so a failed mixed session can win focus over a single skill.
func strugglingSkill(scores []domain.SkillScore, params *Params) (domain.Skill, bool) {
	var worst *domain.SkillScore
	for i := range scores {
		s := &scores[i]
		if s.Score >= params.WeakScoreThreshold {
			continue
		}
		if worst == nil || s.Score < worst.Score {
			worst = s
		}
	}

	if worst == nil {
		return "", false
	}
	return worst.Skill, true
}
