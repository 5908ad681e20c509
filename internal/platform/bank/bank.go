// Package bank provides the built-in static question bank. It serves
// curated IELTS-style questions from an in-memory corpus with deterministic,
// seed-driven selection so the same request always produces the same goal.
package bank

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/pace-api/internal/content"
	"github.com/phrazzld/pace-api/internal/domain"
)

// StaticBank serves questions from the compiled-in corpus.
type StaticBank struct {
	logger *slog.Logger
	corpus map[domain.Skill][]content.Question
}

// Compile-time check that StaticBank implements content.Bank
var _ content.Bank = (*StaticBank)(nil)

// NewStaticBank creates a StaticBank backed by the built-in corpus.
func NewStaticBank(logger *slog.Logger) *StaticBank {
	// ALLOW-PANIC: Constructor enforces required dependency
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &StaticBank{
		logger: logger.With(slog.String("component", "static_bank")),
		corpus: corpus,
	}
}

// Questions implements content.Bank. Selection is a pure function of the
// request: questions matching the difficulty are rotated by the seed and
// the first req.Count are returned. Writing requests return a single
// prompt, and mixed requests draw one question per skill in turn.
func (b *StaticBank) Questions(ctx context.Context, req content.Request) ([]content.Question, error) {
	if req.Count <= 0 {
		return nil, fmt.Errorf("%w: non-positive count %d", content.ErrNoQuestions, req.Count)
	}

	if req.Skill == domain.SkillMixed {
		return b.mixedQuestions(req)
	}

	pool, ok := b.corpus[req.Skill]
	if !ok {
		return nil, fmt.Errorf("%w: unknown skill %q", content.ErrNoQuestions, req.Skill)
	}

	matched := filterByDifficulty(pool, req.Difficulty)
	if len(matched) == 0 {
		b.logger.Debug("no questions for difficulty, falling back to full pool",
			slog.String("skill", string(req.Skill)),
			slog.String("difficulty", string(req.Difficulty)))
		matched = pool
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("%w: skill %q", content.ErrNoQuestions, req.Skill)
	}

	count := req.Count
	// A writing session works through a single prompt.
	if req.Skill == domain.SkillWriting {
		count = 1
	}

	return pick(matched, req.Seed, count), nil
}

// mixedQuestions interleaves one question per scored skill until the
// requested count is reached, so blended sessions touch every skill.
func (b *StaticBank) mixedQuestions(req content.Request) ([]content.Question, error) {
	perSkill := make([][]content.Question, 0, 4)
	for _, skill := range domain.ScoredSkills() {
		pool := filterByDifficulty(b.corpus[skill], req.Difficulty)
		if len(pool) == 0 {
			pool = b.corpus[skill]
		}
		if len(pool) > 0 {
			perSkill = append(perSkill, rotate(pool, req.Seed))
		}
	}

	if len(perSkill) == 0 {
		return nil, fmt.Errorf("%w: empty corpus", content.ErrNoQuestions)
	}

	selected := make([]content.Question, 0, req.Count)
	for round := 0; len(selected) < req.Count; round++ {
		progressed := false
		for _, pool := range perSkill {
			if round >= len(pool) {
				continue
			}
			progressed = true
			selected = append(selected, pool[round])
			if len(selected) == req.Count {
				break
			}
		}
		if !progressed {
			break
		}
	}

	return selected, nil
}

// filterByDifficulty returns the questions matching the given difficulty,
// preserving corpus order.
func filterByDifficulty(pool []content.Question, difficulty content.Difficulty) []content.Question {
	matched := make([]content.Question, 0, len(pool))
	for _, q := range pool {
		if q.Difficulty == difficulty {
			matched = append(matched, q)
		}
	}
	return matched
}

// rotate returns the pool shifted left by seed positions. The shift keeps
// selection deterministic per seed while varying it day to day.
func rotate(pool []content.Question, seed int64) []content.Question {
	n := len(pool)
	if n == 0 {
		return pool
	}

	offset := int(seed % int64(n))
	if offset < 0 {
		offset += n
	}

	rotated := make([]content.Question, 0, n)
	rotated = append(rotated, pool[offset:]...)
	rotated = append(rotated, pool[:offset]...)
	return rotated
}

// pick returns up to count questions from the pool, rotated by seed.
func pick(pool []content.Question, seed int64, count int) []content.Question {
	rotated := rotate(pool, seed)
	if count > len(rotated) {
		count = len(rotated)
	}
	return rotated[:count]
}
