package bank

import (
	"context"
	"log/slog"

	"github.com/phrazzld/pace-api/internal/content"
)

// FallbackBank tries a primary question source and falls back to a
// secondary one when the primary fails or comes up empty. It is used to
// back the curated static corpus with LLM generation for gaps the corpus
// does not cover.
type FallbackBank struct {
	primary   content.Bank
	secondary content.Bank
	logger    *slog.Logger
}

// Compile-time check that FallbackBank implements content.Bank
var _ content.Bank = (*FallbackBank)(nil)

// NewFallbackBank creates a bank that consults primary first and secondary
// on any primary failure.
func NewFallbackBank(primary, secondary content.Bank, logger *slog.Logger) *FallbackBank {
	// ALLOW-PANIC: Constructor enforces required dependencies
	if primary == nil {
		panic("primary bank cannot be nil")
	}
	if secondary == nil {
		panic("secondary bank cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &FallbackBank{
		primary:   primary,
		secondary: secondary,
		logger:    logger.With(slog.String("component", "fallback_bank")),
	}
}

// Questions implements the content.Bank interface.
func (b *FallbackBank) Questions(ctx context.Context, req content.Request) ([]content.Question, error) {
	questions, err := b.primary.Questions(ctx, req)
	if err == nil && len(questions) > 0 {
		return questions, nil
	}

	b.logger.WarnContext(ctx, "primary question source failed, using fallback",
		"error", err,
		"skill", req.Skill,
		"difficulty", req.Difficulty)

	return b.secondary.Questions(ctx, req)
}
