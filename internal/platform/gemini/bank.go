package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/phrazzld/pace-api/internal/config"
	"github.com/phrazzld/pace-api/internal/content"
)

// Retry behavior for API calls.
const (
	maxRetries       = 3
	baseRetryDelay   = 2 * time.Second
	defaultModelName = "gemini-2.0-flash"
)

// GeminiBank implements the content.Bank interface using Google's Gemini
// API to generate IELTS practice questions on demand.
type GeminiBank struct {
	logger *slog.Logger
	client *genai.Client
	model  string
}

// Compile-time check that GeminiBank implements content.Bank
var _ content.Bank = (*GeminiBank)(nil)

// NewGeminiBank creates a new GeminiBank with the provided dependencies.
func NewGeminiBank(ctx context.Context, logger *slog.Logger, cfg config.ContentConfig) (*GeminiBank, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", ErrInvalidConfig)
	}

	model := cfg.GeminiModel
	if model == "" {
		model = defaultModelName
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", ErrInvalidConfig, err)
	}

	return &GeminiBank{
		logger: logger.With(slog.String("component", "gemini_bank")),
		client: client,
		model:  model,
	}, nil
}

// Questions implements the content.Bank interface. It prompts the model for
// the requested questions and parses the structured JSON response.
func (b *GeminiBank) Questions(ctx context.Context, req content.Request) ([]content.Question, error) {
	if req.Count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive", content.ErrNoQuestions)
	}

	prompt := buildPrompt(req)

	text, err := b.callWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	questions, err := parseQuestions(text, req)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: model returned no usable questions", content.ErrNoQuestions)
	}

	b.logger.DebugContext(ctx, "generated questions from gemini",
		"skill", req.Skill,
		"difficulty", req.Difficulty,
		"count", len(questions))

	return questions, nil
}

// callWithRetry makes a call to the Gemini API with exponential backoff for
// transient errors. Permanent errors (safety blocks, unparseable responses)
// are returned immediately without retrying.
func (b *GeminiBank) callWithRetry(ctx context.Context, prompt string) (string, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		attemptNum := attempt + 1
		b.logger.DebugContext(ctx, "making gemini API call",
			"attempt", attemptNum,
			"max_attempts", maxRetries+1)

		resp, err := b.client.Models.GenerateContent(ctx, b.model, genai.Text(prompt), &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		})

		switch {
		case err != nil:
			// API-level failures are assumed transient.
			lastErr = err
			b.logger.WarnContext(ctx, "gemini API call error",
				"error", err,
				"attempt", attemptNum)
		case resp == nil || len(resp.Candidates) == 0:
			return "", fmt.Errorf("%w: no content generated", ErrInvalidResponse)
		case resp.Candidates[0].FinishReason == genai.FinishReasonSafety:
			return "", ErrContentBlocked
		default:
			return resp.Text(), nil
		}

		if attempt >= maxRetries {
			break
		}

		// delay = base * 2^attempt, jittered between 50% and 100%
		backoff := float64(baseRetryDelay) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoff * (0.5 + rng.Float64()*0.5))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", fmt.Errorf("gemini call cancelled: %w", ctx.Err())
		}
	}

	return "", fmt.Errorf("%w: exceeded %d attempts: %v", ErrTransientFailure, maxRetries+1, lastErr)
}

// buildPrompt renders the generation instruction for one request.
func buildPrompt(req content.Request) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Generate %d authentic IELTS %s practice questions at %s difficulty.\n\n",
		req.Count, req.Skill, req.Difficulty)
	sb.WriteString("Respond with a JSON array only, no surrounding text. Each element must have:\n")
	sb.WriteString(`  "id": short unique string` + "\n")
	fmt.Fprintf(&sb, "  %q: always %q\n", "skill", string(req.Skill))
	sb.WriteString(`  "type": one of "multiple_choice", "essay_task2", "task1_academic", "part1", "part2", "part3"` + "\n")
	sb.WriteString(`  "prompt": the question text in real IELTS register` + "\n")
	sb.WriteString(`  "options": array of four answer choices (multiple_choice only)` + "\n")
	sb.WriteString(`  "answer": zero-based index of the correct option, -1 for open-ended types` + "\n")
	fmt.Fprintf(&sb, "  %q: always %q\n", "difficulty", string(req.Difficulty))
	sb.WriteString(`  "explanation": one sentence on why the answer is correct` + "\n")

	return sb.String()
}

// parseQuestions decodes and sanitizes the model's JSON response. Questions
// that do not survive basic validation are dropped rather than failing the
// whole batch.
func parseQuestions(text string, req content.Request) ([]content.Question, error) {
	text = strings.TrimSpace(text)
	// Some models wrap JSON in a markdown fence despite the MIME type hint.
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var raw []content.Question
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", ErrInvalidResponse, err)
	}

	questions := make([]content.Question, 0, len(raw))
	for _, q := range raw {
		if q.Prompt == "" {
			continue
		}
		if q.Type == content.TypeMultipleChoice {
			if len(q.Options) == 0 || q.Answer < 0 || q.Answer >= len(q.Options) {
				continue
			}
		}
		// The model occasionally drifts on these fields; pin them to the
		// request so downstream filtering stays consistent.
		q.Skill = req.Skill
		q.Difficulty = req.Difficulty
		questions = append(questions, q)
		if len(questions) == req.Count {
			break
		}
	}

	return questions, nil
}
