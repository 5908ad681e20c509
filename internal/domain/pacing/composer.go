package pacing

import (
	"fmt"
	"strings"

	"github.com/phrazzld/pace-api/internal/content"
	"github.com/phrazzld/pace-api/internal/domain"
)

// titlePromptLength caps how much of the lead question's text appears in
// the goal title.
const titlePromptLength = 50

// composeContent builds the renderable payload for a goal from the
// questions sourced for it. The lead question seeds the title and
// description; the rest fill the micro-assessment.
func composeContent(skill domain.Skill, questions []content.Question, params *Params) (title, description string, payload domain.GoalContent) {
	label := skillLabel(skill)

	payload = domain.GoalContent{
		Lesson: domain.Lesson{
			Title:    fmt.Sprintf("%s Essentials", label),
			VideoURL: fmt.Sprintf("/videos/%s-tutorial.mp4", skill),
			KeyPoints: []string{
				fmt.Sprintf("Understand %s question types and strategies", skill),
				"Practice with authentic IELTS materials",
				fmt.Sprintf("Improve your %s band score", skill),
			},
		},
		Exercises: []domain.Exercise{
			{
				Kind:             fmt.Sprintf("%s_practice", skill),
				Instructions:     fmt.Sprintf("Complete this %s exercise based on real IELTS test format", skill),
				TimeLimitMinutes: 15,
			},
		},
		Assessment: domain.MicroAssessment{
			Questions:        assessmentQuestions(questions, params.MaxAssessmentQuestions),
			TimeLimitMinutes: params.AssessmentMinutes,
		},
	}

	if len(questions) == 0 {
		// Degraded goal: the payload stays valid with an empty assessment.
		title = fmt.Sprintf("%s Practice", label)
		description = fmt.Sprintf("Focus on %s with this IELTS-style session.", skill)
		return title, description, payload
	}

	lead := questions[0]
	title = fmt.Sprintf("%s Practice - %s...", label, truncate(lead.Prompt, titlePromptLength))
	description = strings.TrimSpace(
		fmt.Sprintf("Focus on %s with this IELTS-style question. %s", skill, lead.Explanation),
	)
	payload.Lesson.Description = description
	return title, description, payload
}

// assessmentQuestions converts up to max sourced questions into the
// micro-assessment format.
func assessmentQuestions(questions []content.Question, max int) []domain.AssessmentQuestion {
	if len(questions) > max {
		questions = questions[:max]
	}

	converted := make([]domain.AssessmentQuestion, 0, len(questions))
	for _, q := range questions {
		converted = append(converted, domain.AssessmentQuestion{
			Prompt:  q.Prompt,
			Type:    q.Type,
			Options: q.Options,
			Answer:  q.Answer,
		})
	}
	return converted
}

// skillLabel renders a skill for display, capitalizing the first letter.
func skillLabel(skill domain.Skill) string {
	s := string(skill)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// truncate shortens s to at most n bytes. Question text is ASCII, so a
// byte cut does not split a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
