package mocks

import (
	"context"

	"github.com/phrazzld/pace-api/internal/content"
)

// MockBank implements content.Bank for testing
type MockBank struct {
	// QuestionsFn allows test cases to mock the Questions behavior
	QuestionsFn func(ctx context.Context, req content.Request) ([]content.Question, error)

	// Default values used when QuestionsFn isn't defined
	Result []content.Question
	Err    error
}

// Compile-time check that MockBank implements content.Bank
var _ content.Bank = (*MockBank)(nil)

// Questions implements the content.Bank interface
func (m *MockBank) Questions(ctx context.Context, req content.Request) ([]content.Question, error) {
	if m.QuestionsFn != nil {
		return m.QuestionsFn(ctx, req)
	}
	return m.Result, m.Err
}
