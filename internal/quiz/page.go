// Package quiz runs the question-answering loop for one session: wait for
// a question to render, extract it, resolve the answer, select it, and
// watch for the transition to the next question or the end of the quiz.
package quiz

import (
	"context"
	"fmt"
	"time"

	"quizpilot/internal/resolver"
)

// Question is a snapshot of the rendered question state, reconstructed
// fresh every loop iteration. It is never cached across iterations.
type Question struct {
	Counter string
	Text    string
	Options []resolver.Option
	Score   string
}

// Page is the live quiz surface the controller drives. Implementations
// talk to a real browser; tests use an in-memory fake. All methods take a
// context and must honor its cancellation.
type Page interface {
	// WaitForOptions blocks until at least one option element is visible,
	// or returns a *TimeoutError when none appears within timeout.
	WaitForOptions(ctx context.Context, timeout time.Duration) error

	// ReadQuestion snapshots the counter, question text, options and score
	// as currently rendered. Zero options is a valid read and signals the
	// end of the quiz.
	ReadQuestion(ctx context.Context) (Question, error)

	// SelectOption performs the UI action choosing the option at index.
	SelectOption(ctx context.Context, index int) error

	// WaitForQuestionChange reports whether the displayed question text
	// diverged from previous within timeout. A timeout returns false, not
	// an error: it usually means the last question was just answered.
	WaitForQuestionChange(ctx context.Context, previous string, timeout time.Duration) (bool, error)

	// CaptureDiagnostic persists a screenshot tagged with tag. Failures
	// are the implementation's to log; the loop proceeds regardless.
	CaptureDiagnostic(ctx context.Context, tag string) error
}

// TimeoutError reports that an awaited page state never materialized.
type TimeoutError struct {
	Waiting string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s waiting for %s", e.Timeout, e.Waiting)
}
