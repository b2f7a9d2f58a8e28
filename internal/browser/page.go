package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"quizpilot/internal/quiz"
	"quizpilot/internal/resolver"
)

var _ quiz.Page = (*Session)(nil)

// readTimeoutMs bounds individual text reads during extraction. Reads are
// snapshots; they must not silently turn into long waits.
const readTimeoutMs = 1000

// pollInterval is how often transition detection re-reads the question.
const pollInterval = 250 * time.Millisecond

// WaitForOptions blocks until at least one option element is visible.
func (s *Session) WaitForOptions(_ context.Context, timeout time.Duration) error {
	err := s.page.Locator(selOption).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return &quiz.TimeoutError{Waiting: "option elements", Timeout: timeout}
	}
	return nil
}

// ReadQuestion snapshots the rendered question state. The counter and
// score are best-effort; the question text and option labels are required.
func (s *Session) ReadQuestion(_ context.Context) (quiz.Question, error) {
	q := quiz.Question{}

	text, err := s.page.Locator(selQuestionText).First().InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(readTimeoutMs),
	})
	if err != nil {
		return quiz.Question{}, fmt.Errorf("read question text: %w", err)
	}
	q.Text = text

	q.Counter = s.optionalText(s.page.Locator(selQuestionCounter).First())
	q.Score = s.optionalText(s.page.GetByText(scoreMarker).First())

	options := s.page.Locator(selOption)
	count, err := options.Count()
	if err != nil {
		return quiz.Question{}, fmt.Errorf("count options: %w", err)
	}
	for i := 0; i < count; i++ {
		label, err := options.Nth(i).Locator(selOptionLabel).InnerText(playwright.LocatorInnerTextOptions{
			Timeout: playwright.Float(readTimeoutMs),
		})
		if err != nil {
			return quiz.Question{}, fmt.Errorf("read option %d label: %w", i, err)
		}
		q.Options = append(q.Options, resolver.Option{Index: i, Text: label})
	}

	return q, nil
}

// SelectOption clicks the option at index.
func (s *Session) SelectOption(_ context.Context, index int) error {
	return s.page.Locator(selOption).Nth(index).Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(readTimeoutMs * 5),
	})
}

// WaitForQuestionChange polls the displayed question text until it
// diverges from previous or the timeout passes. A timeout is not an
// error: after the last question no new one renders.
func (s *Session) WaitForQuestionChange(ctx context.Context, previous string, timeout time.Duration) (bool, error) {
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-ticker.C:
			if time.Now().After(deadline) {
				return false, nil
			}
			current, err := s.page.Locator(selQuestionText).First().InnerText(playwright.LocatorInnerTextOptions{
				Timeout: playwright.Float(readTimeoutMs),
			})
			if err != nil {
				// The question element may be mid-swap; keep polling.
				continue
			}
			if current != previous {
				return true, nil
			}
		}
	}
}

// CaptureDiagnostic writes a full-page screenshot named debug-<tag>.png
// to the working directory.
func (s *Session) CaptureDiagnostic(_ context.Context, tag string) error {
	path := fmt.Sprintf("debug-%s.png", tag)
	_, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("capture %s: %w", path, err)
	}
	s.log.Info("📸 Saved diagnostic screenshot", zap.String("path", path))
	return nil
}

// optionalText reads an element's text, returning empty on any failure.
// Used for the counter and score, which are informational only.
func (s *Session) optionalText(loc playwright.Locator) string {
	visible, err := loc.IsVisible()
	if err != nil || !visible {
		return ""
	}
	text, err := loc.InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(readTimeoutMs),
	})
	if err != nil {
		return ""
	}
	return text
}
