package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"quizpilot/internal/bank"
	"quizpilot/internal/logg"
	"quizpilot/internal/resolver"
)

// DefaultMaxQuestions is the hard cap on loop iterations.
const DefaultMaxQuestions = 10

// Reason explains why a session ended.
type Reason string

const (
	// ReasonCompleted: the last question was answered, the displayed
	// question never changed afterwards, and no further options rendered.
	ReasonCompleted Reason = "completed"
	// ReasonNoOptions: a question state rendered with zero options. This
	// is the normal end-of-quiz signal, not a failure.
	ReasonNoOptions Reason = "no-options"
	// ReasonError: an iteration failed; diagnostics were captured.
	ReasonError Reason = "error"
	// ReasonMaxReached: the iteration cap was hit while the page kept
	// rendering questions.
	ReasonMaxReached Reason = "max-reached"
)

// Result is produced once, at session end.
type Result struct {
	QuestionsAnswered int
	Reason            Reason
	VideoPath         string
}

// Controller orchestrates the question loop for a single session. One
// logical actor drives the page; every step is strictly sequential.
type Controller struct {
	page Page
	bank bank.Bank
	tm   Timing
	max  int
	log  *zap.Logger
}

// NewController wires a controller over a page and an immutable bank.
// maxQuestions <= 0 uses DefaultMaxQuestions.
func NewController(page Page, b bank.Bank, tm Timing, maxQuestions int, log *zap.Logger) *Controller {
	if maxQuestions <= 0 {
		maxQuestions = DefaultMaxQuestions
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{page: page, bank: b, tm: tm, max: maxQuestions, log: log}
}

// Run executes the loop until the quiz ends, an iteration fails, or the
// question cap is reached. Each question is attempted exactly once; any
// unhandled error aborts the whole session rather than retrying.
func (c *Controller) Run(ctx context.Context) Result {
	answered := 0
	lastUnchanged := false

	for n := 1; n <= c.max; n++ {
		log := c.log.With(zap.Int(logg.Question, n))

		// AwaitingQuestion
		if err := c.page.WaitForOptions(ctx, c.tm.QuestionTimeout); err != nil {
			var te *TimeoutError
			if errors.As(err, &te) && lastUnchanged {
				// Final question answered, nothing new rendered: the quiz
				// ran out, this is a clean finish.
				log.Info("🏁 No further questions rendered, quiz finished")
				return Result{QuestionsAnswered: answered, Reason: ReasonCompleted}
			}
			log.Error("⏰ Options never became visible", zap.Error(err))
			c.diagnose(ctx, n)
			return Result{QuestionsAnswered: answered, Reason: ReasonError}
		}

		// Extracting
		q, err := c.page.ReadQuestion(ctx)
		if err != nil {
			log.Error("💥 Reading question state failed", zap.Error(err))
			c.diagnose(ctx, n)
			return Result{QuestionsAnswered: answered, Reason: ReasonError}
		}
		if len(q.Options) == 0 {
			log.Info("🏁 No options rendered, quiz complete", zap.String("score", q.Score))
			return Result{QuestionsAnswered: answered, Reason: ReasonNoOptions}
		}
		log.Info("❓ Question rendered",
			zap.String("counter", q.Counter),
			zap.String("text", q.Text),
			zap.Int("options", len(q.Options)))

		// Resolving
		dec, err := resolver.Resolve(q.Text, q.Options, c.bank)
		if err != nil {
			log.Error("💥 Resolving failed", zap.Error(err))
			c.diagnose(ctx, n)
			return Result{QuestionsAnswered: answered, Reason: ReasonError}
		}
		if dec.FromBank {
			log.Info("✅ Answer found in bank", zap.Int("option", dec.Index))
		} else {
			log.Warn("🎲 No bank answer matched, selecting at random", zap.Int("option", dec.Index))
		}

		// Delaying
		if err := sleep(ctx, c.tm.AnswerDelay); err != nil {
			return Result{QuestionsAnswered: answered, Reason: ReasonError}
		}

		// Selecting
		if err := c.page.SelectOption(ctx, dec.Index); err != nil {
			log.Error("💥 Selecting option failed", zap.Int("option", dec.Index), zap.Error(err))
			c.diagnose(ctx, n)
			return Result{QuestionsAnswered: answered, Reason: ReasonError}
		}
		answered = n
		if err := sleep(ctx, c.tm.StabilizationDelay); err != nil {
			return Result{QuestionsAnswered: answered, Reason: ReasonError}
		}

		// AwaitingTransition
		changed, err := c.page.WaitForQuestionChange(ctx, q.Text, c.tm.TransitionTimeout)
		if err != nil {
			log.Error("💥 Transition detection failed", zap.Error(err))
			c.diagnose(ctx, n)
			return Result{QuestionsAnswered: answered, Reason: ReasonError}
		}
		lastUnchanged = !changed
		if changed {
			log.Info("➡️  Next question loading", zap.String("score", q.Score))
		} else {
			log.Info("⌛ Question unchanged, possibly the last one")
		}
	}

	c.log.Info("🛑 Question cap reached", zap.Int("max", c.max))
	return Result{QuestionsAnswered: answered, Reason: ReasonMaxReached}
}

// diagnose captures a screenshot tagged with the failing question number.
func (c *Controller) diagnose(ctx context.Context, question int) {
	tag := fmt.Sprintf("question-%d", question)
	if err := c.page.CaptureDiagnostic(ctx, tag); err != nil {
		c.log.Warn("📸 Diagnostic capture failed", zap.String("tag", tag), zap.Error(err))
	}
}

// sleep is a named suspension point honoring context cancellation.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
