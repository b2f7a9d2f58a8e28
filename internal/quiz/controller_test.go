package quiz

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizpilot/internal/bank"
	"quizpilot/internal/resolver"
)

// fakePage scripts a quiz as a sequence of question states. Selecting an
// option advances the cursor, mimicking the page swapping in the next
// question. No real waiting happens anywhere.
type fakePage struct {
	questions []Question

	cursor      int
	waits       int
	reads       int
	selected    []int
	diagnostics []string

	failWaitAt int   // wait call number that times out; 0 means never
	selectErr  error // returned by every SelectOption when set
}

func (f *fakePage) WaitForOptions(_ context.Context, timeout time.Duration) error {
	f.waits++
	if f.failWaitAt != 0 && f.waits == f.failWaitAt {
		return &TimeoutError{Waiting: "options", Timeout: timeout}
	}
	if f.cursor >= len(f.questions) {
		return &TimeoutError{Waiting: "options", Timeout: timeout}
	}
	return nil
}

func (f *fakePage) ReadQuestion(context.Context) (Question, error) {
	f.reads++
	return f.questions[f.cursor], nil
}

func (f *fakePage) SelectOption(_ context.Context, index int) error {
	if f.selectErr != nil {
		return f.selectErr
	}
	f.selected = append(f.selected, index)
	f.cursor++
	return nil
}

func (f *fakePage) WaitForQuestionChange(_ context.Context, previous string, _ time.Duration) (bool, error) {
	if f.cursor >= len(f.questions) {
		return false, nil
	}
	return f.questions[f.cursor].Text != previous, nil
}

func (f *fakePage) CaptureDiagnostic(_ context.Context, tag string) error {
	f.diagnostics = append(f.diagnostics, tag)
	return nil
}

func question(n int, options ...string) Question {
	q := Question{
		Counter: fmt.Sprintf("Question %d", n),
		Text:    fmt.Sprintf("Question text %d?", n),
		Score:   fmt.Sprintf("Score: %d", n-1),
	}
	for i, o := range options {
		q.Options = append(q.Options, resolver.Option{Index: i, Text: o})
	}
	return q
}

// zeroTiming keeps tests instant; every suspension point collapses.
func zeroTiming() Timing { return Timing{} }

func TestControllerAnswersFromBank(t *testing.T) {
	page := &fakePage{questions: []Question{
		{Text: "Which country won the FIFA World Cup in 2022?", Options: []resolver.Option{
			{Index: 0, Text: "Argentina"}, {Index: 1, Text: "Brazil"},
		}},
		question(2), // terminal: no options
	}}
	b := bank.New(bank.MustEntry("FIFA World Cup in 2022", "Argentina"))

	res := NewController(page, b, zeroTiming(), 0, nil).Run(context.Background())

	assert.Equal(t, ReasonNoOptions, res.Reason)
	assert.Equal(t, 1, res.QuestionsAnswered)
	assert.Equal(t, []int{0}, page.selected)
}

func TestControllerTerminatesOnEmptyOptions(t *testing.T) {
	page := &fakePage{questions: []Question{
		question(1, "A", "B"),
		question(2, "A", "B"),
		question(3, "A", "B"),
		question(4), // end screen, zero options
	}}

	res := NewController(page, bank.Bank{}, zeroTiming(), 0, nil).Run(context.Background())

	assert.Equal(t, ReasonNoOptions, res.Reason)
	assert.Equal(t, 3, res.QuestionsAnswered)
	assert.Empty(t, page.diagnostics, "normal completion must not capture diagnostics")
}

func TestControllerCompletedWhenQuizRunsOut(t *testing.T) {
	// Two questions, then nothing: the transition never happens and no
	// further options render. That is a clean finish, not an error.
	page := &fakePage{questions: []Question{
		question(1, "A", "B"),
		question(2, "A", "B"),
	}}

	res := NewController(page, bank.Bank{}, zeroTiming(), 0, nil).Run(context.Background())

	assert.Equal(t, ReasonCompleted, res.Reason)
	assert.Equal(t, 2, res.QuestionsAnswered)
	assert.Empty(t, page.diagnostics)
}

func TestControllerStopsAtQuestionCap(t *testing.T) {
	var qs []Question
	for n := 1; n <= 15; n++ {
		qs = append(qs, question(n, "A", "B", "C"))
	}
	page := &fakePage{questions: qs}

	res := NewController(page, bank.Bank{}, zeroTiming(), 10, nil).Run(context.Background())

	assert.Equal(t, ReasonMaxReached, res.Reason)
	assert.Equal(t, 10, res.QuestionsAnswered)
	assert.Equal(t, 10, page.reads, "no 11th extraction cycle may run")
	assert.Equal(t, 10, page.waits)
}

func TestControllerOptionsTimeoutIsFatal(t *testing.T) {
	page := &fakePage{
		questions: []Question{
			question(1, "A", "B"),
			question(2, "A", "B"),
			question(3, "A", "B"),
		},
		failWaitAt: 3,
	}

	res := NewController(page, bank.Bank{}, zeroTiming(), 0, nil).Run(context.Background())

	assert.Equal(t, ReasonError, res.Reason)
	assert.Equal(t, 2, res.QuestionsAnswered)
	assert.Equal(t, []string{"question-3"}, page.diagnostics)
}

func TestControllerSelectFailureAborts(t *testing.T) {
	page := &fakePage{
		questions: []Question{question(1, "A", "B")},
		selectErr: errors.New("element detached"),
	}

	res := NewController(page, bank.Bank{}, zeroTiming(), 0, nil).Run(context.Background())

	assert.Equal(t, ReasonError, res.Reason)
	assert.Equal(t, 0, res.QuestionsAnswered)
	assert.Equal(t, []string{"question-1"}, page.diagnostics)
}

func TestControllerHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	page := &fakePage{questions: []Question{question(1, "A", "B")}}
	res := NewController(page, bank.Bank{}, zeroTiming(), 0, nil).Run(ctx)

	assert.Equal(t, ReasonError, res.Reason)
}

func TestDefaultTiming(t *testing.T) {
	tm := DefaultTiming()
	assert.Equal(t, 3*time.Second, tm.AnswerDelay)
	assert.Equal(t, 10*time.Second, tm.QuestionTimeout)
	assert.Equal(t, time.Second, tm.StabilizationDelay)
	assert.Equal(t, 2*time.Second, tm.TransitionTimeout)
	assert.Equal(t, 3*time.Second, tm.CloseDelay)
}

func TestTimingFromEnv(t *testing.T) {
	t.Setenv("QUIZPILOT_ANSWER_DELAY", "50ms")
	t.Setenv("QUIZPILOT_TRANSITION_TIMEOUT", "bogus")

	tm := TimingFromEnv()
	assert.Equal(t, 50*time.Millisecond, tm.AnswerDelay)
	assert.Equal(t, 2*time.Second, tm.TransitionTimeout, "unparseable values keep the default")
}

func TestTimeoutErrorMessage(t *testing.T) {
	err := &TimeoutError{Waiting: "options", Timeout: 10 * time.Second}
	require.Contains(t, err.Error(), "options")
	require.Contains(t, err.Error(), "10s")
}
