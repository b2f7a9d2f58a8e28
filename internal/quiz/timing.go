package quiz

import (
	"os"
	"time"
)

// Timing names every suspension point of a session. All waits the
// controller performs go through these values, so tests can shrink them
// to near-zero.
type Timing struct {
	// AnswerDelay is the pause between resolving and clicking, pacing the
	// session like a human and letting entry animations finish.
	AnswerDelay time.Duration

	// QuestionTimeout bounds the wait for option elements to render.
	QuestionTimeout time.Duration

	// StabilizationDelay follows a click, letting visual feedback settle
	// before transition detection starts.
	StabilizationDelay time.Duration

	// TransitionTimeout bounds transition detection. Kept independent of
	// QuestionTimeout rather than derived from it; the two are tuned
	// separately.
	TransitionTimeout time.Duration

	// CloseDelay is the grace pause before teardown, keeping the tail of
	// the session on the recording.
	CloseDelay time.Duration
}

// DefaultTiming returns the stock pacing.
func DefaultTiming() Timing {
	return Timing{
		AnswerDelay:        3 * time.Second,
		QuestionTimeout:    10 * time.Second,
		StabilizationDelay: 1 * time.Second,
		TransitionTimeout:  2 * time.Second,
		CloseDelay:         3 * time.Second,
	}
}

// TimingFromEnv builds a Timing from QUIZPILOT_* environment variables
// (Go duration syntax, e.g. "1500ms"), falling back to defaults for unset
// or unparseable values.
func TimingFromEnv() Timing {
	t := DefaultTiming()
	overrideDuration(&t.AnswerDelay, "QUIZPILOT_ANSWER_DELAY")
	overrideDuration(&t.QuestionTimeout, "QUIZPILOT_QUESTION_TIMEOUT")
	overrideDuration(&t.StabilizationDelay, "QUIZPILOT_STABILIZATION_DELAY")
	overrideDuration(&t.TransitionTimeout, "QUIZPILOT_TRANSITION_TIMEOUT")
	overrideDuration(&t.CloseDelay, "QUIZPILOT_CLOSE_DELAY")
	return t
}

func overrideDuration(dst *time.Duration, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	if d, err := time.ParseDuration(v); err == nil && d >= 0 {
		*dst = d
	}
}
