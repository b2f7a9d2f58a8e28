// Package resolver decides which rendered option to select for a question.
// It is pure decision logic: no DOM access, no waiting, no side effects
// beyond drawing a random index on the fallback path.
package resolver

import (
	"errors"
	"math/rand"
	"strings"

	"quizpilot/internal/bank"
)

// ErrNoOptions is returned when Resolve is called with no options. The
// loop controller checks for the empty-options termination condition
// before resolving, so hitting this is a caller bug.
var ErrNoOptions = errors.New("resolver: no options to choose from")

// Option is one selectable answer as rendered on the page. Index is the
// option's position in render order and is what the selection layer acts on.
type Option struct {
	Index int
	Text  string
}

// Decision identifies the option to select and whether it came from the
// answer bank or the random fallback.
type Decision struct {
	Index    int
	FromBank bool
}

// Resolve picks the option to select for the given question text.
//
// The first bank entry matching the question wins; among the options, the
// first whose trimmed text exactly equals the entry's trimmed answer is
// chosen. Question matching is deliberately loose (substring/pattern) while
// answer matching is deliberately strict: a bank answer that differs from
// the rendered option text in any way falls through to random selection
// rather than guessing.
func Resolve(question string, options []Option, b bank.Bank) (Decision, error) {
	if len(options) == 0 {
		return Decision{}, ErrNoOptions
	}

	if entry, ok := b.Find(question); ok {
		want := strings.TrimSpace(entry.Answer)
		for _, opt := range options {
			if strings.TrimSpace(opt.Text) == want {
				return Decision{Index: opt.Index, FromBank: true}, nil
			}
		}
	}

	pick := options[rand.Intn(len(options))]
	return Decision{Index: pick.Index, FromBank: false}, nil
}
