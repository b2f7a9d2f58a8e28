// Package bank holds the answer bank: an ordered collection of known
// question-to-answer correspondences. A bank is built once at session
// start and passed around as an immutable value.
package bank

import (
	"errors"
	"regexp"
	"strings"
)

// ErrEmptyMatcher is returned when an entry is constructed without a matcher.
var ErrEmptyMatcher = errors.New("bank: entry matcher must be non-empty")

// Entry maps a question matcher to its known answer. The matcher is either
// exact text (matched as a substring of the rendered question) or a
// compiled pattern.
type Entry struct {
	text    string
	pattern *regexp.Regexp

	// Answer is compared against rendered option text, exact after trim.
	Answer string
}

// NewEntry builds an entry with an exact-text matcher.
func NewEntry(matcher, answer string) (Entry, error) {
	if matcher == "" {
		return Entry{}, ErrEmptyMatcher
	}
	return Entry{text: matcher, Answer: answer}, nil
}

// NewPatternEntry builds an entry whose matcher is a regular expression
// tested against the rendered question text.
func NewPatternEntry(pattern, answer string) (Entry, error) {
	if pattern == "" {
		return Entry{}, ErrEmptyMatcher
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Entry{}, err
	}
	return Entry{pattern: re, Answer: answer}, nil
}

// MustEntry is NewEntry for static literals; panics on an empty matcher.
func MustEntry(matcher, answer string) Entry {
	e, err := NewEntry(matcher, answer)
	if err != nil {
		panic(err)
	}
	return e
}

// Matches reports whether this entry applies to the given question text.
// Exact-text matchers match as substrings; patterns are tested as regexps.
func (e Entry) Matches(question string) bool {
	if e.pattern != nil {
		return e.pattern.MatchString(question)
	}
	return strings.Contains(question, e.text)
}

// Matcher returns the entry's matcher in human-readable form, for logging.
func (e Entry) Matcher() string {
	if e.pattern != nil {
		return e.pattern.String()
	}
	return e.text
}

// Bank is an immutable ordered sequence of entries. The zero value is an
// empty bank, which is valid: every lookup misses and the caller falls
// back to random selection.
type Bank struct {
	entries []Entry
}

// New builds a bank from entries, preserving order.
func New(entries ...Entry) Bank {
	return Bank{entries: entries}
}

// Len returns the number of entries.
func (b Bank) Len() int { return len(b.entries) }

// Find returns the first entry (in bank order) whose matcher matches the
// question text. Later matching entries are never consulted.
func (b Bank) Find(question string) (Entry, bool) {
	for _, e := range b.entries {
		if e.Matches(question) {
			return e, true
		}
	}
	return Entry{}, false
}
