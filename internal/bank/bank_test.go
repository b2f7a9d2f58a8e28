package bank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	t.Run("rejects empty matcher", func(t *testing.T) {
		_, err := NewEntry("", "Argentina")
		assert.ErrorIs(t, err, ErrEmptyMatcher)
	})

	t.Run("keeps answer verbatim", func(t *testing.T) {
		e, err := NewEntry("Which country", " Argentina ")
		require.NoError(t, err)
		assert.Equal(t, " Argentina ", e.Answer)
	})
}

func TestNewPatternEntry(t *testing.T) {
	t.Run("rejects empty pattern", func(t *testing.T) {
		_, err := NewPatternEntry("", "x")
		assert.ErrorIs(t, err, ErrEmptyMatcher)
	})

	t.Run("rejects invalid pattern", func(t *testing.T) {
		_, err := NewPatternEntry("(", "x")
		assert.Error(t, err)
	})
}

func TestEntryMatches(t *testing.T) {
	exact := MustEntry("FIFA World Cup in 2022", "Argentina")
	pattern, err := NewPatternEntry(`World Cup in \d{4}`, "Argentina")
	require.NoError(t, err)

	tests := []struct {
		name     string
		entry    Entry
		question string
		want     bool
	}{
		{"exact substring hit", exact, "Which country won the FIFA World Cup in 2022?", true},
		{"exact substring miss", exact, "Which country won the FIFA World Cup in 2018?", false},
		{"pattern hit", pattern, "Which country won the FIFA World Cup in 2018?", true},
		{"pattern miss", pattern, "What is the capital of Australia?", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.Matches(tt.question))
		})
	}
}

func TestBankFind(t *testing.T) {
	b := New(
		MustEntry("World Cup", "first"),
		MustEntry("World Cup in 2022", "second"),
	)

	t.Run("first matching entry wins", func(t *testing.T) {
		e, ok := b.Find("Which country won the FIFA World Cup in 2022?")
		require.True(t, ok)
		assert.Equal(t, "first", e.Answer)
	})

	t.Run("miss", func(t *testing.T) {
		_, ok := b.Find("What is the capital of Australia?")
		assert.False(t, ok)
	})

	t.Run("zero value bank always misses", func(t *testing.T) {
		var empty Bank
		_, ok := empty.Find("anything")
		assert.False(t, ok)
		assert.Equal(t, 0, empty.Len())
	})
}

func TestDefault(t *testing.T) {
	b := Default()
	require.NotZero(t, b.Len())

	e, ok := b.Find("Which country won the FIFA World Cup in 2022?")
	require.True(t, ok)
	assert.Equal(t, "Argentina", e.Answer)
}
