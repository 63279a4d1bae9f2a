package search

import (
	"slices"
	"testing"

	"github.com/poiesic/fuzzscan/distance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens(t *testing.T) {
	tests := []struct {
		name     string
		record   string
		expected []string
	}{
		{"empty", "", nil},
		{"only spaces", " \t  \f", nil},
		{"single word", "kitten", []string{"kitten"}},
		{"collapses runs", "  the \t kitten\vsleeps  ", []string{"the", "kitten", "sleeps"}},
		{"punctuation kept", "fuzzy, cat!", []string{"fuzzy,", "cat!"}},
		{"case kept", "Fuzzy FUZZY", []string{"Fuzzy", "FUZZY"}},
		{"non-ascii space is a byte", "a b", []string{"a b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slices.Collect(Tokens(tt.record)))
		})
	}
}

func TestTokens_StopsEarly(t *testing.T) {
	var seen []string
	for token := range Tokens("one two three four") {
		seen = append(seen, token)
		if token == "two" {
			break
		}
	}
	assert.Equal(t, []string{"one", "two"}, seen)
}

func TestMatchRecord(t *testing.T) {
	engine := distance.NewEngine()
	defer engine.Close()
	leven, err := engine.Matcher(distance.Levenshtein)
	require.NoError(t, err)

	hits, err := MatchRecord("a fluffy fuzzy cat", "fuzzy", 1, leven)
	require.NoError(t, err)
	assert.Equal(t, 1, hits)

	hits, err = MatchRecord("fuzzy fuzzy fuzz", "fuzzy", 1, leven)
	require.NoError(t, err)
	assert.Equal(t, 3, hits)

	hits, err = MatchRecord("a fluffy fuzzy cat", "", 5, leven)
	require.NoError(t, err)
	assert.Zero(t, hits)

	hits, err = MatchRecord("   ", "fuzzy", 5, leven)
	require.NoError(t, err)
	assert.Zero(t, hits)
}
