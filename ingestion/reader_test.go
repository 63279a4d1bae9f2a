package ingestion

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected []string
	}{
		{"empty", "", 0, []string{}},
		{"unix newlines", "the kitten\nsleeps\n", 0, []string{"the kitten", "sleeps"}},
		{"crlf newlines", "the kitten\r\nsleeps\r\n", 0, []string{"the kitten", "sleeps"}},
		{"no final newline", "a\nb", 0, []string{"a", "b"}},
		{"blank lines kept", "a\n\nb\n", 0, []string{"a", "", "b"}},
		{"max records", "a\nb\nc\nd\n", 2, []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, skipped, err := ReadLines(strings.NewReader(tt.input), tt.max, 0)
			require.NoError(t, err)
			assert.Zero(t, skipped)
			assert.Equal(t, tt.expected, lines)
		})
	}
}

func TestReadLines_SkipsLongLines(t *testing.T) {
	input := "short\n" + strings.Repeat("x", 40) + "\nafter\n"

	lines, skipped, err := ReadLines(strings.NewReader(input), 0, 16)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, []string{"short", "after"}, lines)

	lines, skipped, err = ReadLines(strings.NewReader(input), 0, 40)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Len(t, lines, 3)

	// Below the reader's minimum buffer the length check still applies.
	lines, skipped, err = ReadLines(strings.NewReader("tiny\ntoolong\nok\n"), 0, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, []string{"tiny", "ok"}, lines)

	// A line of exactly the limit with a CRLF terminator is accepted.
	lines, skipped, err = ReadLines(strings.NewReader(strings.Repeat("y", 16)+"\r\n"), 0, 16)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Equal(t, []string{strings.Repeat("y", 16)}, lines)

	// The default limit applies when none is given, and skipped lines do not
	// count toward the record cap.
	input = strings.Repeat("z", DefaultMaxLineBytes*3) + "\nkept\nnot read\n"
	lines, skipped, err = ReadLines(strings.NewReader(input), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, []string{"kept"}, lines)

	// An overlong final line without a newline is dropped too.
	lines, skipped, err = ReadLines(strings.NewReader("a\n"+strings.Repeat("q", 100)), 0, 16)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, []string{"a"}, lines)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.csv")
	require.NoError(t, os.WriteFile(path, []byte("a fluffy fuzzy cat\nthe kitten sleeps\n"), 0o644))

	lines, skipped, err := ReadFile(path, 0, 0)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Equal(t, []string{"a fluffy fuzzy cat", "the kitten sleeps"}, lines)

	_, _, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"), 0, 0)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
