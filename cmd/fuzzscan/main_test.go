package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI with args and returns what it wrote to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("FUZZSCAN_CONFIG", "")
	app := newApp()
	var out, errOut bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.Run(append([]string{"fuzzscan", "--log-level", "error"}, args...))
	return out.String(), err
}

func writeCorpus(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tweets.csv")
	contents := "the kitten sleeps\na fluffy fuzzy cat\r\ncompletely unrelated text\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestSetupLogger(t *testing.T) {
	for _, level := range []string{"debug", "INFO", "warn", "error"} {
		assert.NoError(t, setupLogger(level))
	}
	err := setupLogger("verbose")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestSearchCommand_File(t *testing.T) {
	corpus := writeCorpus(t)

	out, err := run(t, "search", "--file", corpus, "--threshold", "1", "fluzzy")
	require.NoError(t, err)
	assert.Contains(t, out, `Found 1 of 3 records matching "fluzzy" (levenshtein, threshold 1)`)
	assert.Contains(t, out, "  1: a fluffy fuzzy cat")

	out, err = run(t, "search", "--file", corpus, "--metric", "brute", "kitten")
	require.NoError(t, err)
	assert.Contains(t, out, `Found 1 of 3 records matching "kitten" (bruteforce)`)
	assert.Contains(t, out, "  0: the kitten sleeps")

	out, err = run(t, "search", "--file", corpus, "--show", "0", "zebra")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 0 of 3 records")
}

func TestSearchCommand_Errors(t *testing.T) {
	corpus := writeCorpus(t)

	_, err := run(t, "search", "fuzzy")
	assert.ErrorIs(t, err, errNoCorpus)

	_, err = run(t, "search", "--file", corpus)
	assert.Error(t, err)

	_, err = run(t, "search", "--file", corpus, "--metric", "jaro", "fuzzy")
	assert.Error(t, err)

	_, err = run(t, "search", "--file", corpus, "--threshold", "-1", "fuzzy")
	assert.Error(t, err)
}

func TestLoadAndSearchDatabase(t *testing.T) {
	corpus := writeCorpus(t)
	dbPath := filepath.Join(t.TempDir(), "db")

	out, err := run(t, "load", "--file", corpus, "--db", dbPath, "--quiet")
	require.NoError(t, err)
	assert.Contains(t, out, "Read 3 lines: 3 stored, 0 already loaded, 0 duplicates")

	out, err = run(t, "load", "--file", corpus, "--db", dbPath, "--quiet")
	require.NoError(t, err)
	assert.Contains(t, out, "0 stored, 3 already loaded")

	out, err = run(t, "load", "--file", corpus, "--db", dbPath, "--quiet", "--reset")
	require.NoError(t, err)
	assert.Contains(t, out, "3 stored, 0 already loaded")

	out, err = run(t, "search", "--db", dbPath, "--threshold", "1", "fuzzy")
	require.NoError(t, err)
	assert.Contains(t, out, `Found 1 of 3 records matching "fuzzy"`)
	assert.Contains(t, out, "  1: a fluffy fuzzy cat")

	out, err = run(t, "bench", "--db", dbPath, "fuzzy")
	require.NoError(t, err)
	assert.Contains(t, out, `Searching 3 records for "fuzzy"`)
}

func TestLoadCommand_ReplacesLongerCorpus(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "db")
	long := filepath.Join(dir, "long.csv")
	short := filepath.Join(dir, "short.csv")
	require.NoError(t, os.WriteFile(long, []byte("a\nb\nc\nold zebra\nold zebra two\n"), 0o644))
	overlong := strings.Repeat("zebra ", 400)
	require.NoError(t, os.WriteFile(short, []byte("x\n"+overlong+"\ny\nz\n"), 0o644))

	_, err := run(t, "load", "--file", long, "--db", dbPath, "--quiet")
	require.NoError(t, err)

	out, err := run(t, "load", "--file", short, "--db", dbPath, "--quiet")
	require.NoError(t, err)
	assert.Contains(t, out, "Read 3 lines: 3 stored")

	out, err = run(t, "search", "--db", dbPath, "--metric", "brute", "zebra")
	require.NoError(t, err)
	assert.Contains(t, out, `Found 0 of 3 records matching "zebra"`)
}

func TestLoadCommand_RequiresPaths(t *testing.T) {
	_, err := run(t, "load", "--db", t.TempDir())
	assert.Error(t, err)

	_, err = run(t, "load", "--file", writeCorpus(t))
	assert.Error(t, err)
}

func TestBenchCommand(t *testing.T) {
	corpus := writeCorpus(t)

	out, err := run(t, "bench", "--file", corpus, "--threshold", "1", "--expanded-threshold", "2", "--show", "3", "fuzzy")
	require.NoError(t, err)
	lower := strings.ToLower(out)
	for _, name := range []string{"levenshtein", "hamming", "bruteforce"} {
		assert.Contains(t, lower, name)
	}
	assert.Contains(t, out, "  1: a fluffy fuzzy cat")

	_, err = run(t, "bench", "--file", corpus, "--threshold", "3", "--expanded-threshold", "1", "fuzzy")
	assert.Error(t, err)
}

func TestCompareCommand(t *testing.T) {
	out, err := run(t, "compare", "kitten", "sitting")
	require.NoError(t, err)
	assert.Contains(t, out, `"kitten" vs "sitting"`)
	assert.Contains(t, out, "levenshtein")
	assert.Contains(t, out, "false")

	_, err = run(t, "compare", "kitten")
	assert.Error(t, err)
}

func TestConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fuzzscan.toml")
	require.NoError(t, os.WriteFile(path, []byte("[search]\nmetric = \"hamming\"\n"), 0o644))

	out, err := run(t, "--config", path, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "[search]")
	assert.Contains(t, out, "hamming")

	_, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.toml"), "config")
	assert.Error(t, err)
}

func TestRenderTable(t *testing.T) {
	assert.Empty(t, renderTable(nil, nil))

	out := renderTable([]string{"Metric", "Distance"}, [][]string{{"hamming", "3"}, {"short"}}, 2)
	assert.Contains(t, out, "Metric")
	assert.Contains(t, out, "hamming")
	assert.Contains(t, out, "short")
}
