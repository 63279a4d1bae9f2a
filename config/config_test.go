package config_test

import (
	"bytes"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/fuzzscan/config"
	"github.com/poiesic/fuzzscan/distance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fuzzscan.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), *cfg)

	metric, err := cfg.SearchMetric()
	require.NoError(t, err)
	assert.Equal(t, distance.Levenshtein, metric)
	assert.Equal(t, 1, cfg.Search.Threshold)
	assert.Equal(t, 2, cfg.Search.ExpandedThreshold)
	assert.Equal(t, 1_600_000, cfg.Corpus.MaxRecords)
	assert.Equal(t, 1024, cfg.Corpus.MaxLineBytes)
	assert.Equal(t, 10*time.Millisecond, cfg.RetryDelay())
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
[search]
metric = "hamming"
threshold = 2
expanded_threshold = 3
max_matches = 100

[corpus]
path = "tweets.csv"
db_path = "/tmp/fuzzscan-db"

[ingest]
batch_size = 250
pool_size = 4

[logging]
level = "debug"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	metric, err := cfg.SearchMetric()
	require.NoError(t, err)
	assert.Equal(t, distance.Hamming, metric)
	assert.Equal(t, 2, cfg.Search.Threshold)
	assert.Equal(t, 3, cfg.Search.ExpandedThreshold)
	assert.Equal(t, 100, cfg.Search.MaxMatches)
	assert.Equal(t, "tweets.csv", cfg.Corpus.Path)
	assert.Equal(t, "/tmp/fuzzscan-db", cfg.Corpus.DBPath)
	assert.Equal(t, 250, cfg.Ingest.BatchSize)
	assert.Equal(t, 4, cfg.Ingest.PoolSize)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())

	// Keys absent from the file keep their defaults.
	assert.Equal(t, 1024, cfg.Corpus.MaxLineBytes)
	assert.Equal(t, 5, cfg.Ingest.MaxRetries)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, fs.ErrNotExist)

	tests := []struct {
		name     string
		contents string
	}{
		{"malformed", "[search\nmetric = "},
		{"unknown key", "[search]\nmetrc = \"hamming\"\n"},
		{"unknown metric", "[search]\nmetric = \"jaro\"\n"},
		{"negative threshold", "[search]\nthreshold = -1\n"},
		{"expanded below threshold", "[search]\nthreshold = 3\nexpanded_threshold = 2\n"},
		{"negative max matches", "[search]\nmax_matches = -1\n"},
		{"negative scratch", "[search]\nmax_scratch_cells = -5\n"},
		{"negative max records", "[corpus]\nmax_records = -1\n"},
		{"zero batch", "[ingest]\nbatch_size = 0\n"},
		{"negative pool", "[ingest]\npool_size = -2\n"},
		{"zero retries", "[ingest]\nmax_retries = 0\n"},
		{"bad level", "[logging]\nlevel = \"loud\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.contents))
			assert.Error(t, err)
		})
	}
}

func TestConfig_WriteRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.Search.Metric = "bruteforce"
	cfg.Corpus.Path = "corpus.txt"

	var buf bytes.Buffer
	require.NoError(t, cfg.Write(&buf))
	assert.Contains(t, buf.String(), "[search]")

	loaded, err := config.Load(writeConfig(t, buf.String()))
	require.NoError(t, err)
	assert.Equal(t, cfg, *loaded)
}
