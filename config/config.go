package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/poiesic/fuzzscan/distance"
)

// Search holds the defaults for a corpus scan.
type Search struct {
	Metric            string `toml:"metric"`
	Threshold         int    `toml:"threshold"`
	ExpandedThreshold int    `toml:"expanded_threshold"`
	// MaxMatches caps the indices one scan may return. 0 means unlimited.
	MaxMatches int `toml:"max_matches"`
	// MaxScratchCells caps the Levenshtein table. 0 means unlimited.
	MaxScratchCells int `toml:"max_scratch_cells"`
}

// Corpus locates the corpus and bounds how much of it is read.
type Corpus struct {
	Path         string `toml:"path"`
	DBPath       string `toml:"db_path"`
	MaxRecords   int    `toml:"max_records"`
	MaxLineBytes int    `toml:"max_line_bytes"`
}

// Ingest tunes loading a corpus into the database.
type Ingest struct {
	BatchSize int `toml:"batch_size"`
	// PoolSize is the number of concurrent batch writers. 0 picks a default.
	PoolSize     int `toml:"pool_size"`
	MaxRetries   int `toml:"max_retries"`
	RetryDelayMS int `toml:"retry_delay_ms"`
}

// Logging configures the process logger.
type Logging struct {
	Level string `toml:"level"`
}

// Config holds every fuzzscan setting.
type Config struct {
	Search  Search  `toml:"search"`
	Corpus  Corpus  `toml:"corpus"`
	Ingest  Ingest  `toml:"ingest"`
	Logging Logging `toml:"logging"`
}

// Load reads and validates the TOML file at path.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Write encodes c as TOML to w.
func (c *Config) Write(w io.Writer) error {
	encoder := toml.NewEncoder(w)
	return encoder.Encode(c)
}

// SearchMetric returns the configured metric.
func (c *Config) SearchMetric() (distance.Metric, error) {
	return distance.ParseMetric(c.Search.Metric)
}

// RetryDelay returns the base delay between ingestion retries.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Ingest.RetryDelayMS) * time.Millisecond
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() slog.Level {
	level, _ := parseLevel(c.Logging.Level)
	return level
}
