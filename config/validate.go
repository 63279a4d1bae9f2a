package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/fuzzscan/distance"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSearch(); err != nil {
		return err
	}
	if err := c.validateCorpus(); err != nil {
		return err
	}
	if err := c.validateIngest(); err != nil {
		return err
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSearch() error {
	if _, err := distance.ParseMetric(c.Search.Metric); err != nil {
		return fmt.Errorf("search.metric: %w", err)
	}
	if c.Search.Threshold < 0 {
		return errors.New("search.threshold must not be negative")
	}
	if c.Search.ExpandedThreshold < c.Search.Threshold {
		return errors.New("search.expanded_threshold must be at least search.threshold")
	}
	if c.Search.MaxMatches < 0 {
		return errors.New("search.max_matches must not be negative")
	}
	if c.Search.MaxScratchCells < 0 {
		return errors.New("search.max_scratch_cells must not be negative")
	}
	return nil
}

func (c *Config) validateCorpus() error {
	if c.Corpus.MaxRecords < 0 {
		return errors.New("corpus.max_records must not be negative")
	}
	if c.Corpus.MaxLineBytes < 0 {
		return errors.New("corpus.max_line_bytes must not be negative")
	}
	return nil
}

func (c *Config) validateIngest() error {
	if c.Ingest.BatchSize < 1 {
		return errors.New("ingest.batch_size must be positive")
	}
	if c.Ingest.PoolSize < 0 {
		return errors.New("ingest.pool_size must not be negative")
	}
	if c.Ingest.MaxRetries < 1 {
		return errors.New("ingest.max_retries must be positive")
	}
	if c.Ingest.RetryDelayMS < 0 {
		return errors.New("ingest.retry_delay_ms must not be negative")
	}
	return nil
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("logging.level: unknown level %q", level)
}
