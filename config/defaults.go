package config

import (
	"github.com/poiesic/fuzzscan/ingestion"
)

const (
	defaultMetric            = "levenshtein"
	defaultThreshold         = 1
	defaultExpandedThreshold = 2
	defaultBatchSize         = 1000
	defaultMaxRetries        = 5
	defaultRetryDelayMS      = 10
	defaultLogLevel          = "info"
)

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Search: Search{
			Metric:            defaultMetric,
			Threshold:         defaultThreshold,
			ExpandedThreshold: defaultExpandedThreshold,
		},
		Corpus: Corpus{
			MaxRecords:   ingestion.DefaultMaxRecords,
			MaxLineBytes: ingestion.DefaultMaxLineBytes,
		},
		Ingest: Ingest{
			BatchSize:    defaultBatchSize,
			MaxRetries:   defaultMaxRetries,
			RetryDelayMS: defaultRetryDelayMS,
		},
		Logging: Logging{
			Level: defaultLogLevel,
		},
	}
}
