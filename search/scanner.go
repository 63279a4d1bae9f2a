package search

import (
	"fmt"
	"log/slog"

	"github.com/poiesic/fuzzscan/core"
	"github.com/poiesic/fuzzscan/distance"
)

// Scanner runs fuzzy term scans over an in-memory corpus.
type Scanner struct {
	engine     *distance.Engine
	maxMatches int
	monitor    ScanMonitor
	logger     *slog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithMaxMatches caps the number of indices a single scan may accumulate.
// A scan that exceeds the cap fails with ErrResultCapacity.
// Default is 0 (unlimited).
func WithMaxMatches(n int) Option {
	return func(s *Scanner) error {
		if n < 0 {
			return fmt.Errorf("max matches must not be negative: %d", n)
		}
		s.maxMatches = n
		return nil
	}
}

// WithMonitor registers a monitor that observes every scan.
func WithMonitor(monitor ScanMonitor) Option {
	return func(s *Scanner) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		s.monitor = monitor
		return nil
	}
}

// NewScanner creates a scanner that evaluates distances with engine.
// The scanner does not take ownership of engine; the caller closes it.
func NewScanner(engine *distance.Engine, opts ...Option) (*Scanner, error) {
	if engine == nil {
		return nil, ErrEngineRequired
	}

	s := &Scanner{
		engine:  engine,
		monitor: &noopMonitor{},
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Scan returns the indices of the records that contain at least one token
// matching term under metric and threshold. Indices are ascending and the
// returned slice has exactly as much capacity as it has elements.
//
// On failure the returned result set holds no indices and the error says why.
// An empty term or an empty corpus is not an error and yields an empty result.
func (s *Scanner) Scan(records []string, term string, threshold int, metric distance.Metric) (*core.MatchResultSet, error) {
	result := &core.MatchResultSet{
		Term:      term,
		Metric:    metric.String(),
		Threshold: threshold,
		Indices:   []int{},
	}

	matcher, err := s.engine.Matcher(metric)
	if err != nil {
		return s.fail(result, err)
	}

	s.monitor.Start(term, metric, threshold, len(records))

	if term == "" || len(records) == 0 {
		s.monitor.Finish(result, nil)
		return result, nil
	}

	var indices []int
	for i, record := range records {
		hits, err := MatchRecord(record, term, threshold, matcher)
		if err != nil {
			return s.fail(result, fmt.Errorf("record %d: %w", i, err))
		}
		if hits == 0 {
			continue
		}
		if s.maxMatches > 0 && len(indices) >= s.maxMatches {
			return s.fail(result, fmt.Errorf("%w: more than %d matches", ErrResultCapacity, s.maxMatches))
		}
		indices = append(indices, i)
		s.monitor.RecordMatched(i, hits)
	}

	// Hand back an exact-size slice rather than the append buffer.
	result.Indices = make([]int, len(indices))
	copy(result.Indices, indices)

	s.logger.Debug("scan complete",
		"term", term,
		"metric", metric.String(),
		"threshold", threshold,
		"records", len(records),
		"matches", len(result.Indices))
	s.monitor.Finish(result, nil)

	return result, nil
}

func (s *Scanner) fail(result *core.MatchResultSet, err error) (*core.MatchResultSet, error) {
	result.Indices = []int{}
	s.logger.Error("scan failed", "term", result.Term, "metric", result.Metric, "err", err)
	s.monitor.Finish(result, err)
	return result, err
}
