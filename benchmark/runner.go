package benchmark

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/fuzzscan/core"
	"github.com/poiesic/fuzzscan/distance"
	"github.com/poiesic/fuzzscan/search"
)

// ErrScannerRequired is returned when a scanner is not provided.
var ErrScannerRequired = errors.New("scanner required")

// Pass is one timed scan.
type Pass struct {
	Metric    distance.Metric
	Threshold int
	Result    *core.MatchResultSet
	Elapsed   time.Duration
}

// Count returns the number of matching records.
func (p Pass) Count() int {
	return p.Result.Count()
}

// Report collects the passes of one benchmark run.
type Report struct {
	Term    string
	Records int
	Passes  []Pass
}

// Pass returns the first pass run with metric and threshold.
func (r *Report) Pass(metric distance.Metric, threshold int) (Pass, bool) {
	for _, p := range r.Passes {
		if p.Metric == metric && (p.Threshold == threshold || !metric.UsesThreshold()) {
			return p, true
		}
	}
	return Pass{}, false
}

// Total returns the summed scan time of all passes.
func (r *Report) Total() time.Duration {
	var total time.Duration
	for _, p := range r.Passes {
		total += p.Elapsed
	}
	return total
}

// Runner runs the benchmark passes with a scanner.
type Runner struct {
	scanner           *search.Scanner
	threshold         int
	expandedThreshold int
	logger            *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner) error

// WithThresholds sets the base and expanded thresholds.
// Default is 1 and 2.
func WithThresholds(threshold, expanded int) Option {
	return func(r *Runner) error {
		if threshold < 0 {
			return fmt.Errorf("threshold must not be negative: %d", threshold)
		}
		if expanded < threshold {
			return fmt.Errorf("expanded threshold %d is below threshold %d", expanded, threshold)
		}
		r.threshold = threshold
		r.expandedThreshold = expanded
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRunner creates a runner that scans with scanner.
func NewRunner(scanner *search.Scanner, opts ...Option) (*Runner, error) {
	if scanner == nil {
		return nil, ErrScannerRequired
	}

	r := &Runner{
		scanner:           scanner,
		threshold:         1,
		expandedThreshold: 2,
		logger:            slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Run scans corpus for term with every pass and returns the timings.
// The first failing pass stops the run; the report holds the passes that
// completed before it.
func (r *Runner) Run(corpus []string, term string) (*Report, error) {
	report := &Report{
		Term:    term,
		Records: len(corpus),
	}

	for _, plan := range r.plan() {
		start := time.Now()
		result, err := r.scanner.Scan(corpus, term, plan.Threshold, plan.Metric)
		elapsed := time.Since(start)
		if err != nil {
			return report, fmt.Errorf("%s at threshold %d: %w", plan.Metric, plan.Threshold, err)
		}

		report.Passes = append(report.Passes, Pass{
			Metric:    plan.Metric,
			Threshold: plan.Threshold,
			Result:    result,
			Elapsed:   elapsed,
		})
		r.logger.Debug("benchmark pass",
			"metric", plan.Metric.String(),
			"threshold", plan.Threshold,
			"matches", result.Count(),
			"elapsed", elapsed)
	}

	return report, nil
}

// plan lists the passes in run order. The expanded pass is skipped when it
// would repeat the base pass.
func (r *Runner) plan() []Pass {
	var passes []Pass
	for _, metric := range []distance.Metric{distance.Levenshtein, distance.Hamming} {
		passes = append(passes, Pass{Metric: metric, Threshold: r.threshold})
		if r.expandedThreshold != r.threshold {
			passes = append(passes, Pass{Metric: metric, Threshold: r.expandedThreshold})
		}
	}
	return append(passes, Pass{Metric: distance.BruteForce, Threshold: 0})
}
