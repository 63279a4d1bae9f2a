package ingestion

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

// progressTracker reports how many lines a load has stored so far.
// It is safe for concurrent use by pool workers.
type progressTracker struct {
	writer         io.Writer
	total          int
	current        int
	reportInterval int
	lastReported   int
	startTime      time.Time
	mu             sync.Mutex
}

// newProgressTracker creates a tracker that reports every reportInterval lines.
// A nil writer disables reporting.
func newProgressTracker(writer io.Writer, total, reportInterval int) *progressTracker {
	if writer == nil {
		writer = io.Discard
	}
	if reportInterval < 1 {
		reportInterval = 1
	}
	return &progressTracker{
		writer:         writer,
		total:          total,
		reportInterval: reportInterval,
		startTime:      time.Now(),
	}
}

// Increment increases the current progress by delta lines.
func (p *progressTracker) Increment(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = min(p.current+delta, p.total)

	if p.current-p.lastReported >= p.reportInterval {
		p.report()
		p.lastReported = p.current
	}
}

// Finish prints the final progress line.
func (p *progressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.report()
	fmt.Fprintln(p.writer)
}

// Current returns the number of lines reported so far.
func (p *progressTracker) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// report prints the current progress. Must be called with lock held.
func (p *progressTracker) report() {
	elapsed := time.Since(p.startTime)
	rate := 0.0
	if elapsed > 0 {
		rate = float64(p.current) / elapsed.Seconds()
	}

	percentage := 100.0
	if p.total > 0 {
		percentage = float64(p.current) / float64(p.total) * 100.0
	}

	fmt.Fprintf(p.writer, "\rLoaded: %s/%s (%.1f%%) - %s lines/s",
		humanize.Comma(int64(p.current)), humanize.Comma(int64(p.total)),
		percentage, humanize.CommafWithDigits(rate, 1))
}
