package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/fuzzscan/core"
	"github.com/poiesic/fuzzscan/storage"
)

// ProcessorType names the checkpoint written by the pipeline.
const ProcessorType = "ingestion"

const (
	defaultBatchSize  = 1000
	defaultMaxRetries = 5
	defaultRetryDelay = 10 * time.Millisecond
	releaseTimeout    = 5 * time.Second
)

// LoadStats summarizes one call to Ingest.
type LoadStats struct {
	Read       int // Lines handed to the pipeline
	Stored     int // Lines written by this call
	Skipped    int // Lines already stored by an earlier, checkpointed call
	Duplicates int // Lines whose contents appeared earlier in the input
}

// Pipeline stores corpus lines in a record repository.
// Batches are written concurrently; each line keeps its input position.
type Pipeline struct {
	recordRepository     storage.RecordRepository
	checkpointRepository storage.CheckpointRepository
	pool                 *ants.Pool
	batchSize            int
	maxRetries           int
	retryDelay           time.Duration
	progress             io.Writer
	logger               *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent batch writes.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many lines are written per transaction.
// Default is 1000.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			return fmt.Errorf("batch size must be positive: %d", size)
		}
		p.batchSize = size
		return nil
	}
}

// WithRetries sets how often a failed batch write is attempted and the base
// delay between attempts. Default is 5 attempts starting at 10ms.
func WithRetries(maxAttempts int, baseDelay time.Duration) Option {
	return func(p *Pipeline) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		if baseDelay < 0 {
			return fmt.Errorf("retry delay must not be negative: %v", baseDelay)
		}
		p.maxRetries = maxAttempts
		p.retryDelay = baseDelay
		return nil
	}
}

// WithProgress reports load progress to w, typically os.Stderr.
// Default is no progress output.
func WithProgress(w io.Writer) Option {
	return func(p *Pipeline) error {
		p.progress = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	recordRepository storage.RecordRepository,
	checkpointRepository storage.CheckpointRepository,
	opts ...Option,
) (*Pipeline, error) {
	if recordRepository == nil {
		return nil, ErrRecordRepositoryRequired
	}
	if checkpointRepository == nil {
		return nil, ErrCheckpointRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		recordRepository:     recordRepository,
		checkpointRepository: checkpointRepository,
		pool:                 pool,
		batchSize:            defaultBatchSize,
		maxRetries:           defaultMaxRetries,
		retryDelay:           defaultRetryDelay,
		logger:               slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Ingest stores lines as records at their input positions.
//
// Lines covered by the saved checkpoint are skipped, so calling Ingest again
// with the same input after a failure only writes what is missing. On return
// the checkpoint covers the longest run of stored lines starting at the first
// line. After a complete load no record is stored past the last line. The
// returned stats are valid even when an error is returned.
func (p *Pipeline) Ingest(ctx context.Context, lines []string) (*LoadStats, error) {
	stats := &LoadStats{
		Read:       len(lines),
		Duplicates: countDuplicates(lines),
	}

	for i, line := range lines {
		if strings.ContainsAny(line, "\r\n") {
			return stats, fmt.Errorf("%w: line %d contains a line break", ErrInvalidLine, i+1)
		}
	}

	start, err := p.resumePoint(ctx, len(lines))
	if err != nil {
		return stats, err
	}
	stats.Skipped = start
	if start == len(lines) {
		if err := p.trimTail(ctx, len(lines)); err != nil {
			return stats, err
		}
		p.logger.Info("corpus already loaded", "lines", len(lines))
		return stats, nil
	}

	batchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	tracker := newProgressTracker(p.progress, len(lines)-start, p.batchSize)
	batchCount := (len(lines) - start + p.batchSize - 1) / p.batchSize
	completed := make([]bool, batchCount)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		stored   atomic.Int64
	)
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
	}

	for b := 0; b < batchCount; b++ {
		lo := start + b*p.batchSize
		hi := min(lo+p.batchSize, len(lines))

		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			if err := p.storeBatch(batchCtx, lines, lo, hi); err != nil {
				fail(fmt.Errorf("lines %d-%d: %w", lo+1, hi, err))
				return
			}
			mu.Lock()
			completed[b] = true
			mu.Unlock()
			stored.Add(int64(hi - lo))
			tracker.Increment(hi - lo)
		})
		if submitErr != nil {
			wg.Done()
			fail(submitErr)
			break
		}
	}
	wg.Wait()

	stats.Stored = int(stored.Load())

	watermark := start
	for b, ok := range completed {
		if !ok {
			break
		}
		watermark = min(start+(b+1)*p.batchSize, len(lines))
	}
	if watermark > start {
		if err := p.saveCheckpoint(context.WithoutCancel(ctx), watermark); err != nil {
			fail(err)
		}
	}

	if firstErr == nil {
		if err := p.trimTail(ctx, len(lines)); err != nil {
			fail(err)
		}
	}
	if firstErr != nil {
		p.logger.Error("ingestion failed", "stored", stats.Stored, "resumeAt", watermark, "err", firstErr)
		return stats, firstErr
	}

	if p.progress != nil {
		tracker.Finish()
	}
	p.logger.Info("ingestion complete",
		"read", stats.Read,
		"stored", stats.Stored,
		"skipped", stats.Skipped,
		"duplicates", stats.Duplicates)

	return stats, nil
}

// Reset removes every stored record and the ingestion checkpoint.
func (p *Pipeline) Reset(ctx context.Context) error {
	if err := p.recordRepository.Clear(ctx); err != nil {
		return err
	}
	return p.checkpointRepository.DeleteCheckpoint(ctx, ProcessorType)
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool == nil {
		return
	}
	if err := p.pool.ReleaseTimeout(releaseTimeout); err != nil {
		p.logger.Warn("worker pool did not stop in time", "err", err)
	}
	p.pool = nil
}

// storeBatch writes lines[lo:hi], retrying transient failures.
func (p *Pipeline) storeBatch(ctx context.Context, lines []string, lo, hi int) error {
	records := make([]*core.Record, 0, hi-lo)
	for i := lo; i < hi; i++ {
		records = append(records, core.NewRecord(uint64(i), lines[i]))
	}

	return RetryWithBackoff(ctx, func() error {
		err := p.recordRepository.AddRecords(ctx, records...)
		if err != nil && !retryable(err) {
			return Permanent(err)
		}
		return err
	}, p.maxRetries, p.retryDelay)
}

// resumePoint returns the first line not covered by the checkpoint.
// A checkpoint past the end of the input belongs to a different corpus; its
// records are cleared and the load restarts from the beginning.
func (p *Pipeline) resumePoint(ctx context.Context, total int) (int, error) {
	checkpoint, err := p.checkpointRepository.LoadCheckpoint(ctx, ProcessorType)
	if err != nil {
		return 0, fmt.Errorf("loading checkpoint: %w", err)
	}
	if checkpoint == nil {
		return 0, nil
	}
	if checkpoint.LastIndex > uint64(total) {
		p.logger.Warn("checkpoint beyond input, reloading from start",
			"checkpoint", checkpoint.LastIndex, "lines", total)
		if err := p.recordRepository.Clear(ctx); err != nil {
			return 0, fmt.Errorf("clearing stale corpus: %w", err)
		}
		return 0, nil
	}
	if checkpoint.LastIndex > 0 {
		p.logger.Info("resuming ingestion", "from", checkpoint.LastIndex, "lines", total)
	}
	return int(checkpoint.LastIndex), nil
}

// trimTail removes records left past the end of the input by an earlier,
// longer corpus.
func (p *Pipeline) trimTail(ctx context.Context, total int) error {
	if err := p.recordRepository.Truncate(ctx, uint64(total)); err != nil {
		return fmt.Errorf("removing records past line %d: %w", total, err)
	}
	return nil
}

func (p *Pipeline) saveCheckpoint(ctx context.Context, lastIndex int) error {
	return p.checkpointRepository.SaveCheckpoint(ctx, &core.Checkpoint{
		ProcessorType: ProcessorType,
		LastIndex:     uint64(lastIndex),
		UpdatedAt:     time.Now().UTC(),
	})
}

// retryable reports whether a failed write may succeed when attempted again.
func retryable(err error) bool {
	switch {
	case errors.Is(err, storage.ErrInvalidRecord),
		errors.Is(err, storage.ErrStorageClosed),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	}
	return true
}

// countDuplicates counts lines whose content hash was seen earlier in lines.
func countDuplicates(lines []string) int {
	seen := make(map[core.ID]struct{}, len(lines))
	dups := 0
	for _, line := range lines {
		id := core.IDFromContent(line)
		if _, ok := seen[id]; ok {
			dups++
			continue
		}
		seen[id] = struct{}{}
	}
	return dups
}
