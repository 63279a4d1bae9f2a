package search

import (
	"context"
	"log/slog"

	"github.com/poiesic/fuzzscan/core"
	"github.com/poiesic/fuzzscan/distance"
	"github.com/poiesic/fuzzscan/storage"
)

// Searcher runs fuzzy scans over the corpus held in a record repository.
type Searcher struct {
	recordRepository storage.RecordRepository
	scanner          *Scanner
	logger           *slog.Logger
}

// NewSearcher creates a new searcher.
// Options are applied to the underlying Scanner. The searcher takes ownership
// of engine and closes it in Close.
func NewSearcher(
	recordRepository storage.RecordRepository,
	engine *distance.Engine,
	opts ...Option,
) (*Searcher, error) {
	if recordRepository == nil {
		return nil, ErrRecordRepositoryRequired
	}

	scanner, err := NewScanner(engine, opts...)
	if err != nil {
		return nil, err
	}

	return &Searcher{
		recordRepository: recordRepository,
		scanner:          scanner,
		logger:           scanner.logger,
	}, nil
}

// Scanner returns the scanner used by this searcher.
func (s *Searcher) Scanner() *Scanner {
	return s.scanner
}

// Search loads the stored corpus in index order and scans it for term.
// Result indices are the stored record positions, so gaps in the stored
// sequence do not shift them.
func (s *Searcher) Search(ctx context.Context, term string, threshold int, metric distance.Metric) (*core.MatchResultSet, error) {
	positions, corpus, err := s.recordRepository.IndexedCorpus(ctx)
	if err != nil {
		s.logger.Error("error loading corpus", "err", err)
		return &core.MatchResultSet{
			Term:      term,
			Metric:    metric.String(),
			Threshold: threshold,
			Indices:   []int{},
		}, err
	}

	result, err := s.scanner.Scan(corpus, term, threshold, metric)
	if err != nil {
		return result, err
	}
	for i, n := range result.Indices {
		result.Indices[i] = int(positions[n])
	}
	return result, nil
}

// Close closes the distance engine the searcher was created with.
func (s *Searcher) Close() error {
	return s.scanner.engine.Close()
}

// Records resolves the indices of a result set to the stored records, in
// result order.
func (s *Searcher) Records(ctx context.Context, result *core.MatchResultSet) ([]*core.Record, error) {
	if result.Count() == 0 {
		return []*core.Record{}, nil
	}

	indices := make([]uint64, len(result.Indices))
	for i, idx := range result.Indices {
		indices[i] = uint64(idx)
	}

	records, err := s.recordRepository.GetRecords(ctx, indices...)
	if err != nil {
		s.logger.Error("error retrieving matched records", "recordCount", len(indices), "err", err)
		return nil, err
	}
	return records, nil
}
