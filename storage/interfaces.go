package storage

import (
	"context"

	"github.com/poiesic/fuzzscan/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// RecordRepository stores the corpus as records keyed by corpus position.
type RecordRepository interface {
	Repository

	// AddRecords stores records at their Index positions.
	// Existing records at the same positions are overwritten.
	// Sets InsertedAt on every record.
	AddRecords(ctx context.Context, records ...*core.Record) error

	// GetRecord retrieves the record at a corpus position.
	// Returns ErrNotFound if no record is stored there.
	GetRecord(ctx context.Context, index uint64) (*core.Record, error)

	// GetRecords retrieves records by position, in the order requested.
	// Positions with no record are skipped (no error for missing records).
	GetRecords(ctx context.Context, indices ...uint64) ([]*core.Record, error)

	// IndicesByContent returns the positions of every record whose contents
	// are identical to contents, ascending.
	IndicesByContent(ctx context.Context, contents string) ([]uint64, error)

	// Corpus returns the contents of every stored record in ascending index
	// order. Gaps in the index sequence are not filled.
	Corpus(ctx context.Context) ([]string, error)

	// IndexedCorpus is Corpus paired with the stored position of each entry:
	// contents[i] is the record stored at indices[i].
	IndexedCorpus(ctx context.Context) (indices []uint64, contents []string, err error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// Clear removes every stored record.
	Clear(ctx context.Context) error

	// Truncate removes every record stored at a position >= index.
	Truncate(ctx context.Context, index uint64) error
}

// CheckpointRepository persists loader progress so imports can resume.
type CheckpointRepository interface {
	Repository

	// SaveCheckpoint persists a checkpoint for a processor type.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint retrieves the checkpoint for a processor type.
	// Returns nil, nil if no checkpoint exists.
	LoadCheckpoint(ctx context.Context, processorType string) (*core.Checkpoint, error)

	// DeleteCheckpoint removes the checkpoint for a processor type.
	DeleteCheckpoint(ctx context.Context, processorType string) error
}
