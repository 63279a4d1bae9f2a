package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier derived from record content.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Record is a single line of the corpus.
// Records are immutable once loaded; Index is the 0-based corpus position.
type Record struct {
	Index      uint64
	Id         ID        // Content hash, identical lines share an ID
	Contents   string
	InsertedAt time.Time // When the record was stored
}

// NewRecord builds a record for the given corpus position.
func NewRecord(index uint64, contents string) *Record {
	return &Record{
		Index:    index,
		Id:       IDFromContent(contents),
		Contents: contents,
	}
}

// MatchResultSet is the outcome of one corpus scan.
// Indices are ascending corpus positions with no duplicates.
type MatchResultSet struct {
	Term      string
	Metric    string
	Threshold int
	Indices   []int
}

// Count returns the number of matching records.
func (r *MatchResultSet) Count() int {
	if r == nil {
		return 0
	}
	return len(r.Indices)
}

// Checkpoint records how far a loader got through its input.
type Checkpoint struct {
	ProcessorType string
	LastIndex     uint64 // Number of input lines already stored
	UpdatedAt     time.Time
}
