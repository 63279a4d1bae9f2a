package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/fuzzscan/core"
)

// Key prefixes for different data types
const (
	recordPrefix        = "rec:"
	recordContentPrefix = "reccon:"
	checkpointPrefix    = "chkpt:"
)

// makeRecordKey generates a key for a record by corpus position.
// Format: prefix:index
// Indices are big-endian so that key order equals corpus order.
func makeRecordKey(index uint64) []byte {
	buf := make([]byte, len(recordPrefix)+8)
	offset := copy(buf, recordPrefix)
	binary.BigEndian.PutUint64(buf[offset:], index)
	return buf
}

// indexFromRecordKey extracts the corpus position from a record key.
func indexFromRecordKey(key []byte) (uint64, error) {
	if len(key) != len(recordPrefix)+8 {
		return 0, fmt.Errorf("malformed record key of length %d", len(key))
	}
	return binary.BigEndian.Uint64(key[len(recordPrefix):]), nil
}

// makeContentKey generates a composite key for the content index.
// Format: prefix:id:index
func makeContentKey(id core.ID, index uint64) []byte {
	buf := make([]byte, len(recordContentPrefix)+16)
	offset := copy(buf, recordContentPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], index)
	return buf
}

// makePartialContentKey generates a partial key for content lookups.
// Format: prefix:id
func makePartialContentKey(id core.ID) []byte {
	buf := make([]byte, len(recordContentPrefix)+8)
	offset := copy(buf, recordContentPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeCheckpointKey generates a key for processor checkpoints.
func makeCheckpointKey(processorType string) []byte {
	return []byte(checkpointPrefix + processorType)
}
