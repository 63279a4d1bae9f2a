// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/fuzzscan/core"
)

// MarshalIndex serializes a corpus position to bytes.
func MarshalIndex(index uint64) []byte {
	buf := make([]byte, varint.Uint64.Size(index))
	varint.Uint64.Marshal(index, buf)
	return buf
}

// UnmarshalIndex deserializes a corpus position from bytes.
func UnmarshalIndex(data []byte) (uint64, error) {
	index, _, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return index, nil
}

// MarshalRecord serializes a Record to bytes.
// Timestamps are stored with microsecond precision.
func MarshalRecord(record *core.Record) []byte {
	insertedAt := record.InsertedAt.UnixMicro()
	size := varint.Uint64.Size(record.Index) +
		varint.Uint64.Size(uint64(record.Id)) +
		ord.String.Size(record.Contents) +
		varint.Int64.Size(insertedAt)

	buf := make([]byte, size)
	n := varint.Uint64.Marshal(record.Index, buf)
	n += varint.Uint64.Marshal(uint64(record.Id), buf[n:])
	n += ord.String.Marshal(record.Contents, buf[n:])
	varint.Int64.Marshal(insertedAt, buf[n:])
	return buf
}

// UnmarshalRecord deserializes a Record from bytes.
func UnmarshalRecord(data []byte) (*core.Record, error) {
	var (
		record core.Record
		offset int
	)

	index, n, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: index: %w", ErrSerializationFailed, err)
	}
	offset += n

	id, n, err := varint.Uint64.Unmarshal(data[offset:])
	if err != nil {
		return nil, fmt.Errorf("%w: id: %w", ErrSerializationFailed, err)
	}
	offset += n

	contents, n, err := ord.String.Unmarshal(data[offset:])
	if err != nil {
		return nil, fmt.Errorf("%w: contents: %w", ErrSerializationFailed, err)
	}
	offset += n

	insertedAt, _, err := varint.Int64.Unmarshal(data[offset:])
	if err != nil {
		return nil, fmt.Errorf("%w: inserted at: %w", ErrSerializationFailed, err)
	}

	record.Index = index
	record.Id = core.ID(id)
	record.Contents = contents
	record.InsertedAt = time.UnixMicro(insertedAt).UTC()
	return &record, nil
}

// MarshalCheckpoint serializes a Checkpoint to bytes.
func MarshalCheckpoint(checkpoint *core.Checkpoint) []byte {
	updatedAt := checkpoint.UpdatedAt.UnixMicro()
	size := ord.String.Size(checkpoint.ProcessorType) +
		varint.Uint64.Size(checkpoint.LastIndex) +
		varint.Int64.Size(updatedAt)

	buf := make([]byte, size)
	n := ord.String.Marshal(checkpoint.ProcessorType, buf)
	n += varint.Uint64.Marshal(checkpoint.LastIndex, buf[n:])
	varint.Int64.Marshal(updatedAt, buf[n:])
	return buf
}

// UnmarshalCheckpoint deserializes a Checkpoint from bytes.
func UnmarshalCheckpoint(data []byte) (*core.Checkpoint, error) {
	var offset int

	processorType, n, err := ord.String.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: processor type: %w", ErrSerializationFailed, err)
	}
	offset += n

	lastIndex, n, err := varint.Uint64.Unmarshal(data[offset:])
	if err != nil {
		return nil, fmt.Errorf("%w: last index: %w", ErrSerializationFailed, err)
	}
	offset += n

	updatedAt, _, err := varint.Int64.Unmarshal(data[offset:])
	if err != nil {
		return nil, fmt.Errorf("%w: updated at: %w", ErrSerializationFailed, err)
	}

	return &core.Checkpoint{
		ProcessorType: processorType,
		LastIndex:     lastIndex,
		UpdatedAt:     time.UnixMicro(updatedAt).UTC(),
	}, nil
}
