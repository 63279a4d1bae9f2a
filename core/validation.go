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

package core

import (
	"fmt"
	"strings"
	"time"
)

// ValidateRecord validates a Record according to domain rules.
//
// Validation rules:
//   - Contents must not contain a line break
//   - Id must equal IDFromContent(Contents)
//   - InsertedAt must not be in the future
//
// Empty contents are valid: a blank line still occupies a corpus position.
func ValidateRecord(record *Record) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}

	if strings.ContainsAny(record.Contents, "\r\n") {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrMultilineContent)
	}

	if record.Id != IDFromContent(record.Contents) {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrIDMismatch)
	}

	if !IsValidTimestamp(record.InsertedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateCheckpoint validates a Checkpoint.
func ValidateCheckpoint(checkpoint *Checkpoint) error {
	if checkpoint == nil {
		return fmt.Errorf("%w: checkpoint is nil", ErrInvalidCheckpoint)
	}
	if checkpoint.ProcessorType == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCheckpoint, ErrEmptyProcessorType)
	}
	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
