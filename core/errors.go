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

import "errors"

// Domain validation errors
var (
	// ErrInvalidRecord indicates a Record failed validation.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrMultilineContent indicates the Contents field spans more than one line.
	ErrMultilineContent = errors.New("content must be a single line")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")

	// ErrIDMismatch indicates the record ID does not match its contents.
	ErrIDMismatch = errors.New("record id does not match content")

	// ErrInvalidCheckpoint indicates a Checkpoint failed validation.
	ErrInvalidCheckpoint = errors.New("invalid checkpoint")

	// ErrEmptyProcessorType indicates the checkpoint ProcessorType field is empty.
	ErrEmptyProcessorType = errors.New("processor type cannot be empty")
)
