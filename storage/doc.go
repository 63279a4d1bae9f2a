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

// Package storage provides the storage abstraction layer for fuzzscan.
//
// This package defines repository interfaces that decouple corpus persistence
// from the matching code. The scanner itself only ever sees a []string; the
// repositories exist so a corpus can be imported once and searched many times.
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - Repository: operations shared by every repository
//   - RecordRepository: corpus records keyed by their position
//   - CheckpointRepository: loader progress for resumable imports
//
// Values are encoded with mus-go (see serialization.go).
//
// # Usage
//
// Open a BadgerDB backed store:
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	records := badger.NewRecordRepository(backend)
//
// Use in tests with in-memory storage:
//
//	records, checkpoints, backend, err := badger.NewMemoryRepositories()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context. Long iterations check the
// context between records and stop with ctx.Err() once it is done.
package storage
