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

package fuzzscan

import (
	"log/slog"

	"github.com/poiesic/fuzzscan/distance"
	"github.com/poiesic/fuzzscan/ingestion"
	"github.com/poiesic/fuzzscan/search"
	"github.com/poiesic/fuzzscan/storage"
	"github.com/poiesic/fuzzscan/storage/badger"
)

// Database bundles a stored corpus with the components that load and scan it.
type Database struct {
	backend         *badger.Backend
	recordRepo      storage.RecordRepository
	checkpointRepo  storage.CheckpointRepository
	maxScratchCells int
	logger          *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	inMemory        bool
	maxScratchCells int
	logger          *slog.Logger
}

// WithInMemory keeps the database in memory; the path is ignored.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// WithMaxScratchCells caps the Levenshtein table of every searcher the
// database creates. Default is 0 (unlimited).
func WithMaxScratchCells(cells int) DatabaseOption {
	return func(o *databaseOptions) {
		o.maxScratchCells = cells
	}
}

// WithDatabaseLogger sets a custom logger.
// Default is slog.Default().
func WithDatabaseLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		o.logger = logger
	}
}

// NewDatabase opens, or creates, the corpus database at filePath.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	return &Database{
		backend:         backend,
		recordRepo:      badger.NewRecordRepository(backend),
		checkpointRepo:  badger.NewCheckpointRepository(backend),
		maxScratchCells: options.maxScratchCells,
		logger:          options.logger,
	}, nil
}

func (db *Database) Close() error {
	if err := db.recordRepo.Close(); err != nil {
		db.logger.Error("error closing record repository", "err", err)
		return err
	}
	if err := db.checkpointRepo.Close(); err != nil {
		db.logger.Error("error closing checkpoint repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) RecordRepository() storage.RecordRepository {
	return db.recordRepo
}

func (db *Database) CheckpointRepository() storage.CheckpointRepository {
	return db.checkpointRepo
}

func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	opts = append([]ingestion.Option{ingestion.WithLogger(db.logger)}, opts...)
	return ingestion.NewPipeline(db.recordRepo, db.checkpointRepo, opts...)
}

// NewSearcher creates a searcher with its own distance engine.
// A searcher is not safe for concurrent use; create one per goroutine and
// Close it when done.
func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	engine := distance.NewEngine(distance.WithMaxScratchCells(db.maxScratchCells))
	opts = append([]search.Option{search.WithLogger(db.logger)}, opts...)
	return search.NewSearcher(db.recordRepo, engine, opts...)
}
