package badger

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/fuzzscan/core"
	"github.com/poiesic/fuzzscan/storage"
)

// RecordRepository implements storage.RecordRepository for BadgerDB.
type RecordRepository struct {
	backend *Backend
}

var _ storage.RecordRepository = (*RecordRepository)(nil)

// NewRecordRepository creates a new RecordRepository.
func NewRecordRepository(backend *Backend) *RecordRepository {
	return &RecordRepository{
		backend: backend,
	}
}

// Close is a no-op; the backend owns the database handle.
func (r *RecordRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *RecordRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddRecords stores records at their corpus positions.
func (r *RecordRepository) AddRecords(ctx context.Context, records ...*core.Record) error {
	if len(records) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC()
		for _, record := range records {
			if record == nil {
				return fmt.Errorf("%w: nil record", storage.ErrInvalidRecord)
			}
			record.Id = core.IDFromContent(record.Contents)
			record.InsertedAt = now
			if err := core.ValidateRecord(record); err != nil {
				return fmt.Errorf("%w: index %d: %w", storage.ErrInvalidRecord, record.Index, err)
			}

			key := makeRecordKey(record.Index)

			// Drop the content index entry of any record being replaced
			old, err := r.readRecord(tx, key)
			if err != nil {
				return err
			}
			if old != nil && old.Id != record.Id {
				if err := tx.Delete(makeContentKey(old.Id, old.Index)); err != nil {
					return err
				}
			}

			if err := tx.Set(key, storage.MarshalRecord(record)); err != nil {
				return err
			}
			if err := tx.Set(makeContentKey(record.Id, record.Index), storage.MarshalIndex(record.Index)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetRecord retrieves the record at a corpus position.
func (r *RecordRepository) GetRecord(ctx context.Context, index uint64) (*core.Record, error) {
	var result *core.Record
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readRecord(tx, makeRecordKey(index))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetRecords retrieves records by position, skipping missing positions.
func (r *RecordRepository) GetRecords(ctx context.Context, indices ...uint64) ([]*core.Record, error) {
	result := make([]*core.Record, 0, len(indices))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, index := range indices {
			record, err := r.readRecord(tx, makeRecordKey(index))
			if err != nil {
				return err
			}
			if record != nil {
				result = append(result, record)
			}
		}
		return nil
	}, false)
	return result, err
}

// IndicesByContent returns the positions of records with identical contents.
func (r *RecordRepository) IndicesByContent(ctx context.Context, contents string) ([]uint64, error) {
	id := core.IDFromContent(contents)
	var indices []uint64
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialContentKey(id)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.ValidForPrefix(startKey); iter.Next() {
			var index uint64
			err := iter.Item().Value(func(val []byte) error {
				var err error
				index, err = storage.UnmarshalIndex(val)
				return err
			})
			if err != nil {
				return err
			}

			// Guard against hash collisions
			record, err := r.readRecord(tx, makeRecordKey(index))
			if err != nil {
				return err
			}
			if record != nil && record.Contents == contents {
				indices = append(indices, index)
			}
		}
		return nil
	}, false)

	return indices, err
}

// Corpus returns the contents of every stored record in index order.
func (r *RecordRepository) Corpus(ctx context.Context) ([]string, error) {
	_, corpus, err := r.IndexedCorpus(ctx)
	return corpus, err
}

// IndexedCorpus returns the position and contents of every stored record in
// index order.
func (r *RecordRepository) IndexedCorpus(ctx context.Context) ([]uint64, []string, error) {
	indices := []uint64{}
	corpus := []string{}
	err := r.backend.ForEachPrefix(ctx, []byte(recordPrefix), true, func(item *badger.Item) error {
		return item.Value(func(val []byte) error {
			record, err := storage.UnmarshalRecord(val)
			if err != nil {
				return err
			}
			indices = append(indices, record.Index)
			corpus = append(corpus, record.Contents)
			return nil
		})
	})
	if err != nil {
		return nil, nil, err
	}
	return indices, corpus, nil
}

// Count returns the number of stored records.
func (r *RecordRepository) Count(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.ForEachPrefix(ctx, []byte(recordPrefix), false, func(item *badger.Item) error {
		if _, err := indexFromRecordKey(item.Key()); err != nil {
			return err
		}
		count++
		return nil
	})
	return count, err
}

// Clear removes every stored record and its content index entries.
func (r *RecordRepository) Clear(ctx context.Context) error {
	return r.backend.DeletePrefix(ctx, []byte(recordPrefix), []byte(recordContentPrefix))
}

// Truncate removes the records stored at positions >= index, together with
// their content index entries.
func (r *RecordRepository) Truncate(ctx context.Context, index uint64) error {
	var keys [][]byte
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(recordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(makeRecordKey(index)); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := iter.Item()
			err := item.Value(func(val []byte) error {
				record, err := storage.UnmarshalRecord(val)
				if err != nil {
					return err
				}
				keys = append(keys, item.KeyCopy(nil), makeContentKey(record.Id, record.Index))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return err
	}
	return r.backend.deleteKeys(keys)
}

// Helper methods

// readRecord reads a record from the transaction.
// Returns nil, nil when the key does not exist.
func (r *RecordRepository) readRecord(tx *badger.Txn, key []byte) (*core.Record, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.Record
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalRecord(val)
		return unmarshalErr
	})
	if err == nil && !bytes.Equal(key, makeRecordKey(record.Index)) {
		err = fmt.Errorf("%w: record stored under wrong key", storage.ErrSerializationFailed)
	}
	return record, err
}
