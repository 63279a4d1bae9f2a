// Package ingestion loads a line-oriented corpus into storage.
//
// ReadLines and ReadFile turn a text file into records, one per line, and
// drop lines over the length limit. The Pipeline type stores those records through a storage.RecordRepository:
//   - Lines are split into fixed-size batches
//   - Batches are written concurrently from a worker pool
//   - Write conflicts are retried with exponential backoff
//   - Progress is checkpointed so an interrupted load resumes where it stopped
//
// Records keep the position of their line in the input, so a stored corpus
// scans exactly like the file it was loaded from.
package ingestion
