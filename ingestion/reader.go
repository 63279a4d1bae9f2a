package ingestion

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	// DefaultMaxRecords is the default cap on the number of lines read.
	DefaultMaxRecords = 1_600_000

	// DefaultMaxLineBytes is the default cap on the length of one line.
	DefaultMaxLineBytes = 1024
)

// ReadLines reads one record per line from r.
// Trailing "\n" and "\r\n" are stripped; a final line without a newline is
// still a record. Reading stops after maxRecords lines. Lines longer than
// maxLineBytes are dropped and counted in skipped. Non-positive limits fall
// back to the defaults.
func ReadLines(r io.Reader, maxRecords, maxLineBytes int) (lines []string, skipped int, err error) {
	if maxRecords <= 0 {
		maxRecords = DefaultMaxRecords
	}
	if maxLineBytes <= 0 {
		maxLineBytes = DefaultMaxLineBytes
	}

	// Room for the line, its "\r" and the "\n" terminator.
	br := bufio.NewReaderSize(r, maxLineBytes+2)
	lines = make([]string, 0, min(maxRecords, 4096))
	for len(lines) < maxRecords {
		chunk, readErr := br.ReadSlice('\n')
		if errors.Is(readErr, bufio.ErrBufferFull) {
			for errors.Is(readErr, bufio.ErrBufferFull) {
				_, readErr = br.ReadSlice('\n')
			}
			skipped++
		} else if len(chunk) > 0 {
			line := strings.TrimSuffix(strings.TrimSuffix(string(chunk), "\n"), "\r")
			if len(line) > maxLineBytes {
				skipped++
			} else {
				lines = append(lines, line)
			}
		}

		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, skipped, readErr
		}
	}

	return lines, skipped, nil
}

// ReadFile opens path and reads it with ReadLines.
func ReadFile(path string, maxRecords, maxLineBytes int) ([]string, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	lines, skipped, err := ReadLines(f, maxRecords, maxLineBytes)
	if err != nil {
		return nil, skipped, fmt.Errorf("%s: %w", path, err)
	}
	return lines, skipped, nil
}
