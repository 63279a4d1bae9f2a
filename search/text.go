package search

import (
	"iter"

	"github.com/poiesic/fuzzscan/distance"
)

// isSpace reports whether c is an ASCII whitespace byte.
// Records are compared byte for byte, so Unicode spaces are ordinary bytes.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// Tokens yields the whitespace-delimited words of record in order.
// Tokens are substrings of record; nothing is copied, trimmed or folded.
func Tokens(record string) iter.Seq[string] {
	return func(yield func(string) bool) {
		start := -1
		for i := 0; i < len(record); i++ {
			if isSpace(record[i]) {
				if start >= 0 {
					if !yield(record[start:i]) {
						return
					}
					start = -1
				}
				continue
			}
			if start < 0 {
				start = i
			}
		}
		if start >= 0 {
			yield(record[start:])
		}
	}
}

// MatchRecord counts the tokens of record that match term under m.
// An empty term or a record without tokens yields 0. The first error returned
// by m aborts the count.
func MatchRecord(record, term string, threshold int, m distance.Matcher) (int, error) {
	if term == "" {
		return 0, nil
	}

	hits := 0
	for token := range Tokens(record) {
		ok, err := m.Match(token, term, threshold)
		if err != nil {
			return 0, err
		}
		if ok {
			hits++
		}
	}
	return hits, nil
}
