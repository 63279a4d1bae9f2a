package distance

import (
	"fmt"
	"strings"
)

// Metric identifies one of the supported matching strategies.
type Metric int

const (
	// Levenshtein matches words within an edit distance of the term.
	Levenshtein Metric = iota + 1
	// Hamming matches words within a positional mismatch count of the term.
	Hamming
	// BruteForce matches words that contain the term verbatim.
	BruteForce
)

// Metrics returns every supported metric in canonical order.
func Metrics() []Metric {
	return []Metric{Levenshtein, Hamming, BruteForce}
}

// String returns the canonical name of the metric.
func (m Metric) String() string {
	switch m {
	case Levenshtein:
		return "levenshtein"
	case Hamming:
		return "hamming"
	case BruteForce:
		return "bruteforce"
	default:
		return fmt.Sprintf("metric(%d)", int(m))
	}
}

// UsesThreshold reports whether the metric takes the threshold into account.
func (m Metric) UsesThreshold() bool {
	return m == Levenshtein || m == Hamming
}

// Validate returns ErrUnknownMetric for values outside the supported set.
func (m Metric) Validate() error {
	switch m {
	case Levenshtein, Hamming, BruteForce:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnknownMetric, int(m))
	}
}

// ParseMetric parses a metric name. Matching is case-insensitive and accepts
// a few common aliases.
func ParseMetric(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "levenshtein", "leven", "edit":
		return Levenshtein, nil
	case "hamming":
		return Hamming, nil
	case "bruteforce", "brute", "substring":
		return BruteForce, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}
}

// LevenshteinDistance returns the minimum number of single byte insertions,
// deletions or substitutions needed to turn a into b. The table is taken from
// s and only cells inside the current (len(a)+1) x (len(b)+1) window are
// read, all of which are written first.
func LevenshteinDistance(s *Scratch, a, b string) (int, error) {
	rows, cols := len(a)+1, len(b)+1
	grid, err := s.Acquire(rows, cols)
	if err != nil {
		return 0, err
	}

	for i := 0; i < rows; i++ {
		grid.Set(i, 0, i)
	}
	for j := 0; j < cols; j++ {
		grid.Set(0, j, j)
	}

	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			grid.Set(i, j, min(
				grid.At(i-1, j)+1,
				grid.At(i, j-1)+1,
				grid.At(i-1, j-1)+cost,
			))
		}
	}

	return grid.At(rows-1, cols-1), nil
}

// HammingDistance counts the byte positions at which a and b differ.
// Strings of unequal length are compared over the shorter length and the
// length difference is added to the count, so the result is symmetric and
// never smaller than the edit distance lower bound |len(a)-len(b)|.
func HammingDistance(a, b string) int {
	n := min(len(a), len(b))
	d := max(len(a), len(b)) - n
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			d++
		}
	}
	return d
}

// Contains reports whether term occurs as a contiguous substring of word.
func Contains(word, term string) bool {
	return strings.Contains(word, term)
}
