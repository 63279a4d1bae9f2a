// Package benchmark times fuzzy scans of one term across every metric.
//
// A Runner scans the corpus with Levenshtein and Hamming at a base and an
// expanded threshold, then once by substring, and collects a Report that
// renders as a table.
package benchmark
