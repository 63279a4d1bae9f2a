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

// Package distance provides the string distance metrics used for fuzzy term
// matching.
//
// Three metrics are supported and are selected per scan through the closed
// Metric enum:
//   - Levenshtein: edit distance computed over a reusable scratch table
//   - Hamming: positional mismatch count
//   - BruteForce: exact substring containment, threshold is ignored
//
// All comparisons are byte-exact. No case folding or Unicode normalization is
// performed.
//
// # Scratch Buffers
//
// The Levenshtein metric needs a (len(a)+1) x (len(b)+1) table. Rather than
// allocating a table per call, each Engine owns a Scratch that grows to the
// largest dimensions seen and is reused for every subsequent call:
//
//	engine := distance.NewEngine()
//	defer engine.Close()
//
//	m, err := engine.Matcher(distance.Levenshtein)
//	ok, err := m.Match("fuzzy", "fluzzy", 1)
//
// # Thread Safety
//
// An Engine and its Scratch are not safe for concurrent use. Callers that
// scan from multiple goroutines must give each goroutine its own Engine.
package distance
