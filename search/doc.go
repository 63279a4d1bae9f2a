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

// Package search implements fuzzy term matching over a corpus of text records.
//
// Matching happens at two levels:
//   - MatchRecord splits one record into whitespace-delimited tokens and counts
//     the tokens that match the query term under a distance.Matcher
//   - Scanner.Scan visits every record of an in-memory corpus in order and
//     collects the indices of the records with at least one matching token
//
// Searcher is a thin front end that loads the corpus from a
// storage.RecordRepository before scanning it.
//
// A Scanner borrows the scratch table of its distance.Engine and is not safe
// for concurrent use.
package search
