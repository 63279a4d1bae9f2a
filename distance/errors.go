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

package distance

import "errors"

var (
	// ErrScratchLimit is returned when growing the scratch table would exceed
	// the configured cell limit.
	ErrScratchLimit = errors.New("scratch table limit exceeded")

	// ErrInvalidDimensions is returned when a table is requested with
	// non-positive dimensions.
	ErrInvalidDimensions = errors.New("invalid scratch dimensions")

	// ErrUnknownMetric is returned for a metric outside the supported set.
	ErrUnknownMetric = errors.New("unknown distance metric")

	// ErrEngineClosed is returned when a closed engine is asked for a matcher.
	ErrEngineClosed = errors.New("distance engine is closed")
)
