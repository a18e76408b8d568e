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

package layout

import "errors"

var (
	// ErrPackRequired is returned when a taxonomy pack is not provided.
	ErrPackRequired = errors.New("taxonomy pack required")

	// ErrInvalidJitterScale is returned when the jitter scale is outside [0, 0.5].
	ErrInvalidJitterScale = errors.New("jitter scale must be in [0, 0.5]")

	// ErrInvalidWarnThreshold is returned when the warn threshold is outside (0, 1].
	ErrInvalidWarnThreshold = errors.New("warn threshold must be in (0, 1]")
)
