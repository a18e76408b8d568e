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


package core

import "fmt"

// ValidateCandidate validates a Candidate according to domain rules.
//
// Validation rules:
//   - Phrase must not be empty
//   - Provenance must be a known value
//
// NOT validated:
//   - Metrics (absent metrics are a low-confidence value, not an error)
//   - Rationale (informational only)
func ValidateCandidate(candidate *Candidate) error {
	if candidate == nil {
		return fmt.Errorf("%w: candidate is nil", ErrInvalidCandidate)
	}

	if candidate.Phrase == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCandidate, ErrEmptyPhrase)
	}

	if err := ValidateProvenance(candidate.Provenance); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCandidate, err)
	}

	return nil
}

// ValidateSeed validates a Seed according to domain rules.
//
// Validation rules:
//   - Phrase must not be empty
//
// Intent and Perspective may be empty; the taxonomy pack classifies them
// when absent.
func ValidateSeed(seed *Seed) error {
	if seed == nil {
		return fmt.Errorf("%w: seed is nil", ErrInvalidSeed)
	}

	if seed.Phrase == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSeed, ErrEmptyPhrase)
	}

	return nil
}

// ValidateProvenance validates that a Provenance has a valid value.
func ValidateProvenance(provenance Provenance) error {
	switch provenance {
	case ProvenanceProvider, ProvenanceExternal, ProvenanceTemplate:
		return nil
	default:
		return fmt.Errorf("%w: value %d", ErrInvalidProvenance, provenance)
	}
}
