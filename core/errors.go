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

import "errors"

// Domain validation errors
var (
	// ErrInvalidCandidate indicates a Candidate failed validation.
	ErrInvalidCandidate = errors.New("invalid candidate")

	// ErrInvalidSeed indicates a Seed failed validation.
	ErrInvalidSeed = errors.New("invalid seed")

	// ErrEmptyPhrase indicates the Phrase field is empty.
	ErrEmptyPhrase = errors.New("phrase cannot be empty")

	// ErrInvalidProvenance indicates an invalid Provenance value.
	ErrInvalidProvenance = errors.New("invalid provenance")
)
