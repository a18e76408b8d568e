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

// Package candidates defines the candidate-generation boundary.
//
// Everything network-facing happens behind the Generator interface before
// the scoring pipeline runs; the pipeline itself never performs I/O. The
// package also owns phrase normalization: generators may return raw
// provider output, and Prepare collapses it into the normalized,
// deduplicated pool the scorer expects.
//
// Subpackages provide the implementations: template (local expansion, no
// network), openai (OpenAI-compatible suggestion API) and mock (test
// double).
package candidates
