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


// Package lexical turns phrases into sparse term-frequency vectors for
// cosine similarity.
//
// Vectors are built over a vocabulary of unigrams and bigrams shared across
// all phrases in a Matrix, so similarities between any two rows are
// comparable. This is a lexical approximation of semantic similarity, not a
// learned embedding: two phrases are similar to the degree they share terms.
//
// Cosine over an empty vocabulary or an empty phrase is undefined; the
// package resolves it to 0 instead of returning an error, matching the
// pipeline's missing-evidence policy.
package lexical
