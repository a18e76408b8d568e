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


// Package scoring computes feature vectors and relevance scores for
// candidate phrases against a seed.
//
// For each candidate the scorer produces five features, each clamped to
// [0,1]: entity overlap, external result overlap, lexical similarity,
// intent compatibility and perspective alignment. Relevance is the weighted
// sum of the features under externally configured weights. Missing evidence
// (no external metrics, empty phrases, unknown labels) always resolves to a
// low value, never to an error.
package scoring
