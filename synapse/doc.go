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

// Package synapse builds the typed relationship graph over a laid-out node
// set.
//
// Two kinds of edges exist: one seed edge per node, and at most one
// intra-cluster edge per node to the same-cluster neighbor with the best
// mutual grounding. Mutual grounding is the minimum of the two nodes'
// lexical similarity to the seed, not their pairwise similarity; an
// intra-cluster edge is emitted only when its strength clears the
// configured floor, and the unordered node pair is emitted at most once.
//
// Every edge carries one to three priority-ordered types, a bridge
// statement chosen by the first matching condition, and scored evidence
// entries. Edges are derived data and are rebuilt from scratch on every
// run.
package synapse
