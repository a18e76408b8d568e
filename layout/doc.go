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


// Package layout maps nodes onto the unit square.
//
// The horizontal axis encodes intent, the vertical axis perspective; both
// lookups come from the taxonomy pack. Nodes are perturbed by a jitter
// derived from a BLAKE2b hash of their id, so positions are pseudo-random
// but identical across runs for the same node set. No global RNG state is
// involved anywhere.
//
// Nodes whose combined intent and perspective distance from the seed
// crosses the warn threshold are flagged rather than moved; flags are
// append-only. Cluster centroids are the arithmetic mean of member
// coordinates once those are final.
package layout
