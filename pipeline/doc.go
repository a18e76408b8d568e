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

// Package pipeline runs the full expansion: score, select, cluster, lay
// out, build the relationship graph, render artifacts.
//
// A run is purely functional over in-memory data. All I/O happens before
// Expand is called; the pipeline itself never touches network or disk and
// keeps no state between invocations, so one Pipeline may serve concurrent
// runs. Pairwise node similarities may be computed on a worker pool, but
// each cell is independent, so parallel runs are bit-identical to
// sequential ones.
package pipeline
