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


// Package selection picks a diversified top-K subset of scored candidates
// using maximal marginal relevance.
//
// Selection is greedy: each round scores every eligible remaining candidate
// as lambda*relevance - (1-lambda)*redundancy, where redundancy is the
// maximum lexical similarity to anything already selected, and takes the
// best. Per-intent and per-perspective quotas are hard constraints; the
// near-duplicate budget is softer and is the only constraint relaxed when
// quotas would otherwise leave the selection short of its target.
//
// The selector is fully deterministic: ties break by input order, and the
// same inputs always produce the same selection. This is the property the
// rest of the pipeline's reproducibility rests on.
package selection
