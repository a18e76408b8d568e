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


// Package taxonomy provides the static lookup data the pipeline scores
// against: intent and perspective distance tables, layout axes, heuristic
// entity dictionaries, and phrase marker lists.
//
// All of this is data, not logic. A Pack can be loaded from YAML so
// deployments can swap market-specific dictionaries without code changes;
// Default returns the built-in pack tuned for Nordic-market search phrases.
// Lookups never fail: unknown label pairs fall back to a distance of 0.5 and
// unknown axis labels to the center of the unit interval.
package taxonomy
