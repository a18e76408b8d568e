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


// Package cluster groups selected nodes by a weighted multi-criteria
// distance: lexical dissimilarity, intent distance, perspective distance and
// entity-set dissimilarity.
//
// The distance matrix is normalized by its maximum entry and fed to
// agglomerative hierarchical clustering with average linkage, cut at an
// explicit or automatically chosen cluster count. Cluster labels are
// letters assigned by sorted smallest-member index, so the same node set
// always yields the same labels regardless of merge history.
package cluster
