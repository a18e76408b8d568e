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

// Package store defines run persistence.
//
// A run is one complete expansion: the seed, the normalized candidate
// pool it consumed, and the two rendered artifacts. Index records are MUS
// encoded for compact keyspace scans; the artifacts stay as the exact JSON
// bytes the pipeline produced, so a stored graph replays byte-identically.
//
// Backends implement RunRepository; the badger subpackage provides the
// default one.
package store
