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

// Package template expands a seed phrase through a fixed pattern list.
//
// This is the offline fallback generator: no network, no external data,
// deterministic output. Everything it produces carries template provenance
// and is therefore confidence-capped downstream.
package template

import (
	"context"
	"fmt"
	"strings"

	"github.com/poiesic/phrasemap/candidates"
	"github.com/poiesic/phrasemap/core"
)

// Placeholder marks where the seed phrase is substituted into a pattern.
const Placeholder = "{seed}"

// defaultPatterns targets Nordic-market consumer searches. Patterns without
// the placeholder are skipped at expansion time.
var defaultPatterns = []string{
	"bästa " + Placeholder,
	"billigaste " + Placeholder,
	Placeholder + " ränta",
	Placeholder + " kalkyl",
	Placeholder + " utan kontantinsats",
	"hur fungerar " + Placeholder,
	"jämför " + Placeholder,
	"ansök om " + Placeholder,
	Placeholder + " eller privatleasing",
}

// Generator expands seeds through a pattern list.
type Generator struct {
	patterns []string
}

var _ candidates.Generator = (*Generator)(nil)

// Option configures a Generator.
type Option func(*Generator)

// WithPatterns replaces the default pattern list.
func WithPatterns(patterns []string) Option {
	return func(g *Generator) {
		g.patterns = patterns
	}
}

// NewGenerator creates a template generator with the default Nordic-market
// patterns.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{patterns: defaultPatterns}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate substitutes the seed phrase into every pattern, in pattern
// order.
func (g *Generator) Generate(_ context.Context, seed core.Seed) ([]core.Candidate, error) {
	phrase := candidates.Normalize(seed.Phrase)
	if phrase == "" {
		return nil, core.ErrEmptyPhrase
	}

	out := make([]core.Candidate, 0, len(g.patterns))
	for _, pattern := range g.patterns {
		if !strings.Contains(pattern, Placeholder) {
			continue
		}
		out = append(out, core.Candidate{
			Phrase:     strings.ReplaceAll(pattern, Placeholder, phrase),
			Provenance: core.ProvenanceTemplate,
			Rationale:  fmt.Sprintf("expanded from template %q", pattern),
		})
	}
	return out, nil
}
