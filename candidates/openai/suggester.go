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

package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/poiesic/phrasemap/candidates"
	"github.com/poiesic/phrasemap/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// maxParseAttempts bounds retries on malformed model output.
const maxParseAttempts = 3

// Suggester implements candidates.Generator over an OpenAI-compatible chat
// API.
type Suggester struct {
	client        llms.Model
	market        string
	maxCandidates int
	logger        *slog.Logger
}

var _ candidates.Generator = (*Suggester)(nil)

// suggestion matches the structure the model is asked to emit.
type suggestion struct {
	Phrase    string `json:"phrase"`
	Rationale string `json:"rationale"`
}

// suggestionList is the wrapper structure for the model's JSON response.
type suggestionList struct {
	Suggestions []suggestion `json:"suggestions"`
}

// newSuggester is an internal constructor returning the concrete type.
func newSuggester(config *candidates.Config) (*Suggester, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// "none" as token for local OpenAI-compatible services without auth
	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken("none"),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &Suggester{
		client:        client,
		market:        config.Market,
		maxCandidates: config.MaxCandidates,
		logger:        slog.Default().With("component", "openai-suggester"),
	}, nil
}

// NewSuggester creates a suggestion generator using the provided
// configuration.
//
// Returns candidates.Generator interface to enforce abstraction.
func NewSuggester(config *candidates.Config) (candidates.Generator, error) {
	return newSuggester(config)
}

// Generate asks the model for related search phrases. Raw phrases are
// returned; normalization and deduplication belong to candidates.Prepare.
func (s *Suggester) Generate(ctx context.Context, seed core.Seed) ([]core.Candidate, error) {
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(buildSystemPrompt(s.market, s.maxCandidates))},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(buildUserPrompt(seed))},
		},
	}

	var result suggestionList
	var lastErr error
	for attempt := 0; attempt < maxParseAttempts; attempt++ {
		response, err := s.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			s.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			s.logger.Debug("no choices returned from model")
			return []core.Candidate{}, nil
		}

		text := stripFences(response.Choices[0].Content)
		text = repairJSON(text)

		if err := json.Unmarshal([]byte(text), &result); err != nil {
			lastErr = err
			s.logger.Warn("error parsing suggestion response",
				"attempt", attempt+1,
				"response", text,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		s.logger.Error("failed to parse suggestion response after retries", "err", lastErr)
		return nil, lastErr
	}

	out := make([]core.Candidate, 0, len(result.Suggestions))
	for _, sug := range result.Suggestions {
		if strings.TrimSpace(sug.Phrase) == "" {
			continue
		}
		if len(out) >= s.maxCandidates {
			break
		}
		out = append(out, core.Candidate{
			Phrase:     sug.Phrase,
			Provenance: core.ProvenanceProvider,
			Rationale:  sug.Rationale,
		})
	}

	s.logger.Debug("generated candidates", "seed", seed.Phrase, "count", len(out))
	return out, nil
}

// stripFences removes markdown code fences the model sometimes wraps JSON
// in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
