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

package candidates

import "strings"

// Config holds configuration for network-facing candidate generators.
type Config struct {
	// Host is the base URL for the suggestion service API.
	// Example: "http://localhost:11434/v1" for a local OpenAI-compatible server.
	Host string

	// Model is the model identifier used for phrase suggestions.
	Model string

	// Market hints the language and market the suggestions should target.
	// Example: "sv-SE".
	Market string

	// MaxCandidates bounds the number of candidates one generator call
	// may return. Default: 40.
	MaxCandidates int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the suggestion service host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithModel sets the suggestion model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithMarket sets the target market hint.
func WithMarket(market string) ConfigOption {
	return func(c *Config) {
		c.Market = market
	}
}

// WithMaxCandidates bounds the generator output size.
func WithMaxCandidates(n int) ConfigOption {
	return func(c *Config) {
		c.MaxCandidates = n
	}
}

// DefaultConfig returns a Config with sensible defaults for a local
// OpenAI-compatible service.
func DefaultConfig() *Config {
	return &Config{
		Host:          "http://localhost:11434/v1",
		Model:         "qwen2.5:3b",
		Market:        "sv-SE",
		MaxCandidates: 40,
	}
}

// NewConfig creates a Config with default values and applies the provided
// options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Validate checks the configuration for missing or invalid values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return ErrMissingHost
	}
	if strings.TrimSpace(c.Model) == "" {
		return ErrMissingModel
	}
	if c.MaxCandidates <= 0 {
		return ErrInvalidMaxCandidates
	}
	return nil
}
