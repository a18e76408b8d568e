package pipeline

import (
	"fmt"
	"os"

	"github.com/poiesic/phrasemap/cluster"
	"github.com/poiesic/phrasemap/layout"
	"github.com/poiesic/phrasemap/scoring"
	"github.com/poiesic/phrasemap/selection"
	"github.com/poiesic/phrasemap/synapse"
	"gopkg.in/yaml.v3"
)

// Config aggregates every stage's parameters. Configuration errors are
// fatal: Validate fails the run before any scoring happens.
type Config struct {
	Scoring   scoring.Weights  `yaml:"scoring"`
	Selection selection.Config `yaml:"selection"`
	Cluster   cluster.Config   `yaml:"cluster"`
	Layout    layout.Config    `yaml:"layout"`
	Synapse   synapse.Config   `yaml:"synapse"`
}

// DefaultConfig returns every stage's defaults.
func DefaultConfig() Config {
	return Config{
		Scoring:   scoring.DefaultWeights(),
		Selection: selection.DefaultConfig(),
		Cluster:   cluster.DefaultConfig(),
		Layout:    layout.DefaultConfig(),
		Synapse:   synapse.DefaultConfig(),
	}
}

// LoadConfig reads a YAML config file. Values absent from the file keep
// their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfigUnreadable, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfigUnreadable, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every stage's parameters.
func (c Config) Validate() error {
	if err := c.Scoring.Validate(); err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	if err := c.Selection.Validate(); err != nil {
		return fmt.Errorf("selection: %w", err)
	}
	if err := c.Cluster.Validate(); err != nil {
		return fmt.Errorf("cluster: %w", err)
	}
	if err := c.Layout.Validate(); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	if err := c.Synapse.Validate(); err != nil {
		return fmt.Errorf("synapse: %w", err)
	}
	return nil
}
