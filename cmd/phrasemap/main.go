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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/phrasemap"
	"github.com/poiesic/phrasemap/candidates"
	"github.com/poiesic/phrasemap/candidates/openai"
	"github.com/poiesic/phrasemap/candidates/template"
	"github.com/poiesic/phrasemap/core"
	"github.com/poiesic/phrasemap/pipeline"
	"github.com/poiesic/phrasemap/rescore"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "phrasemap",
		Usage: "Expand a seed phrase into a clustered map of related phrases",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "expand",
				Usage:  "Expand a seed phrase and write graph and report artifacts",
				Action: expandCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "seed",
						Aliases:  []string{"s"},
						Usage:    "Seed phrase to expand",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "pool",
						Usage: "Path to a JSON candidate pool file (template patterns are used when omitted)",
					},
					&cli.BoolFlag{
						Name:  "suggest",
						Usage: "Also request candidates from an OpenAI-compatible endpoint",
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "Suggestion service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "model",
						Usage: "Suggestion model name",
						Value: "qwen2.5:3b",
					},
					&cli.StringFlag{
						Name:  "config",
						Aliases: []string{"c"},
						Usage: "Path to a pipeline configuration YAML file",
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB run store (run is persisted when set)",
					},
					&cli.StringFlag{
						Name:  "graph",
						Usage: "Graph artifact output path",
						Value: "graph.json",
					},
					&cli.StringFlag{
						Name:  "report",
						Usage: "Report artifact output path",
						Value: "report.json",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Worker pool size for similarity computation",
					},
				},
			},
			{
				Name:  "runs",
				Usage: "Inspect and manage stored runs",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB run store",
						Required: true,
					},
				},
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List stored runs, newest first",
						Action: runsListCommand,
					},
					{
						Name:      "show",
						Usage:     "Print a stored run",
						ArgsUsage: "<run-id>",
						Action:    runsShowCommand,
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "graph",
								Usage: "Print the stored graph artifact",
							},
							&cli.BoolFlag{
								Name:  "report",
								Usage: "Print the stored report artifact",
							},
						},
					},
					{
						Name:      "delete",
						Usage:     "Delete a stored run",
						ArgsUsage: "<run-id>",
						Action:    runsDeleteCommand,
					},
				},
			},
			{
				Name:   "rescore",
				Usage:  "Replay every stored run through the current configuration",
				Action: rescoreCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB run store",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to a pipeline configuration YAML file",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of runs to process in each batch",
						Value: 16,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N runs",
						Value: 10,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum save attempts per run",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 200 * time.Millisecond,
					},
				},
			},
			{
				Name:   "sample",
				Usage:  "Print a sample candidate pool for the expand --pool flag",
				Action: sampleCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// poolEntry is the JSON shape of one candidate in a --pool file.
type poolEntry struct {
	Phrase     string             `json:"phrase"`
	Provenance string             `json:"provenance"`
	Rationale  string             `json:"rationale,omitempty"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

func expandCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := loadPipelineConfig(c.String("config"))
	if err != nil {
		return err
	}

	pool, err := gatherPool(ctx, c)
	if err != nil {
		return err
	}

	opts := []phrasemap.EngineOption{phrasemap.WithPipelineConfig(cfg)}
	dbPath := c.String("db")
	if dbPath == "" {
		opts = append(opts, phrasemap.WithInMemoryStore())
	}
	if size := c.Int("pool-size"); size > 0 {
		opts = append(opts, phrasemap.WithPoolSize(size))
	}

	engine, err := phrasemap.NewEngine(dbPath, opts...)
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	result, err := engine.Expand(ctx, c.String("seed"), pool)
	if err != nil {
		return fmt.Errorf("expansion failed: %w", err)
	}

	if err := writeArtifact(c.String("graph"), result.Graph); err != nil {
		return err
	}
	if err := writeArtifact(c.String("report"), result.Report); err != nil {
		return err
	}

	if dbPath != "" {
		info, err := engine.SaveRun(ctx, result, pool)
		if err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Saved run %s\n", info.Id)
	}

	fmt.Fprintf(os.Stderr, "Expanded %q into %d nodes, %d edges, %d clusters\n",
		result.Seed.Phrase, len(result.Nodes), len(result.Edges), len(result.Clusters))

	return nil
}

// gatherPool assembles the candidate pool from a file, the template
// generator, and optionally an LLM suggester.
func gatherPool(ctx context.Context, c *cli.Context) ([]core.Candidate, error) {
	if path := c.String("pool"); path != "" {
		return readPoolFile(path)
	}

	seed := core.Seed{Phrase: c.String("seed")}

	gen := template.NewGenerator()
	pool, err := gen.Generate(ctx, seed)
	if err != nil {
		return nil, fmt.Errorf("template generation failed: %w", err)
	}

	if c.Bool("suggest") {
		suggestConfig := candidates.NewConfig(
			candidates.WithHost(c.String("host")),
			candidates.WithModel(c.String("model")),
		)
		if err := suggestConfig.Validate(); err != nil {
			return nil, fmt.Errorf("invalid suggester configuration: %w", err)
		}

		suggester, err := openai.NewSuggester(suggestConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create suggester: %w", err)
		}

		suggested, err := suggester.Generate(ctx, seed)
		if err != nil {
			return nil, fmt.Errorf("suggestion failed: %w", err)
		}
		pool = append(pool, suggested...)
	}

	return pool, nil
}

func readPoolFile(path string) ([]core.Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pool file: %w", err)
	}

	var entries []poolEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse pool file: %w", err)
	}

	pool := make([]core.Candidate, len(entries))
	for i, e := range entries {
		provenance, err := core.ParseProvenance(e.Provenance)
		if err != nil {
			return nil, fmt.Errorf("pool entry %d: %w", i, err)
		}
		pool[i] = core.Candidate{
			Phrase:     e.Phrase,
			Provenance: provenance,
			Rationale:  e.Rationale,
			Metrics:    e.Metrics,
		}
	}
	return pool, nil
}

func writeArtifact(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func runsListCommand(c *cli.Context) error {
	engine, err := phrasemap.NewEngine(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	infos, err := engine.Runs().ListRuns(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(infos) == 0 {
		fmt.Println("no stored runs")
		return nil
	}

	for _, info := range infos {
		fmt.Printf("%s  %-30s  %3d nodes  %3d edges  %2d clusters  %s\n",
			info.Id, info.SeedPhrase, info.NodeCount, info.EdgeCount,
			info.ClusterCount, info.CreatedAt.Format(time.RFC3339))
	}
	return nil
}

func runsShowCommand(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("run id is required")
	}

	engine, err := phrasemap.NewEngine(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	run, err := engine.Runs().GetRun(context.Background(), id)
	if err != nil {
		return fmt.Errorf("failed to load run: %w", err)
	}

	switch {
	case c.Bool("graph"):
		fmt.Println(string(run.Graph))
	case c.Bool("report"):
		fmt.Println(string(run.Report))
	default:
		fmt.Printf("id:       %s\n", run.Info.Id)
		fmt.Printf("seed:     %s\n", run.Info.SeedPhrase)
		fmt.Printf("nodes:    %d\n", run.Info.NodeCount)
		fmt.Printf("edges:    %d\n", run.Info.EdgeCount)
		fmt.Printf("clusters: %d\n", run.Info.ClusterCount)
		fmt.Printf("created:  %s\n", run.Info.CreatedAt.Format(time.RFC3339))
		fmt.Printf("pool:     %d candidates\n", len(run.Pool))
	}
	return nil
}

func runsDeleteCommand(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("run id is required")
	}

	engine, err := phrasemap.NewEngine(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	if err := engine.Runs().DeleteRun(context.Background(), id); err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Deleted run %s\n", id)
	return nil
}

func rescoreCommand(c *cli.Context) error {
	cfg, err := loadPipelineConfig(c.String("config"))
	if err != nil {
		return err
	}

	engine, err := phrasemap.NewEngine(c.String("db"), phrasemap.WithPipelineConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	rescoreConfig := rescore.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}

	stats, err := engine.Rescore(context.Background(), rescoreConfig, os.Stderr)
	if err != nil {
		return fmt.Errorf("rescoring failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Rescored %d of %d runs (%d failed)\n",
		stats.Rescored, stats.Total, stats.Failed)
	return nil
}

func sampleCommand(c *cli.Context) error {
	pool := []poolEntry{
		{Phrase: "billån ränta", Provenance: core.ProvenanceProvider.String(), Rationale: "common refinement", Metrics: map[string]float64{core.MetricExternalOverlap: 0.4}},
		{Phrase: "billån kalkyl", Provenance: core.ProvenanceProvider.String(), Rationale: "common refinement"},
		{Phrase: "hur fungerar billån", Provenance: core.ProvenanceProvider.String(), Rationale: "informational variant"},
		{Phrase: "billån eller privatleasing", Provenance: core.ProvenanceProvider.String(), Rationale: "comparison variant"},
		{Phrase: "bästa billån", Provenance: core.ProvenanceTemplate.String(), Rationale: "template expansion"},
		{Phrase: "ansök om billån", Provenance: core.ProvenanceTemplate.String(), Rationale: "template expansion"},
	}

	data, err := json.MarshalIndent(pool, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func loadPipelineConfig(path string) (pipeline.Config, error) {
	if path == "" {
		return pipeline.DefaultConfig(), nil
	}
	cfg, err := pipeline.LoadConfig(path)
	if err != nil {
		return pipeline.Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
