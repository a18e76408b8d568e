package rescore

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/poiesic/phrasemap/core"
	"github.com/poiesic/phrasemap/pipeline"
	"github.com/poiesic/phrasemap/store"
	storebadger "github.com/poiesic/phrasemap/store/badger"
	"github.com/poiesic/phrasemap/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPool() []core.Candidate {
	return []core.Candidate{
		{Phrase: "billån ränta", Provenance: core.ProvenanceProvider, Rationale: "provider suggestion", Metrics: map[string]float64{core.MetricExternalOverlap: 0.4}},
		{Phrase: "billån kalkyl", Provenance: core.ProvenanceProvider, Rationale: "provider suggestion"},
		{Phrase: "hur fungerar billån", Provenance: core.ProvenanceProvider, Rationale: "provider suggestion"},
		{Phrase: "billån eller privatleasing", Provenance: core.ProvenanceProvider, Rationale: "provider suggestion"},
		{Phrase: "bästa billån", Provenance: core.ProvenanceTemplate, Rationale: "template expansion"},
		{Phrase: "bästa billån ränta", Provenance: core.ProvenanceTemplate, Rationale: "template expansion"},
	}
}

func newTestPipeline(t *testing.T) *pipeline.Pipeline {
	t.Helper()
	p, err := pipeline.New(taxonomy.Default(), pipeline.DefaultConfig())
	require.NoError(t, err)
	return p
}

func newTestRepo(t *testing.T) store.RunRepository {
	t.Helper()
	repo, _, err := storebadger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

// saveStaleRun stores a run whose counts and artifacts predate the
// current pipeline, as if they were produced under an older configuration.
func saveStaleRun(t *testing.T, repo store.RunRepository, phrase string, pool []core.Candidate, createdAt time.Time) store.RunInfo {
	t.Helper()

	info := store.NewRunInfo(phrase, 0, 0, 0)
	info.CreatedAt = createdAt
	run := &store.Run{
		Info:   info,
		Seed:   core.Seed{Id: core.IDFromContent(phrase), Phrase: phrase},
		Pool:   pool,
		Graph:  json.RawMessage(`{"stale":true}`),
		Report: json.RawMessage(`{"stale":true}`),
	}
	require.NoError(t, repo.SaveRun(t.Context(), run))
	return info
}

func TestNewRescorer(t *testing.T) {
	repo := newTestRepo(t)
	p := newTestPipeline(t)

	t.Run("nil repository", func(t *testing.T) {
		_, err := NewRescorer(nil, p, DefaultConfig())
		assert.Equal(t, ErrRepositoryRequired, err)
	})

	t.Run("nil pipeline", func(t *testing.T) {
		_, err := NewRescorer(repo, nil, DefaultConfig())
		assert.Equal(t, ErrPipelineRequired, err)
	})

	t.Run("invalid batch size", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.BatchSize = 0
		_, err := NewRescorer(repo, p, cfg)
		assert.Equal(t, ErrInvalidBatchSize, err)
	})

	t.Run("invalid retry count", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxRetries = 0
		_, err := NewRescorer(repo, p, cfg)
		assert.Equal(t, ErrInvalidMaxAttempts, err)
	})
}

func TestRescore(t *testing.T) {
	repo := newTestRepo(t)
	p := newTestPipeline(t)

	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	stale := saveStaleRun(t, repo, "billån", testPool(), created)

	r, err := NewRescorer(repo, p, DefaultConfig(), WithConfigSnapshot([]byte("selection:\n  target: 20\n")))
	require.NoError(t, err)

	stats, err := r.Rescore(t.Context(), nil)
	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 1, Rescored: 1}, stats)

	run, err := repo.GetRun(t.Context(), stale.Id)
	require.NoError(t, err)

	t.Run("identity survives", func(t *testing.T) {
		assert.Equal(t, stale.Id, run.Info.Id)
		assert.Equal(t, created, run.Info.CreatedAt)
	})

	t.Run("config snapshot replaced", func(t *testing.T) {
		assert.Equal(t, []byte("selection:\n  target: 20\n"), run.Config)
	})

	t.Run("counts refreshed", func(t *testing.T) {
		assert.NotZero(t, run.Info.NodeCount)
		assert.NotZero(t, run.Info.EdgeCount)
		assert.NotZero(t, run.Info.ClusterCount)
	})

	t.Run("pool preserved", func(t *testing.T) {
		require.Len(t, run.Pool, len(testPool()))
		for i, c := range testPool() {
			assert.Equal(t, c.Phrase, run.Pool[i].Phrase)
		}
	})

	t.Run("artifacts match a fresh expansion", func(t *testing.T) {
		result, err := p.Expand(t.Context(), core.Seed{Phrase: "billån"}, testPool())
		require.NoError(t, err)

		graph, err := json.Marshal(result.Graph)
		require.NoError(t, err)
		report, err := json.Marshal(result.Report)
		require.NoError(t, err)

		assert.Equal(t, graph, []byte(run.Graph))
		assert.Equal(t, report, []byte(run.Report))
	})
}

func TestRescoreSkipsFailingRun(t *testing.T) {
	repo := newTestRepo(t)
	p := newTestPipeline(t)

	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	saveStaleRun(t, repo, "", testPool(), created)
	good := saveStaleRun(t, repo, "billån", testPool(), created.Add(time.Hour))

	cfg := DefaultConfig()
	cfg.RetryDelay = time.Millisecond
	r, err := NewRescorer(repo, p, cfg)
	require.NoError(t, err)

	stats, err := r.Rescore(t.Context(), nil)
	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 2, Rescored: 1, Failed: 1}, stats)

	run, err := repo.GetRun(t.Context(), good.Id)
	require.NoError(t, err)
	assert.NotZero(t, run.Info.NodeCount)
}

func TestRescoreEmptyRepository(t *testing.T) {
	repo := newTestRepo(t)
	r, err := NewRescorer(repo, newTestPipeline(t), DefaultConfig())
	require.NoError(t, err)

	stats, err := r.Rescore(t.Context(), nil)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)
}

func TestRescoreCancelled(t *testing.T) {
	repo := newTestRepo(t)
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	saveStaleRun(t, repo, "billån", testPool(), created)

	r, err := NewRescorer(repo, newTestPipeline(t), DefaultConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err = r.Rescore(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRescoreReportsProgress(t *testing.T) {
	repo := newTestRepo(t)
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	saveStaleRun(t, repo, "billån", testPool(), created)
	saveStaleRun(t, repo, "privatlån", testPool(), created.Add(time.Minute))

	cfg := DefaultConfig()
	cfg.ReportInterval = 1
	r, err := NewRescorer(repo, newTestPipeline(t), cfg)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = r.Rescore(t.Context(), &buf)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "rescored 1/2 runs")
	assert.Contains(t, buf.String(), "rescored 2/2 runs")
}
