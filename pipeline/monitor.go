package pipeline

import "github.com/poiesic/phrasemap/core"

// Monitor provides hooks to observe a pipeline run.
// Implement this interface to track intermediate stage output.
type Monitor interface {
	Start(seed core.Seed)
	AfterScoring(scored []core.ScoredCandidate)
	AfterSelection(selected []core.ScoredCandidate)
	AfterClustering(clusters []*core.Cluster)
	AfterLayout(nodes []*core.Node)
	Finish(edges []core.Synapse)
}

// noopMonitor is a no-op implementation of Monitor.
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ core.Seed)                         {}
func (n *noopMonitor) AfterScoring(_ []core.ScoredCandidate)     {}
func (n *noopMonitor) AfterSelection(_ []core.ScoredCandidate)   {}
func (n *noopMonitor) AfterClustering(_ []*core.Cluster)         {}
func (n *noopMonitor) AfterLayout(_ []*core.Node)                {}
func (n *noopMonitor) Finish(_ []core.Synapse)                   {}
