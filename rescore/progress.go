package rescore

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker reports rescoring progress to a writer.
type ProgressTracker struct {
	writer         io.Writer
	total          int
	current        int
	reportInterval int
	lastReported   int
	startTime      time.Time
	started        bool
	mu             sync.Mutex
}

// NewProgressTracker creates a progress tracker.
// writer: where to write progress output (typically os.Stderr)
// total: total number of runs to process
// reportInterval: report progress every N runs
func NewProgressTracker(writer io.Writer, total, reportInterval int) *ProgressTracker {
	if reportInterval < 1 {
		reportInterval = 1
	}
	return &ProgressTracker{
		writer:         writer,
		total:          total,
		reportInterval: reportInterval,
	}
}

// Start begins tracking progress.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.started = true
	p.current = 0
	p.lastReported = 0
}

// Increment advances progress by delta and reports when an interval is
// crossed.
func (p *ProgressTracker) Increment(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.current += delta
	if p.current > p.total {
		p.current = p.total
	}

	if p.current-p.lastReported >= p.reportInterval || p.current == p.total {
		p.report()
		p.lastReported = p.current
	}
}

// Finish emits a final report.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	p.report()
	p.started = false
}

// report writes one progress line. Caller holds the lock.
func (p *ProgressTracker) report() {
	if p.writer == nil || p.total == 0 {
		return
	}

	percent := float64(p.current) / float64(p.total) * 100
	elapsed := time.Since(p.startTime).Round(time.Second)
	fmt.Fprintf(p.writer, "rescored %d/%d runs (%.0f%%) in %s\n", p.current, p.total, percent, elapsed)
}
