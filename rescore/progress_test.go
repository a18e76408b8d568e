package rescore

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker(t *testing.T) {
	t.Run("reports on interval and completion", func(t *testing.T) {
		var buf bytes.Buffer
		tracker := NewProgressTracker(&buf, 5, 2)
		tracker.Start()
		for range 5 {
			tracker.Increment(1)
		}

		out := buf.String()
		assert.Contains(t, out, "rescored 2/5 runs (40%)")
		assert.Contains(t, out, "rescored 4/5 runs (80%)")
		assert.Contains(t, out, "rescored 5/5 runs (100%)")
	})

	t.Run("finish emits a final line", func(t *testing.T) {
		var buf bytes.Buffer
		tracker := NewProgressTracker(&buf, 10, 100)
		tracker.Start()
		tracker.Increment(3)
		tracker.Finish()

		assert.Contains(t, buf.String(), "rescored 3/10 runs (30%)")
	})

	t.Run("current never exceeds total", func(t *testing.T) {
		var buf bytes.Buffer
		tracker := NewProgressTracker(&buf, 3, 1)
		tracker.Start()
		tracker.Increment(10)

		assert.Contains(t, buf.String(), "rescored 3/3 runs (100%)")
	})

	t.Run("nil writer is silent", func(t *testing.T) {
		tracker := NewProgressTracker(nil, 5, 1)
		tracker.Start()
		tracker.Increment(5)
		tracker.Finish()
	})

	t.Run("zero total emits nothing", func(t *testing.T) {
		var buf bytes.Buffer
		tracker := NewProgressTracker(&buf, 0, 1)
		tracker.Start()
		tracker.Finish()
		assert.Empty(t, buf.String())
	})

	t.Run("increment before start is ignored", func(t *testing.T) {
		var buf bytes.Buffer
		tracker := NewProgressTracker(&buf, 5, 1)
		tracker.Increment(2)
		assert.Empty(t, buf.String())
	})

	t.Run("interval floor", func(t *testing.T) {
		var buf bytes.Buffer
		tracker := NewProgressTracker(&buf, 2, 0)
		tracker.Start()
		tracker.Increment(1)
		tracker.Increment(1)

		lines := strings.Count(buf.String(), "\n")
		assert.Equal(t, 2, lines)
	})
}
