package taxonomy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/phrasemap/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPackValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestDistanceLookups(t *testing.T) {
	pack := Default()

	t.Run("identical labels are distance zero", func(t *testing.T) {
		assert.Equal(t, 0.0, pack.IntentDistanceBetween(core.IntentTransactional, core.IntentTransactional))
		assert.Equal(t, 0.0, pack.PerspectiveDistanceBetween(core.PerspectiveSeeker, core.PerspectiveSeeker))
	})

	t.Run("reverse direction is consulted", func(t *testing.T) {
		forward := pack.IntentDistanceBetween(core.IntentInformational, core.IntentTransactional)
		reverse := pack.IntentDistanceBetween(core.IntentTransactional, core.IntentInformational)
		assert.Equal(t, forward, reverse)
		assert.Equal(t, 0.6, forward)
	})

	t.Run("unknown pair falls back to 0.5", func(t *testing.T) {
		assert.Equal(t, UnknownDistance, pack.IntentDistanceBetween("transactional", "mystery"))
		assert.Equal(t, UnknownDistance, pack.PerspectiveDistanceBetween("seeker", "mystery"))
	})
}

func TestAxisLookups(t *testing.T) {
	pack := Default()

	assert.Equal(t, 0.8, pack.AxisX(core.IntentTransactional))
	assert.Equal(t, 0.25, pack.AxisY(core.PerspectiveSeeker))

	t.Run("unknown label lands in the center", func(t *testing.T) {
		assert.Equal(t, 0.5, pack.AxisX("mystery"))
		assert.Equal(t, 0.5, pack.AxisY("mystery"))
	})
}

func TestClassify(t *testing.T) {
	pack := Default()

	tests := []struct {
		phrase      string
		intent      core.Intent
		perspective core.Perspective
	}{
		{"billån", core.IntentTransactional, core.PerspectiveSeeker},
		{"bästa billån", core.IntentCommercial, core.PerspectiveAdvisor},
		{"hur fungerar billån", core.IntentInformational, core.PerspectiveSeeker},
		{"billån eller privatleasing", core.IntentTransactional, core.PerspectiveComparer},
		{"santander billån logga in", core.IntentNavigational, core.PerspectiveSeeker},
	}

	for _, tc := range tests {
		t.Run(tc.phrase, func(t *testing.T) {
			intent, perspective := pack.Classify(tc.phrase)
			assert.Equal(t, tc.intent, intent)
			assert.Equal(t, tc.perspective, perspective)
		})
	}
}

func TestExtract(t *testing.T) {
	pack := Default()

	t.Run("token bounded matching", func(t *testing.T) {
		entities := pack.Extract("billån ränta kalkyl")
		canonicals := make([]string, 0, len(entities))
		for _, e := range entities {
			canonicals = append(canonicals, e.Canonical)
		}
		assert.Equal(t, []string{"billån", "ränta", "lånekalkyl"}, canonicals)
		// "billån" must not also match the bare "lån" pattern.
		assert.NotContains(t, canonicals, "lån")
	})

	t.Run("deduplicated by canonical form", func(t *testing.T) {
		entities := pack.Extract("ränta ränta räntan")
		assert.Len(t, entities, 1)
	})

	t.Run("no entities", func(t *testing.T) {
		assert.Empty(t, pack.Extract("zebra safari"))
	})
}

func TestContentBearing(t *testing.T) {
	pack := Default()
	assert.True(t, pack.ContentBearing("product"))
	assert.True(t, pack.ContentBearing("brand"))
	assert.False(t, pack.ContentBearing("modifier"))
}

func TestMarkers(t *testing.T) {
	pack := Default()

	assert.True(t, pack.HasVersusMarker("billån eller leasing"))
	assert.False(t, pack.HasVersusMarker("billån ränta"))
	assert.True(t, pack.HasProceduralMarker("hur ansöker man"))
	assert.False(t, pack.HasProceduralMarker("bästa billån"))
}

func TestLoad(t *testing.T) {
	t.Run("valid pack file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pack.yaml")
		data := []byte(`
name: test-pack
default_intent: informational
default_perspective: seeker
intent_rules:
  - label: transactional
    markers: ["buy"]
intent_distance:
  informational:
    transactional: 0.6
intent_axis:
  informational: 0.2
`)
		require.NoError(t, os.WriteFile(path, data, 0o644))

		pack, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "test-pack", pack.Name)

		intent, _ := pack.Classify("buy a car")
		assert.Equal(t, core.IntentTransactional, intent)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, ErrPackUnreadable)
	})

	t.Run("invalid distances rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pack.yaml")
		data := []byte(`
name: bad-pack
default_intent: informational
default_perspective: seeker
intent_rules:
  - label: transactional
    markers: ["buy"]
intent_distance:
  informational:
    transactional: 1.5
`)
		require.NoError(t, os.WriteFile(path, data, 0o644))

		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalidPack)
	})

	t.Run("pack without rules rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pack.yaml")
		require.NoError(t, os.WriteFile(path, []byte("name: empty"), 0o644))

		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalidPack)
	})
}
