package layout

import (
	"encoding/binary"
	"math"

	"github.com/go-crypt/x/blake2b"
	"github.com/poiesic/phrasemap/core"
)

// jitter derives a per-node coordinate offset from a BLAKE2b hash of the
// node id. Both offsets lie in [-scale, +scale]. The same id always yields
// the same offsets, which keeps layouts reproducible without any RNG.
func jitter(id core.ID, scale float64) (x, y float64) {
	var input [8]byte
	binary.LittleEndian.PutUint64(input[:], uint64(id))

	h, _ := blake2b.New(16, nil)
	h.Write(input[:])
	sum := h.Sum(nil)

	x = spread(binary.LittleEndian.Uint64(sum[:8]), scale)
	y = spread(binary.LittleEndian.Uint64(sum[8:16]), scale)
	return x, y
}

// spread maps a uint64 onto [-scale, +scale].
func spread(u uint64, scale float64) float64 {
	unit := float64(u) / float64(math.MaxUint64)
	return (2*unit - 1) * scale
}
