package soup

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand/v2"
)

// RNG is the single pseudorandom stream a Soup reads from. Scheduling,
// order selection, initial population generation, and mutation all draw
// from the same RNG in the documented order, which is what makes a run
// reproducible from its seed alone.
type RNG interface {
	// IntN returns a uniform value in [0, n).
	IntN(n int) int
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
}

// ChaChaRNG is the reference RNG, backed by math/rand/v2's ChaCha8: a fast,
// well-specified stream cipher-based generator whose seed fully determines
// its output, and whose state can be derived deterministically to produce
// independent substreams (see NewSubRNG) for spec's optional
// concurrent-pair mode.
type ChaChaRNG struct {
	r *rand.Rand
}

// NewChaChaRNG seeds a ChaChaRNG from a 32-byte key.
func NewChaChaRNG(seed [32]byte) *ChaChaRNG {
	return &ChaChaRNG{r: rand.New(rand.NewChaCha8(seed))}
}

func (c *ChaChaRNG) IntN(n int) int   { return c.r.IntN(n) }
func (c *ChaChaRNG) Float64() float64 { return c.r.Float64() }

// NewSubRNG deterministically derives an independent substream seed from a
// parent seed and a (epoch, pair index) coordinate, via SHA-256. Two calls
// with the same inputs always yield bit-identical streams, so work driven
// by substreams is reproducible from the parent seed. A substream's draws
// differ from those of the parent's single stream, so results computed from
// substreams are not the same as those Epoch computes from its single RNG;
// Epoch never uses NewSubRNG.
func NewSubRNG(parent [32]byte, epoch, pairIndex int) *ChaChaRNG {
	h := sha256.New()
	h.Write(parent[:])
	var coord [16]byte
	binary.LittleEndian.PutUint64(coord[0:8], uint64(epoch))
	binary.LittleEndian.PutUint64(coord[8:16], uint64(pairIndex))
	h.Write(coord[:])
	var seed [32]byte
	copy(seed[:], h.Sum(nil))
	return NewChaChaRNG(seed)
}
