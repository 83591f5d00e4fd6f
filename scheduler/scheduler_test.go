package scheduler

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seededRNG struct{ r *rand.Rand }

func newSeededRNG(seed uint64) *seededRNG {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, seed))}
}

func (s *seededRNG) IntN(n int) int { return s.r.IntN(n) }

func TestRandomDisjointPairs_OddRejected(t *testing.T) {
	_, err := RandomDisjointPairs(3, newSeededRNG(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPopulation)
}

func TestRandomDisjointPairs_CoversWholePopulation(t *testing.T) {
	const n = 64
	pairs, err := RandomDisjointPairs(n, newSeededRNG(42))
	require.NoError(t, err)
	require.Len(t, pairs, n/2)

	seen := make(map[int]bool, n)
	for _, p := range pairs {
		assert.False(t, seen[p.I], "index %d repeated", p.I)
		assert.False(t, seen[p.J], "index %d repeated", p.J)
		seen[p.I] = true
		seen[p.J] = true
	}
	assert.Len(t, seen, n)
}

func TestRandomDisjointPairs_MinimalPopulation(t *testing.T) {
	pairs, err := RandomDisjointPairs(2, newSeededRNG(7))
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.ElementsMatch(t, []int{0, 1}, []int{pairs[0].I, pairs[0].J})
}

func TestRandomDisjointPairs_Deterministic(t *testing.T) {
	a, err := RandomDisjointPairs(16, newSeededRNG(123))
	require.NoError(t, err)
	b, err := RandomDisjointPairs(16, newSeededRNG(123))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
