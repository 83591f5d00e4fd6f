package detector

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deadcoast/cubffsoup/vm"
)

func prog(fill byte) []byte {
	return bytes.Repeat([]byte{fill}, ProgramSize)
}

func TestDetectExactReplication_InvalidLength(t *testing.T) {
	_, err := DetectExactReplication(make([]byte, 10), prog(0), prog(0), prog(0))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidProgram)
}

func TestDetectExactReplication_AExact(t *testing.T) {
	a, b := prog('A'), prog('B')
	ev, err := DetectExactReplication(a, b, a, a)
	require.NoError(t, err)
	assert.Equal(t, AExact, ev.Kind)
}

func TestDetectExactReplication_BExact(t *testing.T) {
	a, b := prog('A'), prog('B')
	ev, err := DetectExactReplication(a, b, b, b)
	require.NoError(t, err)
	assert.Equal(t, BExact, ev.Kind)
}

func TestDetectExactReplication_None(t *testing.T) {
	a, b := prog('A'), prog('B')
	ev, err := DetectExactReplication(a, b, a, b)
	require.NoError(t, err)
	assert.Equal(t, None, ev.Kind)
}

// Symmetric: swapping (A,B) on both before/after swaps AExact/BExact.
func TestDetectExactReplication_Symmetric(t *testing.T) {
	a, b := prog('A'), prog('B')

	ev1, err := DetectExactReplication(a, b, a, a)
	require.NoError(t, err)
	ev2, err := DetectExactReplication(b, a, a, a)
	require.NoError(t, err)

	if ev1.Kind == AExact {
		assert.Equal(t, BExact, ev2.Kind)
	} else {
		assert.Equal(t, ev1.Kind, ev2.Kind)
	}
}

// A real replicator run through the VM, not a hand-built before/after pair:
// the candidate's only non-zero byte is COPY_OUT at offset 0, which stamps
// that byte onto the food half the instant it runs; the rest of both
// programs is zero on both sides already. step_limit is kept under
// ProgramSize so pc halts inside the candidate's own NO-OP padding instead
// of wandering into the food's half.
func TestDetectExactReplication_RealCopyOutProgram(t *testing.T) {
	candidate := make([]byte, ProgramSize)
	candidate[0] = '.' // COPY_OUT: tape[head0] -> tape[head1]
	food := make([]byte, ProgramSize)

	tape := append(append([]byte{}, candidate...), food...)
	m, err := vm.New(tape, 8, 0, ProgramSize)
	require.NoError(t, err)
	res := m.Run()

	ev, err := DetectExactReplication(candidate, food, res.Tape[:ProgramSize], res.Tape[ProgramSize:])
	require.NoError(t, err)
	assert.Equal(t, AExact, ev.Kind)
}

func TestDetectExactReplication_KindString(t *testing.T) {
	assert.Equal(t, "A_exact", AExact.String())
	assert.Equal(t, "B_exact", BExact.String())
	assert.Equal(t, "none", None.String())
}
