package vm

import (
	"regexp"
	"testing"

	"github.com/renstrom/dedent"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reNL = regexp.MustCompile(`(?m)^`)

func diff(l, r string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(l, r, false)
	pretty := dmp.DiffPrettyText(diffs)
	return reNL.ReplaceAllLiteralString(pretty, "\t")
}

func newTape(fill byte) []byte {
	tape := make([]byte, TapeSize)
	for i := range tape {
		tape[i] = fill
	}
	return tape
}

func TestNew_InvalidTape(t *testing.T) {
	_, err := New(make([]byte, 10), 1024, 0, 64)
	require.Error(t, err)
	var ite *InvalidTapeError
	require.ErrorAs(t, err, &ite)
	assert.Equal(t, 10, ite.Len)
}

func TestRun_AllZeroNoop(t *testing.T) {
	tape := newTape(0x00) // 0x00 is not an opcode: an all-NOOP tape.
	m, err := New(tape, 1024, 0, 64)
	require.NoError(t, err)

	res := m.Run()
	assert.Equal(t, StepLimit, res.Reason)
	assert.Equal(t, 1024, res.Steps)
	assert.Equal(t, newTape(0x00), res.Tape)
}

func TestRun_StepLimitZero(t *testing.T) {
	tape := newTape('+')
	m, err := New(tape, 0, 0, 64)
	require.NoError(t, err)

	res := m.Run()
	assert.Equal(t, StepLimit, res.Reason)
	assert.Equal(t, 0, res.Steps)
	assert.Equal(t, newTape('+'), res.Tape)
}

func TestRun_SingleIncrement(t *testing.T) {
	tape := make([]byte, TapeSize)
	// program A: '+' then 63 NOOPs; program B: all NOOPs.
	tape[0] = '+'

	m, err := New(tape, 1, 0, 64)
	require.NoError(t, err)

	res := m.Run()
	require.Equal(t, StepLimit, res.Reason)
	// head0 starts at 0, so the '+' increments its own byte.
	assert.EqualValues(t, '+'+1, res.Tape[0])
	assert.Equal(t, 1, res.Steps)
}

func TestRun_UnmatchedBracketForward(t *testing.T) {
	// tape[head0]=tape[0] stays 0 through the NOOPs, so the '[' at index 5
	// takes its forward-seek branch; everything after it is '[' with no
	// ']' anywhere, so the scan never finds a partner.
	tape := make([]byte, TapeSize)
	for i := 5; i < TapeSize; i++ {
		tape[i] = '['
	}

	m, err := New(tape, 1024, 0, 64)
	require.NoError(t, err)
	res := m.Run()
	require.Equal(t, UnmatchedBracket, res.Reason)
	assert.Equal(t, 5, res.UnmatchedAt)
}

func TestRun_UnmatchedBracketBackward(t *testing.T) {
	// head0's cell must be non-zero for ']' to take its backward-seek
	// branch, so seed it with a '+' first.
	tape := make([]byte, TapeSize)
	tape[0] = '+'
	tape[1] = ']'

	m, err := New(tape, 1024, 0, 64)
	require.NoError(t, err)
	res := m.Run()
	require.Equal(t, UnmatchedBracket, res.Reason)
	assert.Equal(t, 1, res.UnmatchedAt)
}

func TestRun_MatchedBrackets_SkipsBody(t *testing.T) {
	// head0's cell (index 0) must stay 0 through the NOOPs leading up to
	// the '[' at index 3, so it takes the skip-forward branch straight to
	// the ']' at index 5 without ever executing the '+' body at index 4.
	tape := make([]byte, TapeSize)
	tape[3] = '['
	tape[4] = '+'
	tape[5] = ']'

	m, err := New(tape, 10, 0, 64)
	require.NoError(t, err)
	res := m.Run()
	assert.Equal(t, StepLimit, res.Reason)
	assert.EqualValues(t, 0, res.Tape[0], diff("0", "nonzero: body executed"))
}

func TestRun_OOBPointer_Head0(t *testing.T) {
	tape := make([]byte, TapeSize)
	tape[0] = '<' // head0 starts at 0, decrementing goes to -1.

	m, err := New(tape, 10, 0, 64)
	require.NoError(t, err)
	res := m.Run()
	require.Equal(t, OOBPointer, res.Reason)
	assert.Equal(t, PointerHead0, res.OOBPointer)
}

func TestRun_OOBPointer_Head1(t *testing.T) {
	tape := make([]byte, TapeSize)
	tape[0] = '}'

	m, err := New(tape, 10, 127, 127)
	require.NoError(t, err)
	res := m.Run()
	require.Equal(t, OOBPointer, res.Reason)
	assert.Equal(t, PointerHead1, res.OOBPointer)
}

func TestRun_PCOOB(t *testing.T) {
	tape := make([]byte, TapeSize)
	tape[0] = '['
	tape[1] = '+' // unreachable; head0 is non-zero, but we jump straight out.

	// Force pc to walk off the end via a run of JMP-less NOOPs that ends
	// exactly at TapeSize with no halting condition hit first is not
	// possible in this instruction set (pc only ever increments by one or
	// lands on an in-bounds bracket target), so PCOOB is unreachable from
	// normal dispatch in this baseline instruction set. This test instead
	// exercises the boundary directly via New + manual pc advancement.
	m, err := New(tape, 1000, 0, 64)
	require.NoError(t, err)
	m.pc = TapeSize
	res := m.Run()
	require.Equal(t, PCOOB, res.Reason)
	assert.Equal(t, PointerPC, res.OOBPointer)
}

func TestRun_CopyOpcodes(t *testing.T) {
	tape := make([]byte, TapeSize)
	tape[0] = '+'
	tape[1] = '.' // copy tape[head0] -> tape[head1]
	tape[64] = 0

	m, err := New(tape, 2, 0, 64)
	require.NoError(t, err)
	res := m.Run()
	require.Equal(t, StepLimit, res.Reason)
	// head0 starts at 0, so the '+' increments its own byte before the copy.
	assert.EqualValues(t, '+'+1, res.Tape[0])
	assert.EqualValues(t, '+'+1, res.Tape[64])
}

func TestRun_WrapsModulo256(t *testing.T) {
	tape := make([]byte, TapeSize)
	tape[0] = '-'

	// head0 starts at 1, a zero cell, so the '-' at pc 0 wraps it to 255.
	m, err := New(tape, 1, 1, 64)
	require.NoError(t, err)
	res := m.Run()
	assert.EqualValues(t, 255, res.Tape[1])
}

func TestIsOpcode(t *testing.T) {
	for _, b := range []byte{'>', '<', '}', '{', '+', '-', '.', ',', '[', ']'} {
		assert.True(t, IsOpcode(b), "opcode %q", b)
	}
	for _, b := range []byte{0x00, 'a', 'Z', 0xff} {
		assert.False(t, IsOpcode(b), "non-opcode %q", b)
	}
}

func TestOpCode_String(t *testing.T) {
	assert.Equal(t, "INCR", OpCode('+').String())
	assert.Contains(t, OpCode(0x00).String(), "NOOP")
}

func TestDisassemble(t *testing.T) {
	out := Disassemble([]byte{'+', 0x00})
	expected := dedent.Dedent(`
		000 INCR
		001 NOOP#00
	`)[1:]
	assert.Equal(t, expected, out)
}
