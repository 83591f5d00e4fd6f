package vm

import (
	"fmt"

	"github.com/deadcoast/cubffsoup/opset"
)

// OpCode identifies one of the instruction set's ten real opcodes. Any byte
// value not present in this table is a NO-OP: it still costs one step, but
// has no other effect.
type OpCode byte

const (
	OpHead0Inc OpCode = '>'
	OpHead0Dec OpCode = '<'
	OpHead1Inc OpCode = '}'
	OpHead1Dec OpCode = '{'
	OpIncr     OpCode = '+'
	OpDecr     OpCode = '-'
	OpCopyOut  OpCode = '.'
	OpCopyIn   OpCode = ','
	OpJumpFwd  OpCode = '['
	OpJumpBack OpCode = ']'
)

var opNames = map[OpCode]string{
	OpHead0Inc: "HEAD0_INC",
	OpHead0Dec: "HEAD0_DEC",
	OpHead1Inc: "HEAD1_INC",
	OpHead1Dec: "HEAD1_DEC",
	OpIncr:     "INCR",
	OpDecr:     "DECR",
	OpCopyOut:  "COPY_OUT",
	OpCopyIn:   "COPY_IN",
	OpJumpFwd:  "JUMP_FWD",
	OpJumpBack: "JUMP_BACK",
}

// Opcodes is the closed set of the ten bytes that are interpreted as
// instructions rather than NO-OPs.
var Opcodes = opset.SparseSet(
	byte(OpHead0Inc), byte(OpHead0Dec),
	byte(OpHead1Inc), byte(OpHead1Dec),
	byte(OpIncr), byte(OpDecr),
	byte(OpCopyOut), byte(OpCopyIn),
	byte(OpJumpFwd), byte(OpJumpBack),
).Optimize()

// NotOpcodes matches every NO-OP byte, i.e. everything outside Opcodes.
var NotOpcodes = opset.Not(Opcodes).Optimize()

// IsOpcode reports whether b names one of the ten real opcodes.
func IsOpcode(b byte) bool {
	return Opcodes.Match(b)
}

func (c OpCode) String() string {
	if name, ok := opNames[c]; ok {
		return name
	}
	return fmt.Sprintf("NOOP#%02x", byte(c))
}
