package vm

import (
	"bytes"
	"fmt"
)

// Disassemble renders a program or tape as one opcode mnemonic (or NOOP#xx)
// per line, prefixed with its offset. It is a debugging aid only; the VM
// itself never parses this form back.
func Disassemble(program []byte) string {
	var buf bytes.Buffer
	for i, b := range program {
		fmt.Fprintf(&buf, "%03d %s\n", i, OpCode(b))
	}
	return buf.String()
}

// HexDump renders program as a classic 16-bytes-per-line hex dump, in the
// style used for tape/program fixtures in failure messages.
func HexDump(program []byte) string {
	var buf bytes.Buffer
	for i := 0; i < len(program); i += 16 {
		end := i + 16
		if end > len(program) {
			end = len(program)
		}
		fmt.Fprintf(&buf, "%05x ", i)
		for _, b := range program[i:end] {
			fmt.Fprintf(&buf, " %02x", b)
		}
		buf.WriteByte('\n')
	}
	return buf.String()
}
