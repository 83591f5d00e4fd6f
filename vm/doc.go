// Package vm implements the byte-level virtual machine that executes one
// 128-byte tape (two concatenated 64-byte programs) to a well-defined halt.
//
// The instruction set has ten real opcodes; every other byte is a NO-OP
// that still costs one execution step:
//
//	> head0++, then bounds-check both heads
//	< head0--, then bounds-check both heads
//	} head1++, then bounds-check both heads
//	{ head1--, then bounds-check both heads
//	+ tape[head0]++  (mod 256)
//	- tape[head0]--  (mod 256)
//	. tape[head1] = tape[head0]
//	, tape[head0] = tape[head1]
//	[ if tape[head0] == 0, seek forward to the matching ']'
//	] if tape[head0] != 0, seek backward to the matching '['
//
// Bracket matching is dynamic: each jump rescans the tape for its partner,
// because the tape is self-modifying and a precomputed bracket map could go
// stale mid-run. A VM halts the instant a violating condition is observed —
// never one instruction later — on one of four closed-set reasons: the step
// budget was exhausted, a head left [0,128), the program counter left
// [0,128), or a bracket had no partner within the tape.
package vm
