// Package opset implements immutable predicates over the 256 possible byte
// values. It is used by package vm to classify an instruction byte as one of
// the ten real opcodes versus a NO-OP, and by package analytics (through
// vm.Opcodes) to sum the real-opcode buckets of a population-wide byte
// histogram.
package opset
