// Package analytics implements stateless functions over a borrowed
// population slice, used to observe emergence: Shannon byte-entropy,
// zlib-compression ratio, an opcode histogram, top-k program frequency,
// Hamming distance, and program diversity. None of these mutate the
// population they read.
package analytics

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/holiman/uint256"

	"github.com/deadcoast/cubffsoup/vm"
)

// ProgramSize is the fixed length of one program.
const ProgramSize = vm.ProgramSize

// ErrLengthMismatch is wrapped by Hamming when its two arguments differ in
// length.
var ErrLengthMismatch = errors.New("analytics: length mismatch")

// LengthMismatchError names the two lengths that didn't match.
type LengthMismatchError struct {
	LenA, LenB int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("analytics: length mismatch: %d vs %d", e.LenA, e.LenB)
}

func (e *LengthMismatchError) Unwrap() error { return ErrLengthMismatch }

// concat flattens the population into one contiguous byte sequence.
func concat(pool [][]byte) []byte {
	out := make([]byte, 0, len(pool)*ProgramSize)
	for _, p := range pool {
		out = append(out, p...)
	}
	return out
}

// ShannonEntropyBits computes the Shannon entropy, in bits, of the
// population's concatenated byte-value distribution. An empty pool returns
// 0. The maximum, 8 bits, is attained iff every byte value occurs equally
// often.
func ShannonEntropyBits(pool [][]byte) float64 {
	data := concat(pool)
	if len(data) == 0 {
		return 0
	}
	var counts [256]int
	for _, b := range data {
		counts[b]++
	}
	n := float64(len(data))
	var h float64
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	return h
}

// CompressRatio returns the ratio of the population's max-level
// deflate-compressed size to its raw size. An empty pool returns 1.0.
func CompressRatio(pool [][]byte) float64 {
	data := concat(pool)
	if len(data) == 0 {
		return 1.0
	}

	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		// BestCompression is always a valid level for zlib; this path is
		// unreachable, but fail closed rather than divide by a bogus size.
		return 1.0
	}
	_, _ = w.Write(data)
	_ = w.Close()

	return float64(buf.Len()) / float64(len(data))
}

// Histogram maps a byte value to the number of times it occurred across the
// population. Counts are held in arbitrary-precision uint256.Int so that a
// histogram built over an arbitrarily large population never overflows a
// machine word.
type Histogram [256]*uint256.Int

// OpcodeHistogram counts every one of the population's 64*size bytes by
// value.
func OpcodeHistogram(pool [][]byte) Histogram {
	var hist Histogram
	for i := range hist {
		hist[i] = uint256.NewInt(0)
	}
	for _, p := range pool {
		for _, b := range p {
			hist[b].AddUint64(hist[b], 1)
		}
	}
	return hist
}

// RealOpcodeTotal sums the histogram's counts over the ten real opcodes
// (excluding NO-OPs), per vm.Opcodes. The sum is truncated to uint64, which
// is ample for any population size a single process can hold.
func (h Histogram) RealOpcodeTotal() uint64 {
	total := uint256.NewInt(0)
	for b := 0; b < 256; b++ {
		if vm.Opcodes.Match(byte(b)) {
			total.Add(total, h[b])
		}
	}
	return total.Uint64()
}

// ProgramCount is one entry of a TopPrograms result.
type ProgramCount struct {
	Program [ProgramSize]byte
	Count   int
}

// TopPrograms returns the k most frequent distinct 64-byte programs, ties
// broken by first occurrence in iteration order.
func TopPrograms(pool [][]byte, k int) []ProgramCount {
	type entry struct {
		prog  [ProgramSize]byte
		count int
		first int
	}
	index := make(map[[ProgramSize]byte]*entry)
	order := make([]*entry, 0, len(pool))

	for i, p := range pool {
		var key [ProgramSize]byte
		copy(key[:], p)
		e, ok := index[key]
		if !ok {
			e = &entry{prog: key, count: 0, first: i}
			index[key] = e
			order = append(order, e)
		}
		e.count++
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].first < order[j].first
	})

	if k > len(order) {
		k = len(order)
	}
	out := make([]ProgramCount, k)
	for i := 0; i < k; i++ {
		out[i] = ProgramCount{Program: order[i].prog, Count: order[i].count}
	}
	return out
}

// Diversity returns the number of distinct programs in pool and that count
// divided by the population size (0 for an empty pool).
func Diversity(pool [][]byte) (unique int, ratio float64) {
	seen := make(map[[ProgramSize]byte]struct{}, len(pool))
	for _, p := range pool {
		var key [ProgramSize]byte
		copy(key[:], p)
		seen[key] = struct{}{}
	}
	unique = len(seen)
	if len(pool) == 0 {
		return 0, 0
	}
	return unique, float64(unique) / float64(len(pool))
}

// Hamming returns the number of byte positions where a and b differ. It
// fails if the two slices have different lengths.
func Hamming(a, b []byte) (int, error) {
	if len(a) != len(b) {
		return 0, &LengthMismatchError{LenA: len(a), LenB: len(b)}
	}
	n := 0
	for i := range a {
		if a[i] != b[i] {
			n++
		}
	}
	return n, nil
}
