// Package snapshot encodes and decodes a population to the gzip-compressed
// JSON envelope used to persist it across process runs. The envelope is an
// external format contract: programs are hex-encoded so the document stays
// valid UTF-8 JSON, and meta is opaque, round-tripped but never interpreted.
package snapshot

import (
	"compress/gzip"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/deadcoast/cubffsoup/vm"
)

// ProgramSize is the fixed length a decoded program must have.
const ProgramSize = vm.ProgramSize

// ErrInvalidProgram is wrapped when a hex entry is malformed or decodes to
// the wrong length.
var ErrInvalidProgram = errors.New("snapshot: invalid program")

// InvalidProgramError names which entry failed and why.
type InvalidProgramError struct {
	Index int
	Cause error
}

func (e *InvalidProgramError) Error() string {
	return fmt.Sprintf("snapshot: programs_hex[%d]: %v", e.Index, e.Cause)
}

func (e *InvalidProgramError) Unwrap() error { return ErrInvalidProgram }

// envelope is the on-disk JSON shape. meta is carried as a raw message so
// Load never needs to know its schema and round-trips it unchanged.
type envelope struct {
	Meta        json.RawMessage `json:"meta"`
	ProgramsHex []string        `json:"programs_hex"`
}

// Save gzip-compresses a JSON document of the population (hex-encoded,
// lowercase, no prefix) and the caller-supplied meta value, writing it to w.
// meta is marshaled as-is; the core neither requires nor interprets its
// fields.
func Save(w io.Writer, pool [][]byte, meta interface{}) error {
	metaRaw, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("snapshot: marshal meta: %w", err)
	}

	hexes := make([]string, len(pool))
	for i, p := range pool {
		if len(p) != ProgramSize {
			return &InvalidProgramError{Index: i, Cause: fmt.Errorf("length %d, want %d", len(p), ProgramSize)}
		}
		hexes[i] = hex.EncodeToString(p)
	}

	env := envelope{Meta: metaRaw, ProgramsHex: hexes}

	gz := gzip.NewWriter(w)
	enc := json.NewEncoder(gz)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(env); err != nil {
		_ = gz.Close()
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	return gz.Close()
}

// Load reads and decompresses a gzip envelope from r, decodes each
// programs_hex entry to a 64-byte program, and returns the population plus
// the raw meta value. Unknown top-level keys are ignored; meta is returned
// as json.RawMessage so the caller can unmarshal it into whatever shape it
// expects.
func Load(r io.Reader) (pool [][]byte, meta json.RawMessage, err error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("snapshot: open gzip: %w", err)
	}
	defer gz.Close()

	var env envelope
	if err := json.NewDecoder(gz).Decode(&env); err != nil {
		return nil, nil, fmt.Errorf("snapshot: decode: %w", err)
	}

	pool = make([][]byte, len(env.ProgramsHex))
	for i, h := range env.ProgramsHex {
		b, err := hex.DecodeString(h)
		if err != nil {
			return nil, nil, &InvalidProgramError{Index: i, Cause: err}
		}
		if len(b) != ProgramSize {
			return nil, nil, &InvalidProgramError{Index: i, Cause: fmt.Errorf("length %d, want %d", len(b), ProgramSize)}
		}
		pool[i] = b
	}

	return pool, env.Meta, nil
}
