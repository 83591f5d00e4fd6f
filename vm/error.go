package vm

import (
	"errors"
	"fmt"
)

// ErrInvalidTape is the sentinel wrapped by configuration failures where a
// tape's length is not exactly TapeSize.
var ErrInvalidTape = errors.New("vm: invalid tape")

// InvalidTapeError reports why tape construction was rejected.
type InvalidTapeError struct {
	Len int
}

func (e *InvalidTapeError) Error() string {
	return fmt.Sprintf("vm: tape has length %d, want %d", e.Len, TapeSize)
}

func (e *InvalidTapeError) Unwrap() error { return ErrInvalidTape }
