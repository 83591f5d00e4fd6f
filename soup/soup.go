// Package soup owns the population and advances it one epoch at a time:
// schedule disjoint pairs, run each pair's concatenated tape on the VM,
// split the result back into two programs, optionally mutate, and write the
// next generation back. The next generation is materialized fresh each
// epoch rather than written in place, because pair outputs can land in any
// slot and must never observe partial updates from earlier pairs in the
// same epoch.
package soup

import (
	"errors"
	"fmt"

	"github.com/deadcoast/cubffsoup/detector"
	"github.com/deadcoast/cubffsoup/scheduler"
	"github.com/deadcoast/cubffsoup/vm"
)

// ProgramSize is the fixed length of one program.
const ProgramSize = vm.ProgramSize

// ErrInvalidPopulation is wrapped when a requested population size is
// invalid for a Soup.
var ErrInvalidPopulation = errors.New("soup: invalid population size")

// InvalidPopulationError reports why construction was rejected.
type InvalidPopulationError struct {
	Size int
}

func (e *InvalidPopulationError) Error() string {
	return fmt.Sprintf("soup: population size %d must be even and >= 2", e.Size)
}

func (e *InvalidPopulationError) Unwrap() error { return ErrInvalidPopulation }

// Order records which concatenation order a pair's tape used.
type Order uint8

const (
	OrderAB Order = iota
	OrderBA
)

func (o Order) String() string {
	if o == OrderBA {
		return "BA"
	}
	return "AB"
}

// PairOutcome is the per-pair record of one interaction within an epoch.
// It is only constructed when the caller asks for outcome recording.
type PairOutcome struct {
	I, J  int
	Order Order
	Run   vm.RunResult
	Event detector.Event
}

// Soup owns the population, a random source, and a monotonically
// increasing epoch counter.
type Soup struct {
	pool       [][]byte
	rng        RNG
	epochIndex int
}

// New constructs a Soup of size programs, each independently drawn byte by
// byte from rng. size must be even and at least 2.
func New(size int, rng RNG) (*Soup, error) {
	if size < 2 || size%2 != 0 {
		return nil, &InvalidPopulationError{Size: size}
	}
	pool := make([][]byte, size)
	for i := range pool {
		p := make([]byte, ProgramSize)
		for b := range p {
			p[b] = byte(rng.IntN(256))
		}
		pool[i] = p
	}
	return &Soup{pool: pool, rng: rng}, nil
}

// Size returns the population size.
func (s *Soup) Size() int { return len(s.pool) }

// EpochIndex returns the number of epochs advanced so far.
func (s *Soup) EpochIndex() int { return s.epochIndex }

// Population returns a read-only view of the current population. Callers
// must not mutate the returned slices; they alias Soup's internal state.
func (s *Soup) Population() [][]byte {
	out := make([][]byte, len(s.pool))
	copy(out, s.pool)
	return out
}

// Epoch advances the population by one generation:
//
//  1. Obtain the disjoint pair list from sched (this advances the RNG).
//  2. For each pair, in scheduler order: snapshot A and B, draw a uniform
//     order bit, concatenate into a tape, run the VM, split the result,
//     optionally mutate (A' then B', one RNG draw per byte plus one more
//     per replacement), and stage the results.
//  3. Replace the population with the staged next generation.
//  4. Increment the epoch index.
//
// recordOutcomes controls whether a PairOutcome is built and returned for
// every pair; when false, Epoch returns a nil slice and does no extra
// allocation for bookkeeping.
func (s *Soup) Epoch(sched scheduler.Func, stepLimit int, mutationP float64, recordOutcomes bool) ([]PairOutcome, error) {
	pairs, err := sched(len(s.pool), s.rng)
	if err != nil {
		return nil, fmt.Errorf("soup: epoch %d: %w", s.epochIndex, err)
	}

	next := make([][]byte, len(s.pool))
	var outcomes []PairOutcome
	if recordOutcomes {
		outcomes = make([]PairOutcome, 0, len(pairs))
	}

	for _, pr := range pairs {
		a := append([]byte(nil), s.pool[pr.I]...)
		b := append([]byte(nil), s.pool[pr.J]...)

		order := OrderAB
		if s.rng.IntN(2) == 1 {
			order = OrderBA
		}

		tape := make([]byte, vm.TapeSize)
		if order == OrderAB {
			copy(tape[:ProgramSize], a)
			copy(tape[ProgramSize:], b)
		} else {
			copy(tape[:ProgramSize], b)
			copy(tape[ProgramSize:], a)
		}

		m, err := vm.New(tape, stepLimit, 0, ProgramSize)
		if err != nil {
			return nil, fmt.Errorf("soup: epoch %d pair (%d,%d): %w", s.epochIndex, pr.I, pr.J, err)
		}
		res := m.Run()

		first := append([]byte(nil), res.Tape[:ProgramSize]...)
		second := append([]byte(nil), res.Tape[ProgramSize:]...)

		var aNext, bNext []byte
		if order == OrderAB {
			aNext, bNext = first, second
		} else {
			aNext, bNext = second, first
		}

		if mutationP > 0 {
			s.mutateProgram(aNext, mutationP)
			s.mutateProgram(bNext, mutationP)
		}

		if recordOutcomes {
			ev, err := detector.DetectExactReplication(a, b, aNext, bNext)
			if err != nil {
				return nil, fmt.Errorf("soup: epoch %d pair (%d,%d): %w", s.epochIndex, pr.I, pr.J, err)
			}
			outcomes = append(outcomes, PairOutcome{
				I: pr.I, J: pr.J, Order: order, Run: res, Event: ev,
			})
		}

		next[pr.I] = aNext
		next[pr.J] = bNext
	}

	s.pool = next
	s.epochIndex++
	return outcomes, nil
}

// Lineage returns, for an outcome list produced with recordOutcomes=true,
// the population slot indices that an exact-replication event overwrote
// this epoch: for Kind==AExact that's J (A's slot survived and overwrote
// B's), for Kind==BExact that's I. It is pure read-out over the outcome
// list already computed by Epoch and draws no RNG, adds no new state.
func Lineage(outcomes []PairOutcome) []int {
	var out []int
	for _, o := range outcomes {
		switch o.Event.Kind {
		case detector.AExact:
			out = append(out, o.J)
		case detector.BExact:
			out = append(out, o.I)
		}
	}
	return out
}

// mutateProgram walks p in index order, drawing one uniform [0,1) sample
// per byte; a byte whose sample is below perByteP is replaced with a
// uniformly random byte via one additional RNG draw.
func (s *Soup) mutateProgram(p []byte, perByteP float64) {
	for i := range p {
		if s.rng.Float64() < perByteP {
			p[i] = byte(s.rng.IntN(256))
		}
	}
}

// InjectMutation walks the population in index order and, independently of
// Epoch, replaces each byte with a uniformly random one with probability
// perByteP. This is a separate operation the caller may invoke between
// epochs; Epoch itself never calls it.
func (s *Soup) InjectMutation(perByteP float64) {
	if perByteP <= 0 {
		return
	}
	for _, p := range s.pool {
		s.mutateProgram(p, perByteP)
	}
}
