// Package precision computes the minimal-step sequence of p-adic precisions
// used by every quadratic lifting loop of the module.
//
// Mathematical Basis:
// A Newton step that starts from an approximation correct to N digits yields
// one correct to 2N digits. To reach a target precision e in the fewest steps
// without overshooting, the chain is built backward from e:
//
//	c_k = e, c_{i-1} = ceil(c_i / 2)
//
// and replayed forward, each step being either 2x or 2x-1. From precision 1
// this takes exactly ceil(log2 e) steps.
//
// Encoding:
// Only the parity of each chain element is needed to replay it, so a schedule
// is stored as a uint64 bitmask plus a step count.
package precision

import (
	"iter"

	apperrors "github.com/agbru/padic/internal/errors"
)

// Step describes one lifting step from precision From to precision To.
type Step struct {
	// Index is the 0-based position of the step in the schedule.
	Index int
	// From is the precision known before the step.
	From int
	// To is the precision reached by the step. To - From never exceeds From.
	To int
	// Last reports whether no step follows this one.
	Last bool
}

// Increment returns the number of p-adic digits gained by the step.
func (s Step) Increment() int { return s.To - s.From }

// Schedule is the compact encoding of a precision chain.
type Schedule struct {
	start  int
	target int
	base   int
	steps  int
	mask   uint64
}

// New builds the schedule leading from a known precision start to target.
//
// Parameters:
//   - start: The precision already reached (1 for a fresh lift).
//   - target: The precision to reach.
//
// Returns:
//   - Schedule: The schedule. It is empty when start >= target.
//   - error: A PrecisionError if start or target is below 1.
func New(start, target int) (Schedule, error) {
	if target < 1 {
		return Schedule{}, apperrors.NewPrecisionError(target)
	}
	if start < 1 {
		return Schedule{}, apperrors.NewPrecisionError(start)
	}
	s := Schedule{start: start, target: target}
	chain := target
	for chain > start {
		s.mask |= uint64(chain&1) << s.steps
		s.steps++
		chain = (chain + 1) >> 1
	}
	s.base = chain
	return s, nil
}

// Len returns the number of steps in the schedule.
func (s Schedule) Len() int { return s.steps }

// Start returns the precision the schedule starts from.
func (s Schedule) Start() int { return s.start }

// Target returns the precision the schedule ends at. When the start is
// already at or above the target, no step is replayed.
func (s Schedule) Target() int { return s.target }

// All replays the schedule forward.
func (s Schedule) All() iter.Seq[Step] {
	return func(yield func(Step) bool) {
		nominal, from := s.base, s.start
		for i := s.steps - 1; i >= 0; i-- {
			nominal = 2*nominal - int((s.mask>>i)&1)
			step := Step{Index: s.steps - 1 - i, From: from, To: nominal, Last: i == 0}
			if !yield(step) {
				return
			}
			from = nominal
		}
	}
}

// Precisions returns the precisions reached after each step.
func (s Schedule) Precisions() []int {
	out := make([]int, 0, s.steps)
	for step := range s.All() {
		out = append(out, step.To)
	}
	return out
}
