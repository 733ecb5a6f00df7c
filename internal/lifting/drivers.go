package lifting

import (
	"math/big"

	apperrors "github.com/agbru/padic/internal/errors"
	"github.com/agbru/padic/internal/precision"
	"github.com/agbru/padic/internal/ring"
)

// DixonProblem describes a linear p-adic problem L(x) = v solved by
// divide and conquer on the precision.
type DixonProblem[V any] struct {
	// Module is the arithmetic on values.
	Module Module[V]
	// Apply evaluates the Z_p-linear operator L at x modulo q.
	Apply func(x V, q *big.Int) V
	// SolveModP returns x with L(x) = v modulo p.
	SolveModP func(v V) (V, error)
}

// Lift solves L(x) = target modulo p^n.
//
// The precision is split into n2 = ceil(n/2) and m = n - n2: the problem is
// solved modulo p^n2, the residual (target - L(x2)) / p^n2 is solved modulo
// p^m, and the two halves are combined as x2 + p^n2 * xm.
//
// Returns:
//   - V: The solution modulo p^n.
//   - error: A PrecisionError for n < 1, or the first error of a callback.
func (d DixonProblem[V]) Lift(target V, p *big.Int, n int) (V, error) {
	var zero V
	if n < 1 {
		return zero, apperrors.NewPrecisionError(n)
	}
	return d.solve(target, p, n)
}

func (d DixonProblem[V]) solve(v V, p *big.Int, n int) (V, error) {
	var zero V
	if n == 1 {
		x, err := d.SolveModP(d.Module.Reduce(v, p))
		if err != nil {
			return zero, err
		}
		return d.Module.Reduce(x, p), nil
	}
	n2 := (n + 1) / 2
	qn := ring.Power(p, n)
	p2 := ring.Power(p, n2)

	x2, err := d.solve(v, p, n2)
	if err != nil {
		return zero, err
	}
	residual, err := d.Module.DivExact(d.Module.Sub(v, d.Apply(x2, qn), qn), p2)
	if err != nil {
		return zero, apperrors.WrapError(err, "dixon residual at precision %d", n2)
	}
	xm, err := d.solve(residual, p, n-n2)
	if err != nil {
		return zero, err
	}
	return d.Module.Add(x2, d.Module.MulInt(xm, p2, nil), qn), nil
}

// NewtonProblem describes a quadratically convergent p-adic problem driven
// along the precision schedule.
type NewtonProblem[X, A any] struct {
	// Module is the arithmetic on approximations.
	Module Module[X]
	// Eval returns the defect of x modulo q, which must vanish modulo the
	// precision already reached, and auxiliary data handed to Correct.
	Eval func(x X, q *big.Int) (X, A)
	// Correct returns the correction delta for a defect already divided by
	// p^From and reduced modulo qM = p^m, m = To - From. The driver then
	// sets x <- x - p^From * delta.
	Correct func(scaled X, aux A, qM *big.Int, m int) (X, error)
}

// Lift refines seed, known modulo p, to precision p^n. It runs exactly
// Schedule(1, n).Len() steps and assumes true quadratic convergence; checking
// it is the callbacks' job.
//
// Returns:
//   - X: The approximation modulo p^n.
//   - error: A PrecisionError for n < 1, a RingError if a defect does not
//     vanish at the reached precision, or the first error of Correct.
func (np NewtonProblem[X, A]) Lift(seed X, p *big.Int, n int) (X, error) {
	var zero X
	sched, err := precision.New(1, n)
	if err != nil {
		return zero, err
	}
	mod := np.Module
	x := mod.Reduce(seed, p)
	for step := range sched.All() {
		q := ring.Power(p, step.To)
		pFrom := ring.Power(p, step.From)
		qM := ring.Power(p, step.Increment())

		defect, aux := np.Eval(x, q)
		scaled, err := mod.DivExact(mod.Reduce(defect, q), pFrom)
		if err != nil {
			return zero, apperrors.WrapError(err, "newton defect at precision %d", step.From)
		}
		delta, err := np.Correct(mod.Reduce(scaled, qM), aux, qM, step.Increment())
		if err != nil {
			return zero, err
		}
		x = mod.Sub(x, mod.MulInt(delta, pFrom, nil), q)
	}
	return x, nil
}
