// Package newton lifts single residues modulo p to residues modulo p^e by
// Newton iteration: simple roots of polynomials, inverses, n-th roots, and the
// p-adic logarithm.
//
// Every routine replays the schedule of package precision from 1 to e and
// runs exactly Schedule(1, e).Len() steps. Root lifts carry an approximate
// inverse w of the derivative alongside the root and refine it with one
// inverse-Newton step per iteration, so no full inversion happens after the
// seed. Preconditions are checked once, at the seed.
package newton

import (
	"fmt"
	"math/big"

	apperrors "github.com/agbru/padic/internal/errors"
	"github.com/agbru/padic/internal/poly"
	"github.com/agbru/padic/internal/precision"
	"github.com/agbru/padic/internal/ring"
)

// LiftRoot lifts a simple root a0 of f modulo p to the root of f modulo p^e
// congruent to a0.
//
// Each step at precision q computes
//
//	a <- a - w*f(a)        mod q
//	w <- 2w - w^2*f'(a)    mod q   (skipped on the last step)
//
// Parameters:
//   - ar: The polynomial arithmetic, which fixes the coefficient ring.
//   - f: The polynomial.
//   - a0: The seed, a root of f modulo p.
//   - p: The prime.
//   - e: The target precision.
//
// Returns:
//   - ring.Elem: The root modulo p^e, canonical.
//   - error: A PrecisionError for e < 1, a ValidationError if a0 is not a root
//     modulo p, a RingError if f'(a0) is not a unit modulo p.
func LiftRoot(ar *poly.Arith, f poly.Poly, a0 ring.Elem, p *big.Int, e int) (ring.Elem, error) {
	m, err := ring.NewModulus(p, e)
	if err != nil {
		return nil, err
	}
	r := ar.R
	m1 := m.AtPrecision(1)
	if !r.IsZeroMod(ar.Eval(f, a0, m1.Q), m1.Q) {
		return nil, apperrors.NewValidationError("seed", fmt.Sprintf("%s is not a root of %s modulo %s", a0, f, p), a0)
	}
	df := ar.Derivative(f, nil)
	w, err := r.Inverse(ar.Eval(df, a0, m1.Q), m1)
	if err != nil {
		return nil, apperrors.WrapError(err, "derivative of %s at %s", f, a0)
	}

	x := r.Reduce(a0, m1.Q)
	err = iterate(m, func(step precision.Step, q *big.Int) {
		x = r.Sub(x, r.Mul(w, ar.Eval(f, x, q), q), q)
		if !step.Last {
			w = refineInverse(r, w, ar.Eval(df, x, q), q)
		}
	})
	return x, err
}

// LiftInverse lifts an inverse a0 of b modulo p to b^-1 modulo p^e with
// a <- a*(2 - b*a).
//
// Returns:
//   - ring.Elem: The inverse modulo p^e.
//   - error: A PrecisionError for e < 1, a ValidationError if b*a0 is not 1
//     modulo p.
func LiftInverse(r *ring.Ring, b, a0 ring.Elem, p *big.Int, e int) (ring.Elem, error) {
	m, err := ring.NewModulus(p, e)
	if err != nil {
		return nil, err
	}
	if !r.EqualMod(r.Mul(b, a0, m.P), r.One(), m.P) {
		return nil, apperrors.NewValidationError("seed", fmt.Sprintf("%s is not an inverse of %s modulo %s", a0, b, p), a0)
	}
	x := r.Reduce(a0, m.P)
	err = iterate(m, func(_ precision.Step, q *big.Int) {
		x = refineInverse(r, x, b, q)
	})
	return x, err
}

// LiftNthRoot lifts an n-th root a0 of b modulo p to the n-th root of b
// modulo p^e congruent to a0.
//
// Each step at precision q computes
//
//	a <- a - w*(a^n - b)          mod q
//	w <- 2w - w^2*n*a^(n-1)       mod q   (skipped on the last step)
//
// Returns:
//   - ring.Elem: The root modulo p^e.
//   - error: A PrecisionError for e < 1, a ValidationError if n < 1 or a0^n is
//     not b modulo p, a RingError if n*a0^(n-1) is not a unit modulo p (for
//     instance square roots with p = 2).
func LiftNthRoot(r *ring.Ring, b ring.Elem, n int, a0 ring.Elem, p *big.Int, e int) (ring.Elem, error) {
	m, err := ring.NewModulus(p, e)
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, apperrors.NewValidationError("n", "root index must be at least 1", n)
	}
	m1 := m.AtPrecision(1)
	if !r.EqualMod(r.Pow(a0, n, m1.Q), b, m1.Q) {
		return nil, apperrors.NewValidationError("seed", fmt.Sprintf("%s^%d is not %s modulo %s", a0, n, b, p), a0)
	}
	bn := big.NewInt(int64(n))
	derivative := func(x ring.Elem, q *big.Int) ring.Elem {
		return r.MulInt(r.Pow(x, n-1, q), bn, q)
	}
	w, err := r.Inverse(derivative(a0, m1.Q), m1)
	if err != nil {
		return nil, apperrors.WrapError(err, "derivative of x^%d at %s", n, a0)
	}

	x := r.Reduce(a0, m1.Q)
	err = iterate(m, func(step precision.Step, q *big.Int) {
		x = r.Sub(x, r.Mul(w, r.Sub(r.Pow(x, n, q), b, q), q), q)
		if !step.Last {
			w = refineInverse(r, w, derivative(x, q), q)
		}
	})
	return x, err
}

// LiftSqrt lifts a square root a0 of b modulo an odd prime p to the square
// root of b modulo p^e congruent to a0.
func LiftSqrt(r *ring.Ring, b, a0 ring.Elem, p *big.Int, e int) (ring.Elem, error) {
	return LiftNthRoot(r, b, 2, a0, p, e)
}

// Steps returns the number of Newton steps a lift to precision e runs.
func Steps(e int) (int, error) {
	s, err := precision.New(1, e)
	if err != nil {
		return 0, err
	}
	return s.Len(), nil
}

// refineInverse returns 2w - w^2*d, one Newton step towards d^-1.
func refineInverse(r *ring.Ring, w, d ring.Elem, q *big.Int) ring.Elem {
	two := big.NewInt(2)
	return r.Sub(r.MulInt(w, two, q), r.Mul(r.Mul(w, w, q), d, q), q)
}

// iterate replays the schedule from 1 to m.E, calling step with the modulus
// reached by each step.
func iterate(m ring.Modulus, step func(precision.Step, *big.Int)) error {
	sched, err := precision.New(1, m.E)
	if err != nil {
		return err
	}
	for s := range sched.All() {
		step(s, ring.Power(m.P, s.To))
	}
	return nil
}
