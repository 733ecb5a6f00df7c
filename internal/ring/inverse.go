package ring

import (
	"fmt"
	"math/big"

	apperrors "github.com/agbru/padic/internal/errors"
	"github.com/agbru/padic/internal/precision"
)

// Inverse returns a^-1 modulo m.Q.
//
// Over Z the inverse is computed directly. Over Z[Y]/(T) the inverse is first
// found modulo p by the extended Euclidean algorithm in GF(p)[Y], then lifted
// with the Newton iteration x <- x(2 - a*x) along the precision schedule.
//
// Returns:
//   - Elem: The inverse, with canonical coefficients.
//   - error: A RingError wrapping ErrNonUnit if a is not a unit modulo p.
func (r *Ring) Inverse(a Elem, m Modulus) (Elem, error) {
	if r.t == nil {
		x := new(big.Int)
		if len(a) > 0 {
			x.Mod(a[0], m.Q)
		}
		inv := new(big.Int).ModInverse(x, m.Q)
		if inv == nil {
			return nil, apperrors.NewRingError("inverse", fmt.Errorf("%w: %s modulo %s^%d", apperrors.ErrNonUnit, x, m.P, m.E))
		}
		return trim(Elem{inv}), nil
	}

	x, ok := r.inverseModP(a, m.P)
	if !ok {
		return nil, apperrors.NewRingError("inverse", fmt.Errorf("%w: %s modulo %s", apperrors.ErrNonUnit, a, m.P))
	}
	sched, err := precision.New(1, m.E)
	if err != nil {
		return nil, err
	}
	two := r.FromInt64(2)
	for step := range sched.All() {
		q := Power(m.P, step.To)
		x = r.Mul(x, r.Sub(two, r.Mul(a, x, q), q), q)
	}
	return x, nil
}

// IsUnit reports whether a is invertible modulo p.
func (r *Ring) IsUnit(a Elem, p *big.Int) bool {
	if r.t == nil {
		x := new(big.Int)
		if len(a) > 0 {
			x.Mod(a[0], p)
		}
		return new(big.Int).GCD(nil, nil, x, p).Cmp(bigOne) == 0
	}
	_, ok := r.inverseModP(a, p)
	return ok
}

func (r *Ring) inverseModP(a Elem, p *big.Int) (Elem, bool) {
	ap := r.Reduce(a, p)
	if len(ap) == 0 {
		return nil, false
	}
	tp := zpReduce(r.t, p)
	s, ok := zpInverse(ap, tp, p)
	if !ok {
		return nil, false
	}
	return r.normalize(s, p), true
}
