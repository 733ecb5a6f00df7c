package poly

import (
	"fmt"
	"math/big"

	apperrors "github.com/agbru/padic/internal/errors"
	"github.com/agbru/padic/internal/ring"
)

// Arith performs polynomial arithmetic over a coefficient ring. Every method
// takes the modulus q = p^e explicitly; a nil q means exact arithmetic.
// Results are trimmed and, when q is set, hold canonical coefficients.
//
// An Arith is immutable and safe for concurrent use.
type Arith struct {
	// R is the coefficient ring.
	R   *ring.Ring
	mul Multiplier
}

// NewArith returns the arithmetic over r using the multiplication strategy m.
// A nil m selects schoolbook multiplication.
func NewArith(r *ring.Ring, m Multiplier) *Arith {
	if m == nil {
		m = Schoolbook{}
	}
	return &Arith{R: r, mul: m}
}

// Multiplier returns the multiplication strategy in use.
func (a *Arith) Multiplier() Multiplier { return a.mul }

// Reduce returns f with every coefficient reduced modulo T and q.
func (a *Arith) Reduce(f Poly, q *big.Int) Poly {
	out := make(Poly, len(f))
	for i, c := range f {
		out[i] = a.R.Reduce(c, q)
	}
	return trim(out)
}

// Add returns f + g.
func (a *Arith) Add(f, g Poly, q *big.Int) Poly {
	out := make(Poly, max(len(f), len(g)))
	for i := range out {
		out[i] = a.R.Add(f.Coeff(i), g.Coeff(i), q)
	}
	return trim(out)
}

// Sub returns f - g.
func (a *Arith) Sub(f, g Poly, q *big.Int) Poly {
	out := make(Poly, max(len(f), len(g)))
	for i := range out {
		out[i] = a.R.Sub(f.Coeff(i), g.Coeff(i), q)
	}
	return trim(out)
}

// Neg returns -f.
func (a *Arith) Neg(f Poly, q *big.Int) Poly {
	out := make(Poly, len(f))
	for i, c := range f {
		out[i] = a.R.Neg(c, q)
	}
	return trim(out)
}

// Mul returns f * g using the configured multiplication strategy.
func (a *Arith) Mul(f, g Poly, q *big.Int) Poly {
	return a.mul.Mul(a.R, f, g, q)
}

// MulElem returns c * f for a ring element c.
func (a *Arith) MulElem(f Poly, c ring.Elem, q *big.Int) Poly {
	out := make(Poly, len(f))
	for i, x := range f {
		out[i] = a.R.Mul(x, c, q)
	}
	return trim(out)
}

// MulInt returns c * f for an integer c.
func (a *Arith) MulInt(f Poly, c *big.Int, q *big.Int) Poly {
	out := make(Poly, len(f))
	for i, x := range f {
		out[i] = a.R.MulInt(x, c, q)
	}
	return trim(out)
}

// DivExact returns f / d, where d divides every coefficient of f exactly.
// It is the division by a power of p that turns a residual into the next
// correction term.
func (a *Arith) DivExact(f Poly, d *big.Int) (Poly, error) {
	out := make(Poly, len(f))
	for i, c := range f {
		x, err := a.R.DivExact(c, d)
		if err != nil {
			return nil, err
		}
		out[i] = x
	}
	return trim(out), nil
}

// DivRemMonic divides f by the monic g modulo q.
func (a *Arith) DivRemMonic(f, g Poly, q *big.Int) (quo, rem Poly) {
	return a.divRem(f, trim(g), a.R.One(), q)
}

// DivRem divides f by g modulo m.Q. The leading coefficient of g must be a
// unit modulo p.
//
// Returns:
//   - Poly: The quotient.
//   - Poly: The remainder, of degree below deg g.
//   - error: A RingError if lead(g) is not a unit, a ValidationError if g is
//     zero modulo m.Q.
func (a *Arith) DivRem(f, g Poly, m ring.Modulus) (quo, rem Poly, err error) {
	g = a.Reduce(g, m.Q)
	if len(g) == 0 {
		return nil, nil, apperrors.NewValidationError("divisor", "division by zero polynomial", nil)
	}
	inv, err := a.R.Inverse(g.Lead(), m)
	if err != nil {
		return nil, nil, err
	}
	quo, rem = a.divRem(f, g, inv, m.Q)
	return quo, rem, nil
}

// Rem returns f mod g modulo m.Q.
func (a *Arith) Rem(f, g Poly, m ring.Modulus) (Poly, error) {
	_, rem, err := a.DivRem(f, g, m)
	return rem, err
}

// divRem is long division by g whose leading coefficient has inverse inv.
func (a *Arith) divRem(f, g Poly, inv ring.Elem, q *big.Int) (quo, rem Poly) {
	rem = a.Reduce(f, q)
	dg := len(g) - 1
	if len(rem) <= dg {
		return nil, rem
	}
	quo = make(Poly, len(rem)-dg)
	for i := len(rem) - 1; i >= dg; i-- {
		c := rem[i]
		if a.R.IsZero(c) {
			continue
		}
		c = a.R.Mul(c, inv, q)
		shift := i - dg
		quo[shift] = c
		for j, y := range g {
			rem[shift+j] = a.R.Sub(rem[shift+j], a.R.Mul(c, y, q), q)
		}
	}
	return trim(quo), trim(rem[:dg])
}

// ExtGCD returns Bézout cofactors (u, v) with f*u + g*v = 1 modulo m.Q.
//
// The extended Euclidean algorithm runs over the coefficient ring modulo m.Q
// and the final gcd is normalized to 1. At precision 1 over a residue field
// every nonzero remainder has a unit leading coefficient.
//
// Returns:
//   - Poly, Poly: The cofactors u and v.
//   - error: An error wrapping ErrNotCoprime if the gcd is not a unit, or a
//     RingError if a remainder has a non-unit leading coefficient.
func (a *Arith) ExtGCD(f, g Poly, m ring.Modulus) (u, v Poly, err error) {
	r0, r1 := a.Reduce(f, m.Q), a.Reduce(g, m.Q)
	s0, s1 := Poly{a.R.One()}, Poly(nil)
	t0, t1 := Poly(nil), Poly{a.R.One()}
	for len(r1) > 0 {
		quo, rem, err := a.DivRem(r0, r1, m)
		if err != nil {
			return nil, nil, err
		}
		r0, r1 = r1, rem
		s0, s1 = s1, a.Sub(s0, a.Mul(quo, s1, m.Q), m.Q)
		t0, t1 = t1, a.Sub(t0, a.Mul(quo, t1, m.Q), m.Q)
	}
	if r0.Degree() != 0 {
		return nil, nil, apperrors.WrapError(apperrors.ErrNotCoprime, "gcd of %s and %s has degree %d", f, g, r0.Degree())
	}
	inv, err := a.R.Inverse(r0[0], m)
	if err != nil {
		return nil, nil, fmt.Errorf("gcd %s is not a unit: %w: %w", r0, apperrors.ErrNotCoprime, err)
	}
	return a.MulElem(s0, inv, m.Q), a.MulElem(t0, inv, m.Q), nil
}

// Eval returns f(x) by Horner's rule.
func (a *Arith) Eval(f Poly, x ring.Elem, q *big.Int) ring.Elem {
	var acc ring.Elem
	for i := len(f) - 1; i >= 0; i-- {
		acc = a.R.Add(a.R.Mul(acc, x, q), f[i], q)
	}
	return a.R.Reduce(acc, q)
}

// Derivative returns the formal derivative f'.
func (a *Arith) Derivative(f Poly, q *big.Int) Poly {
	if len(f) < 2 {
		return nil
	}
	out := make(Poly, len(f)-1)
	for i := 1; i < len(f); i++ {
		out[i-1] = a.R.MulInt(f[i], big.NewInt(int64(i)), q)
	}
	return trim(out)
}

// IsZeroMod reports whether f vanishes modulo q.
func (a *Arith) IsZeroMod(f Poly, q *big.Int) bool {
	for _, c := range f {
		if !a.R.IsZeroMod(c, q) {
			return false
		}
	}
	return true
}

// EqualMod reports whether f and g are congruent modulo q.
func (a *Arith) EqualMod(f, g Poly, q *big.Int) bool {
	return len(a.Sub(f, g, q)) == 0
}

// IsMonicMod reports whether f has degree at least 0 and leading
// coefficient 1 modulo q.
func (a *Arith) IsMonicMod(f Poly, q *big.Int) bool {
	f = a.Reduce(f, q)
	return len(f) > 0 && a.R.IsOne(f.Lead())
}

// MakeMonic returns lead(f)^-1 * f modulo m.Q, together with the inverse.
func (a *Arith) MakeMonic(f Poly, m ring.Modulus) (Poly, ring.Elem, error) {
	f = a.Reduce(f, m.Q)
	if len(f) == 0 {
		return nil, nil, apperrors.NewValidationError("f", "zero polynomial", nil)
	}
	inv, err := a.R.Inverse(f.Lead(), m)
	if err != nil {
		return nil, nil, err
	}
	return a.MulElem(f, inv, m.Q), inv, nil
}

// Product returns the product of fs, 1 for an empty list.
func (a *Arith) Product(fs []Poly, q *big.Int) Poly {
	acc := Poly{a.R.Reduce(a.R.One(), q)}
	for _, f := range fs {
		acc = a.Mul(acc, f, q)
	}
	return acc
}
