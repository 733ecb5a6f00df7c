// Package ring implements the coefficient rings of the lifting engine: the
// integers Z and the unramified extensions Z[Y]/(T) for a monic T.
//
// Every operation takes the current modulus q = p^e as an explicit argument
// (nil means exact arithmetic over Z or Z[Y]/(T)), and returns canonical
// residues in [0, q). Operations never modify their arguments, so elements
// may be shared freely between the nodes of a factor tree.
package ring

import (
	"fmt"
	"math/big"
	"strings"

	apperrors "github.com/agbru/padic/internal/errors"
)

var bigOne = big.NewInt(1)

// Elem is an element of a coefficient ring, written as a polynomial in Y with
// coefficients low degree first and no trailing zeros. The zero element is
// the empty slice; integers have length at most one.
type Elem []*big.Int

// String renders the element, e.g. "17" or "(3 + 2*y^2)".
func (a Elem) String() string {
	a = trim(a)
	switch len(a) {
	case 0:
		return "0"
	case 1:
		return a[0].String()
	}
	terms := make([]string, 0, len(a))
	for i, c := range a {
		if c.Sign() == 0 {
			continue
		}
		switch i {
		case 0:
			terms = append(terms, c.String())
		case 1:
			terms = append(terms, c.String()+"*y")
		default:
			terms = append(terms, fmt.Sprintf("%s*y^%d", c, i))
		}
	}
	return "(" + strings.Join(terms, " + ") + ")"
}

// Clone returns a deep copy of the element.
func (a Elem) Clone() Elem {
	if len(a) == 0 {
		return nil
	}
	out := make(Elem, len(a))
	for i, c := range a {
		out[i] = new(big.Int).Set(c)
	}
	return out
}

// Ring is either Z or Z[Y]/(T) with T monic of degree at least 1.
// The zero value is not usable; use Integers or NewExtension.
type Ring struct {
	t []*big.Int
}

var integers = &Ring{}

// Integers returns the ring Z.
func Integers() *Ring { return integers }

// NewExtension returns Z[Y]/(T).
//
// Parameters:
//   - t: The coefficients of T, low degree first. T must be monic of degree
//     at least 1. Irreducibility of T modulo p is a trusted precondition.
//
// Returns:
//   - *Ring: The extension ring.
//   - error: A ValidationError if T is not monic or is constant.
func NewExtension(t []*big.Int) (*Ring, error) {
	tt := trim(Elem(t).Clone())
	if len(tt) < 2 {
		return nil, apperrors.NewValidationError("t", "defining polynomial must have degree at least 1", t)
	}
	if tt[len(tt)-1].Cmp(bigOne) != 0 {
		return nil, apperrors.NewValidationError("t", "defining polynomial must be monic", t)
	}
	return &Ring{t: tt}, nil
}

// Degree returns the rank of the ring over Z: 1 for Z, deg T otherwise.
func (r *Ring) Degree() int {
	if r.t == nil {
		return 1
	}
	return len(r.t) - 1
}

// IsIntegers reports whether the ring is Z.
func (r *Ring) IsIntegers() bool { return r.t == nil }

// DefiningPolynomial returns a copy of T, or nil for Z.
func (r *Ring) DefiningPolynomial() []*big.Int {
	return Elem(r.t).Clone()
}

// String describes the ring.
func (r *Ring) String() string {
	if r.t == nil {
		return "Z"
	}
	return fmt.Sprintf("Z[y]/%s", Elem(r.t))
}

// Zero returns the additive identity.
func (r *Ring) Zero() Elem { return nil }

// One returns the multiplicative identity.
func (r *Ring) One() Elem { return Elem{big.NewInt(1)} }

// FromInt returns the element x.
func (r *Ring) FromInt(x *big.Int) Elem {
	return trim(Elem{new(big.Int).Set(x)})
}

// FromInt64 returns the element x.
func (r *Ring) FromInt64(x int64) Elem {
	return trim(Elem{big.NewInt(x)})
}

// FromCoeffs returns the element c0 + c1*Y + ..., reduced modulo T.
// For Z only the constant term is kept.
func (r *Ring) FromCoeffs(cs ...*big.Int) Elem {
	return r.Reduce(Elem(cs), nil)
}

// Reduce returns a modulo T and, when q is not nil, modulo q.
func (r *Ring) Reduce(a Elem, q *big.Int) Elem {
	return r.normalize(a.Clone(), q)
}

// normalize reduces c in place. c must not be shared.
func (r *Ring) normalize(c Elem, q *big.Int) Elem {
	c = r.reduceT(c)
	if q != nil {
		for _, x := range c {
			x.Mod(x, q)
		}
	}
	return trim(c)
}

// reduceT reduces c in place modulo the monic T.
func (r *Ring) reduceT(c Elem) Elem {
	if r.t == nil {
		if len(c) > 1 {
			return c[:1]
		}
		return c
	}
	n := len(r.t) - 1
	tmp := new(big.Int)
	for i := len(c) - 1; i >= n; i-- {
		if c[i].Sign() == 0 {
			continue
		}
		for j := 0; j < n; j++ {
			if r.t[j].Sign() == 0 {
				continue
			}
			tmp.Mul(c[i], r.t[j])
			c[i-n+j].Sub(c[i-n+j], tmp)
		}
		c[i].SetInt64(0)
	}
	if len(c) > n {
		c = c[:n]
	}
	return c
}

// Add returns a + b.
func (r *Ring) Add(a, b Elem, q *big.Int) Elem {
	if len(a) < len(b) {
		a, b = b, a
	}
	out := a.Clone()
	for i, c := range b {
		out[i].Add(out[i], c)
	}
	return r.normalize(out, q)
}

// Sub returns a - b.
func (r *Ring) Sub(a, b Elem, q *big.Int) Elem {
	n := max(len(a), len(b))
	out := make(Elem, n)
	for i := range out {
		out[i] = new(big.Int)
		if i < len(a) {
			out[i].Set(a[i])
		}
		if i < len(b) {
			out[i].Sub(out[i], b[i])
		}
	}
	return r.normalize(out, q)
}

// Neg returns -a.
func (r *Ring) Neg(a Elem, q *big.Int) Elem {
	out := a.Clone()
	for _, c := range out {
		c.Neg(c)
	}
	return r.normalize(out, q)
}

// Mul returns a * b.
func (r *Ring) Mul(a, b Elem, q *big.Int) Elem {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	out := make(Elem, len(a)+len(b)-1)
	for i := range out {
		out[i] = new(big.Int)
	}
	tmp := new(big.Int)
	for i, x := range a {
		if x.Sign() == 0 {
			continue
		}
		for j, y := range b {
			tmp.Mul(x, y)
			out[i+j].Add(out[i+j], tmp)
		}
	}
	return r.normalize(out, q)
}

// MulInt returns c * a for an integer c.
func (r *Ring) MulInt(a Elem, c *big.Int, q *big.Int) Elem {
	out := a.Clone()
	for _, x := range out {
		x.Mul(x, c)
	}
	return r.normalize(out, q)
}

// Pow returns a^n for n >= 0.
func (r *Ring) Pow(a Elem, n int, q *big.Int) Elem {
	result := r.normalize(r.One(), q)
	base := r.Reduce(a, q)
	for n > 0 {
		if n&1 == 1 {
			result = r.Mul(result, base, q)
		}
		n >>= 1
		if n > 0 {
			base = r.Mul(base, base, q)
		}
	}
	return result
}

// PowBig returns a^n for n >= 0.
func (r *Ring) PowBig(a Elem, n *big.Int, q *big.Int) Elem {
	result := r.normalize(r.One(), q)
	base := r.Reduce(a, q)
	for i := n.BitLen() - 1; i >= 0; i-- {
		result = r.Mul(result, result, q)
		if n.Bit(i) == 1 {
			result = r.Mul(result, base, q)
		}
	}
	return result
}

// DivExact returns a / d, failing with a RingError when some coefficient is
// not divisible by d.
func (r *Ring) DivExact(a Elem, d *big.Int) (Elem, error) {
	out := make(Elem, len(a))
	rem := new(big.Int)
	for i, c := range a {
		out[i] = new(big.Int)
		out[i].QuoRem(c, d, rem)
		if rem.Sign() != 0 {
			return nil, apperrors.NewRingError("divexact", fmt.Errorf("%s is not divisible by %s", a, d))
		}
	}
	return trim(out), nil
}

// IsZero reports whether a is zero.
func (r *Ring) IsZero(a Elem) bool {
	for _, c := range a {
		if c.Sign() != 0 {
			return false
		}
	}
	return true
}

// IsZeroMod reports whether a is zero modulo q.
func (r *Ring) IsZeroMod(a Elem, q *big.Int) bool {
	tmp := new(big.Int)
	for _, c := range a {
		if tmp.Mod(c, q).Sign() != 0 {
			return false
		}
	}
	return true
}

// IsOne reports whether a is the multiplicative identity.
func (r *Ring) IsOne(a Elem) bool {
	a = trim(a)
	return len(a) == 1 && a[0].Cmp(bigOne) == 0
}

// Equal reports whether a and b are equal as exact elements.
func (r *Ring) Equal(a, b Elem) bool {
	a, b = trim(a), trim(b)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Cmp(b[i]) != 0 {
			return false
		}
	}
	return true
}

// EqualMod reports whether a and b are congruent modulo q.
func (r *Ring) EqualMod(a, b Elem, q *big.Int) bool {
	return r.IsZero(r.Sub(a, b, q))
}

// trim drops trailing zero coefficients, returning nil for zero.
func trim(a Elem) Elem {
	n := len(a)
	for n > 0 && a[n-1].Sign() == 0 {
		n--
	}
	if n == 0 {
		return nil
	}
	return a[:n]
}
