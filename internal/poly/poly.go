// Package poly implements dense univariate polynomials over the coefficient
// rings of package ring, with arithmetic modulo an explicit p^e.
//
// A Poly holds its coefficients low degree first and carries no ring or
// modulus of its own: the Arith that operates on it supplies both. This keeps
// factor trees cheap to copy and lets a single polynomial be read at several
// precisions during a lift.
package poly

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/agbru/padic/internal/ring"
)

// Poly is a polynomial in X whose coefficients are ring elements, low degree
// first, without trailing zero coefficients. The zero polynomial is empty.
type Poly []ring.Elem

// FromInts returns the integer polynomial c0 + c1*X + c2*X^2 + ...
func FromInts(cs ...int64) Poly {
	out := make(Poly, len(cs))
	for i, c := range cs {
		if c != 0 {
			out[i] = ring.Elem{big.NewInt(c)}
		}
	}
	return trim(out)
}

// FromBig returns the integer polynomial c0 + c1*X + ... The coefficients are
// copied.
func FromBig(cs ...*big.Int) Poly {
	out := make(Poly, len(cs))
	for i, c := range cs {
		if c.Sign() != 0 {
			out[i] = ring.Elem{new(big.Int).Set(c)}
		}
	}
	return trim(out)
}

// Linear returns the monic polynomial X - a.
func Linear(a ring.Elem) Poly {
	neg := a.Clone()
	for _, c := range neg {
		c.Neg(c)
	}
	return trim(Poly{trimElem(neg), ring.Elem{big.NewInt(1)}})
}

// Degree returns the degree of f, or -1 for the zero polynomial.
func (f Poly) Degree() int {
	return len(trim(f)) - 1
}

// Lead returns the leading coefficient of f, nil for zero.
func (f Poly) Lead() ring.Elem {
	f = trim(f)
	if len(f) == 0 {
		return nil
	}
	return f[len(f)-1]
}

// Coeff returns the coefficient of X^i, nil when it is zero.
func (f Poly) Coeff(i int) ring.Elem {
	if i < 0 || i >= len(f) {
		return nil
	}
	return f[i]
}

// Clone returns a deep copy of f.
func (f Poly) Clone() Poly {
	if len(f) == 0 {
		return nil
	}
	out := make(Poly, len(f))
	for i, c := range f {
		out[i] = c.Clone()
	}
	return out
}

// String renders f with descending powers, e.g. "x^2 + 3*x + 124".
func (f Poly) String() string {
	f = trim(f)
	if len(f) == 0 {
		return "0"
	}
	var b strings.Builder
	for i := len(f) - 1; i >= 0; i-- {
		c := f[i]
		if len(c) == 0 {
			continue
		}
		text := c.String()
		negative := len(c) == 1 && c[0].Sign() < 0
		if negative {
			text = text[1:]
		}
		switch {
		case b.Len() == 0 && negative:
			b.WriteString("-")
		case b.Len() > 0 && negative:
			b.WriteString(" - ")
		case b.Len() > 0:
			b.WriteString(" + ")
		}
		unit := text == "1"
		switch {
		case i == 0:
			b.WriteString(text)
		case unit:
			b.WriteString("x")
		default:
			b.WriteString(text + "*x")
		}
		if i > 1 {
			b.WriteString("^" + strconv.Itoa(i))
		}
	}
	return b.String()
}

func trim(f Poly) Poly {
	n := len(f)
	for n > 0 && isZeroElem(f[n-1]) {
		n--
	}
	if n == 0 {
		return nil
	}
	return f[:n]
}

func isZeroElem(c ring.Elem) bool {
	for _, x := range c {
		if x.Sign() != 0 {
			return false
		}
	}
	return true
}

func trimElem(c ring.Elem) ring.Elem {
	n := len(c)
	for n > 0 && c[n-1].Sign() == 0 {
		n--
	}
	if n == 0 {
		return nil
	}
	return c[:n]
}
