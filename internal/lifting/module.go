// Package lifting provides two generic p-adic lifting drivers, decoupled from
// any concrete ring: a divide-and-conquer Dixon driver for linear problems and
// a Newton driver for quadratically convergent ones.
//
// The drivers own the modulus bookkeeping only. Values are manipulated through
// a Module, and the problem-specific mathematics lives in caller callbacks.
package lifting

import (
	"math/big"

	"github.com/agbru/padic/internal/poly"
	"github.com/agbru/padic/internal/ring"
)

// Module is the arithmetic the drivers need on values of type V: a Z-module
// with reduction modulo q and exact division by integers.
type Module[V any] interface {
	// Add returns a + b modulo q.
	Add(a, b V, q *big.Int) V
	// Sub returns a - b modulo q.
	Sub(a, b V, q *big.Int) V
	// MulInt returns c * a modulo q. A nil q means exact.
	MulInt(a V, c, q *big.Int) V
	// DivExact returns a / d, where d divides a exactly.
	DivExact(a V, d *big.Int) (V, error)
	// Reduce returns a modulo q.
	Reduce(a V, q *big.Int) V
}

// IntModule is the Module of p-adic integers represented by *big.Int.
type IntModule struct{}

func (IntModule) Add(a, b, q *big.Int) *big.Int {
	return modq(new(big.Int).Add(a, b), q)
}

func (IntModule) Sub(a, b, q *big.Int) *big.Int {
	return modq(new(big.Int).Sub(a, b), q)
}

func (IntModule) MulInt(a, c, q *big.Int) *big.Int {
	return modq(new(big.Int).Mul(a, c), q)
}

func (IntModule) DivExact(a, d *big.Int) (*big.Int, error) {
	x, err := ring.Integers().DivExact(ring.Elem{a}, d)
	if err != nil {
		return nil, err
	}
	if len(x) == 0 {
		return new(big.Int), nil
	}
	return x[0], nil
}

func (IntModule) Reduce(a, q *big.Int) *big.Int {
	return modq(new(big.Int).Set(a), q)
}

func modq(x, q *big.Int) *big.Int {
	if q != nil {
		x.Mod(x, q)
	}
	return x
}

// ElemModule is the Module of coefficient ring elements.
type ElemModule struct {
	R *ring.Ring
}

func (m ElemModule) Add(a, b ring.Elem, q *big.Int) ring.Elem { return m.R.Add(a, b, q) }
func (m ElemModule) Sub(a, b ring.Elem, q *big.Int) ring.Elem { return m.R.Sub(a, b, q) }
func (m ElemModule) MulInt(a ring.Elem, c, q *big.Int) ring.Elem {
	return m.R.MulInt(a, c, q)
}
func (m ElemModule) DivExact(a ring.Elem, d *big.Int) (ring.Elem, error) {
	return m.R.DivExact(a, d)
}
func (m ElemModule) Reduce(a ring.Elem, q *big.Int) ring.Elem { return m.R.Reduce(a, q) }

// PolyModule is the Module of polynomials over a coefficient ring.
type PolyModule struct {
	A *poly.Arith
}

func (m PolyModule) Add(a, b poly.Poly, q *big.Int) poly.Poly { return m.A.Add(a, b, q) }
func (m PolyModule) Sub(a, b poly.Poly, q *big.Int) poly.Poly { return m.A.Sub(a, b, q) }
func (m PolyModule) MulInt(a poly.Poly, c, q *big.Int) poly.Poly {
	return m.A.MulInt(a, c, q)
}
func (m PolyModule) DivExact(a poly.Poly, d *big.Int) (poly.Poly, error) {
	return m.A.DivExact(a, d)
}
func (m PolyModule) Reduce(a poly.Poly, q *big.Int) poly.Poly { return m.A.Reduce(a, q) }
