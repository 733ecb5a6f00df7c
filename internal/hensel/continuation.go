package hensel

import (
	"math/big"

	"github.com/agbru/padic/internal/poly"
	"github.com/agbru/padic/internal/ring"
)

// Continuation is the resumable state of a lift: the factor tree with its
// cofactors, valid modulo p^e. It is opaque and immutable from the caller's
// side; Lifter.Resume copies it before lifting further.
type Continuation struct {
	ring    *ring.Ring
	modulus ring.Modulus
	tree    *tree
}

func newContinuation(r *ring.Ring, m ring.Modulus, t *tree) *Continuation {
	return &Continuation{ring: r, modulus: m, tree: t}
}

// Precision returns the exponent e the continuation is valid at.
func (c *Continuation) Precision() int { return c.modulus.E }

// Prime returns a copy of the prime p.
func (c *Continuation) Prime() *big.Int { return new(big.Int).Set(c.modulus.P) }

// Ring returns the coefficient ring.
func (c *Continuation) Ring() *ring.Ring { return c.ring }

// Len returns the number of factors.
func (c *Continuation) Len() int { return c.tree.leafCount() }

// Factors returns copies of the lifted factors in the caller's original
// order, with coefficients in [0, p^e).
func (c *Continuation) Factors() []poly.Poly {
	leaves := c.tree.leaves()
	for i, f := range leaves {
		leaves[i] = f.Clone()
	}
	return leaves
}
