package hensel

import (
	apperrors "github.com/agbru/padic/internal/errors"
	"github.com/agbru/padic/internal/poly"
)

// Idempotents returns, for each factor f_i of c, the CRT idempotent W_i with
// W_i = 1 modulo f_i and W_i = 0 modulo f_j for j != i, all modulo p^e and
// reduced modulo f = f_1 * ... * f_k. The W_i sum to 1 modulo f.
//
// The tree is walked from the root with a relative idempotent U = 1. At a
// pair (a, b) with cofactor u of a, Q = a*u*U goes to b and U - Q to a.
//
// Parameters:
//   - c: A continuation. Its cofactors must be current, which every
//     continuation guarantees.
//
// Returns:
//   - []poly.Poly: The idempotents in the caller's original factor order.
//   - error: A ValidationError if c is nil or over another ring.
func (l *Lifter) Idempotents(c *Continuation) ([]poly.Poly, error) {
	if c == nil || c.tree == nil {
		return nil, apperrors.NewValidationError("continuation", "nil continuation", nil)
	}
	if c.ring != l.arith.R {
		return nil, apperrors.NewValidationError("continuation", "continuation built over another ring", nil)
	}
	a := l.arith
	q := c.modulus.Q
	t := c.tree
	f := t.root(a, q)

	type frame struct {
		pair int
		rel  poly.Poly
	}
	out := make([]poly.Poly, t.leafCount())
	stack := []frame{{t.rootPair(), poly.Poly{a.R.One()}}}
	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		left, right := t.nodes[fr.pair], t.nodes[fr.pair+1]
		_, au := a.DivRemMonic(a.Mul(left.value, left.cofactor, q), f, q)
		_, qr := a.DivRemMonic(a.Mul(au, fr.rel, q), f, q)
		rl := a.Sub(fr.rel, qr, q)

		for _, next := range []struct {
			n   node
			rel poly.Poly
		}{{left, rl}, {right, qr}} {
			if next.n.child < 0 {
				out[next.n.leaf] = next.rel
				continue
			}
			stack = append(stack, frame{next.n.child, next.rel})
		}
	}
	return out, nil
}
