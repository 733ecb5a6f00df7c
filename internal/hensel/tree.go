// Package hensel lifts a factorization f = f_1 * ... * f_k known modulo a
// prime p to a factorization modulo p^e with quadratic convergence.
//
// Factor Tree:
// The k factors are arranged as the leaves of a binary tree stored in an
// arena of 2k-2 nodes. Sibling pairs occupy indices (j, j+1) for even j; an
// internal node records the index j of its child pair. The last pair,
// (2k-4, 2k-3), holds the children of the root, whose value is f itself and
// is therefore never stored. Each node also carries a Bézout cofactor such
// that value[j]*cofactor[j] + value[j+1]*cofactor[j+1] = 1 at the current
// precision.
//
// Lifting:
// One precision step from p^e0 to p^e1 (e1 - e0 <= e0) updates the whole tree
// from the root down. Steps follow the schedule of package precision.
package hensel

import (
	"math/big"

	apperrors "github.com/agbru/padic/internal/errors"
	"github.com/agbru/padic/internal/poly"
	"github.com/agbru/padic/internal/ring"
)

// node is one entry of the factor tree arena.
type node struct {
	value    poly.Poly
	cofactor poly.Poly
	// child is the index of the first node of the child pair, -1 for leaves.
	child int
	// leaf is the position of the factor in the caller's list, -1 for
	// internal nodes.
	leaf int
}

// tree is the arena of a factor tree over k >= 2 leaves.
type tree struct {
	nodes []node
}

// buildTree arranges factors, known modulo m.Q, as a factor tree and
// computes the Bézout cofactors of every sibling pair at that precision.
//
// At each merge the two smallest-degree nodes of the unmerged pool are
// moved to the next free pair and their product is appended to the pool.
// Ties go to the earliest position.
func buildTree(a *poly.Arith, factors []poly.Poly, m ring.Modulus) (*tree, error) {
	k := len(factors)
	nodes := make([]node, 2*k-2)
	for i, f := range factors {
		nodes[i] = node{value: a.Reduce(f, m.Q), child: -1, leaf: i}
	}

	next := k
	for j := 0; j+2 < len(nodes); j += 2 {
		swapSmallest(nodes, j, next)
		swapSmallest(nodes, j+1, next)
		nodes[next] = node{
			value: a.Mul(nodes[j].value, nodes[j+1].value, m.Q),
			child: j,
			leaf:  -1,
		}
		next++
	}

	t := &tree{nodes: nodes}
	for j := 0; j < len(nodes); j += 2 {
		u, v, err := a.ExtGCD(nodes[j].value, nodes[j+1].value, m)
		if err != nil {
			return nil, apperrors.NotCoprimeError{Pair: j, Cause: err}
		}
		nodes[j].cofactor, nodes[j+1].cofactor = u, v
	}
	return t, nil
}

// swapSmallest moves the node of smallest degree in nodes[at:end] to at.
func swapSmallest(nodes []node, at, end int) {
	best := at
	for i := at + 1; i < end; i++ {
		if nodes[i].value.Degree() < nodes[best].value.Degree() {
			best = i
		}
	}
	nodes[at], nodes[best] = nodes[best], nodes[at]
}

// rootPair returns the index of the pair holding the root's children.
func (t *tree) rootPair() int { return len(t.nodes) - 2 }

// leafCount returns the number of original factors.
func (t *tree) leafCount() int { return len(t.nodes)/2 + 1 }

// leaves returns the leaf values in the caller's original order.
func (t *tree) leaves() []poly.Poly {
	out := make([]poly.Poly, t.leafCount())
	for _, n := range t.nodes {
		if n.leaf >= 0 {
			out[n.leaf] = n.value
		}
	}
	return out
}

// root returns the product of the root pair modulo q.
func (t *tree) root(a *poly.Arith, q *big.Int) poly.Poly {
	j := t.rootPair()
	return a.Mul(t.nodes[j].value, t.nodes[j+1].value, q)
}

// depth returns the number of edges on the longest root-to-leaf path.
func (t *tree) depth() int {
	type frame struct{ pair, depth int }
	deepest := 0
	stack := []frame{{t.rootPair(), 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		deepest = max(deepest, f.depth)
		for _, n := range t.nodes[f.pair : f.pair+2] {
			if n.child >= 0 {
				stack = append(stack, frame{n.child, f.depth + 1})
			}
		}
	}
	return deepest
}

// clone returns a copy of the arena. Polynomials are never modified in
// place, so they are shared.
func (t *tree) clone() *tree {
	nodes := make([]node, len(t.nodes))
	copy(nodes, t.nodes)
	return &tree{nodes: nodes}
}

// reduce returns a copy of the tree with every value and cofactor reduced
// modulo q.
func (t *tree) reduce(a *poly.Arith, q *big.Int) *tree {
	out := t.clone()
	for i := range out.nodes {
		out.nodes[i].value = a.Reduce(out.nodes[i].value, q)
		out.nodes[i].cofactor = a.Reduce(out.nodes[i].cofactor, q)
	}
	return out
}
