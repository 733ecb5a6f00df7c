package hensel

import (
	"math/big"

	apperrors "github.com/agbru/padic/internal/errors"
	"github.com/agbru/padic/internal/poly"
	"github.com/agbru/padic/internal/ring"
)

// Mode selects whether a step maintains the Bézout cofactors.
type Mode int

const (
	// KeepForContinuation updates cofactors so that the tree can be lifted
	// again later.
	KeepForContinuation Mode = iota
	// FinalNoResume skips the cofactor update. It is only used for the last
	// step of a lift whose tree is discarded afterwards.
	FinalNoResume
)

// String returns the name of the mode.
func (m Mode) String() string {
	switch m {
	case KeepForContinuation:
		return "keep"
	case FinalNoResume:
		return "final"
	}
	return "unknown"
}

// stepper lifts a tree by one precision step, from p^e0 to p^e1.
type stepper struct {
	arith *poly.Arith
	mode  Mode
	p0    *big.Int // p^e0
	pd    *big.Int // p^(e1-e0)
	p1    *big.Int // p^e1
}

func newStepper(a *poly.Arith, p *big.Int, e0, e1 int, mode Mode) *stepper {
	return &stepper{
		arith: a,
		mode:  mode,
		p0:    ring.Power(p, e0),
		pd:    ring.Power(p, e1-e0),
		p1:    ring.Power(p, e1),
	}
}

// liftTree applies liftPair from the root pair down. target is f modulo p1.
func (s *stepper) liftTree(t *tree, target poly.Poly) error {
	type frame struct {
		pair   int
		target poly.Poly
	}
	stack := []frame{{t.rootPair(), target}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if err := s.liftPair(t, f.pair, f.target); err != nil {
			return err
		}
		left, right := t.nodes[f.pair], t.nodes[f.pair+1]
		if right.child >= 0 {
			stack = append(stack, frame{right.child, right.value})
		}
		if left.child >= 0 {
			stack = append(stack, frame{left.child, left.value})
		}
	}
	return nil
}

// liftPair lifts the sibling pair (j, j+1), whose product is F modulo p0, to
// a pair whose product is F modulo p1.
//
//	g       = (F - a*b) / p0                mod pd
//	(t0, s) = divrem(v*g, a)                mod pd
//	t       = u*g + t0*b                    mod pd
//	a'      = a + p0*s,  b' = b + p0*t
//
// and, unless the mode is FinalNoResume,
//
//	h         = (1 - (u*a' + v*b')) / p0   mod pd
//	(t0', s') = divrem(v*h, a)             mod pd
//	t'        = u*h + t0'*b                mod pd
//	u'        = u + p0*t',  v' = v + p0*s'
func (s *stepper) liftPair(t *tree, j int, F poly.Poly) error {
	ar := s.arith
	a, b := t.nodes[j].value, t.nodes[j+1].value
	u, v := t.nodes[j].cofactor, t.nodes[j+1].cofactor

	g, err := s.scaledError(ar.Sub(F, ar.Mul(a, b, s.p1), s.p1))
	if err != nil {
		return apperrors.LiftError{Stage: "factor update", Cause: err}
	}
	t0, sa := ar.DivRemMonic(ar.Mul(v, g, s.pd), a, s.pd)
	tb := ar.Add(ar.Mul(u, g, s.pd), ar.Mul(t0, b, s.pd), s.pd)
	a2 := ar.Add(a, ar.MulInt(sa, s.p0, nil), s.p1)
	b2 := ar.Add(b, ar.MulInt(tb, s.p0, nil), s.p1)
	t.nodes[j].value, t.nodes[j+1].value = a2, b2

	if s.mode == FinalNoResume {
		return nil
	}

	one := poly.Poly{ar.R.One()}
	bezout := ar.Add(ar.Mul(u, a2, s.p1), ar.Mul(v, b2, s.p1), s.p1)
	h, err := s.scaledError(ar.Sub(one, bezout, s.p1))
	if err != nil {
		return apperrors.LiftError{Stage: "cofactor update", Cause: err}
	}
	t0, sv := ar.DivRemMonic(ar.Mul(v, h, s.pd), a, s.pd)
	tu := ar.Add(ar.Mul(u, h, s.pd), ar.Mul(t0, b, s.pd), s.pd)
	t.nodes[j].cofactor = ar.Add(u, ar.MulInt(tu, s.p0, nil), s.p1)
	t.nodes[j+1].cofactor = ar.Add(v, ar.MulInt(sv, s.p0, nil), s.p1)
	return nil
}

// scaledError divides a residual that vanishes modulo p0 by p0 and reduces
// it modulo pd.
func (s *stepper) scaledError(residual poly.Poly) (poly.Poly, error) {
	e, err := s.arith.DivExact(residual, s.p0)
	if err != nil {
		return nil, err
	}
	return s.arith.Reduce(e, s.pd), nil
}
