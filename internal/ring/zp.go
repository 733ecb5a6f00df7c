package ring

import "math/big"

// Helpers for dense polynomials over GF(p), coefficients in [0, p), low
// degree first. They only serve the residue-field inversion in extensions.

func zpReduce(a []*big.Int, p *big.Int) Elem {
	out := make(Elem, len(a))
	for i, c := range a {
		out[i] = new(big.Int).Mod(c, p)
	}
	return trim(out)
}

func zpSub(a, b Elem, p *big.Int) Elem {
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
		out[i].Mod(out[i], p)
	}
	return trim(out)
}

func zpMul(a, b Elem, p *big.Int) Elem {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	out := make(Elem, len(a)+len(b)-1)
	for i := range out {
		out[i] = new(big.Int)
	}
	tmp := new(big.Int)
	for i, x := range a {
		for j, y := range b {
			out[i+j].Add(out[i+j], tmp.Mul(x, y))
		}
	}
	for _, c := range out {
		c.Mod(c, p)
	}
	return trim(out)
}

// zpDivRem divides a by the nonzero b. ok is false when the leading
// coefficient of b is not invertible modulo p.
func zpDivRem(a, b Elem, p *big.Int) (q, rem Elem, ok bool) {
	inv := new(big.Int).ModInverse(b[len(b)-1], p)
	if inv == nil {
		return nil, nil, false
	}
	rem = a.Clone()
	if len(rem) < len(b) {
		return nil, trim(rem), true
	}
	q = make(Elem, len(rem)-len(b)+1)
	for i := range q {
		q[i] = new(big.Int)
	}
	tmp := new(big.Int)
	for i := len(rem) - 1; i >= len(b)-1; i-- {
		c := new(big.Int).Mul(rem[i], inv)
		c.Mod(c, p)
		if c.Sign() == 0 {
			continue
		}
		shift := i - (len(b) - 1)
		q[shift].Set(c)
		for j, y := range b {
			tmp.Mul(c, y)
			rem[shift+j].Sub(rem[shift+j], tmp)
			rem[shift+j].Mod(rem[shift+j], p)
		}
	}
	return trim(q), trim(rem[:len(b)-1]), true
}

// zpInverse returns a^-1 modulo (t, p) when gcd(a, t) is a unit.
func zpInverse(a, t Elem, p *big.Int) (Elem, bool) {
	r0, r1 := t, a
	var s0 Elem
	s1 := Elem{big.NewInt(1)}
	for len(r1) > 0 {
		q, rem, ok := zpDivRem(r0, r1, p)
		if !ok {
			return nil, false
		}
		r0, r1 = r1, rem
		s0, s1 = s1, zpSub(s0, zpMul(q, s1, p), p)
	}
	if len(r0) != 1 {
		return nil, false
	}
	c := new(big.Int).ModInverse(r0[0], p)
	if c == nil {
		return nil, false
	}
	out := make(Elem, len(s0))
	for i, x := range s0 {
		out[i] = new(big.Int).Mul(x, c)
		out[i].Mod(out[i], p)
	}
	return trim(out), true
}
