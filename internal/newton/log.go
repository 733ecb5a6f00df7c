package newton

import (
	"fmt"
	"math"
	"math/big"

	apperrors "github.com/agbru/padic/internal/errors"
	"github.com/agbru/padic/internal/ring"
)

// Log returns the p-adic logarithm of a modulo p^e.
//
// a must be a 1-unit: a = 1 modulo p, or a = ±1 modulo 4 when p = 2, where
// -a is used for a = -1 modulo 4 since log(-1) = 0.
//
// Method:
// y = a^(p^k) with k = floor(sqrt(e)) is closer to 1 by k digits. With
// x = (y-1)/(y+1),
//
//	log(y) = 2 * sum_{j>=0} x^(2j+1) / (2j+1)
//
// and the series is cut once the valuation bound of the next term reaches
// e + k. Dividing by p^k gives log(a). The working precision carries k, the
// largest v_p(2j+1) divided out and a guard digit.
//
// Returns:
//   - ring.Elem: log(a) modulo p^e.
//   - error: A PrecisionError for e < 1, a ValidationError if a is not a
//     1-unit.
func Log(r *ring.Ring, a ring.Elem, p *big.Int, e int) (ring.Elem, error) {
	m, err := ring.NewModulus(p, e)
	if err != nil {
		return nil, err
	}
	one := r.One()
	two := big.NewInt(2)
	even := p.Cmp(two) == 0
	switch {
	case !even && r.EqualMod(a, one, p):
	case even && r.EqualMod(a, one, big.NewInt(4)):
	case even && r.EqualMod(a, r.Neg(one, nil), big.NewInt(4)):
		a = r.Neg(a, nil)
	default:
		return nil, apperrors.NewValidationError("a", fmt.Sprintf("%s is not a 1-unit modulo %s", a, p), a)
	}

	k := int(math.Sqrt(float64(e)))
	// v_p(x) >= k + 1 for odd p; for p = 2, v(y - 1) >= k + 2 and y + 1 has
	// valuation 1.
	vx := k + 1
	target := e + k

	terms, maxv := 0, 0
	for ; termBound(2*terms+1, vx, p) < target; terms++ {
		maxv = max(maxv, valuation(big.NewInt(int64(2*terms+1)), p))
	}
	work := target + maxv + 1
	if even {
		work++
	}
	wq := ring.Power(p, work)

	y := r.PowBig(a, ring.Power(p, k), wq)
	num := r.Sub(y, one, wq)
	den := r.Add(y, one, wq)
	if even {
		if num, err = r.DivExact(num, two); err != nil {
			return nil, err
		}
		if den, err = r.DivExact(den, two); err != nil {
			return nil, err
		}
	}
	inv, err := r.Inverse(den, m.AtPrecision(work))
	if err != nil {
		return nil, apperrors.WrapError(err, "log denominator")
	}
	x := r.Mul(num, inv, wq)
	x2 := r.Mul(x, x, wq)

	var sum ring.Elem
	power := x
	for j := 0; j < terms; j++ {
		term, err := divideOdd(r, power, int64(2*j+1), p, wq)
		if err != nil {
			return nil, err
		}
		sum = r.Add(sum, term, wq)
		power = r.Mul(power, x2, wq)
	}
	sum = r.MulInt(sum, two, wq)

	logA, err := r.DivExact(sum, ring.Power(p, k))
	if err != nil {
		return nil, apperrors.WrapError(err, "rescaling log")
	}
	return r.Reduce(logA, m.Q), nil
}

// divideOdd returns x / n modulo q for an odd n, x divisible by the p-part
// of n.
func divideOdd(r *ring.Ring, x ring.Elem, n int64, p, q *big.Int) (ring.Elem, error) {
	u := big.NewInt(n)
	pv := big.NewInt(1)
	for new(big.Int).Mod(u, p).Sign() == 0 {
		u.Quo(u, p)
		pv.Mul(pv, p)
	}
	if pv.Cmp(bigOne) != 0 {
		var err error
		if x, err = r.DivExact(x, pv); err != nil {
			return nil, err
		}
	}
	uInv := new(big.Int).ModInverse(u, q)
	return r.MulInt(x, uInv, q), nil
}

var bigOne = big.NewInt(1)

// termBound is a lower bound on v_p(x^n / n) when v_p(x) >= vx.
func termBound(n, vx int, p *big.Int) int {
	return n*vx - ilog(int64(n), p)
}

// ilog returns the largest m with p^m <= n.
func ilog(n int64, p *big.Int) int {
	m := 0
	pm := new(big.Int).Set(p)
	bn := big.NewInt(n)
	for pm.Cmp(bn) <= 0 {
		m++
		pm.Mul(pm, p)
	}
	return m
}

// valuation returns v_p(n) for n != 0.
func valuation(n, p *big.Int) int {
	v := 0
	n = new(big.Int).Set(n)
	rem := new(big.Int)
	for {
		q, _ := new(big.Int).QuoRem(n, p, rem)
		if rem.Sign() != 0 {
			return v
		}
		n = q
		v++
	}
}
