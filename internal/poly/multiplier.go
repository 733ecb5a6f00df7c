package poly

import (
	"math/big"

	"github.com/agbru/padic/internal/ring"
)

// Multiplier defines the polynomial multiplication used by an Arith.
// Different strategies trade setup cost against asymptotic speed; all of them
// return the same canonical product.
type Multiplier interface {
	// Name returns a descriptive name for the strategy.
	Name() string

	// Mul computes f * g over r, reduced modulo q when q is not nil.
	//
	// Parameters:
	//   - r: The coefficient ring.
	//   - f, g: The operands. They are not modified.
	//   - q: The modulus, or nil for exact arithmetic.
	//
	// Returns:
	//   - Poly: The trimmed product.
	Mul(r *ring.Ring, f, g Poly, q *big.Int) Poly
}

// Schoolbook multiplies coefficient by coefficient. It works over every ring
// and is the fastest choice for small operands.
type Schoolbook struct{}

// Name returns the name of the schoolbook strategy.
func (Schoolbook) Name() string { return "Schoolbook" }

// Mul performs quadratic-time multiplication.
func (Schoolbook) Mul(r *ring.Ring, f, g Poly, q *big.Int) Poly {
	f, g = trim(f), trim(g)
	if len(f) == 0 || len(g) == 0 {
		return nil
	}
	out := make(Poly, len(f)+len(g)-1)
	for i, x := range f {
		if r.IsZero(x) {
			continue
		}
		for j, y := range g {
			if r.IsZero(y) {
				continue
			}
			out[i+j] = r.Add(out[i+j], r.Mul(x, y, nil), nil)
		}
	}
	for i, c := range out {
		out[i] = r.Reduce(c, q)
	}
	return trim(out)
}

// Kronecker packs the coefficients of each integer operand into one big
// integer, multiplies the two integers once and unpacks the product. The
// single big product is delegated to bigMul, which is GMP-backed under the
// gmp build tag.
//
// Only integer polynomials modulo q are packed. Other cases fall back to
// schoolbook multiplication.
type Kronecker struct{}

// Name returns the name of the Kronecker strategy.
func (Kronecker) Name() string { return "Kronecker" }

// Mul performs multiplication by Kronecker substitution.
func (Kronecker) Mul(r *ring.Ring, f, g Poly, q *big.Int) Poly {
	if q == nil || !r.IsIntegers() {
		return Schoolbook{}.Mul(r, f, g, q)
	}
	f, g = trim(f), trim(g)
	if len(f) == 0 || len(g) == 0 {
		return nil
	}
	// Every product coefficient is below min(len f, len g) * q^2.
	slotBits := 2*q.BitLen() + big.NewInt(int64(min(len(f), len(g)))).BitLen() + 1
	slotBytes := (slotBits + 7) / 8

	x := pack(f, q, slotBytes)
	y := pack(g, q, slotBytes)
	z := bigMul(x, y)

	n := len(f) + len(g) - 1
	buf := make([]byte, n*slotBytes)
	z.FillBytes(buf)
	out := make(Poly, n)
	for i := range out {
		end := len(buf) - i*slotBytes
		c := new(big.Int).SetBytes(buf[end-slotBytes : end])
		c.Mod(c, q)
		if c.Sign() != 0 {
			out[i] = ring.Elem{c}
		}
	}
	return trim(out)
}

// pack evaluates f at 2^(8*slotBytes) after reducing its coefficients into
// [0, q). Coefficient 0 occupies the least significant slot.
func pack(f Poly, q *big.Int, slotBytes int) *big.Int {
	buf := make([]byte, len(f)*slotBytes)
	c := new(big.Int)
	for i, e := range f {
		if len(e) == 0 {
			continue
		}
		c.Mod(e[0], q)
		end := len(buf) - i*slotBytes
		c.FillBytes(buf[end-slotBytes : end])
	}
	return new(big.Int).SetBytes(buf)
}

// DefaultKroneckerThreshold is the operand size, in bits, from which
// Adaptive switches to Kronecker substitution.
const DefaultKroneckerThreshold = 4096

// Adaptive chooses between schoolbook and Kronecker multiplication based on
// operand size: the shorter operand's length times the bit length of q.
type Adaptive struct {
	// Threshold is the size in bits from which Kronecker is used. A value
	// of 0 selects DefaultKroneckerThreshold.
	Threshold int
}

// Name returns the name of the adaptive strategy.
func (Adaptive) Name() string { return "Adaptive (Schoolbook/Kronecker)" }

// Mul dispatches on operand size.
func (s Adaptive) Mul(r *ring.Ring, f, g Poly, q *big.Int) Poly {
	threshold := s.Threshold
	if threshold <= 0 {
		threshold = DefaultKroneckerThreshold
	}
	if q != nil && r.IsIntegers() && min(len(f), len(g))*q.BitLen() >= threshold {
		return Kronecker{}.Mul(r, f, g, q)
	}
	return Schoolbook{}.Mul(r, f, g, q)
}

// ByName returns the strategy registered under name: "schoolbook",
// "kronecker" or "adaptive". ok is false for an unknown name.
func ByName(name string, threshold int) (m Multiplier, ok bool) {
	switch name {
	case "schoolbook":
		return Schoolbook{}, true
	case "kronecker":
		return Kronecker{}, true
	case "adaptive":
		return Adaptive{Threshold: threshold}, true
	}
	return nil, false
}
