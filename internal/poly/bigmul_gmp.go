//go:build gmp

// This file routes the single big integer product of Kronecker substitution
// through GMP. It is compiled only with the "gmp" build tag, so the module
// builds without libgmp by default:
//
//	go build -tags=gmp ./...
//
// The packed operands are non-negative, so the conversion goes through their
// big-endian magnitudes.

package poly

import (
	"math/big"

	"github.com/ncw/gmp"
)

// bigMul returns x * y for non-negative x and y.
func bigMul(x, y *big.Int) *big.Int {
	gx := new(gmp.Int).SetBytes(x.Bytes())
	gy := new(gmp.Int).SetBytes(y.Bytes())
	gx.Mul(gx, gy)
	return new(big.Int).SetBytes(gx.Bytes())
}

// BigBackend names the big integer library behind Kronecker products.
const BigBackend = "gmp"
