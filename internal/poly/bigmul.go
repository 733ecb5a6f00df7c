//go:build !gmp

package poly

import "math/big"

// bigMul returns x * y for non-negative x and y.
func bigMul(x, y *big.Int) *big.Int {
	return new(big.Int).Mul(x, y)
}

// BigBackend names the big integer library behind Kronecker products.
const BigBackend = "math/big"
