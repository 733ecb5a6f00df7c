// Package testutil provides shared testing utilities used across the project.
package testutil

import (
	"math/big"
	"testing"

	"github.com/agbru/padic/internal/poly"
	"github.com/agbru/padic/internal/ring"
)

// Linear returns the integer polynomial x - r.
func Linear(r int64) poly.Poly {
	return poly.FromInts(-r, 1)
}

// FromRoots returns the exact integer polynomial (x - r_1) * ... * (x - r_n).
//
// Parameters:
//   - roots: The roots, possibly repeated.
//
// Returns:
//   - poly.Poly: The monic polynomial of degree len(roots).
func FromRoots(roots ...int64) poly.Poly {
	a := poly.NewArith(ring.Integers(), nil)
	f := poly.FromInts(1)
	for _, r := range roots {
		f = a.Mul(f, Linear(r), nil)
	}
	return f
}

// Modulus returns p^e, failing the test on invalid input.
func Modulus(t testing.TB, p int64, e int) ring.Modulus {
	t.Helper()
	m, err := ring.NewModulus(big.NewInt(p), e)
	if err != nil {
		t.Fatalf("NewModulus(%d, %d): %v", p, e, err)
	}
	return m
}

// Residue returns x mod p^e as a decimal string, the form golden values are
// written in.
func Residue(x, p int64, e int) string {
	q := new(big.Int).Exp(big.NewInt(p), big.NewInt(int64(e)), nil)
	return new(big.Int).Mod(big.NewInt(x), q).String()
}
