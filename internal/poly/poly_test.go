package poly

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/padic/internal/errors"
	"github.com/agbru/padic/internal/ring"
)

func modulus(t *testing.T, p int64, e int) ring.Modulus {
	t.Helper()
	m, err := ring.NewModulus(big.NewInt(p), e)
	require.NoError(t, err)
	return m
}

func TestPolyString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		p        Poly
		expected string
	}{
		{nil, "0"},
		{FromInts(0, 0, 0), "0"},
		{FromInts(7), "7"},
		{FromInts(-1, 0, 0, 0, 1), "x^4 - 1"},
		{FromInts(124, 1), "x + 124"},
		{FromInts(0, 3, 1), "x^2 + 3*x"},
		{FromInts(2, 0, -1), "-x^2 + 2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.p.String())
	}
}

func TestPolyDegreeAndLead(t *testing.T) {
	t.Parallel()
	assert.Equal(t, -1, Poly(nil).Degree())
	assert.Equal(t, 0, FromInts(5).Degree())
	assert.Equal(t, 3, FromInts(1, 0, 0, 4, 0).Degree())
	assert.Equal(t, "4", FromInts(1, 0, 0, 4).Lead().String())
	assert.Nil(t, Poly(nil).Lead())
	assert.Equal(t, "x + 5", Linear(ring.Integers().FromInt64(-5)).String())
}

func TestArithBasics(t *testing.T) {
	t.Parallel()
	a := NewArith(ring.Integers(), nil)
	q := big.NewInt(125)

	f := FromInts(1, 1)
	g := FromInts(-1, 1)
	assert.Equal(t, "x^2 + 124", a.Mul(f, g, q).String())
	assert.Equal(t, "x^2 - 1", a.Mul(f, g, nil).String())
	assert.Equal(t, "2*x", a.Add(f, g, q).String())
	assert.Equal(t, "2", a.Sub(f, g, q).String())
	assert.Equal(t, "124*x + 124", a.Neg(f, q).String())
	assert.Equal(t, "3*x + 3", a.MulInt(f, big.NewInt(3), q).String())

	d, err := a.DivExact(FromInts(10, -15), big.NewInt(5))
	require.NoError(t, err)
	assert.Equal(t, "-3*x + 2", d.String())
	_, err = a.DivExact(FromInts(10, 16), big.NewInt(5))
	assert.Error(t, err)

	h := FromInts(-1, 0, 0, 0, 1)
	assert.Equal(t, "4*x^3", a.Derivative(h, nil).String())
	assert.Equal(t, "0", a.Eval(h, ring.Integers().FromInt64(57), q).String())
	assert.True(t, a.IsZeroMod(FromInts(250, 125), q))
	assert.True(t, a.EqualMod(FromInts(-1, 1), FromInts(124, 1), q))
	assert.True(t, a.IsMonicMod(FromInts(3, 126), q))
	assert.Equal(t, "x^4 - 1", a.Product([]Poly{FromInts(-1, 1), FromInts(1, 1), FromInts(1, 0, 1)}, nil).String())
}

func TestDivRem(t *testing.T) {
	t.Parallel()
	a := NewArith(ring.Integers(), nil)

	quo, rem := a.DivRemMonic(FromInts(-1, 0, 0, 0, 1), FromInts(-1, 1), nil)
	assert.Equal(t, "x^3 + x^2 + x + 1", quo.String())
	assert.Equal(t, "0", rem.String())

	m := modulus(t, 7, 2)
	quo, rem, err := a.DivRem(FromInts(1, 0, 1), FromInts(1, 3), m)
	require.NoError(t, err)
	// 3x + 1 divides x^2 + 1 with quotient 3^-1 x - 3^-2 and remainder 1 + 3^-2.
	assert.True(t, a.EqualMod(a.Add(a.Mul(quo, FromInts(1, 3), m.Q), rem, m.Q), FromInts(1, 0, 1), m.Q))
	assert.Equal(t, 0, rem.Degree())

	_, _, err = a.DivRem(FromInts(1, 0, 1), FromInts(1, 7), m)
	assert.ErrorIs(t, err, apperrors.ErrNonUnit)

	_, _, err = a.DivRem(FromInts(1, 0, 1), FromInts(49), m)
	assert.Error(t, err)
}

func TestExtGCD(t *testing.T) {
	t.Parallel()
	a := NewArith(ring.Integers(), nil)
	for _, e := range []int{1, 3} {
		m := modulus(t, 5, e)
		f := FromInts(-1, 1)
		g := FromInts(1, 0, 1)
		u, v, err := a.ExtGCD(f, g, m)
		require.NoError(t, err)
		bezout := a.Add(a.Mul(f, u, m.Q), a.Mul(g, v, m.Q), m.Q)
		assert.Equal(t, "1", bezout.String(), "precision %d", e)
	}

	m := modulus(t, 5, 1)
	_, _, err := a.ExtGCD(FromInts(-1, 0, 1), FromInts(-1, 1), m)
	assert.ErrorIs(t, err, apperrors.ErrNotCoprime)

	// x + 1 and x + 6 coincide modulo 5.
	_, _, err = a.ExtGCD(FromInts(1, 1), FromInts(6, 1), m)
	assert.ErrorIs(t, err, apperrors.ErrNotCoprime)
}

func TestExtGCDExtension(t *testing.T) {
	t.Parallel()
	r, err := ring.NewExtension([]*big.Int{big.NewInt(1), big.NewInt(0), big.NewInt(1)})
	require.NoError(t, err)
	a := NewArith(r, nil)
	m := modulus(t, 3, 4)

	y := r.FromCoeffs(big.NewInt(0), big.NewInt(1))
	f := Linear(y)
	g := Linear(r.Neg(y, nil))
	u, v, err := a.ExtGCD(f, g, m)
	require.NoError(t, err)
	assert.True(t, a.EqualMod(a.Add(a.Mul(f, u, m.Q), a.Mul(g, v, m.Q), m.Q), Poly{r.One()}, m.Q))
}

func TestMakeMonic(t *testing.T) {
	t.Parallel()
	a := NewArith(ring.Integers(), nil)
	m := modulus(t, 7, 2)
	monic, inv, err := a.MakeMonic(FromInts(6, 3), m)
	require.NoError(t, err)
	assert.Equal(t, "x + 2", monic.String())
	assert.Equal(t, "33", inv.String())

	_, _, err = a.MakeMonic(FromInts(1, 7), m)
	assert.ErrorIs(t, err, apperrors.ErrNonUnit)
}

func TestMultipliersAgree(t *testing.T) {
	t.Parallel()
	r := ring.Integers()
	q := new(big.Int).Exp(big.NewInt(3), big.NewInt(40), nil)
	f := FromInts(5, -7, 11, 0, 13, 1)
	g := FromInts(-2, 3, 0, 0, 9)
	want := Schoolbook{}.Mul(r, f, g, q)

	for _, m := range []Multiplier{Kronecker{}, Adaptive{Threshold: 1}, Adaptive{}} {
		assert.Equal(t, want.String(), m.Mul(r, f, g, q).String(), m.Name())
	}
	assert.Nil(t, Kronecker{}.Mul(r, nil, g, q))
	assert.Equal(t, "x^2 - 1", Kronecker{}.Mul(r, FromInts(1, 1), FromInts(-1, 1), nil).String(),
		"exact products fall back to schoolbook")
}

func TestByName(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"schoolbook", "kronecker", "adaptive"} {
		m, ok := ByName(name, 0)
		assert.True(t, ok, name)
		assert.NotEmpty(t, m.Name())
	}
	_, ok := ByName("fft", 0)
	assert.False(t, ok)
}

func FuzzKroneckerMatchesSchoolbook(f *testing.F) {
	f.Add(int64(3), int64(-4), int64(5), int64(7), int64(1), uint8(20))
	f.Add(int64(0), int64(0), int64(1), int64(1<<40), int64(-1), uint8(60))
	f.Fuzz(func(t *testing.T, a0, a1, a2, b0, b1 int64, bits uint8) {
		q := new(big.Int).Lsh(big.NewInt(1), uint(bits%200)+1)
		q.Add(q, big.NewInt(1))
		r := ring.Integers()
		f := FromInts(a0, a1, a2)
		g := FromInts(b0, b1)
		want := Schoolbook{}.Mul(r, f, g, q)
		got := Kronecker{}.Mul(r, f, g, q)
		if want.String() != got.String() {
			t.Fatalf("Kronecker(%v, %v) mod %v = %v, schoolbook gives %v", f, g, q, got, want)
		}
	})
}
