package padic

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/padic/internal/errors"
)

func TestNewLifterFromOptions(t *testing.T) {
	t.Parallel()
	o := Options{Strategy: "kronecker", KroneckerThreshold: 0, LogLevel: "error", Concurrency: 2}
	l, err := NewLifterFromOptions(Integers(), o)
	require.NoError(t, err)
	assert.Equal(t, "padic", l.Name())
	assert.Equal(t, "Kronecker", l.Arith().Multiplier().Name())
	assert.Equal(t, 2, l.Subject().ObserverCount())

	o.Strategy = "fft"
	_, err = NewLifterFromOptions(Integers(), o)
	var cfgErr apperrors.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestLiftAll(t *testing.T) {
	t.Parallel()
	f := IntPoly(-1, 0, 0, 0, 1)
	factors := []Poly{IntPoly(-1, 1), IntPoly(-2, 1), IntPoly(-3, 1), IntPoly(-4, 1)}
	jobs := []Job{
		{Name: "mod 25", F: f, Factors: factors, P: big.NewInt(5), E: 2},
		{Name: "mod 125", F: f, Factors: factors, P: big.NewInt(5), E: 3},
		{Name: "too few", F: f, Factors: factors[:1], P: big.NewInt(5), E: 3},
	}
	results, err := LiftAll(context.Background(), Integers(), jobs)
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.NoError(t, results[0].Err)
	assert.Equal(t, "x + 24", results[0].Factors[0].String())
	require.NoError(t, results[1].Err)
	assert.Equal(t, "x + 124", results[1].Factors[0].String())
	require.NoError(t, results[2].Err, "a single factor is returned unchanged")
}

func TestIdempotentsSumToOne(t *testing.T) {
	t.Parallel()
	z := Integers()
	f := IntPoly(-1, 0, 0, 0, 1)
	factors := []Poly{IntPoly(-1, 1), IntPoly(-2, 1), IntPoly(-3, 1), IntPoly(-4, 1)}
	c, err := LiftContinuable(z, f, factors, big.NewInt(5), 4)
	require.NoError(t, err)
	es, err := Idempotents(c)
	require.NoError(t, err)
	require.Len(t, es, 4)

	// The idempotents of x^4 - 1 over Z/625 sum to the constant 1.
	q := big.NewInt(625)
	total := Poly(nil)
	for _, e := range es {
		total = addPoly(z, total, e, q)
	}
	assert.Equal(t, "1", total.String())
}

func addPoly(r *Ring, f, g Poly, q *big.Int) Poly {
	n := max(len(f), len(g))
	out := make(Poly, n)
	for i := range n {
		out[i] = r.Add(f.Coeff(i), g.Coeff(i), q)
	}
	for len(out) > 0 && r.IsZero(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

func TestInverseNonUnit(t *testing.T) {
	t.Parallel()
	z := Integers()
	_, err := Inverse(z, z.FromInt64(14), big.NewInt(7), 3)
	assert.ErrorIs(t, err, apperrors.ErrNonUnit)

	_, err = Inverse(z, z.FromInt64(3), big.NewInt(7), 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidPrecision)
}

func TestCalibrateKeepsOptionsValid(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	o := Options{Strategy: "adaptive", KroneckerThreshold: 777, LogLevel: "warn", Concurrency: 1}
	got := Calibrate(ctx, o)
	assert.Equal(t, 777, got.KroneckerThreshold, "a canceled calibration keeps the threshold")
	assert.NoError(t, got.Validate())
}
