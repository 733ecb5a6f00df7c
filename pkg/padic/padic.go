// Package padic is the public entry point of the lifting engine.
//
// It lifts factorizations of polynomials over Z or over an unramified
// extension Z[Y]/(T) from modulo p to modulo p^e with quadratic convergence,
// and lifts single residues: roots, inverses, n-th roots and logarithms.
// The package-level functions use lifters configured from the PADIC_*
// environment variables; NewLifter builds a lifter explicitly.
package padic

import (
	"context"
	"math/big"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agbru/padic/internal/calibration"
	"github.com/agbru/padic/internal/config"
	"github.com/agbru/padic/internal/hensel"
	"github.com/agbru/padic/internal/lifting"
	"github.com/agbru/padic/internal/logging"
	"github.com/agbru/padic/internal/newton"
	"github.com/agbru/padic/internal/orchestration"
	"github.com/agbru/padic/internal/poly"
	"github.com/agbru/padic/internal/ring"
)

type (
	// Ring is a coefficient ring, Z or Z[Y]/(T).
	Ring = ring.Ring
	// Elem is an element of a Ring.
	Elem = ring.Elem
	// Poly is a polynomial over a Ring, low degree first.
	Poly = poly.Poly
	// Lifter lifts factorizations over one Ring.
	Lifter = hensel.Lifter
	// Option configures a Lifter.
	Option = hensel.Option
	// Continuation holds a lifted factor tree that can be resumed.
	Continuation = hensel.Continuation
	// Options is the engine configuration.
	Options = config.Options
	// Job is one lift of a batch.
	Job = orchestration.Job
	// LiftResult is the outcome of one job of a batch.
	LiftResult = orchestration.LiftResult

	// Module is the arithmetic the generic drivers need on values.
	Module[V any] = lifting.Module[V]
	// DixonProblem is a linear problem solved by divide and conquer.
	DixonProblem[V any] = lifting.DixonProblem[V]
	// NewtonProblem is a quadratically convergent problem.
	NewtonProblem[X, A any] = lifting.NewtonProblem[X, A]
	// IntModule is the Module of *big.Int values.
	IntModule = lifting.IntModule
	// ElemModule is the Module of ring elements.
	ElemModule = lifting.ElemModule
	// PolyModule is the Module of polynomials.
	PolyModule = lifting.PolyModule
)

// Lifter options.
var (
	WithName       = hensel.WithName
	WithLogger     = hensel.WithLogger
	WithMultiplier = hensel.WithMultiplier
	WithObserver   = hensel.WithObserver
)

// Integers returns the ring Z.
func Integers() *Ring { return ring.Integers() }

// NewExtension returns Z[Y]/(T) for a monic T given low degree first.
func NewExtension(t []*big.Int) (*Ring, error) { return ring.NewExtension(t) }

// IntPoly returns the integer polynomial c0 + c1*x + c2*x^2 + ...
func IntPoly(cs ...int64) Poly { return poly.FromInts(cs...) }

// NewLifter returns a lifter over r.
func NewLifter(r *Ring, opts ...Option) *Lifter { return hensel.NewLifter(r, opts...) }

var (
	envOnce    sync.Once
	envOptions config.Options
	envErr     error
)

// EnvOptions returns the options read from the environment on first use.
func EnvOptions() (Options, error) {
	envOnce.Do(func() {
		envOptions, envErr = config.FromEnv()
	})
	return envOptions, envErr
}

// NewLifterFromOptions returns a lifter over r using the multiplication
// strategy and log level of o. Steps are logged and counted.
func NewLifterFromOptions(r *Ring, o Options) (*Lifter, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	m, err := o.Multiplier()
	if err != nil {
		return nil, err
	}
	level, err := o.Level()
	if err != nil {
		return nil, err
	}
	logger := logging.NewDefault("hensel", level)
	return hensel.NewLifter(r,
		hensel.WithName("padic"),
		hensel.WithMultiplier(m),
		hensel.WithLogger(logger),
		hensel.WithObserver(hensel.NewMetricsObserver()),
		hensel.WithObserver(observerFor(logger, level)),
	), nil
}

// Calibrate returns o with its Kronecker threshold measured on this machine.
// o is returned unchanged when the measurement is unreliable.
func Calibrate(ctx context.Context, o Options) Options {
	o.KroneckerThreshold = calibration.QuickCalibrateWithDefault(ctx, o.KroneckerThreshold)
	return o
}

func observerFor(logger zerolog.Logger, level zerolog.Level) hensel.StepObserver {
	if level > zerolog.DebugLevel {
		return hensel.NewNoOpObserver()
	}
	return hensel.NewLoggingObserver(logger)
}

func defaultLifter(r *Ring) (*Lifter, error) {
	o, err := EnvOptions()
	if err != nil {
		return nil, err
	}
	return NewLifterFromOptions(r, o)
}

func defaultArith(r *Ring) (*poly.Arith, error) {
	o, err := EnvOptions()
	if err != nil {
		return nil, err
	}
	m, err := o.Multiplier()
	if err != nil {
		return nil, err
	}
	return poly.NewArith(r, m), nil
}

// Lift lifts a factorization of f over r from modulo p to modulo p^e.
//
// Parameters:
//   - r: The coefficient ring of f and the factors.
//   - f: The polynomial. Its leading coefficient must be a unit modulo p.
//   - factors: Pairwise coprime monic factors whose product is f modulo p.
//   - p: The prime.
//   - e: The target precision.
//
// Returns:
//   - []Poly: The lifted monic factors, in input order.
//   - error: An error if the input is invalid.
func Lift(r *Ring, f Poly, factors []Poly, p *big.Int, e int) ([]Poly, error) {
	l, err := defaultLifter(r)
	if err != nil {
		return nil, err
	}
	return l.Lift(f, factors, p, e)
}

// LiftContinuable is Lift, keeping the state needed by Resume.
func LiftContinuable(r *Ring, f Poly, factors []Poly, p *big.Int, e int) (*Continuation, error) {
	l, err := defaultLifter(r)
	if err != nil {
		return nil, err
	}
	return l.LiftContinuable(f, factors, p, e)
}

// Resume continues a lift of f to precision e.
func Resume(f Poly, c *Continuation, e int) (*Continuation, error) {
	l, err := defaultLifter(c.Ring())
	if err != nil {
		return nil, err
	}
	return l.Resume(f, c, e)
}

// Idempotents returns the orthogonal idempotents of the factorization held
// by c, one per factor.
func Idempotents(c *Continuation) ([]Poly, error) {
	l, err := defaultLifter(c.Ring())
	if err != nil {
		return nil, err
	}
	return l.Idempotents(c)
}

// LiftAll lifts independent jobs over r concurrently, bounded by the
// configured concurrency.
func LiftAll(ctx context.Context, r *Ring, jobs []Job) ([]LiftResult, error) {
	o, err := EnvOptions()
	if err != nil {
		return nil, err
	}
	l, err := NewLifterFromOptions(r, o)
	if err != nil {
		return nil, err
	}
	return orchestration.ExecuteLifts(ctx, l, jobs, o.Concurrency), nil
}

// LiftRoot lifts a simple root a0 of f modulo p to modulo p^e.
func LiftRoot(r *Ring, f Poly, a0 Elem, p *big.Int, e int) (Elem, error) {
	ar, err := defaultArith(r)
	if err != nil {
		return nil, err
	}
	return newton.LiftRoot(ar, f, a0, p, e)
}

// Inverse returns b^-1 modulo p^e for a unit b.
func Inverse(r *Ring, b Elem, p *big.Int, e int) (Elem, error) {
	m1, err := ring.NewModulus(p, 1)
	if err != nil {
		return nil, err
	}
	seed, err := r.Inverse(b, m1)
	if err != nil {
		return nil, err
	}
	return newton.LiftInverse(r, b, seed, p, e)
}

// Sqrt lifts a square root a0 of b modulo an odd prime p to modulo p^e.
func Sqrt(r *Ring, b, a0 Elem, p *big.Int, e int) (Elem, error) {
	return newton.LiftSqrt(r, b, a0, p, e)
}

// NthRoot lifts an n-th root a0 of b modulo p to modulo p^e.
func NthRoot(r *Ring, b Elem, n int, a0 Elem, p *big.Int, e int) (Elem, error) {
	return newton.LiftNthRoot(r, b, n, a0, p, e)
}

// Log returns the p-adic logarithm of a 1-unit a modulo p^e.
func Log(r *Ring, a Elem, p *big.Int, e int) (Elem, error) {
	return newton.Log(r, a, p, e)
}
