// Package calibration estimates the operand size at which Kronecker
// substitution overtakes schoolbook polynomial multiplication on the current
// machine. It runs fast micro-benchmarks (~100ms) of both strategies on
// integer polynomials of growing degree and coefficient size.
package calibration

import (
	"context"
	"math/big"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/padic/internal/poly"
	"github.com/agbru/padic/internal/ring"
)

// ─────────────────────────────────────────────────────────────────────────────
// Micro-benchmark Configuration
// ─────────────────────────────────────────────────────────────────────────────

const (
	// MicroBenchIterations is the number of iterations per test for averaging.
	MicroBenchIterations = 3

	// MicroBenchTimeout is the maximum time for the entire micro-benchmark suite.
	MicroBenchTimeout = 150 * time.Millisecond
)

// Case is one benchmarked operand shape.
type Case struct {
	// Degree is the degree of both factors.
	Degree int
	// Bits is the bit size of the modulus the coefficients are reduced by.
	Bits int
}

// Size returns the Adaptive multiplier's measure of the case:
// (Degree + 1) * Bits.
func (c Case) Size() int { return (c.Degree + 1) * c.Bits }

// MicroBenchCases spans the range where the strategies usually cross over.
var MicroBenchCases = []Case{
	{Degree: 4, Bits: 64},
	{Degree: 8, Bits: 128},
	{Degree: 16, Bits: 256},
	{Degree: 32, Bits: 512},
	{Degree: 64, Bits: 1024},
}

// ─────────────────────────────────────────────────────────────────────────────
// Micro-benchmark Types
// ─────────────────────────────────────────────────────────────────────────────

// MicroBenchmark performs fast tests to estimate the Kronecker threshold.
type MicroBenchmark struct {
	// Cases are the operand shapes to test (default: MicroBenchCases)
	Cases []Case
	// Iterations is the number of iterations per test (default: MicroBenchIterations)
	Iterations int
	// Timeout is the maximum duration for the entire benchmark
	Timeout time.Duration
}

// ThresholdResults contains the estimated threshold from micro-benchmarks.
type ThresholdResults struct {
	// KroneckerThreshold is the estimated switch-over size in bits
	KroneckerThreshold int
	// Confidence is a score from 0-1 indicating result reliability
	Confidence float64
	// Duration is how long the micro-benchmark took
	Duration time.Duration
}

// testResult holds timing data for a single configuration test.
type testResult struct {
	c         Case
	kronecker bool
	duration  time.Duration
	err       error
}

// ─────────────────────────────────────────────────────────────────────────────
// Micro-benchmark Implementation
// ─────────────────────────────────────────────────────────────────────────────

// NewMicroBenchmark creates a new MicroBenchmark with default settings.
func NewMicroBenchmark() *MicroBenchmark {
	return &MicroBenchmark{
		Cases:      MicroBenchCases,
		Iterations: MicroBenchIterations,
		Timeout:    MicroBenchTimeout,
	}
}

// RunQuick benchmarks both strategies on every case and estimates the
// smallest size at which Kronecker substitution wins.
//
// Returns:
//   - ThresholdResults: The estimated threshold
//   - error: An error if the benchmark failed critically
func (mb *MicroBenchmark) RunQuick(ctx context.Context) (ThresholdResults, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, mb.Timeout)
	defer cancel()

	results := mb.runParallelTests(ctx)

	thresholds := analyzeResults(results)
	thresholds.Duration = time.Since(start)

	return thresholds, nil
}

// runParallelTests executes multiplication tests in parallel, at most one per
// CPU.
func (mb *MicroBenchmark) runParallelTests(ctx context.Context) []testResult {
	var results []testResult
	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for _, c := range mb.Cases {
		for _, kronecker := range []bool{false, true} {
			g.Go(func() error {
				if ctx.Err() != nil {
					return nil
				}
				dur, err := mb.runSingleTest(ctx, c, kronecker)

				mu.Lock()
				results = append(results, testResult{c: c, kronecker: kronecker, duration: dur, err: err})
				mu.Unlock()
				return nil
			})
		}
	}

	_ = g.Wait()
	return results
}

// runSingleTest performs a single multiplication test.
func (mb *MicroBenchmark) runSingleTest(ctx context.Context, c Case, kronecker bool) (time.Duration, error) {
	var m poly.Multiplier = poly.Schoolbook{}
	if kronecker {
		m = poly.Kronecker{}
	}
	r := ring.Integers()
	q := new(big.Int).Lsh(big.NewInt(1), uint(c.Bits))
	f := generateTestPoly(c, 1)
	g := generateTestPoly(c, 2)

	// Warm up
	_ = m.Mul(r, f, g, q)

	var totalDuration time.Duration
	for i := 0; i < mb.Iterations; i++ {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		start := time.Now()
		_ = m.Mul(r, f, g, q)
		totalDuration += time.Since(start)
	}

	return totalDuration / time.Duration(mb.Iterations), nil
}

// generateTestPoly creates a deterministic polynomial with dense coefficients
// just below 2^Bits.
func generateTestPoly(c Case, seed int) poly.Poly {
	coeffs := make([]*big.Int, c.Degree+1)
	words := (c.Bits + 63) / 64
	for i := range coeffs {
		bits := make([]big.Word, words)
		for j := range bits {
			bits[j] = big.Word(0xAAAAAAAAAAAAAAAA ^ uint64((i+seed)*0x1234567+j))
		}
		x := new(big.Int).SetBits(bits)
		coeffs[i] = x.Rsh(x, uint(words*64-c.Bits+1))
	}
	return poly.FromBig(coeffs...)
}

// analyzeResults finds the smallest case size at which Kronecker
// substitution is faster than schoolbook multiplication.
func analyzeResults(results []testResult) ThresholdResults {
	tr := ThresholdResults{
		KroneckerThreshold: poly.DefaultKroneckerThreshold,
		Confidence:         0.5,
	}

	if len(results) == 0 {
		// If no results obtained (e.g. timeout), set confidence to zero
		tr.Confidence = 0.0
		return tr
	}

	type pair struct{ schoolbook, kronecker time.Duration }
	byCase := make(map[Case]*pair)
	for _, r := range results {
		if r.err != nil {
			continue
		}
		p := byCase[r.c]
		if p == nil {
			p = &pair{}
			byCase[r.c] = p
		}
		if r.kronecker {
			p.kronecker = r.duration
		} else {
			p.schoolbook = r.duration
		}
	}

	crossover := 0
	complete := 0
	for c, p := range byCase {
		if p.schoolbook == 0 || p.kronecker == 0 {
			continue
		}
		complete++
		if p.kronecker < p.schoolbook && (crossover == 0 || c.Size() < crossover) {
			crossover = c.Size()
		}
	}

	if crossover > 0 {
		// Add some margin (Kronecker should be clearly better)
		tr.KroneckerThreshold = crossover * 9 / 10
		tr.Confidence += 0.3
	}
	if complete == len(MicroBenchCases) {
		tr.Confidence += 0.2
	}

	return tr
}

// ─────────────────────────────────────────────────────────────────────────────
// Quick Calibration Function
// ─────────────────────────────────────────────────────────────────────────────

// QuickCalibrate performs a fast calibration using micro-benchmarks.
func QuickCalibrate(ctx context.Context) (ThresholdResults, error) {
	return NewMicroBenchmark().RunQuick(ctx)
}

// QuickCalibrateWithDefault performs quick calibration and returns a value
// that can be used directly as Options.KroneckerThreshold, or defaultThreshold
// if the measurement is not reliable.
func QuickCalibrateWithDefault(ctx context.Context, defaultThreshold int) int {
	results, err := QuickCalibrate(ctx)
	if err != nil || results.Confidence < 0.6 {
		return defaultThreshold
	}
	return results.KroneckerThreshold
}
