package orchestration

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"strings"
	"sync/atomic"
	"testing"

	apperrors "github.com/agbru/padic/internal/errors"
	"github.com/agbru/padic/internal/hensel"
	"github.com/agbru/padic/internal/poly"
	"github.com/agbru/padic/internal/ring"
	"github.com/agbru/padic/internal/testutil"
)

// MockLifter is a mock implementation of FactorLifter used for testing the
// orchestration logic without invoking real lifts.
type MockLifter struct {
	NameValue string
	LiftFunc  func(f poly.Poly, factors []poly.Poly, p *big.Int, e int) ([]poly.Poly, error)
}

// Name returns the mocked name of the lifter.
func (m *MockLifter) Name() string {
	if m.NameValue != "" {
		return m.NameValue
	}
	return "Mock"
}

// Lift invokes the mocked LiftFunc.
func (m *MockLifter) Lift(f poly.Poly, factors []poly.Poly, p *big.Int, e int) ([]poly.Poly, error) {
	if m.LiftFunc != nil {
		return m.LiftFunc(f, factors, p, e)
	}
	return factors, nil
}

func fourthRootsJob(e int) Job {
	return Job{
		Name:    "x^4 - 1",
		F:       poly.FromInts(-1, 0, 0, 0, 1),
		Factors: []poly.Poly{testutil.Linear(1), testutil.Linear(2), testutil.Linear(3), testutil.Linear(4)},
		P:       big.NewInt(5),
		E:       e,
	}
}

// TestExecuteLifts verifies that the orchestrator runs every job and keeps
// results in job order.
func TestExecuteLifts(t *testing.T) {
	t.Parallel()
	lifter := hensel.NewLifter(ring.Integers())
	jobs := []Job{fourthRootsJob(2), fourthRootsJob(3), {Name: "bad precision", F: poly.FromInts(-1, 0, 1), Factors: []poly.Poly{testutil.Linear(1), testutil.Linear(-1)}, P: big.NewInt(5), E: 0}}

	results := ExecuteLifts(context.Background(), lifter, jobs, 2)
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	if results[0].Err != nil || results[1].Err != nil {
		t.Fatalf("Unexpected errors: %v, %v", results[0].Err, results[1].Err)
	}
	if got := render(results[1].Factors); got != "x + 124, x + 68, x + 57, x + 1" {
		t.Errorf("Unexpected factors mod 125: %s", got)
	}
	if !errors.Is(results[2].Err, apperrors.ErrInvalidPrecision) {
		t.Errorf("Expected ErrInvalidPrecision, got %v", results[2].Err)
	}
}

// TestExecuteLiftsRespectsLimit verifies that no more than limit lifts run at
// once.
func TestExecuteLiftsRespectsLimit(t *testing.T) {
	t.Parallel()
	var inFlight, peak atomic.Int32
	lifter := &MockLifter{LiftFunc: func(f poly.Poly, factors []poly.Poly, p *big.Int, e int) ([]poly.Poly, error) {
		n := inFlight.Add(1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		defer inFlight.Add(-1)
		return factors, nil
	}}
	jobs := make([]Job, 20)
	for i := range jobs {
		jobs[i] = fourthRootsJob(2)
	}

	ExecuteLifts(context.Background(), lifter, jobs, 3)
	if peak.Load() > 3 {
		t.Errorf("Expected at most 3 concurrent lifts, saw %d", peak.Load())
	}
}

// TestExecuteLiftsCanceled verifies that jobs do not start once the context is
// done.
func TestExecuteLiftsCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	lifter := &MockLifter{LiftFunc: func(f poly.Poly, factors []poly.Poly, p *big.Int, e int) ([]poly.Poly, error) {
		called = true
		return factors, nil
	}}

	results := ExecuteLifts(ctx, lifter, []Job{fourthRootsJob(2), fourthRootsJob(3)}, 1)
	if called {
		t.Error("Lift should not run after cancellation")
	}
	for _, res := range results {
		if !errors.Is(res.Err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", res.Err)
		}
	}
}

func TestCompareLifters(t *testing.T) {
	t.Parallel()
	lifters := []FactorLifter{
		hensel.NewLifter(ring.Integers(), hensel.WithName("schoolbook"), hensel.WithMultiplier(poly.Schoolbook{})),
		hensel.NewLifter(ring.Integers(), hensel.WithName("kronecker"), hensel.WithMultiplier(poly.Kronecker{})),
	}
	results := CompareLifters(context.Background(), lifters, fourthRootsJob(6))

	var out bytes.Buffer
	if err := AnalyzeComparisonResults(results, &out); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "All valid results are consistent") {
		t.Errorf("Unexpected summary:\n%s", out.String())
	}
	for _, name := range []string{"schoolbook", "kronecker"} {
		if !strings.Contains(out.String(), name) {
			t.Errorf("Summary should mention %s", name)
		}
	}
}

func TestAnalyzeComparisonResults(t *testing.T) {
	t.Parallel()
	a := []poly.Poly{poly.FromInts(1, 1)}
	b := []poly.Poly{poly.FromInts(2, 1)}
	failure := apperrors.NewPrecisionError(0)

	tests := []struct {
		name    string
		results []LiftResult
		check   func(error) bool
	}{
		{
			name:    "Consistent",
			results: []LiftResult{{Name: "one", Factors: a}, {Name: "two", Factors: a}, {Name: "three", Err: failure}},
			check:   func(err error) bool { return err == nil },
		},
		{
			name:    "Mismatch",
			results: []LiftResult{{Name: "one", Factors: a}, {Name: "two", Factors: b}},
			check:   func(err error) bool { return errors.Is(err, apperrors.ErrMismatch) },
		},
		{
			name:    "AllFailed",
			results: []LiftResult{{Name: "one", Err: failure}},
			check:   func(err error) bool { return errors.Is(err, apperrors.ErrInvalidPrecision) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			err := AnalyzeComparisonResults(tt.results, &out)
			if !tt.check(err) {
				t.Errorf("Unexpected result: %v", err)
			}
		})
	}
}

func TestWriteSummary(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	WriteSummary([]LiftResult{
		{Name: "ok", Factors: []poly.Poly{poly.FromInts(1, 1), poly.FromInts(2, 1)}},
		{Name: "coprime", Err: apperrors.NotCoprimeError{Pair: 0}},
	}, &out)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header and 2 rows, got %d lines:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[1], "Success") || !strings.Contains(lines[1], "2") {
		t.Errorf("Unexpected success row: %s", lines[1])
	}
	if !strings.Contains(lines[2], "Failure (factors not coprime)") {
		t.Errorf("Unexpected failure row: %s", lines[2])
	}
}
