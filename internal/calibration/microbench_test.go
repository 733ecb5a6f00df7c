package calibration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agbru/padic/internal/poly"
)

func TestAnalyzeResultsFindsSmallestCrossover(t *testing.T) {
	t.Parallel()
	var results []testResult
	for i, c := range MicroBenchCases {
		school := time.Duration(100) * time.Microsecond
		kron := school * 2
		if i >= 2 {
			kron = school / 2
		}
		results = append(results,
			testResult{c: c, duration: school},
			testResult{c: c, kronecker: true, duration: kron},
		)
	}

	tr := analyzeResults(results)
	want := MicroBenchCases[2].Size() * 9 / 10
	if tr.KroneckerThreshold != want {
		t.Errorf("Expected threshold %d, got %d", want, tr.KroneckerThreshold)
	}
	if tr.Confidence < 0.99 {
		t.Errorf("Expected full confidence, got %v", tr.Confidence)
	}
}

func TestAnalyzeResultsWithoutCrossover(t *testing.T) {
	t.Parallel()
	c := MicroBenchCases[0]
	tr := analyzeResults([]testResult{
		{c: c, duration: time.Microsecond},
		{c: c, kronecker: true, duration: time.Millisecond},
		{c: MicroBenchCases[1], kronecker: true, err: errors.New("timeout")},
	})
	if tr.KroneckerThreshold != poly.DefaultKroneckerThreshold {
		t.Errorf("Expected default threshold, got %d", tr.KroneckerThreshold)
	}
	if tr.Confidence != 0.5 {
		t.Errorf("Expected confidence 0.5, got %v", tr.Confidence)
	}
}

func TestAnalyzeResultsEmpty(t *testing.T) {
	t.Parallel()
	tr := analyzeResults(nil)
	if tr.Confidence != 0 {
		t.Errorf("Expected zero confidence, got %v", tr.Confidence)
	}
}

func TestQuickCalibrateCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if got := QuickCalibrateWithDefault(ctx, 1234); got != 1234 {
		t.Errorf("Expected default 1234 after cancellation, got %d", got)
	}
}

func TestRunQuickSmallCases(t *testing.T) {
	t.Parallel()
	mb := &MicroBenchmark{
		Cases:      []Case{{Degree: 2, Bits: 64}},
		Iterations: 1,
		Timeout:    time.Second,
	}
	tr, err := mb.RunQuick(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if tr.KroneckerThreshold <= 0 {
		t.Errorf("Expected a positive threshold, got %d", tr.KroneckerThreshold)
	}
	if tr.Duration <= 0 {
		t.Error("Expected a positive duration")
	}
}

func TestGenerateTestPoly(t *testing.T) {
	t.Parallel()
	c := Case{Degree: 5, Bits: 100}
	f := generateTestPoly(c, 1)
	if f.Degree() != 5 {
		t.Fatalf("Expected degree 5, got %d", f.Degree())
	}
	for i := 0; i <= 5; i++ {
		if b := f.Coeff(i)[0].BitLen(); b > c.Bits {
			t.Errorf("Coefficient %d has %d bits, want at most %d", i, b, c.Bits)
		}
	}
}
