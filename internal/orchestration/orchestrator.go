// Package orchestration runs independent lift jobs concurrently and reports on
// them. Each lift stays single-threaded; concurrency only exists between jobs.
package orchestration

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/padic/internal/errors"
	"github.com/agbru/padic/internal/poly"
)

// FactorLifter is the part of hensel.Lifter the orchestrator needs.
type FactorLifter interface {
	Name() string
	Lift(f poly.Poly, factors []poly.Poly, p *big.Int, e int) ([]poly.Poly, error)
}

// Job is one multifactor lift request.
type Job struct {
	// Name identifies the job in summaries.
	Name string
	// F is the polynomial being factored.
	F poly.Poly
	// Factors is the factorization of F modulo P.
	Factors []poly.Poly
	// P is the prime.
	P *big.Int
	// E is the target precision.
	E int
}

// LiftResult encapsulates the outcome of a single lift job.
type LiftResult struct {
	// Name is the job name, or the lifter name when comparing lifters.
	Name string
	// Factors are the lifted factors. They are nil if an error occurred.
	Factors []poly.Poly
	// Duration is the time taken by the lift.
	Duration time.Duration
	// Err contains any error that occurred during the lift.
	Err error
}

// ExecuteLifts runs jobs on lifter with at most limit lifts in flight.
//
// Cancellation is honored between jobs only: a job that has not started when
// ctx is done reports ctx.Err(), a running lift completes.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - lifter: The lifter shared by all jobs.
//   - jobs: The jobs to run.
//   - limit: The maximum number of concurrent lifts; values below 1 mean one.
//
// Returns:
//   - []LiftResult: The results, in job order.
func ExecuteLifts(ctx context.Context, lifter FactorLifter, jobs []Job, limit int) []LiftResult {
	results := make([]LiftResult, len(jobs))
	run(ctx, len(jobs), limit, func(idx int) {
		job := jobs[idx]
		results[idx] = timedLift(ctx, job.Name, lifter, job)
	})
	return results
}

// CompareLifters runs the same job on every lifter concurrently, typically
// lifters configured with different multiplication strategies.
//
// Returns:
//   - []LiftResult: One result per lifter, named after the lifter.
func CompareLifters(ctx context.Context, lifters []FactorLifter, job Job) []LiftResult {
	results := make([]LiftResult, len(lifters))
	run(ctx, len(lifters), len(lifters), func(idx int) {
		results[idx] = timedLift(ctx, lifters[idx].Name(), lifters[idx], job)
	})
	return results
}

func run(ctx context.Context, n, limit int, task func(idx int)) {
	var g errgroup.Group
	g.SetLimit(max(limit, 1))
	for i := range n {
		if ctx.Err() != nil {
			task(i)
			continue
		}
		g.Go(func() error {
			task(i)
			return nil
		})
	}
	_ = g.Wait()
}

func timedLift(ctx context.Context, name string, lifter FactorLifter, job Job) LiftResult {
	if err := ctx.Err(); err != nil {
		return LiftResult{Name: name, Err: err}
	}
	start := time.Now()
	factors, err := lifter.Lift(job.F, job.Factors, job.P, job.E)
	return LiftResult{Name: name, Factors: factors, Duration: time.Since(start), Err: err}
}

// AnalyzeComparisonResults sorts the results of CompareLifters, writes a
// comparative table and checks that every successful lift agrees.
//
// Parameters:
//   - results: The results to analyze. They are sorted in place.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - error: nil if all successful results agree, an error wrapping
//     ErrMismatch if they do not, or the first failure if none succeeded.
func AnalyzeComparisonResults(results []LiftResult, out io.Writer) error {
	sort.Slice(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")
	WriteSummary(results, out)

	var reference *LiftResult
	var firstError error
	for i := range results {
		res := &results[i]
		if res.Err != nil {
			if firstError == nil {
				firstError = res.Err
			}
			continue
		}
		if reference == nil {
			reference = res
			continue
		}
		if render(res.Factors) != render(reference.Factors) {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! An inconsistency was detected between the lifters.\n")
			return apperrors.WrapError(apperrors.ErrMismatch, "%s and %s disagree", reference.Name, res.Name)
		}
	}
	if reference == nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No lifter could complete the lift.\n")
		return firstError
	}
	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	return nil
}

// WriteSummary writes one table row per result: name, duration and status.
func WriteSummary(results []LiftResult, out io.Writer) {
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "Name\tDuration\tFactors\tStatus\n")
	for _, res := range results {
		duration := res.Duration.String()
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", res.Name, duration, len(res.Factors), apperrors.Describe(res.Err))
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}
}

func render(factors []poly.Poly) string {
	parts := make([]string, len(factors))
	for i, f := range factors {
		parts[i] = f.String()
	}
	return strings.Join(parts, ", ")
}
