package hensel

import (
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/agbru/padic/internal/errors"
	"github.com/agbru/padic/internal/poly"
	"github.com/agbru/padic/internal/precision"
	"github.com/agbru/padic/internal/ring"
)

// Lifter lifts factorizations over a fixed coefficient ring.
//
// A Lifter holds only immutable arithmetic configuration, a logger and a
// concurrency-safe observer subject, so it may be shared by goroutines running
// independent lifts. Each lift owns its factor tree exclusively.
type Lifter struct {
	name    string
	arith   *poly.Arith
	logger  zerolog.Logger
	subject *Subject
}

// Option configures a Lifter.
type Option func(*config)

type config struct {
	name       string
	logger     zerolog.Logger
	multiplier poly.Multiplier
	observers  []StepObserver
}

// WithName sets the name reported in step events and metrics labels.
func WithName(name string) Option {
	return func(c *config) { c.name = name }
}

// WithLogger sets the logger. The default logger discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithMultiplier sets the polynomial multiplication strategy.
func WithMultiplier(m poly.Multiplier) Option {
	return func(c *config) { c.multiplier = m }
}

// WithObserver registers an observer notified after every precision step.
func WithObserver(o StepObserver) Option {
	return func(c *config) { c.observers = append(c.observers, o) }
}

// NewLifter creates a lifter over r.
//
// Parameters:
//   - r: The coefficient ring, Z or Z[Y]/(T).
//   - opts: Functional options.
//
// Returns:
//   - *Lifter: The lifter.
func NewLifter(r *ring.Ring, opts ...Option) *Lifter {
	c := config{name: "default", logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&c)
	}
	l := &Lifter{
		name:    c.name,
		arith:   poly.NewArith(r, c.multiplier),
		logger:  c.logger,
		subject: NewSubject(),
	}
	for _, o := range c.observers {
		l.subject.Register(o)
	}
	return l
}

// Name returns the lifter name.
func (l *Lifter) Name() string { return l.name }

// Ring returns the coefficient ring.
func (l *Lifter) Ring() *ring.Ring { return l.arith.R }

// Arith returns the polynomial arithmetic used by the lifter.
func (l *Lifter) Arith() *poly.Arith { return l.arith }

// Subject returns the observer subject, for registering observers after
// construction.
func (l *Lifter) Subject() *Subject { return l.subject }

// Lift lifts factors, pairwise coprime and monic modulo p, of f to a
// factorization modulo p^e.
//
// If f is not monic its leading coefficient must be a unit modulo p; the
// factors then multiply to lead(f)^-1 * f. With fewer than two factors there
// is nothing to lift and the input is returned unchanged.
//
// Parameters:
//   - f: The polynomial to factor.
//   - factors: The factorization of f modulo p.
//   - p: The prime. Primality is a trusted precondition.
//   - e: The target precision.
//
// Returns:
//   - []poly.Poly: The lifted monic factors, in input order, with coefficients
//     in [0, p^e).
//   - error: A PrecisionError for e < 1, a NotCoprimeError, a
//     ValidationError or a RingError.
func (l *Lifter) Lift(f poly.Poly, factors []poly.Poly, p *big.Int, e int) ([]poly.Poly, error) {
	m, err := ring.NewModulus(p, e)
	if err != nil {
		return nil, err
	}
	if len(factors) < 2 {
		l.logger.Info().Int("factors", len(factors)).Msg("nothing to lift, returning input factors")
		out := make([]poly.Poly, len(factors))
		for i, g := range factors {
			out[i] = g.Clone()
		}
		return out, nil
	}
	t, target, err := l.prepare(f, factors, m)
	if err != nil {
		return nil, err
	}
	if err := l.run(t, target, m, 1, false); err != nil {
		return nil, err
	}
	return t.leaves(), nil
}

// LiftContinuable lifts like Lift but keeps the factor tree and its
// cofactors, returning a Continuation that Resume can lift further.
//
// Returns:
//   - *Continuation: The lifted state at precision e.
//   - error: An error wrapping ErrInsufficientFactors for fewer than two
//     factors, otherwise the errors of Lift.
func (l *Lifter) LiftContinuable(f poly.Poly, factors []poly.Poly, p *big.Int, e int) (*Continuation, error) {
	m, err := ring.NewModulus(p, e)
	if err != nil {
		return nil, err
	}
	if len(factors) < 2 {
		return nil, apperrors.WrapError(apperrors.ErrInsufficientFactors, "continuation over %d factor(s)", len(factors))
	}
	t, target, err := l.prepare(f, factors, m)
	if err != nil {
		return nil, err
	}
	if err := l.run(t, target, m, 1, true); err != nil {
		return nil, err
	}
	return newContinuation(l.arith.R, m, t), nil
}

// Resume lifts a continuation to precision e. c is not modified.
//
// When e does not exceed the precision of c, the result is c reduced modulo
// p^e.
//
// Parameters:
//   - f: The polynomial c was lifted for.
//   - c: The continuation to resume.
//   - e: The target precision.
//
// Returns:
//   - *Continuation: A new continuation at precision e.
//   - error: A PrecisionError for e < 1, a ValidationError if c was built over
//     another ring or for another polynomial.
func (l *Lifter) Resume(f poly.Poly, c *Continuation, e int) (*Continuation, error) {
	if e < 1 {
		return nil, apperrors.NewPrecisionError(e)
	}
	if c == nil || c.tree == nil {
		return nil, apperrors.NewValidationError("continuation", "nil continuation", nil)
	}
	if c.ring != l.arith.R {
		return nil, apperrors.NewValidationError("continuation", fmt.Sprintf("built over %s, lifter works over %s", c.ring, l.arith.R), nil)
	}
	m := c.modulus.AtPrecision(e)
	if e <= c.modulus.E {
		return newContinuation(c.ring, m, c.tree.reduce(l.arith, m.Q)), nil
	}

	target, err := l.normalize(f, m)
	if err != nil {
		return nil, err
	}
	t := c.tree.clone()
	if !l.arith.EqualMod(t.root(l.arith, c.modulus.Q), target, c.modulus.Q) {
		return nil, apperrors.NewValidationError("f", "polynomial does not match the continuation", f)
	}
	if err := l.run(t, target, m, c.modulus.E, true); err != nil {
		return nil, err
	}
	return newContinuation(c.ring, m, t), nil
}

// prepare validates the inputs and builds the factor tree at precision 1.
// It returns the tree and the monic target f modulo m.Q.
func (l *Lifter) prepare(f poly.Poly, factors []poly.Poly, m ring.Modulus) (*tree, poly.Poly, error) {
	a := l.arith
	target, err := l.normalize(f, m)
	if err != nil {
		return nil, nil, err
	}
	m1 := m.AtPrecision(1)
	degrees := 0
	for i, g := range factors {
		if !a.IsMonicMod(g, m1.Q) {
			return nil, nil, apperrors.NewValidationError("factors", fmt.Sprintf("factor %d is not monic modulo p", i), g)
		}
		degrees += a.Reduce(g, m1.Q).Degree()
	}
	if degrees != target.Degree() {
		return nil, nil, apperrors.NewValidationError("factors", fmt.Sprintf("factor degrees sum to %d, polynomial has degree %d", degrees, target.Degree()), nil)
	}
	if !a.EqualMod(a.Product(factors, m1.Q), target, m1.Q) {
		return nil, nil, apperrors.NewValidationError("factors", "factors do not multiply to f modulo p", nil)
	}

	start := time.Now()
	t, err := buildTree(a, factors, m1)
	if err != nil {
		return nil, nil, err
	}
	l.logger.Debug().
		Int("factors", len(factors)).
		Int("depth", t.depth()).
		Dur("duration", time.Since(start)).
		Msg("factor tree built")
	return t, target, nil
}

// normalize returns lead(f)^-1 * f modulo m.Q.
func (l *Lifter) normalize(f poly.Poly, m ring.Modulus) (poly.Poly, error) {
	if l.arith.Reduce(f, m.P).Degree() < 1 {
		return nil, apperrors.NewValidationError("f", "polynomial must have positive degree modulo p", f)
	}
	monic, _, err := l.arith.MakeMonic(f, m)
	if err != nil {
		return nil, apperrors.LiftError{Stage: "normalize", Cause: err}
	}
	return monic, nil
}

// run replays the precision schedule from start to m.E over t. The last step
// skips the cofactor update unless keep is set.
func (l *Lifter) run(t *tree, target poly.Poly, m ring.Modulus, start int, keep bool) error {
	sched, err := precision.New(start, m.E)
	if err != nil {
		return err
	}
	begin := time.Now()
	for step := range sched.All() {
		mode := KeepForContinuation
		if step.Last && !keep {
			mode = FinalNoResume
		}
		stepStart := time.Now()
		s := newStepper(l.arith, m.P, step.From, step.To, mode)
		if err := s.liftTree(t, l.arith.Reduce(target, s.p1)); err != nil {
			return apperrors.WrapError(err, "lifting from precision %d to %d", step.From, step.To)
		}
		l.subject.Notify(StepEvent{
			Lifter:   l.name,
			Step:     step,
			Mode:     mode,
			Factors:  t.leafCount(),
			Duration: time.Since(stepStart),
		})
	}
	l.logger.Debug().
		Int("from", start).
		Int("to", m.E).
		Int("steps", sched.Len()).
		Dur("duration", time.Since(begin)).
		Msg("lift complete")
	return nil
}
