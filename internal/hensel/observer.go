package hensel

import (
	"sync"
	"time"

	"github.com/agbru/padic/internal/precision"
)

// ─────────────────────────────────────────────────────────────────────────────
// Observer Pattern Interfaces
// ─────────────────────────────────────────────────────────────────────────────

// StepEvent describes one completed precision step of a tree lift.
type StepEvent struct {
	// Lifter is the name of the lifter that ran the step.
	Lifter string
	// Step is the schedule step that was applied.
	Step precision.Step
	// Mode tells whether cofactors were kept for a later continuation.
	Mode Mode
	// Factors is the number of leaves of the factor tree.
	Factors int
	// Duration is the wall time spent on the step.
	Duration time.Duration
}

// StepObserver defines the interface for observing lifting steps.
// Implementations receive one notification per precision step, enabling
// decoupled handling of progress for logging, metrics, tests, etc.
type StepObserver interface {
	// Update is called after each precision step.
	//
	// Parameters:
	//   - event: The completed step.
	Update(event StepEvent)
}

// ─────────────────────────────────────────────────────────────────────────────
// Step Subject (Observable)
// ─────────────────────────────────────────────────────────────────────────────

// Subject manages observer registration and notification for step events.
//
// Subject is safe for concurrent use.
type Subject struct {
	observers []StepObserver
	mu        sync.RWMutex
}

// NewSubject creates a new subject for managing step observers.
func NewSubject() *Subject {
	return &Subject{observers: make([]StepObserver, 0)}
}

// Register adds an observer to receive step updates.
// Observers are notified in the order they are registered.
//
// Parameters:
//   - observer: The observer to add. If nil, this call is a no-op.
func (s *Subject) Register(observer StepObserver) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

// Unregister removes an observer. If the observer is not found, this call is
// a no-op.
func (s *Subject) Unregister(observer StepObserver) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, o := range s.observers {
		if o == observer {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// Notify sends a step event to all registered observers, synchronously and
// in registration order.
func (s *Subject) Notify(event StepEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, observer := range s.observers {
		observer.Update(event)
	}
}

// ObserverCount returns the number of registered observers.
func (s *Subject) ObserverCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}
