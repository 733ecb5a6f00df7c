// Package apperrors defines structured error types for the lifting engine,
// allowing for a clear distinction between error classes (precondition,
// precision, ring arithmetic, configuration) and for carrying the underlying
// cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// All error types implement the Unwrap() or Is() method to support errors.Is()
// and errors.As().
package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors identifying the error classes of the lifting engine.
// Typed errors below report themselves as one of these through errors.Is.
var (
	// ErrNotCoprime signals that an initial factorization is not made of
	// pairwise coprime factors modulo p.
	ErrNotCoprime = errors.New("factors are not coprime modulo p")
	// ErrInvalidPrecision signals a target precision below 1.
	ErrInvalidPrecision = errors.New("invalid precision")
	// ErrInsufficientFactors signals that fewer than two factors were given
	// where a factor tree is required.
	ErrInsufficientFactors = errors.New("at least two factors are required")
	// ErrNonUnit signals a division by, or inversion of, a non-unit.
	ErrNonUnit = errors.New("element is not a unit")
	// ErrMismatch signals that independent computations of the same lift
	// disagree.
	ErrMismatch = errors.New("lift results mismatch")
)

// ConfigError represents a user configuration error, such as an invalid
// environment value. It indicates that the engine cannot be configured as
// requested.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// PrecisionError reports a requested p-adic precision that cannot be honored.
type PrecisionError struct {
	// Precision is the rejected exponent.
	Precision int
}

// Error returns the error message for a PrecisionError.
func (e PrecisionError) Error() string {
	return fmt.Sprintf("invalid precision %d: must be at least 1", e.Precision)
}

// Is reports whether target is ErrInvalidPrecision.
func (e PrecisionError) Is(target error) bool { return target == ErrInvalidPrecision }

// NewPrecisionError creates a new PrecisionError for the given exponent.
func NewPrecisionError(e int) error {
	return PrecisionError{Precision: e}
}

// NotCoprimeError reports the merge pair whose Bézout identity could not be
// established.
type NotCoprimeError struct {
	// Pair is the index of the first node of the offending sibling pair.
	Pair int
	// Cause is the underlying error, if any.
	Cause error
}

// Error returns the error message for a NotCoprimeError.
func (e NotCoprimeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("factor pair %d: %v: %v", e.Pair, ErrNotCoprime, e.Cause)
	}
	return fmt.Sprintf("factor pair %d: %v", e.Pair, ErrNotCoprime)
}

// Is reports whether target is ErrNotCoprime.
func (e NotCoprimeError) Is(target error) bool { return target == ErrNotCoprime }

// Unwrap returns the underlying cause.
func (e NotCoprimeError) Unwrap() error { return e.Cause }

// RingError encapsulates a failure of coefficient ring or polynomial
// arithmetic while preserving the original cause. It is propagated unchanged
// through the lifting layers.
type RingError struct {
	// Op names the arithmetic operation that failed (e.g. "inverse").
	Op string
	// Cause is the underlying error that triggered this ring error.
	Cause error
}

// Error returns the error message for a RingError.
func (e RingError) Error() string {
	return fmt.Sprintf("ring %s: %v", e.Op, e.Cause)
}

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e RingError) Unwrap() error { return e.Cause }

// NewRingError creates a new RingError.
//
// Parameters:
//   - op: The name of the failing operation.
//   - cause: The underlying error. If nil, ErrNonUnit is used.
//
// Returns:
//   - error: A new RingError instance.
func NewRingError(op string, cause error) error {
	if cause == nil {
		cause = ErrNonUnit
	}
	return RingError{Op: op, Cause: cause}
}

// LiftError encapsulates a lifting failure together with the stage at which
// it happened (tree construction, a precision step, resumption).
type LiftError struct {
	// Stage describes where the lift failed.
	Stage string
	// Cause is the underlying error.
	Cause error
}

// Error returns the stage and the message of the underlying cause.
func (e LiftError) Error() string { return fmt.Sprintf("%s: %v", e.Stage, e.Cause) }

// Unwrap returns the underlying cause of the LiftError.
func (e LiftError) Unwrap() error { return e.Cause }

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ValidationError represents an error due to an input that violates a
// documented precondition (non-monic factor, seed that is not a root, ...).
type ValidationError struct {
	// Field is the name of the input that failed validation.
	Field string
	// Message describes why validation failed.
	Message string
	// Value is the invalid value (optional, may be nil).
	Value any
}

// Error returns the error message for a ValidationError.
func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new ValidationError.
//
// Parameters:
//   - field: The name of the input that failed validation.
//   - message: A description of why validation failed.
//   - value: The invalid value (optional).
//
// Returns:
//   - error: A new ValidationError instance.
func NewValidationError(field, message string, value any) error {
	return ValidationError{Field: field, Message: message, Value: value}
}
