package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Describe returns a short status string for an error produced by the
// lifting engine. It distinguishes between the error classes so that batch
// summaries can report specific feedback.
//
// Parameters:
//   - err: The error that occurred (may be nil).
//
// Returns:
//   - string: The status description.
func Describe(err error) string {
	switch {
	case err == nil:
		return "Success"
	case errors.Is(err, context.DeadlineExceeded):
		return "Failure (Timeout)"
	case errors.Is(err, context.Canceled):
		return "Canceled"
	case errors.Is(err, ErrNotCoprime):
		return "Failure (factors not coprime)"
	case errors.Is(err, ErrInvalidPrecision):
		return "Failure (invalid precision)"
	case errors.Is(err, ErrInsufficientFactors):
		return "Failure (insufficient factors)"
	case errors.Is(err, ErrMismatch):
		return "Failure (mismatch)"
	}
	var ringErr RingError
	if errors.As(err, &ringErr) {
		return "Failure (ring arithmetic)"
	}
	var validationErr ValidationError
	if errors.As(err, &validationErr) {
		return "Failure (precondition)"
	}
	return "Failure"
}

// WriteStatus formats and prints a one-line status message for err.
//
// Parameters:
//   - out: The io.Writer to which the message will be written.
//   - err: The error that occurred (may be nil).
//   - duration: The duration of the operation before it ended.
func WriteStatus(out io.Writer, err error, duration time.Duration) {
	msgSuffix := ""
	if duration > 0 {
		msgSuffix = fmt.Sprintf(" after %s", duration)
	}
	if err == nil {
		fmt.Fprintf(out, "Status: %s%s.\n", Describe(err), msgSuffix)
		return
	}
	fmt.Fprintf(out, "Status: %s%s: %v\n", Describe(err), msgSuffix, err)
}
