// Package logging builds the zerolog loggers shared by the lifting packages.
// Every logger carries a component field so that events from the factor
// lifter, the root lifters and batch execution can be told apart.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New creates a logger writing JSON events to w, tagged with component and
// filtered at level.
func New(w io.Writer, component string, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Str("component", component).Timestamp().Logger()
}

// NewDefault creates a logger writing to standard error.
func NewDefault(component string, level zerolog.Level) zerolog.Logger {
	return New(os.Stderr, component, level)
}

// Nop returns a logger that discards every event.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
