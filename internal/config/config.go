// Package config provides the configuration of the lifting engine. It defines
// the tunable options, their defaults and environment overrides, and validates
// them before they reach the arithmetic layer.
package config

import (
	"runtime"
	"strings"

	"github.com/rs/zerolog"

	apperrors "github.com/agbru/padic/internal/errors"
	"github.com/agbru/padic/internal/poly"
)

const (
	// EnvPrefix is the prefix for all environment variables read by the
	// engine.
	EnvPrefix = "PADIC_"
)

// Default configuration values.
// These can be overridden via environment variables.
const (
	// DefaultStrategy is the default polynomial multiplication strategy.
	DefaultStrategy = "adaptive"
	// DefaultKroneckerThreshold is the operand size, in bits, above which the
	// adaptive strategy switches to Kronecker substitution.
	DefaultKroneckerThreshold = poly.DefaultKroneckerThreshold
	// DefaultLogLevel is the default zerolog level.
	DefaultLogLevel = "warn"
)

// Strategies lists the accepted multiplication strategy names.
var Strategies = []string{"schoolbook", "kronecker", "adaptive"}

// Options aggregates the engine's configuration parameters.
type Options struct {
	// Strategy names the polynomial multiplication strategy.
	Strategy string
	// KroneckerThreshold is the adaptive strategy's switch-over point in bits.
	KroneckerThreshold int
	// LogLevel is a zerolog level name ("debug", "info", ...).
	LogLevel string
	// Concurrency bounds the number of lift jobs run at once by batch
	// execution.
	Concurrency int
}

// Default returns the default options.
func Default() Options {
	return Options{
		Strategy:           DefaultStrategy,
		KroneckerThreshold: DefaultKroneckerThreshold,
		LogLevel:           DefaultLogLevel,
		Concurrency:        runtime.NumCPU(),
	}
}

// FromEnv returns the default options overridden by PADIC_* environment
// variables, validated.
//
// Returns:
//   - Options: The resulting options.
//   - error: A ConfigError if the resulting options are invalid.
func FromEnv() (Options, error) {
	o := Default()
	applyEnvOverrides(&o)
	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}

// Validate checks the semantic consistency of the options.
//
// Returns:
//   - error: An error of type ConfigError if the options are invalid, nil
//     otherwise.
func (o Options) Validate() error {
	if _, ok := poly.ByName(o.Strategy, o.KroneckerThreshold); !ok {
		return apperrors.NewConfigError("unrecognized multiplication strategy: '%s'. Valid strategies are: [%s]", o.Strategy, strings.Join(Strategies, ", "))
	}
	if o.KroneckerThreshold < 0 {
		return apperrors.NewConfigError("Kronecker threshold cannot be negative: %d", o.KroneckerThreshold)
	}
	if o.Concurrency < 1 {
		return apperrors.NewConfigError("concurrency must be strictly positive: %d", o.Concurrency)
	}
	if _, err := o.Level(); err != nil {
		return apperrors.NewConfigError("invalid log level '%s': %v", o.LogLevel, err)
	}
	return nil
}

// Multiplier returns the polynomial multiplication strategy named by the
// options.
func (o Options) Multiplier() (poly.Multiplier, error) {
	m, ok := poly.ByName(o.Strategy, o.KroneckerThreshold)
	if !ok {
		return nil, apperrors.NewConfigError("unrecognized multiplication strategy: '%s'", o.Strategy)
	}
	return m, nil
}

// Level returns the parsed zerolog level. An empty name means disabled.
func (o Options) Level() (zerolog.Level, error) {
	if o.LogLevel == "" {
		return zerolog.Disabled, nil
	}
	return zerolog.ParseLevel(strings.ToLower(o.LogLevel))
}
