package config

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	apperrors "github.com/agbru/padic/internal/errors"
)

func TestDefault(t *testing.T) {
	t.Parallel()
	o := Default()
	if o.Strategy != "adaptive" {
		t.Errorf("Expected default strategy 'adaptive', got %s", o.Strategy)
	}
	if o.KroneckerThreshold != 4096 {
		t.Errorf("Expected default threshold 4096, got %d", o.KroneckerThreshold)
	}
	if o.Concurrency < 1 {
		t.Errorf("Expected positive default concurrency, got %d", o.Concurrency)
	}
	if err := o.Validate(); err != nil {
		t.Errorf("Default options should be valid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		modify func(*Options)
	}{
		{"UnknownStrategy", func(o *Options) { o.Strategy = "fft" }},
		{"NegativeThreshold", func(o *Options) { o.KroneckerThreshold = -1 }},
		{"ZeroConcurrency", func(o *Options) { o.Concurrency = 0 }},
		{"BadLogLevel", func(o *Options) { o.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			o := Default()
			tt.modify(&o)
			err := o.Validate()
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Expected ConfigError, got %v", err)
			}
		})
	}
}

func TestMultiplier(t *testing.T) {
	t.Parallel()
	want := map[string]string{
		"schoolbook": "Schoolbook",
		"kronecker":  "Kronecker",
		"adaptive":   "Adaptive (Schoolbook/Kronecker)",
	}
	for _, name := range Strategies {
		o := Default()
		o.Strategy = name
		m, err := o.Multiplier()
		if err != nil {
			t.Fatalf("Unexpected error for %s: %v", name, err)
		}
		if m.Name() != want[name] {
			t.Errorf("Expected multiplier %s, got %s", want[name], m.Name())
		}
	}

	o := Default()
	o.Strategy = "karatsuba"
	if _, err := o.Multiplier(); err == nil {
		t.Error("Expected error for unknown strategy")
	}
}

func TestLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"", zerolog.Disabled},
	}
	for _, tt := range tests {
		o := Options{LogLevel: tt.in}
		got, err := o.Level()
		if err != nil {
			t.Fatalf("Unexpected error for %q: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Level(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFromEnv(t *testing.T) {
	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("PADIC_STRATEGY", "kronecker")
		t.Setenv("PADIC_KRONECKER_THRESHOLD", "128")
		t.Setenv("PADIC_LOG_LEVEL", "debug")
		t.Setenv("PADIC_CONCURRENCY", "3")

		o, err := FromEnv()
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if o.Strategy != "kronecker" {
			t.Errorf("Expected strategy 'kronecker', got %s", o.Strategy)
		}
		if o.KroneckerThreshold != 128 {
			t.Errorf("Expected threshold 128, got %d", o.KroneckerThreshold)
		}
		if o.LogLevel != "debug" {
			t.Errorf("Expected log level 'debug', got %s", o.LogLevel)
		}
		if o.Concurrency != 3 {
			t.Errorf("Expected concurrency 3, got %d", o.Concurrency)
		}
	})

	t.Run("InvalidIntegerKeepsDefault", func(t *testing.T) {
		t.Setenv("PADIC_KRONECKER_THRESHOLD", "lots")
		o, err := FromEnv()
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if o.KroneckerThreshold != DefaultKroneckerThreshold {
			t.Errorf("Expected default threshold, got %d", o.KroneckerThreshold)
		}
	})

	t.Run("InvalidStrategy", func(t *testing.T) {
		t.Setenv("PADIC_STRATEGY", "fft")
		if _, err := FromEnv(); err == nil {
			t.Error("Expected error for invalid strategy")
		}
	})
}
