// Package config provides the configuration of the lifting engine.
// This file contains environment variable utilities for configuration override.
package config

import (
	"os"
	"strconv"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// getEnvString returns the value of the environment variable with the given key
// (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as int, or the default value if not set
// or invalid.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the options.
//
// Supported environment variables:
//   - PADIC_STRATEGY: Multiplication strategy (schoolbook, kronecker, adaptive)
//   - PADIC_KRONECKER_THRESHOLD: Adaptive switch-over in bits (int)
//   - PADIC_LOG_LEVEL: zerolog level name (string)
//   - PADIC_CONCURRENCY: Maximum concurrent lift jobs (int)
func applyEnvOverrides(o *Options) {
	o.Strategy = getEnvString("STRATEGY", o.Strategy)
	o.KroneckerThreshold = getEnvInt("KRONECKER_THRESHOLD", o.KroneckerThreshold)
	o.LogLevel = getEnvString("LOG_LEVEL", o.LogLevel)
	o.Concurrency = getEnvInt("CONCURRENCY", o.Concurrency)
}
