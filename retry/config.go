// Package retry provides a retry executor with per-attempt timeouts and
// linear backoff for model invocations and other upstream calls.
package retry

import (
	"log/slog"
	"time"
)

// Config holds retry configuration parameters.
type Config struct {
	// MaxAttempts is the maximum number of attempts (default: 3).
	// The initial request counts as attempt 1.
	MaxAttempts int

	// BaseDelay is the backoff unit between attempts (default: 2s).
	// The wait before attempt N+1 is BaseDelay * N.
	BaseDelay time.Duration

	// AttemptTimeout bounds each individual attempt (default: 90s).
	// A timed-out attempt counts as a failed attempt, not a fatal error.
	AttemptTimeout time.Duration

	// Logger receives per-attempt diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the default retry configuration:
// 3 attempts, 2 second base delay, 90 second per-attempt timeout.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:    3,
		BaseDelay:      2 * time.Second,
		AttemptTimeout: 90 * time.Second,
	}
}

// Disabled returns a configuration that disables retries (single attempt).
func Disabled() Config {
	cfg := DefaultConfig()
	cfg.MaxAttempts = 1
	return cfg
}

// Delay calculates the backoff before the attempt following attempt number n
// (1-indexed). The wait scales linearly with the attempt count.
func (c Config) Delay(n int) time.Duration {
	if n < 1 {
		n = 1
	}
	return c.BaseDelay * time.Duration(n)
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = def.MaxAttempts
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = def.BaseDelay
	}
	if c.AttemptTimeout <= 0 {
		c.AttemptTimeout = def.AttemptTimeout
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}
