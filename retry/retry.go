package retry

import (
	"context"
	"time"
)

// Result is the outcome of a retried operation. Callers must check OK
// before using Value: an exhausted budget is an expected outcome, not an
// error to propagate.
type Result[T any] struct {
	// Value holds the successful result when OK is true.
	Value T
	// OK is true if some attempt succeeded.
	OK bool
	// Attempts is the number of attempts performed.
	Attempts int
	// LastErr is the error from the final failed attempt when OK is false.
	LastErr error
}

// Do executes fn with bounded retries, a per-attempt timeout, and linear
// backoff. fn receives a context carrying the attempt deadline.
//
// Every failure class — timeout, malformed response, upstream error, or
// anything unexpected — is logged distinctly and retried with the same
// backoff. Exhausting all attempts yields a Result with OK false rather
// than an error, so the caller decides fallback behavior.
//
// Backoff waits respect cancellation of ctx; a canceled wait ends the run
// with OK false and ctx.Err() as LastErr.
func Do[T any](ctx context.Context, cfg Config, op string, fn func(context.Context) (T, error)) Result[T] {
	cfg = cfg.withDefaults()

	var result Result[T]

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		result.Attempts = attempt
		cfg.Logger.Info("executing operation",
			"op", op, "attempt", attempt, "max_attempts", cfg.MaxAttempts)

		attemptCtx, cancel := context.WithTimeout(ctx, cfg.AttemptTimeout)
		value, err := fn(attemptCtx)
		cancel()

		if err == nil {
			result.Value = value
			result.OK = true
			return result
		}

		result.LastErr = err
		class := Classify(err)
		logAttemptFailure(cfg, op, class, attempt, err)

		if attempt == cfg.MaxAttempts {
			cfg.Logger.Error("all attempts failed",
				"op", op, "attempts", cfg.MaxAttempts, "class", string(class), "error", err)
			return result
		}

		select {
		case <-ctx.Done():
			result.LastErr = ctx.Err()
			return result
		case <-time.After(cfg.Delay(attempt)):
		}
		cfg.Logger.Info("retrying operation", "op", op, "next_attempt", attempt+1)
	}

	return result
}

func logAttemptFailure(cfg Config, op string, class Class, attempt int, err error) {
	switch class {
	case ClassTimeout:
		cfg.Logger.Warn("operation timed out",
			"op", op, "timeout", cfg.AttemptTimeout, "attempt", attempt, "max_attempts", cfg.MaxAttempts)
	case ClassMalformed:
		cfg.Logger.Warn("malformed response payload",
			"op", op, "attempt", attempt, "max_attempts", cfg.MaxAttempts, "error", err)
	case ClassUpstream:
		cfg.Logger.Warn("upstream service error",
			"op", op, "attempt", attempt, "max_attempts", cfg.MaxAttempts, "error", err)
	default:
		cfg.Logger.Warn("unexpected error",
			"op", op, "attempt", attempt, "max_attempts", cfg.MaxAttempts, "error", err)
	}
}
