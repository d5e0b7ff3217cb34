package retry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/spetersoncode/agentor"
)

func fastConfig() Config {
	return Config{
		MaxAttempts:    3,
		BaseDelay:      10 * time.Millisecond,
		AttemptTimeout: 100 * time.Millisecond,
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.BaseDelay)
	assert.Equal(t, 90*time.Second, cfg.AttemptTimeout)
}

func TestDisabled(t *testing.T) {
	cfg := Disabled()
	assert.Equal(t, 1, cfg.MaxAttempts)
}

func TestConfig_Delay(t *testing.T) {
	cfg := Config{BaseDelay: 2 * time.Second}

	assert.Equal(t, 2*time.Second, cfg.Delay(1))
	assert.Equal(t, 4*time.Second, cfg.Delay(2))
	assert.Equal(t, 6*time.Second, cfg.Delay(3))
	// Out-of-range attempt numbers clamp to the base delay.
	assert.Equal(t, 2*time.Second, cfg.Delay(0))
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	result := Do(context.Background(), fastConfig(), "op", func(ctx context.Context) (string, error) {
		calls++
		return "value", nil
	})

	assert.True(t, result.OK)
	assert.Equal(t, "value", result.Value)
	assert.Equal(t, 1, result.Attempts)
	assert.Equal(t, 1, calls)
	assert.NoError(t, result.LastErr)
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	cfg := fastConfig()
	calls := 0
	start := time.Now()

	result := Do(context.Background(), cfg, "op", func(ctx context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, context.DeadlineExceeded
		}
		return 42, nil
	})

	elapsed := time.Since(start)

	assert.True(t, result.OK)
	assert.Equal(t, 42, result.Value)
	assert.Equal(t, 3, result.Attempts)
	// Linear backoff: base*1 after attempt 1, base*2 after attempt 2.
	assert.GreaterOrEqual(t, elapsed, cfg.BaseDelay*1+cfg.BaseDelay*2)
}

func TestDo_ExhaustsToNoResult(t *testing.T) {
	opErr := errors.New("persistent failure")
	calls := 0

	result := Do(context.Background(), fastConfig(), "op", func(ctx context.Context) (string, error) {
		calls++
		return "", opErr
	})

	assert.False(t, result.OK)
	assert.Empty(t, result.Value)
	assert.Equal(t, 3, result.Attempts)
	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, result.LastErr, opErr)
}

func TestDo_PerAttemptTimeout(t *testing.T) {
	cfg := fastConfig()
	cfg.AttemptTimeout = 20 * time.Millisecond
	calls := 0

	result := Do(context.Background(), cfg, "op", func(ctx context.Context) (string, error) {
		calls++
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Second):
			return "too late", nil
		}
	})

	assert.False(t, result.OK)
	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, result.LastErr, context.DeadlineExceeded)
}

func TestDo_UnexpectedErrorsStillRetry(t *testing.T) {
	calls := 0

	result := Do(context.Background(), fastConfig(), "op", func(ctx context.Context) (string, error) {
		calls++
		return "", errors.New("something nobody anticipated")
	})

	assert.False(t, result.OK)
	assert.Equal(t, 3, calls)
}

func TestDo_CancelledDuringBackoff(t *testing.T) {
	cfg := fastConfig()
	cfg.BaseDelay = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	result := Do(ctx, cfg, "op", func(attemptCtx context.Context) (string, error) {
		calls++
		return "", errors.New("fail")
	})

	assert.False(t, result.OK)
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, result.LastErr, context.Canceled)
}

func TestClassify(t *testing.T) {
	t.Run("deadline exceeded is timeout", func(t *testing.T) {
		assert.Equal(t, ClassTimeout, Classify(context.DeadlineExceeded))
	})

	t.Run("wrapped deadline is timeout", func(t *testing.T) {
		err := fmt.Errorf("calling model: %w", context.DeadlineExceeded)
		assert.Equal(t, ClassTimeout, Classify(err))
	})

	t.Run("json syntax error is malformed", func(t *testing.T) {
		var v map[string]any
		err := json.Unmarshal([]byte(`{not json`), &v)
		require.Error(t, err)
		assert.Equal(t, ClassMalformed, Classify(err))
	})

	t.Run("json type error is malformed", func(t *testing.T) {
		var v struct {
			N int `json:"n"`
		}
		err := json.Unmarshal([]byte(`{"n":"oops"}`), &v)
		require.Error(t, err)
		assert.Equal(t, ClassMalformed, Classify(err))
	})

	t.Run("categorized error is upstream", func(t *testing.T) {
		err := ai.NewTransientError("rate limited", 429, nil)
		assert.Equal(t, ClassUpstream, Classify(err))
	})

	t.Run("plain error is unexpected", func(t *testing.T) {
		assert.Equal(t, ClassUnexpected, Classify(errors.New("weird")))
	})
}
