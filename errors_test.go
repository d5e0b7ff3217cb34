package agentor

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestError_Categories(t *testing.T) {
	t.Run("transient", func(t *testing.T) {
		err := NewTransientError("rate limited", 429, nil)

		assert.Equal(t, ErrorTransient, err.Category())
		assert.True(t, err.Retryable())
		assert.Equal(t, 429, err.StatusCode())
		assert.True(t, IsTransient(err))
		assert.False(t, IsPermanent(err))
	})

	t.Run("permanent", func(t *testing.T) {
		err := NewPermanentError("invalid api key", 401, nil)

		assert.Equal(t, ErrorPermanent, err.Category())
		assert.False(t, err.Retryable())
		assert.True(t, IsPermanent(err))
	})

	t.Run("user input", func(t *testing.T) {
		err := NewUserInputError("bad request", 400, nil)

		assert.Equal(t, ErrorUserInput, err.Category())
		assert.True(t, IsUserInput(err))
		assert.False(t, IsTransient(err))
	})
}

func TestError_RetryAfter(t *testing.T) {
	err := NewTransientErrorWithRetry("rate limited", 429, 30*time.Second, nil)

	assert.Equal(t, 30*time.Second, err.RetryAfter())
	assert.Equal(t, 30*time.Second, RetryAfterOf(err))
	assert.Equal(t, 429, StatusCodeOf(err))
}

func TestError_MessageAndUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewTransientError("upstream failed", 502, cause)

	assert.Equal(t, "upstream failed: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestCategorization_ThroughWrapping(t *testing.T) {
	inner := NewTransientError("overloaded", 529, nil)
	wrapped := fmt.Errorf("calling model: %w", inner)

	assert.True(t, IsTransient(wrapped))
	assert.Equal(t, 529, StatusCodeOf(wrapped))
}

func TestCategorization_PlainErrors(t *testing.T) {
	err := errors.New("plain")

	assert.False(t, IsTransient(err))
	assert.False(t, IsPermanent(err))
	assert.False(t, IsUserInput(err))
	assert.Zero(t, StatusCodeOf(err))
	assert.Zero(t, RetryAfterOf(err))
}
