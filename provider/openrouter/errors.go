package openrouter

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/openai/openai-go"

	ai "github.com/spetersoncode/agentor"
)

// wrapError categorizes an OpenAI SDK error so the retry executor can
// classify it. Status codes and Retry-After headers are extracted when
// present.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		// Likely a network error; retry classification handles it.
		return err
	}

	code := apiErr.StatusCode
	retryAfter := parseRetryAfter(apiErr.Response)
	msg := err.Error()

	if retryAfter > 0 {
		return ai.NewTransientErrorWithRetry(msg, code, retryAfter, err)
	}

	switch {
	case code == http.StatusTooManyRequests, code >= 500 && code < 600:
		return ai.NewTransientError(msg, code, err)
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return ai.NewPermanentError(msg, code, err)
	case code == http.StatusBadRequest, code == http.StatusNotFound, code == http.StatusUnprocessableEntity:
		return ai.NewUserInputError(msg, code, err)
	default:
		return err
	}
}

// parseRetryAfter reads a Retry-After header as either seconds or an HTTP date.
func parseRetryAfter(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}
	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(header); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}
