package retry

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/url"

	ai "github.com/spetersoncode/agentor"
)

// Class identifies the recognized failure classes. Every class receives the
// same backoff policy; classification exists so failures are logged and
// reported distinctly.
type Class string

const (
	// ClassTimeout covers per-attempt deadline expiry and network timeouts.
	ClassTimeout Class = "timeout"

	// ClassMalformed covers payloads that could not be decoded.
	ClassMalformed Class = "malformed_response"

	// ClassUpstream covers errors reported by the upstream service.
	ClassUpstream Class = "upstream_error"

	// ClassUnexpected covers everything else. Unexpected errors still
	// exhaust the retry budget instead of propagating, so a single odd
	// error type cannot bypass the backoff discipline.
	ClassUnexpected Class = "unexpected"
)

// statusCoder matches API errors carrying an HTTP status code.
// Both the OpenAI and Anthropic SDK error types implement it.
type statusCoder interface {
	StatusCode() int
}

// Classify assigns an error to one of the recognized failure classes.
func Classify(err error) Class {
	if err == nil {
		return ClassUnexpected
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ClassTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ClassTimeout
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return ClassTimeout
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return ClassMalformed
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return ClassMalformed
	}

	var ce ai.CategorizedError
	if errors.As(err, &ce) {
		return ClassUpstream
	}
	var sc statusCoder
	if errors.As(err, &sc) && sc.StatusCode() > 0 {
		return ClassUpstream
	}

	return ClassUnexpected
}
