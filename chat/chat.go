// Package chat provides the canonical model-invocation interface.
//
// This package exists so that the agent and retry packages can depend on a
// narrow contract without importing a concrete provider. The provider
// packages implement it.
package chat

import (
	"context"

	ai "github.com/spetersoncode/agentor"
)

// Client defines the model-invocation boundary the agent loop consumes.
//
// Chat sends a conversation together with the offered tool set and returns
// the model's message: text content, an optional schema-parsed payload, and
// any tool-call requests.
type Client interface {
	Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error)
}
