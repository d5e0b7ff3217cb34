package client

import (
	"context"
	"fmt"
	"log/slog"

	ai "github.com/spetersoncode/agentor"
	"github.com/spetersoncode/agentor/chat"
	"github.com/spetersoncode/agentor/provider/anthropic"
	"github.com/spetersoncode/agentor/provider/openrouter"
	"github.com/spetersoncode/agentor/retry"
)

// Provider names a supported model-invocation backend.
type Provider string

const (
	ProviderOpenRouter Provider = "openrouter"
	ProviderAnthropic  Provider = "anthropic"
)

// Config holds configuration for creating a client.
type Config struct {
	// Provider selects the backend. Defaults to ProviderOpenRouter.
	Provider Provider

	// APIKey authenticates against the selected provider.
	APIKey string

	// Model overrides the provider's default model.
	Model string

	// BaseURL overrides the gateway URL (OpenRouter only).
	BaseURL string

	// Retry configures ChatWithRetry. Zero values fall back to the
	// retry package defaults.
	Retry retry.Config

	// Logger receives client diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// ErrMissingAPIKey is returned when no API key is configured.
type ErrMissingAPIKey struct {
	Provider Provider
}

func (e *ErrMissingAPIKey) Error() string {
	return fmt.Sprintf("no API key configured for %s", e.Provider)
}

// ErrUnknownProvider is returned for a provider name the client does not know.
type ErrUnknownProvider struct {
	Provider Provider
}

func (e *ErrUnknownProvider) Error() string {
	return fmt.Sprintf("unknown provider %q", e.Provider)
}

// Client routes chat requests to a configured provider backend and adds
// retry support on top of the chat.Client contract.
type Client struct {
	inner    chat.Client
	retryCfg retry.Config
}

// New creates a client for the configured provider.
func New(cfg Config) (*Client, error) {
	if cfg.Provider == "" {
		cfg.Provider = ProviderOpenRouter
	}
	if cfg.APIKey == "" {
		return nil, &ErrMissingAPIKey{Provider: cfg.Provider}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	var inner chat.Client
	switch cfg.Provider {
	case ProviderOpenRouter:
		opts := []openrouter.ClientOption{openrouter.WithLogger(cfg.Logger)}
		if cfg.Model != "" {
			opts = append(opts, openrouter.WithModel(cfg.Model))
		}
		if cfg.BaseURL != "" {
			opts = append(opts, openrouter.WithBaseURL(cfg.BaseURL))
		}
		inner = openrouter.New(cfg.APIKey, opts...)
	case ProviderAnthropic:
		opts := []anthropic.ClientOption{anthropic.WithLogger(cfg.Logger)}
		if cfg.Model != "" {
			opts = append(opts, anthropic.WithModel(cfg.Model))
		}
		inner = anthropic.New(cfg.APIKey, opts...)
	default:
		return nil, &ErrUnknownProvider{Provider: cfg.Provider}
	}

	cfg.Retry.Logger = cfg.Logger
	return &Client{
		inner:    inner,
		retryCfg: cfg.Retry,
	}, nil
}

// Chat sends a conversation to the configured provider.
func (c *Client) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	return c.inner.Chat(ctx, messages, opts...)
}

// ChatWithRetry is Chat wrapped in the retry executor. Exhaustion yields
// a Result with OK false instead of an error.
func (c *Client) ChatWithRetry(ctx context.Context, messages []ai.Message, opts ...ai.Option) retry.Result[*ai.Response] {
	return retry.Do(ctx, c.retryCfg, "chat_completion", func(attemptCtx context.Context) (*ai.Response, error) {
		return c.inner.Chat(attemptCtx, messages, opts...)
	})
}
