// Package openrouter implements the chat.Client contract over the
// OpenRouter gateway using the OpenAI SDK.
package openrouter

import (
	"context"
	"log/slog"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	ai "github.com/spetersoncode/agentor"
	"github.com/spetersoncode/agentor/retry"
)

// DefaultBaseURL is the OpenRouter OpenAI-compatible endpoint.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// DefaultModel is used when no model is configured or requested.
const DefaultModel = ModelGPT41

// defaultTimeout bounds each API request. Kept in sync with the retry
// executor's per-attempt timeout.
const defaultTimeout = 90 * time.Second

// Client wraps the OpenAI SDK pointed at OpenRouter.
type Client struct {
	client  *openai.Client
	model   string
	baseURL string
	logger  *slog.Logger
}

// ClientOption configures the OpenRouter client.
type ClientOption func(*Client)

// WithModel sets the default model for requests.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// WithBaseURL overrides the gateway base URL.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithLogger sets the logger for client diagnostics.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a new OpenRouter client with the given API key.
func New(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		model:   DefaultModel,
		baseURL: DefaultBaseURL,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.logger.Info("initializing OpenRouter client", "base_url", c.baseURL)
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(c.baseURL),
		option.WithRequestTimeout(defaultTimeout),
	)
	c.client = &client
	return c
}

// Chat sends a conversation and returns the model's message.
//
// Tools, tool choice, extra headers, and either a response schema or a
// coarse response format are taken from the options; supplying both
// output shapes is a usage error.
func (c *Client) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	options := ai.ApplyOptions(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}

	model := c.model
	if options.Model != "" {
		model = options.Model
	}

	params := openai.ChatCompletionNewParams{
		Model:    model,
		Messages: convertMessages(messages),
	}
	if options.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(options.MaxTokens))
	}
	if options.Temperature != nil {
		params.Temperature = openai.Float(*options.Temperature)
	}
	if len(options.Tools) > 0 {
		params.Tools = convertTools(options.Tools)
		if options.ToolChoice != "" {
			params.ToolChoice = convertToolChoice(options.ToolChoice)
		}
	}

	if options.ResponseSchema != nil {
		params.ResponseFormat = buildSchemaFormat(options.ResponseSchema)
	} else if options.ResponseFormat == ai.ResponseFormatJSON {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{
				Type: "json_object",
			},
		}
	}

	var requestOpts []option.RequestOption
	for k, v := range options.ExtraHeaders {
		requestOpts = append(requestOpts, option.WithHeader(k, v))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params, requestOpts...)
	if err != nil {
		return nil, wrapError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, ai.NewTransientError("no choices returned", 0, nil)
	}

	msg := resp.Choices[0].Message
	response := &ai.Response{
		Content:      msg.Content,
		FinishReason: string(resp.Choices[0].FinishReason),
		Usage: ai.Usage{
			InputTokens:  int(resp.Usage.PromptTokens),
			OutputTokens: int(resp.Usage.CompletionTokens),
		},
		ToolCalls: extractToolCalls(msg),
	}

	// With a schema-constrained request the message content is the
	// serialized structured value.
	if options.ResponseSchema != nil && msg.Content != "" {
		response.Parsed = []byte(msg.Content)
	}

	return response, nil
}

// ChatWithRetry is Chat wrapped in the retry executor: bounded attempts,
// per-attempt timeouts, linear backoff. Exhaustion yields a Result with OK
// false instead of an error, so callers choose their own fallback.
func (c *Client) ChatWithRetry(ctx context.Context, cfg retry.Config, messages []ai.Message, opts ...ai.Option) retry.Result[*ai.Response] {
	return retry.Do(ctx, cfg, "chat_completion", func(attemptCtx context.Context) (*ai.Response, error) {
		return c.Chat(attemptCtx, messages, opts...)
	})
}
