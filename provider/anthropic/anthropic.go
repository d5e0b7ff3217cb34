// Package anthropic implements the chat.Client contract over the
// Anthropic API, proving the agent loop is gateway-agnostic.
package anthropic

import (
	"context"
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	ai "github.com/spetersoncode/agentor"
)

// DefaultModel is used when no model is configured or requested.
const DefaultModel = ModelClaudeSonnet45

// Client wraps the Anthropic SDK.
type Client struct {
	client *anthropic.Client
	model  string
	logger *slog.Logger
}

// ClientOption configures the Anthropic client.
type ClientOption func(*Client)

// WithModel sets the default model for requests.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// WithLogger sets the logger for client diagnostics.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a new Anthropic client with the given API key.
func New(apiKey string, opts ...ClientOption) *Client {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	c := &Client{
		client: &client,
		model:  DefaultModel,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Chat sends a conversation and returns the model's message.
//
// Structured output is emulated with a forced synthetic tool, the way the
// Anthropic API expects schema-constrained responses.
func (c *Client) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	options := ai.ApplyOptions(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}

	model := c.model
	if options.Model != "" {
		model = options.Model
	}

	maxTokens := int64(4096)
	if options.MaxTokens > 0 {
		maxTokens = int64(options.MaxTokens)
	}

	msgs, system := convertMessages(messages)
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
		Messages:  msgs,
	}
	if len(system) > 0 {
		params.System = system
	}
	if options.Temperature != nil {
		params.Temperature = anthropic.Float(*options.Temperature)
	}

	useJSONTool := options.ResponseFormat == ai.ResponseFormatJSON || options.ResponseSchema != nil
	if useJSONTool {
		jsonTool, jsonToolChoice := buildJSONTool(options)
		if len(options.Tools) > 0 {
			params.Tools = append(convertTools(options.Tools), jsonTool)
		} else {
			params.Tools = []anthropic.ToolUnionParam{jsonTool}
		}
		params.ToolChoice = jsonToolChoice
	} else if len(options.Tools) > 0 {
		params.Tools = convertTools(options.Tools)
		if options.ToolChoice != "" {
			params.ToolChoice = convertToolChoice(options.ToolChoice)
		}
	}

	var requestOpts []option.RequestOption
	for k, v := range options.ExtraHeaders {
		requestOpts = append(requestOpts, option.WithHeader(k, v))
	}

	resp, err := c.client.Messages.New(ctx, params, requestOpts...)
	if err != nil {
		return nil, wrapError(err)
	}

	content := ""
	var parsed []byte
	var toolCalls []ai.ToolCall
	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			content += block.Text
		case "tool_use":
			if useJSONTool && block.Name == jsonResponseToolName {
				// The synthetic tool's input is the structured value.
				content = string(block.Input)
				if options.ResponseSchema != nil {
					parsed = []byte(block.Input)
				}
			} else {
				toolCalls = append(toolCalls, ai.ToolCall{
					ID:        block.ID,
					Name:      block.Name,
					Arguments: string(block.Input),
				})
			}
		}
	}

	return &ai.Response{
		Content:      content,
		FinishReason: string(resp.StopReason),
		Usage: ai.Usage{
			InputTokens:  int(resp.Usage.InputTokens),
			OutputTokens: int(resp.Usage.OutputTokens),
		},
		Parsed:    parsed,
		ToolCalls: toolCalls,
	}, nil
}
