package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	ai "github.com/spetersoncode/agentor"
)

// Dispatcher resolves model-issued tool calls against a registry and
// executes them. Per-call failures — unknown names, argument decode
// failures, handler errors, remote endpoint failures — are captured into
// the returned ToolResult instead of propagating, so a single bad tool
// call never aborts an agent run.
type Dispatcher struct {
	registry *Registry
	http     *resty.Client
	logger   *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithHTTPClient sets the HTTP client used for remote tool endpoints.
func WithHTTPClient(c *resty.Client) DispatcherOption {
	return func(d *Dispatcher) {
		d.http = c
	}
}

// WithLogger sets the logger for dispatch diagnostics.
func WithLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// NewDispatcher creates a Dispatcher over the given registry.
func NewDispatcher(registry *Registry, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.http == nil {
		d.http = resty.New().SetTimeout(30 * time.Second)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d
}

// Registry returns the registry this dispatcher resolves against.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch executes a tool call and returns its result. It never returns
// an error: failures are described in the result content with an "Error:"
// prefix and IsError set.
func (d *Dispatcher) Dispatch(ctx context.Context, call ai.ToolCall) ai.ToolResult {
	rt, ok := d.registry.target(call.Name)
	if !ok {
		d.logger.Error("no handler found for tool", "tool", call.Name)
		return errorResult(call, fmt.Sprintf("no handler found for tool: %s", call.Name))
	}

	args, err := decodeArguments(call.Arguments)
	if err != nil {
		d.logger.Error("invalid tool arguments", "tool", call.Name, "error", err)
		return errorResult(call, fmt.Sprintf("invalid arguments: %v", err))
	}

	if rt.endpoint != "" {
		return d.dispatchRemote(ctx, call, rt.endpoint, args)
	}

	value, err := rt.handler(ctx, args)
	if err != nil {
		d.logger.Error("tool execution failed", "tool", call.Name, "error", err)
		return errorResult(call, err.Error())
	}

	content, err := encodeResult(value)
	if err != nil {
		d.logger.Error("tool result not serializable", "tool", call.Name, "error", err)
		return errorResult(call, fmt.Sprintf("result not serializable: %v", err))
	}

	return ai.ToolResult{
		ToolCallID: call.ID,
		Name:       call.Name,
		Content:    content,
	}
}

func (d *Dispatcher) dispatchRemote(ctx context.Context, call ai.ToolCall, endpoint string, args map[string]any) ai.ToolResult {
	resp, err := d.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(args).
		Post(endpoint)
	if err != nil {
		d.logger.Error("remote tool request failed", "tool", call.Name, "endpoint", endpoint, "error", err)
		return errorResult(call, err.Error())
	}
	if resp.IsError() {
		d.logger.Error("remote tool returned error status",
			"tool", call.Name, "endpoint", endpoint, "status", resp.StatusCode())
		return errorResult(call, fmt.Sprintf("tool endpoint returned %d: %s", resp.StatusCode(), resp.String()))
	}

	return ai.ToolResult{
		ToolCallID: call.ID,
		Name:       call.Name,
		Content:    resp.String(),
	}
}

// Invoke executes a tool directly by name, outside any agent run.
// Unlike Dispatch, an unknown tool name is a caller error and is returned
// as one; execution failures also propagate.
func (d *Dispatcher) Invoke(ctx context.Context, name string, args map[string]any) (any, error) {
	rt, ok := d.registry.target(name)
	if !ok {
		return nil, &ErrToolNotFound{Name: name}
	}

	if rt.endpoint != "" {
		resp, err := d.http.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(args).
			Post(rt.endpoint)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("tool endpoint returned %d: %s", resp.StatusCode(), resp.String())
		}
		var result any
		if err := json.Unmarshal(resp.Body(), &result); err != nil {
			return nil, err
		}
		return result, nil
	}

	return rt.handler(ctx, args)
}

func decodeArguments(raw string) (map[string]any, error) {
	if raw == "" {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, err
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

// encodeResult renders a handler's return value as result content.
// Strings pass through; other values are serialized as JSON.
func encodeResult(value any) (string, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func errorResult(call ai.ToolCall, msg string) ai.ToolResult {
	return ai.ToolResult{
		ToolCallID: call.ID,
		Name:       call.Name,
		Content:    "Error: " + msg,
		IsError:    true,
	}
}
