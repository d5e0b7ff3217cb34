package agentor

import "encoding/json"

// ResponseFormat selects a coarse response-shaping mode for a request.
type ResponseFormat string

const (
	// ResponseFormatText requests free-text output (default).
	ResponseFormatText ResponseFormat = "text"
	// ResponseFormatJSON requests that the model emit a JSON object
	// without constraining it to a particular schema.
	ResponseFormatJSON ResponseFormat = "json"
)

// ResponseSchema constrains the model output to a JSON schema.
// When supplied, the response carries the parsed value instead of free text.
type ResponseSchema struct {
	// Name identifies the schema to the model-serving API.
	Name string
	// Description optionally explains the expected output.
	Description string
	// Schema is the JSON Schema the output must conform to.
	Schema json.RawMessage
}

// Options contains configuration for a single model invocation.
type Options struct {
	Model       string
	MaxTokens   int
	Temperature *float64
	// ExtraHeaders are added to the underlying API request.
	ExtraHeaders map[string]string
	// Tools are offered to the model so it can request invocations.
	Tools []Tool
	// ToolChoice controls whether the model may, must, or must not call tools.
	ToolChoice ToolChoice
	// ResponseSchema requests schema-constrained structured output.
	// Mutually exclusive with ResponseFormat.
	ResponseSchema *ResponseSchema
	// ResponseFormat requests a coarse output mode.
	// Mutually exclusive with ResponseSchema.
	ResponseFormat ResponseFormat
}

// Option is a functional option for configuring model invocations.
type Option func(*Options)

// WithModel sets the model to use for the request.
func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// WithMaxTokens sets the maximum number of tokens to generate.
func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// WithTemperature sets the sampling temperature (0.0 to 2.0).
func WithTemperature(t float64) Option {
	return func(o *Options) {
		o.Temperature = &t
	}
}

// WithExtraHeaders adds headers to the underlying API request.
func WithExtraHeaders(headers map[string]string) Option {
	return func(o *Options) {
		if o.ExtraHeaders == nil {
			o.ExtraHeaders = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			o.ExtraHeaders[k] = v
		}
	}
}

// WithTools offers the given tools to the model.
func WithTools(tools []Tool) Option {
	return func(o *Options) {
		o.Tools = tools
	}
}

// WithToolChoice sets the tool-choice policy for the request.
func WithToolChoice(choice ToolChoice) Option {
	return func(o *Options) {
		o.ToolChoice = choice
	}
}

// WithResponseSchema requests schema-constrained structured output.
// Supplying both a schema and a response format is a usage error reported
// by the invoking client.
func WithResponseSchema(schema *ResponseSchema) Option {
	return func(o *Options) {
		o.ResponseSchema = schema
	}
}

// WithResponseFormat requests a coarse response-shaping mode.
// Supplying both a schema and a response format is a usage error reported
// by the invoking client.
func WithResponseFormat(format ResponseFormat) Option {
	return func(o *Options) {
		o.ResponseFormat = format
	}
}

// ApplyOptions applies functional options to an Options struct.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Validate reports usage errors in the assembled options.
func (o *Options) Validate() error {
	if o.ResponseSchema != nil && o.ResponseFormat != "" && o.ResponseFormat != ResponseFormatText {
		return NewUserInputError("response schema and response format are mutually exclusive", 0, nil)
	}
	return nil
}
