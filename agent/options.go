package agent

import (
	ai "github.com/spetersoncode/agentor"
)

// DefaultMaxIterations bounds the loop when no limit is configured.
const DefaultMaxIterations = 5

// Options contains configuration for agent execution.
type Options struct {
	// MaxIterations limits the number of model invocations per run.
	// Default is 5.
	MaxIterations int

	// Model overrides the chat client's default model.
	Model string

	// ExtraHeaders are added to every model request in the run.
	ExtraHeaders map[string]string

	// StructuredOutput constrains the model output to a JSON schema.
	// The run's final output carries the parsed value instead of text.
	// Mutually exclusive with ResponseFormat.
	StructuredOutput *ai.ResponseSchema

	// ResponseFormat requests a coarse output mode.
	// Mutually exclusive with StructuredOutput.
	ResponseFormat ai.ResponseFormat
}

// Option is a functional option for configuring agent execution.
type Option func(*Options)

// WithMaxIterations sets the maximum number of model invocations per run.
// Default is 5.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxIterations = n
		}
	}
}

// WithModel overrides the chat client's default model for this run.
func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// WithExtraHeaders adds headers to every model request in the run.
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

// WithStructuredOutput constrains every model invocation in the run to
// the given schema. The choice between parsed and text output is fixed
// for the whole run.
func WithStructuredOutput(schema *ai.ResponseSchema) Option {
	return func(o *Options) {
		o.StructuredOutput = schema
	}
}

// WithResponseFormat requests a coarse output mode for the run.
func WithResponseFormat(format ai.ResponseFormat) Option {
	return func(o *Options) {
		o.ResponseFormat = format
	}
}

// ApplyOptions applies functional options to an Options struct with defaults.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{
		MaxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// validate reports usage errors before the first model call.
func (o *Options) validate() error {
	if o.StructuredOutput != nil && o.ResponseFormat != "" && o.ResponseFormat != ai.ResponseFormatText {
		return ErrConflictingOutputModes
	}
	return nil
}

// chatOptions translates run-level options into per-invocation chat options.
func (o *Options) chatOptions() []ai.Option {
	var opts []ai.Option
	if o.Model != "" {
		opts = append(opts, ai.WithModel(o.Model))
	}
	if len(o.ExtraHeaders) > 0 {
		opts = append(opts, ai.WithExtraHeaders(o.ExtraHeaders))
	}
	if o.StructuredOutput != nil {
		opts = append(opts, ai.WithResponseSchema(o.StructuredOutput))
	} else if o.ResponseFormat != "" {
		opts = append(opts, ai.WithResponseFormat(o.ResponseFormat))
	}
	return opts
}

// outputFrom builds the run output from a model response, honoring the
// structured/text choice made at run start.
func (o *Options) outputFrom(resp *ai.Response) Output {
	if o.StructuredOutput != nil {
		return Output{Parsed: resp.Parsed}
	}
	return Output{Text: resp.Content}
}
