package openrouter

// Model identifiers routed through OpenRouter. Any model ID supported by
// the gateway may be passed via agentor.WithModel; these are the ones used
// by the demos.
const (
	ModelGPT4o     = "openai/gpt-4o"
	ModelGPT41     = "openai/gpt-4.1"
	ModelGPT4oMini = "openai/gpt-4o-mini"
)
