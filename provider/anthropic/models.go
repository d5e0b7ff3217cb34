package anthropic

// Anthropic model identifiers. The alias forms auto-update to the latest
// revision within a family.
const (
	ModelClaudeOpus45   = "claude-opus-4-5"
	ModelClaudeSonnet45 = "claude-sonnet-4-5"
	ModelClaudeHaiku45  = "claude-haiku-4-5"
)
