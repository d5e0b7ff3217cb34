package agentor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOptions(t *testing.T) {
	t.Run("returns empty options when no options provided", func(t *testing.T) {
		opts := ApplyOptions()
		assert.NotNil(t, opts)
		assert.Empty(t, opts.Model)
		assert.Zero(t, opts.MaxTokens)
		assert.Nil(t, opts.Temperature)
		assert.Nil(t, opts.Tools)
		assert.Empty(t, opts.ToolChoice)
		assert.Empty(t, opts.ResponseFormat)
		assert.Nil(t, opts.ResponseSchema)
	})

	t.Run("applies multiple options", func(t *testing.T) {
		tools := []Tool{{Name: "test"}}
		opts := ApplyOptions(
			WithModel("openai/gpt-4.1"),
			WithMaxTokens(1000),
			WithTemperature(0.7),
			WithTools(tools),
			WithToolChoice(ToolChoiceRequired),
		)

		assert.Equal(t, "openai/gpt-4.1", opts.Model)
		assert.Equal(t, 1000, opts.MaxTokens)
		require.NotNil(t, opts.Temperature)
		assert.Equal(t, 0.7, *opts.Temperature)
		assert.Equal(t, tools, opts.Tools)
		assert.Equal(t, ToolChoiceRequired, opts.ToolChoice)
	})
}

func TestWithExtraHeaders(t *testing.T) {
	t.Run("merges across calls", func(t *testing.T) {
		opts := ApplyOptions(
			WithExtraHeaders(map[string]string{"X-Title": "demo"}),
			WithExtraHeaders(map[string]string{"HTTP-Referer": "https://example.com"}),
		)

		assert.Equal(t, "demo", opts.ExtraHeaders["X-Title"])
		assert.Equal(t, "https://example.com", opts.ExtraHeaders["HTTP-Referer"])
	})

	t.Run("later values win", func(t *testing.T) {
		opts := ApplyOptions(
			WithExtraHeaders(map[string]string{"X-Title": "first"}),
			WithExtraHeaders(map[string]string{"X-Title": "second"}),
		)

		assert.Equal(t, "second", opts.ExtraHeaders["X-Title"])
	})
}

func TestOptions_Validate(t *testing.T) {
	schema := &ResponseSchema{Name: "out", Schema: json.RawMessage(`{"type":"object"}`)}

	t.Run("schema alone is valid", func(t *testing.T) {
		opts := ApplyOptions(WithResponseSchema(schema))
		assert.NoError(t, opts.Validate())
	})

	t.Run("format alone is valid", func(t *testing.T) {
		opts := ApplyOptions(WithResponseFormat(ResponseFormatJSON))
		assert.NoError(t, opts.Validate())
	})

	t.Run("schema with text format is valid", func(t *testing.T) {
		opts := ApplyOptions(WithResponseSchema(schema), WithResponseFormat(ResponseFormatText))
		assert.NoError(t, opts.Validate())
	})

	t.Run("schema with json format is a usage error", func(t *testing.T) {
		opts := ApplyOptions(WithResponseSchema(schema), WithResponseFormat(ResponseFormatJSON))

		err := opts.Validate()
		require.Error(t, err)
		assert.True(t, IsUserInput(err))
	})
}
