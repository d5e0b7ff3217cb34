package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("defaults to openrouter", func(t *testing.T) {
		c, err := New(Config{APIKey: "sk-test"})

		require.NoError(t, err)
		assert.NotNil(t, c)
	})

	t.Run("builds anthropic backend", func(t *testing.T) {
		c, err := New(Config{Provider: ProviderAnthropic, APIKey: "sk-ant-test"})

		require.NoError(t, err)
		assert.NotNil(t, c)
	})

	t.Run("requires an api key", func(t *testing.T) {
		_, err := New(Config{Provider: ProviderAnthropic})

		require.Error(t, err)
		var missing *ErrMissingAPIKey
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, ProviderAnthropic, missing.Provider)
	})

	t.Run("rejects unknown providers", func(t *testing.T) {
		_, err := New(Config{Provider: "mystery", APIKey: "key"})

		require.Error(t, err)
		var unknown *ErrUnknownProvider
		assert.ErrorAs(t, err, &unknown)
	})
}
