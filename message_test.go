package agentor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMessageID(t *testing.T) {
	id1 := GenerateMessageID()
	id2 := GenerateMessageID()

	assert.True(t, strings.HasPrefix(id1, "msg-"))
	assert.NotEqual(t, id1, id2)
}

func TestNewUserMessage(t *testing.T) {
	msg := NewUserMessage("hello")

	assert.Equal(t, RoleUser, msg.Role)
	assert.Equal(t, "hello", msg.Content)
	assert.Empty(t, msg.ToolCalls)
}

func TestNewSystemMessage(t *testing.T) {
	msg := NewSystemMessage("be helpful")

	assert.Equal(t, RoleSystem, msg.Role)
	assert.Equal(t, "be helpful", msg.Content)
}

func TestNewToolResultMessage(t *testing.T) {
	msg := NewToolResultMessage(
		ToolResult{ToolCallID: "c1", Name: "get_weather", Content: "sunny"},
		ToolResult{ToolCallID: "c2", Name: "get_weather", Content: "rainy", IsError: false},
	)

	assert.Equal(t, RoleTool, msg.Role)
	require.Len(t, msg.ToolResults, 2)
	assert.Equal(t, "c1", msg.ToolResults[0].ToolCallID)
	assert.Equal(t, "c2", msg.ToolResults[1].ToolCallID)
}
