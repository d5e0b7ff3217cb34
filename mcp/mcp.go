// Package mcp connects to MCP (Model Context Protocol) servers and makes
// their tools available to agent runs.
//
// A [Server] wraps one MCP server connection. After connecting, install
// its discovered tools into a registry:
//
//	srv, err := mcp.Connect(ctx, "./my-mcp-server", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer srv.Close()
//
//	srv.AttachTools(registry)
//
// Attached tools execute by proxying calls to the MCP session; a failed
// call surfaces as a tool handler error, which the dispatcher captures
// into the tool result like any other tool failure.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	ai "github.com/spetersoncode/agentor"
	"github.com/spetersoncode/agentor/tool"
)

// Server is a connection to one MCP server and the tools it advertises.
// It is safe for concurrent use; the tool list is cached locally and can
// be refreshed with [Server.Refresh].
type Server struct {
	client *client.Client
	mu     sync.RWMutex
	tools  map[string]ai.Tool
}

// Connect connects to an MCP server over stdio. The command is the path to
// the server executable; args are passed to it.
func Connect(ctx context.Context, command string, env []string, args ...string) (*Server, error) {
	c, err := client.NewStdioMCPClient(command, env, args...)
	if err != nil {
		return nil, fmt.Errorf("create MCP client: %w", err)
	}
	return connect(ctx, c)
}

// ConnectSSE connects to an MCP server over SSE.
func ConnectSSE(ctx context.Context, baseURL string) (*Server, error) {
	c, err := client.NewSSEMCPClient(baseURL)
	if err != nil {
		return nil, fmt.Errorf("create SSE MCP client: %w", err)
	}
	return connect(ctx, c)
}

func connect(ctx context.Context, c *client.Client) (*Server, error) {
	if err := c.Start(ctx); err != nil {
		return nil, fmt.Errorf("start MCP client: %w", err)
	}

	_, err := c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			Capabilities:    mcp.ClientCapabilities{},
			ClientInfo: mcp.Implementation{
				Name:    "agentor-mcp-client",
				Version: "1.0.0",
			},
		},
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("initialize MCP session: %w", err)
	}

	s := &Server{
		client: c,
		tools:  make(map[string]ai.Tool),
	}
	if err := s.Refresh(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("list MCP tools: %w", err)
	}
	return s, nil
}

// Close closes the connection to the MCP server.
func (s *Server) Close() error {
	return s.client.Close()
}

// Refresh fetches the current list of tools from the MCP server.
func (s *Server) Refresh(ctx context.Context) error {
	result, err := s.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tools = make(map[string]ai.Tool, len(result.Tools))
	for _, t := range result.Tools {
		s.tools[t.Name] = fromMCPTool(t)
	}
	return nil
}

// Tools returns all tools advertised by the MCP server.
func (s *Server) Tools() []ai.Tool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tools := make([]ai.Tool, 0, len(s.tools))
	for _, t := range s.tools {
		tools = append(tools, t)
	}
	return tools
}

// AttachTools registers every discovered tool in the registry with a
// handler that proxies calls to this MCP server. Registration follows the
// registry's last-write-wins policy.
func (s *Server) AttachTools(r *tool.Registry) {
	for _, t := range s.Tools() {
		name := t.Name
		r.Register(t, func(ctx context.Context, args map[string]any) (any, error) {
			return s.call(ctx, name, args)
		})
	}
}

func (s *Server) call(ctx context.Context, name string, args map[string]any) (any, error) {
	result, err := s.client.CallTool(ctx, mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("empty result from MCP server")
	}

	content := flattenContent(result)
	if result.IsError {
		return nil, fmt.Errorf("%s", content)
	}
	return content, nil
}

// flattenContent extracts the text content of an MCP call result,
// concatenating multiple blocks and serializing non-text blocks as JSON.
func flattenContent(result *mcp.CallToolResult) string {
	var parts []string
	for _, c := range result.Content {
		switch content := c.(type) {
		case mcp.TextContent:
			parts = append(parts, content.Text)
		case *mcp.TextContent:
			parts = append(parts, content.Text)
		default:
			if data, err := json.Marshal(content); err == nil {
				parts = append(parts, string(data))
			}
		}
	}
	if result.StructuredContent != nil {
		if data, err := json.Marshal(result.StructuredContent); err == nil {
			parts = append(parts, string(data))
		}
	}
	return strings.Join(parts, "\n")
}

func fromMCPTool(t mcp.Tool) ai.Tool {
	var schema json.RawMessage
	if len(t.RawInputSchema) > 0 {
		schema = t.RawInputSchema
	} else if data, err := json.Marshal(t.InputSchema); err == nil {
		schema = data
	}

	return ai.Tool{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  schema,
	}
}
