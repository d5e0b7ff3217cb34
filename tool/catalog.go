package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	ai "github.com/spetersoncode/agentor"
)

// catalogEntry is one tool advertisement from a remote catalog server.
type catalogEntry struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
	InternalURL string          `json:"internal_url"`
}

// catalogResponse is the payload of GET <server>/api/tools.
type catalogResponse struct {
	Tools []catalogEntry `json:"tools"`
}

// CatalogOption configures catalog discovery.
type CatalogOption func(*catalogConfig)

type catalogConfig struct {
	http   *resty.Client
	logger *slog.Logger
}

// WithCatalogHTTPClient sets the HTTP client used for catalog discovery.
func WithCatalogHTTPClient(c *resty.Client) CatalogOption {
	return func(cfg *catalogConfig) {
		cfg.http = c
	}
}

// WithCatalogLogger sets the logger for discovery diagnostics.
func WithCatalogLogger(logger *slog.Logger) CatalogOption {
	return func(cfg *catalogConfig) {
		cfg.logger = logger
	}
}

// AttachCatalog fetches the tool catalog from serverURL and registers every
// advertised tool as a remote tool in the registry. Dispatches for these
// tools POST the decoded arguments to the tool's internal URL.
//
// Returns the discovered tool definitions.
func AttachCatalog(ctx context.Context, r *Registry, serverURL string, opts ...CatalogOption) ([]ai.Tool, error) {
	cfg := &catalogConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.http == nil {
		cfg.http = resty.New().SetTimeout(30 * time.Second)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	url := strings.TrimRight(serverURL, "/") + "/api/tools"
	resp, err := cfg.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch tool catalog: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch tool catalog: server returned %d", resp.StatusCode())
	}

	var catalog catalogResponse
	if err := json.Unmarshal(resp.Body(), &catalog); err != nil {
		return nil, fmt.Errorf("decode tool catalog: %w", err)
	}

	tools := make([]ai.Tool, 0, len(catalog.Tools))
	for _, entry := range catalog.Tools {
		t := ai.Tool{
			Name:        entry.Name,
			Description: entry.Description,
			Parameters:  entry.InputSchema,
		}
		r.RegisterRemote(t, entry.InternalURL)
		tools = append(tools, t)
	}

	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = t.Name
	}
	cfg.logger.Info("attached tool catalog", "server", serverURL, "tools", names)

	return tools, nil
}
