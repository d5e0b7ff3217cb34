package tool

import (
	"sync"

	ai "github.com/spetersoncode/agentor"
)

// registeredTool combines a tool definition with its execution target:
// either a local handler or a remote endpoint URL.
type registeredTool struct {
	tool     ai.Tool
	handler  Handler
	endpoint string
}

// Registry manages registered tools and their execution targets.
//
// Lookups and registration are guarded by a lock, but callers are expected
// to serialize registration relative to concurrent agent runs; interleaved
// mutation is last-write-wins.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]registeredTool
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]registeredTool),
	}
}

// Register adds a tool with a local handler to the registry.
// Registering a name that already exists overwrites the prior entry.
func (r *Registry) Register(tool ai.Tool, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tools[tool.Name] = registeredTool{
		tool:    tool,
		handler: handler,
	}
}

// RegisterRemote adds a tool that executes by POSTing its arguments to the
// given endpoint URL. Registering a name that already exists overwrites the
// prior entry.
func (r *Registry) RegisterRemote(tool ai.Tool, endpoint string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tools[tool.Name] = registeredTool{
		tool:     tool,
		endpoint: endpoint,
	}
}

// Unregister removes a tool from the registry.
// It is a no-op if the tool is not registered.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tools, name)
}

// Get retrieves a tool definition by name.
// Returns the tool and true if found, or empty tool and false if not found.
func (r *Registry) Get(name string) (ai.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rt, ok := r.tools[name]
	if !ok {
		return ai.Tool{}, false
	}
	return rt.tool, true
}

// List returns all registered tool definitions as a defensive copy.
// Mutating the returned slice does not affect registry state.
func (r *Registry) List() []ai.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]ai.Tool, 0, len(r.tools))
	for _, rt := range r.tools {
		tools = append(tools, rt.tool)
	}
	return tools
}

// Names returns the names of all registered tools.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// target resolves a tool to its execution target.
func (r *Registry) target(name string) (registeredTool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rt, ok := r.tools[name]
	return rt, ok
}
