package tool

import (
	"context"
	"encoding/json"

	ai "github.com/spetersoncode/agentor"
)

// Handler is a function that executes a tool call and returns a result.
// The context supports cancellation and timeout. The args parameter is the
// decoded JSON argument object from the tool call. Returns any
// JSON-serializable value, or an error if execution failed.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// TypedHandler is a function that executes a tool call with typed arguments.
// The args parameter is automatically unmarshaled from the tool call's JSON
// arguments.
type TypedHandler[T any] func(ctx context.Context, args T) (string, error)

// RegisterFunc registers a tool with a typed handler, generating the
// parameter schema from T via [ai.SchemaFor].
//
// Example:
//
//	type SearchArgs struct {
//	    Query string `json:"query" desc:"Search query" required:"true"`
//	}
//
//	tool.RegisterFunc(registry, "search", "Search the web",
//	    func(ctx context.Context, args SearchArgs) (string, error) {
//	        return doSearch(args.Query), nil
//	    },
//	)
func RegisterFunc[T any](r *Registry, name, description string, fn TypedHandler[T]) error {
	schema, err := ai.SchemaFor[T]()
	if err != nil {
		return err
	}

	t := ai.Tool{
		Name:        name,
		Description: description,
		Parameters:  schema,
	}

	handler := func(ctx context.Context, args map[string]any) (any, error) {
		raw, err := json.Marshal(args)
		if err != nil {
			return nil, err
		}
		var typed T
		if err := json.Unmarshal(raw, &typed); err != nil {
			return nil, err
		}
		return fn(ctx, typed)
	}

	r.Register(t, handler)
	return nil
}

// MustRegisterFunc is like RegisterFunc but panics on error.
func MustRegisterFunc[T any](r *Registry, name, description string, fn TypedHandler[T]) {
	if err := RegisterFunc(r, name, description, fn); err != nil {
		panic(err)
	}
}
