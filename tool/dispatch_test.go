package tool

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/spetersoncode/agentor"
)

func TestDispatcher_Dispatch(t *testing.T) {
	t.Run("executes local handler", func(t *testing.T) {
		r := NewRegistry()
		r.Register(ai.Tool{Name: "greet"}, func(ctx context.Context, args map[string]any) (any, error) {
			return "hello " + args["name"].(string), nil
		})
		d := NewDispatcher(r)

		result := d.Dispatch(context.Background(), ai.ToolCall{
			ID:        "call_1",
			Name:      "greet",
			Arguments: `{"name":"world"}`,
		})

		assert.Equal(t, "call_1", result.ToolCallID)
		assert.Equal(t, "greet", result.Name)
		assert.Equal(t, "hello world", result.Content)
		assert.False(t, result.IsError)
	})

	t.Run("serializes non-string results as JSON", func(t *testing.T) {
		r := NewRegistry()
		r.Register(ai.Tool{Name: "stats"}, func(ctx context.Context, args map[string]any) (any, error) {
			return map[string]any{"count": 3}, nil
		})
		d := NewDispatcher(r)

		result := d.Dispatch(context.Background(), ai.ToolCall{ID: "c1", Name: "stats", Arguments: "{}"})

		assert.False(t, result.IsError)
		assert.JSONEq(t, `{"count":3}`, result.Content)
	})

	t.Run("unknown tool produces not-found result", func(t *testing.T) {
		d := NewDispatcher(NewRegistry())

		result := d.Dispatch(context.Background(), ai.ToolCall{ID: "c1", Name: "ghost", Arguments: "{}"})

		assert.True(t, result.IsError)
		assert.Equal(t, "Error: no handler found for tool: ghost", result.Content)
	})

	t.Run("handler error is captured with Error prefix", func(t *testing.T) {
		r := NewRegistry()
		r.Register(ai.Tool{Name: "broken"}, func(ctx context.Context, args map[string]any) (any, error) {
			return nil, errors.New("database offline")
		})
		d := NewDispatcher(r)

		result := d.Dispatch(context.Background(), ai.ToolCall{ID: "c1", Name: "broken", Arguments: "{}"})

		assert.True(t, result.IsError)
		assert.Equal(t, "Error: database offline", result.Content)
	})

	t.Run("malformed arguments are captured", func(t *testing.T) {
		r := NewRegistry()
		r.Register(ai.Tool{Name: "greet"}, func(ctx context.Context, args map[string]any) (any, error) {
			return "unreachable", nil
		})
		d := NewDispatcher(r)

		result := d.Dispatch(context.Background(), ai.ToolCall{ID: "c1", Name: "greet", Arguments: `{not json`})

		assert.True(t, result.IsError)
		assert.Contains(t, result.Content, "Error: invalid arguments")
	})

	t.Run("empty arguments decode to empty map", func(t *testing.T) {
		r := NewRegistry()
		r.Register(ai.Tool{Name: "noargs"}, func(ctx context.Context, args map[string]any) (any, error) {
			require.NotNil(t, args)
			return "ok", nil
		})
		d := NewDispatcher(r)

		result := d.Dispatch(context.Background(), ai.ToolCall{ID: "c1", Name: "noargs"})
		assert.False(t, result.IsError)
	})
}

func TestDispatcher_Dispatch_Remote(t *testing.T) {
	t.Run("posts arguments to the endpoint", func(t *testing.T) {
		var gotBody map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			assert.Equal(t, http.MethodPost, req.Method)
			assert.NoError(t, json.NewDecoder(req.Body).Decode(&gotBody))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"temp": 22}`))
		}))
		defer srv.Close()

		r := NewRegistry()
		r.RegisterRemote(ai.Tool{Name: "get_weather"}, srv.URL)
		d := NewDispatcher(r)

		result := d.Dispatch(context.Background(), ai.ToolCall{
			ID:        "c1",
			Name:      "get_weather",
			Arguments: `{"location":"Paris"}`,
		})

		assert.False(t, result.IsError)
		assert.JSONEq(t, `{"temp":22}`, result.Content)
		assert.Equal(t, "Paris", gotBody["location"])
	})

	t.Run("non-2xx status is captured", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			http.Error(w, "tool crashed", http.StatusInternalServerError)
		}))
		defer srv.Close()

		r := NewRegistry()
		r.RegisterRemote(ai.Tool{Name: "flaky"}, srv.URL)
		d := NewDispatcher(r)

		result := d.Dispatch(context.Background(), ai.ToolCall{ID: "c1", Name: "flaky", Arguments: "{}"})

		assert.True(t, result.IsError)
		assert.Contains(t, result.Content, "Error: tool endpoint returned 500")
	})

	t.Run("transport error is captured", func(t *testing.T) {
		r := NewRegistry()
		r.RegisterRemote(ai.Tool{Name: "gone"}, "http://127.0.0.1:1/invoke")
		d := NewDispatcher(r)

		result := d.Dispatch(context.Background(), ai.ToolCall{ID: "c1", Name: "gone", Arguments: "{}"})

		assert.True(t, result.IsError)
		assert.Contains(t, result.Content, "Error:")
	})
}

func TestDispatcher_Invoke(t *testing.T) {
	t.Run("invokes local handler directly", func(t *testing.T) {
		r := NewRegistry()
		r.Register(ai.Tool{Name: "add"}, func(ctx context.Context, args map[string]any) (any, error) {
			return args["a"].(float64) + args["b"].(float64), nil
		})
		d := NewDispatcher(r)

		value, err := d.Invoke(context.Background(), "add", map[string]any{"a": 1.0, "b": 2.0})

		require.NoError(t, err)
		assert.Equal(t, 3.0, value)
	})

	t.Run("unknown tool is a caller error", func(t *testing.T) {
		d := NewDispatcher(NewRegistry())

		_, err := d.Invoke(context.Background(), "ghost", nil)

		require.Error(t, err)
		var notFound *ErrToolNotFound
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "ghost", notFound.Name)
	})

	t.Run("handler errors propagate", func(t *testing.T) {
		r := NewRegistry()
		r.Register(ai.Tool{Name: "broken"}, func(ctx context.Context, args map[string]any) (any, error) {
			return nil, errors.New("nope")
		})
		d := NewDispatcher(r)

		_, err := d.Invoke(context.Background(), "broken", nil)
		assert.EqualError(t, err, "nope")
	})
}

func TestAttachCatalog(t *testing.T) {
	t.Run("registers advertised tools as remote", func(t *testing.T) {
		var invokeURL string
		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()
		invokeURL = srv.URL + "/tools/get_weather/invoke"

		mux.HandleFunc("/api/tools", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"tools": []map[string]any{
					{
						"name":         "get_weather",
						"description":  "Get current weather",
						"inputSchema":  map[string]any{"type": "object"},
						"internal_url": invokeURL,
					},
				},
			})
		})
		mux.HandleFunc("/tools/get_weather/invoke", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"temp": 22, "location": "Paris"}`))
		})

		r := NewRegistry()
		tools, err := AttachCatalog(context.Background(), r, srv.URL+"/")

		require.NoError(t, err)
		require.Len(t, tools, 1)
		assert.Equal(t, "get_weather", tools[0].Name)
		assert.Equal(t, 1, r.Len())

		d := NewDispatcher(r)
		result := d.Dispatch(context.Background(), ai.ToolCall{
			ID:        "c1",
			Name:      "get_weather",
			Arguments: `{"location":"Paris"}`,
		})
		assert.False(t, result.IsError)
		assert.Contains(t, result.Content, "Paris")
	})

	t.Run("server error fails discovery", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			http.Error(w, "nope", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := AttachCatalog(context.Background(), NewRegistry(), srv.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "503")
	})

	t.Run("malformed catalog fails discovery", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer srv.Close()

		_, err := AttachCatalog(context.Background(), NewRegistry(), srv.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode tool catalog")
	})
}
