// Command demo exercises the agentor agent loop against OpenRouter.
//
// Usage:
//
//	OPENROUTER_API_KEY=sk-... go run ./cmd/demo
//
// Optional environment:
//
//	TOOL_SERVER_URL  attach a remote tool catalog (GET <url>/api/tools)
//	DEMO_MODEL       override the default model
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	ai "github.com/spetersoncode/agentor"
	"github.com/spetersoncode/agentor/agent"
	"github.com/spetersoncode/agentor/provider/openrouter"
	"github.com/spetersoncode/agentor/tool"
)

func main() {
	godotenv.Load()
	ctx := context.Background()

	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		fmt.Println("Set OPENROUTER_API_KEY to run the demo.")
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	clientOpts := []openrouter.ClientOption{openrouter.WithLogger(logger)}
	if model := os.Getenv("DEMO_MODEL"); model != "" {
		clientOpts = append(clientOpts, openrouter.WithModel(model))
	}
	client := openrouter.New(apiKey, clientOpts...)

	registry := tool.NewRegistry()
	registerLocalTools(registry)

	if serverURL := os.Getenv("TOOL_SERVER_URL"); serverURL != "" {
		tools, err := tool.AttachCatalog(ctx, registry, serverURL, tool.WithCatalogLogger(logger))
		if err != nil {
			fmt.Printf("warning: tool catalog unavailable: %v\n", err)
		} else {
			fmt.Printf("Attached %d remote tools from %s\n", len(tools), serverURL)
		}
	}

	a := agent.New(client, registry, tool.NewDispatcher(registry, tool.WithLogger(logger)))

	demoRun(ctx, a)
	demoStream(ctx, a)
	demoStructured(ctx, a)
}

// WeatherArgs are the arguments for the get_weather tool.
type WeatherArgs struct {
	Location string `json:"location" desc:"The city name, e.g. Paris" required:"true"`
}

func registerLocalTools(registry *tool.Registry) {
	tool.MustRegisterFunc(registry, "get_weather", "Get the current weather for a location",
		func(ctx context.Context, args WeatherArgs) (string, error) {
			// Simulated weather API.
			return fmt.Sprintf(`{"location": %q, "temperature": 22, "unit": "celsius", "conditions": "Partly cloudy"}`, args.Location), nil
		},
	)
}

func demoRun(ctx context.Context, a *agent.Agent) {
	fmt.Println("\n--- Run (single result) ---")
	fmt.Println("User: What's the weather in Paris?")

	result, err := a.Run(ctx, []ai.Message{
		ai.NewUserMessage("What's the weather in Paris?"),
	}, agent.WithMaxIterations(5))
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	fmt.Printf("Assistant: %s\n", result.Output.Text)
	fmt.Printf("(%d iterations, %d tool calls, %d input / %d output tokens)\n",
		result.Iterations, len(result.ToolCalls), result.Usage.InputTokens, result.Usage.OutputTokens)
}

func demoStream(ctx context.Context, a *agent.Agent) {
	fmt.Println("\n--- RunStream (snapshots) ---")
	fmt.Println("User: What's the weather in Tokyo?")

	for snap := range a.RunStream(ctx, []ai.Message{
		ai.NewUserMessage("What's the weather in Tokyo?"),
	}) {
		if snap.Err != nil {
			fmt.Printf("error: %v\n", snap.Err)
			return
		}
		switch {
		case snap.Final:
			fmt.Printf("[final] %s\n", snap.Output.Text)
		case len(snap.ToolCalls) > 0:
			for i, tc := range snap.ToolCalls {
				fmt.Printf("[iteration %d] %s(%s) -> %s\n",
					snap.Iteration, tc.Name, tc.Arguments, snap.ToolResults[i].Content)
			}
		default:
			fmt.Printf("[iteration %d] model responded\n", snap.Iteration)
		}
	}
}

// Forecast is the structured output shape for the last demo.
type Forecast struct {
	Location   string `json:"location" desc:"City name" required:"true"`
	Celsius    int    `json:"celsius" desc:"Temperature in celsius" required:"true"`
	Conditions string `json:"conditions" desc:"Short description of conditions" required:"true"`
}

func demoStructured(ctx context.Context, a *agent.Agent) {
	fmt.Println("\n--- Run (structured output) ---")
	fmt.Println("User: What's the weather in Berlin? Answer as a forecast object.")

	result, err := a.Run(ctx, []ai.Message{
		ai.NewUserMessage("What's the weather in Berlin? Answer as a forecast object."),
	}, agent.WithStructuredOutput(&ai.ResponseSchema{
		Name:        "forecast",
		Description: "A weather forecast for one city",
		Schema:      ai.MustSchemaFor[Forecast](),
	}))
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	var f Forecast
	if err := result.Output.Decode(&f); err != nil {
		fmt.Printf("decode error: %v\n", err)
		return
	}
	fmt.Printf("Forecast: %s, %d°C, %s\n", f.Location, f.Celsius, f.Conditions)
}
