// Package agentor provides a bounded tool-calling agent loop for
// OpenAI-compatible model gateways.
//
// The library is built around four pieces:
//
//   - [github.com/spetersoncode/agentor/agent]: the loop itself. It invokes
//     a model, dispatches any tool calls the model requests, feeds the
//     results back, and repeats until the model stops requesting tools or
//     an iteration budget is exhausted.
//   - [github.com/spetersoncode/agentor/tool]: the tool registry and
//     dispatcher. Tools execute through local handlers or remote HTTP
//     endpoints discovered from a catalog.
//   - [github.com/spetersoncode/agentor/retry]: a retry executor with
//     per-attempt timeouts and linear backoff for single model calls made
//     outside the loop.
//   - [github.com/spetersoncode/agentor/provider]: model clients. The
//     openrouter package talks to OpenRouter through the OpenAI SDK; the
//     anthropic package talks to the Anthropic API directly.
//
// # Basic Usage
//
// Run an agent with one local tool:
//
//	client := openrouter.New(os.Getenv("OPENROUTER_API_KEY"))
//	registry := tool.NewRegistry()
//	tool.RegisterFunc(registry, "get_weather", "Get current weather for a location",
//	    func(ctx context.Context, args WeatherArgs) (string, error) {
//	        return lookupWeather(args.Location)
//	    },
//	)
//
//	a := agent.New(client, registry, tool.NewDispatcher(registry))
//	result, err := a.Run(ctx, []agentor.Message{
//	    agentor.NewUserMessage("What is the weather in Paris?"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Output.Text)
//
// # Streaming
//
// RunStream yields a snapshot after every model call and after every round
// of tool dispatch, then a terminal snapshot with the accumulated history:
//
//	for snap := range a.RunStream(ctx, messages) {
//	    if snap.Final {
//	        fmt.Println(snap.Output.Text)
//	    }
//	}
//
// # Structured Output
//
// Supply a response schema to have every model invocation in the run
// constrained to it; the final output then carries the parsed value:
//
//	schema := agentor.MustSchemaFor[Report]()
//	result, err := a.Run(ctx, messages,
//	    agent.WithStructuredOutput(&agentor.ResponseSchema{Name: "report", Schema: schema}),
//	)
package agentor
