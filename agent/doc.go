// Package agent provides the bounded tool-calling loop at the heart of
// the agentor library.
//
// An agent orchestrates a conversation loop where the model can request
// tool calls, which are dispatched and the results fed back to the model
// until the model produces a final response without tool calls, or the
// iteration budget runs out.
//
// # Basic Usage
//
// Create a registry, register tools with their handlers, then create an
// agent with a chat client and a dispatcher:
//
//	type WeatherArgs struct {
//	    Location string `json:"location" desc:"City name" required:"true"`
//	}
//
//	registry := tool.NewRegistry()
//	tool.MustRegisterFunc(registry, "get_weather", "Get current weather",
//	    func(ctx context.Context, args WeatherArgs) (string, error) {
//	        return fmt.Sprintf(`{"temp": 22, "location": %q}`, args.Location), nil
//	    },
//	)
//
//	a := agent.New(client, registry, tool.NewDispatcher(registry))
//
//	result, err := a.Run(ctx, messages, agent.WithMaxIterations(5))
//
// # Streaming Snapshots
//
// Use RunStream to observe the loop as it executes. Each iteration
// yields a snapshot after the model responds and another after tool
// dispatch; the final snapshot carries the accumulated history:
//
//	for snap := range a.RunStream(ctx, messages) {
//	    if snap.Err != nil {
//	        log.Fatal(snap.Err)
//	    }
//	    if snap.Final {
//	        fmt.Println(snap.Output.Text)
//	    }
//	}
//
// # Structured Output
//
// Supply a response schema to fix the run's output to a parsed value
// instead of free text:
//
//	schema := agentor.MustSchemaFor[Forecast]()
//	result, err := a.Run(ctx, messages, agent.WithStructuredOutput(&agentor.ResponseSchema{
//	    Name:   "forecast",
//	    Schema: schema,
//	}))
//	var f Forecast
//	err = result.Output.Decode(&f)
//
// Combining WithStructuredOutput with WithResponseFormat is a usage
// error reported before the first model call.
//
// # Termination
//
// The loop stops when the model responds without tool calls
// (TerminationComplete) or when MaxIterations model invocations have
// been made (TerminationMaxIterations). Hitting the budget is a cutoff,
// not an error: the last response's content is the final output. Model
// invocation failures propagate to the caller; individual tool failures
// never abort the run.
package agent
