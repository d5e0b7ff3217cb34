package agent

import (
	"context"

	ai "github.com/spetersoncode/agentor"
	"github.com/spetersoncode/agentor/chat"
	"github.com/spetersoncode/agentor/tool"
)

// Agent orchestrates autonomous tool-calling conversations. It is
// constructed with its collaborators and holds no global state, so
// multiple agents can share a chat client or a registry.
type Agent struct {
	chatClient chat.Client
	registry   *tool.Registry
	dispatcher *tool.Dispatcher
}

// New creates a new Agent with the given chat client, tool registry, and
// dispatcher.
func New(c chat.Client, registry *tool.Registry, dispatcher *tool.Dispatcher) *Agent {
	return &Agent{
		chatClient: c,
		registry:   registry,
		dispatcher: dispatcher,
	}
}

// Run executes the agent loop and returns the final result.
// This is a blocking call that runs until the agent completes.
func (a *Agent) Run(ctx context.Context, messages []ai.Message, opts ...Option) (*Result, error) {
	options := ApplyOptions(opts...)
	return a.runLoop(ctx, messages, options, nil)
}

// RunStream executes the agent loop and returns a channel of snapshots.
//
// Every iteration yields one snapshot after the model responds (content
// only) and, when the model requested tools, a second snapshot carrying
// that iteration's tool calls and results. A terminal snapshot with
// Final set and the fully accumulated history closes the run. The
// channel is buffered to hold a complete run, so a consumer may stop
// reading at any point without blocking the loop.
func (a *Agent) RunStream(ctx context.Context, messages []ai.Message, opts ...Option) <-chan Snapshot {
	options := ApplyOptions(opts...)
	ch := make(chan Snapshot, 2*options.MaxIterations+1)

	go func() {
		defer close(ch)
		emit := func(s Snapshot) { ch <- s }
		result, err := a.runLoop(ctx, messages, options, emit)
		if err != nil {
			emit(Snapshot{Final: true, Err: err})
			return
		}
		emit(Snapshot{
			Output:      result.Output,
			ToolCalls:   result.ToolCalls,
			ToolResults: result.ToolResults,
			Iteration:   result.Iterations,
			Final:       true,
		})
	}()

	return ch
}

// runLoop is the core iterate-invoke-dispatch cycle shared by Run and
// RunStream. The emit callback is nil in single-result mode.
func (a *Agent) runLoop(ctx context.Context, messages []ai.Message, options *Options, emit func(Snapshot)) (*Result, error) {
	if err := options.validate(); err != nil {
		return nil, err
	}
	if emit == nil {
		emit = func(Snapshot) {}
	}

	// Copy so the loop never mutates the caller's slice.
	history := make([]ai.Message, len(messages))
	copy(history, messages)

	// The tool set is snapshotted at loop start; registry mutation during
	// a run does not change mid-flight behavior.
	chatOpts := []ai.Option{
		ai.WithTools(a.registry.List()),
		ai.WithToolChoice(ai.ToolChoiceAuto),
	}
	chatOpts = append(chatOpts, options.chatOptions()...)

	var (
		allCalls   []ai.ToolCall
		allResults []ai.ToolResult
		totalUsage ai.Usage
		output     Output
	)

	for iteration := 1; ; iteration++ {
		response, err := a.chatClient.Chat(ctx, history, chatOpts...)
		if err != nil {
			return nil, err
		}

		totalUsage.InputTokens += response.Usage.InputTokens
		totalUsage.OutputTokens += response.Usage.OutputTokens
		output = options.outputFrom(response)

		emit(Snapshot{Output: output, Iteration: iteration})

		if len(response.ToolCalls) == 0 {
			return &Result{
				Output:      output,
				Messages:    history,
				ToolCalls:   allCalls,
				ToolResults: allResults,
				Iterations:  iteration,
				Usage:       totalUsage,
				Termination: TerminationComplete,
			}, nil
		}

		// Dispatch sequentially in call order; per-tool failures become
		// error-flagged results and never abort the run.
		results := make([]ai.ToolResult, 0, len(response.ToolCalls))
		for _, tc := range response.ToolCalls {
			results = append(results, a.dispatcher.Dispatch(ctx, tc))
		}

		// The assistant message carrying the tool calls must be followed
		// immediately by the matching tool results, in call order. This
		// ordering is what the serving API expects on the next turn.
		history = append(history,
			ai.Message{Role: ai.RoleAssistant, ToolCalls: response.ToolCalls},
			ai.NewToolResultMessage(results...),
		)

		allCalls = append(allCalls, response.ToolCalls...)
		allResults = append(allResults, results...)

		emit(Snapshot{
			Output:      output,
			ToolCalls:   response.ToolCalls,
			ToolResults: results,
			Iteration:   iteration,
		})

		if iteration >= options.MaxIterations {
			// Budget cutoff, not an error: the last message's content is
			// the final output even though it still requested tools.
			return &Result{
				Output:      output,
				Messages:    history,
				ToolCalls:   allCalls,
				ToolResults: allResults,
				Iterations:  iteration,
				Usage:       totalUsage,
				Termination: TerminationMaxIterations,
			}, nil
		}
	}
}
