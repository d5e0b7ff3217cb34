package agent

import (
	"encoding/json"

	ai "github.com/spetersoncode/agentor"
)

// TerminationReason explains why an agent run stopped.
type TerminationReason string

const (
	// TerminationComplete means the model responded without tool calls.
	TerminationComplete TerminationReason = "complete"
	// TerminationMaxIterations means the iteration budget was exhausted
	// while the model was still requesting tools. This is a cutoff, not
	// an error.
	TerminationMaxIterations TerminationReason = "max_iterations"
)

// Output is the final value of a run. Exactly one branch is populated,
// decided once per run: Parsed when a structured-output schema was
// supplied, Text otherwise.
type Output struct {
	// Text is the model's free-text content.
	Text string
	// Parsed is the schema-constrained structured value.
	Parsed json.RawMessage
}

// IsParsed reports whether the output carries a structured value.
func (o Output) IsParsed() bool {
	return o.Parsed != nil
}

// Decode unmarshals the structured value into v.
func (o Output) Decode(v any) error {
	return json.Unmarshal(o.Parsed, v)
}

// Result is the outcome of a completed agent run.
type Result struct {
	// Output is the final model output.
	Output Output

	// Messages is the full conversation, including the tool-call turns
	// appended during the run.
	Messages []ai.Message

	// ToolCalls are all tool calls issued across the run, in order.
	ToolCalls []ai.ToolCall

	// ToolResults are the results matching ToolCalls, in the same order.
	ToolResults []ai.ToolResult

	// Iterations is the number of model invocations performed.
	Iterations int

	// Usage is the accumulated token usage across all invocations.
	Usage ai.Usage

	// Termination explains why the run stopped.
	Termination TerminationReason
}

// Snapshot is one observation of an in-flight run, delivered on the
// RunStream channel. Intermediate snapshots carry only the current
// iteration's tool calls and results; the terminal snapshot (Final set)
// carries the accumulated history for the whole run.
type Snapshot struct {
	// Output is the model output as of this iteration.
	Output Output

	// ToolCalls are the tool calls covered by this snapshot.
	ToolCalls []ai.ToolCall

	// ToolResults are the results matching ToolCalls.
	ToolResults []ai.ToolResult

	// Iteration is the 1-indexed model invocation this snapshot belongs to.
	Iteration int

	// Final marks the terminal snapshot; the channel closes after it.
	Final bool

	// Err is set on the terminal snapshot when the run failed.
	Err error
}
