package agent

import ai "github.com/spetersoncode/agentor"

// ErrConflictingOutputModes is returned when a run is configured with
// both a structured-output schema and a raw response format. The two
// modes are mutually exclusive; this is a programmer error, raised
// before the first model call and never retried.
var ErrConflictingOutputModes = ai.NewUserInputError(
	"structured output and response format are mutually exclusive", 0, nil)
