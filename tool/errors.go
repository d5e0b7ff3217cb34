package tool

import "fmt"

// ErrToolNotFound is returned by direct invocation when the named tool is
// not registered. During loop dispatch the same condition is reported in
// the ToolResult instead.
type ErrToolNotFound struct {
	Name string
}

// Error returns a formatted error message including the tool name.
func (e *ErrToolNotFound) Error() string {
	return fmt.Sprintf("tool: not found: %s", e.Name)
}
