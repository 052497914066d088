package memory

import "fmt"

// Error types for the memory package
type (
	// ValidationError represents a bad or missing tool argument. It is always
	// raised before any remote call is made.
	ValidationError struct {
		Param  string
		Reason string
	}

	// UnknownToolError represents a dispatch against a tool name that is not
	// in the registry.
	UnknownToolError struct {
		Tool string
	}
)

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Param, e.Reason)
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool: %s", e.Tool)
}
