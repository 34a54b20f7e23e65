package grading

import "fmt"

// ValidationError reports a rubric submission that violates an input constraint.
// Nothing is appended to the log when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Reason
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// SchemaError reports a record whose role tag is outside the closed role set.
type SchemaError struct {
	Role string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: unknown role %q", e.Role)
}
