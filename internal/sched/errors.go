package sched

import "fmt"

// ConfigurationError reports a scheduler setting that cannot be used.
// It is always raised before the first simulated step.
type ConfigurationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// MalformedInputError reports a workload that does not have the expected shape.
// Index is the zero-based token (classic format) or process (YAML, engine) position,
// -1 when the problem is not tied to one position.
type MalformedInputError struct {
	Source string
	Index  int
	Reason string
}

func (e *MalformedInputError) Error() string {
	src := e.Source
	if src == "" {
		src = "input"
	}
	if e.Index < 0 {
		return fmt.Sprintf("malformed %s: %s", src, e.Reason)
	}
	return fmt.Sprintf("malformed %s at #%d: %s", src, e.Index, e.Reason)
}
