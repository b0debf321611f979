package model

import (
	"fmt"
	"strings"
)

// FieldError describes one offending input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

// ValidationError reports bad, missing or out-of-range input. It is raised at the
// input boundary and never from inside the metrics engine.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// newValidationError returns nil when there is nothing to report.
func newValidationError(fields []FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// prefixed qualifies every field name with prefix, e.g. "sources[1].capacity_kw".
func prefixed(prefix string, err error) []FieldError {
	ve, ok := err.(*ValidationError)
	if !ok || ve == nil {
		return nil
	}
	out := make([]FieldError, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		out = append(out, FieldError{Field: prefix + "." + f.Field, Message: f.Message})
	}
	return out
}

// ConfigurationError reports a structurally impossible configuration, such as an
// unusable discount rate or a zero denominator in a ratio metric.
type ConfigurationError struct {
	Op     string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// NewConfigurationError is a convenience constructor.
func NewConfigurationError(op, reason string) *ConfigurationError {
	return &ConfigurationError{Op: op, Reason: reason}
}

// NumericDivergenceError reports an iterative method that did not stabilise.
// The value it was computing is indeterminate, not wrong.
type NumericDivergenceError struct {
	Method     string
	Iterations int
	Reason     string
}

func (e *NumericDivergenceError) Error() string {
	return fmt.Sprintf("%s indeterminate after %d iterations: %s", e.Method, e.Iterations, e.Reason)
}
