package errors

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

// Violation describes one flow record that references an undefined system.
type Violation struct {
	Kind string // "system_flow" or "table_flow"
	Row  int    // 1-based data row (header excluded)
	Name string // the undefined system name
}

func (v Violation) String() string {
	return fmt.Sprintf("%s row %d references undefined system %q", v.Kind, v.Row, v.Name)
}

// ReferentialIntegrityError is returned when flows reference systems that
// are absent from the systems table.
type ReferentialIntegrityError struct {
	Violations []Violation
}

// Error implements the error interface.
func (e *ReferentialIntegrityError) Error() string {
	if len(e.Violations) == 1 {
		return fmt.Sprintf("%s: %s", e.Code(), e.Violations[0])
	}
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("%s: %d undefined system references: %s",
		e.Code(), len(e.Violations), strings.Join(parts, "; "))
}

// Code returns the error code for this error type.
func (e *ReferentialIntegrityError) Code() Code {
	return ErrCodeInvalidReference
}

// ValidateName checks an identifier read from an input table (system or
// table name). Names must be non-empty and free of control characters.
func ValidateName(field, name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "%s cannot be empty", field)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s contains invalid control characters", field)
		}
	}
	return nil
}

// ValidateWeight checks a flow weight. Weights must be finite and
// non-negative so that line thickness stays within [2, 10].
func ValidateWeight(field string, w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return New(ErrCodeInvalidInput, "%s must be a finite number", field)
	}
	if w < 0 {
		return New(ErrCodeInvalidInput, "%s must not be negative (got %g)", field, w)
	}
	return nil
}
