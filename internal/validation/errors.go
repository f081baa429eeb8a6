// Package validation checks rendered résumés against the layout they were rendered from.
package validation

import (
	"fmt"
	"strings"
)

// Error represents a general validation error
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// OrderError reports rendered sections that do not match the layout's section order.
type OrderError struct {
	Expected []string
	Got      []string
}

func (e *OrderError) Error() string {
	if len(e.Expected) != len(e.Got) {
		return fmt.Sprintf("section order error: expected %d sections, rendered %d (expected [%s], got [%s])",
			len(e.Expected), len(e.Got), strings.Join(e.Expected, ", "), strings.Join(e.Got, ", "))
	}
	for i := range e.Expected {
		if e.Expected[i] != e.Got[i] {
			return fmt.Sprintf("section order error: position %d expected %q, got %q", i, e.Expected[i], e.Got[i])
		}
	}
	return "section order error"
}

// PageCountError reports a printed document that spans more pages than allowed.
type PageCountError struct {
	Pages    int
	MaxPages int
}

func (e *PageCountError) Error() string {
	return fmt.Sprintf("page count error: document has %d pages, limit is %d", e.Pages, e.MaxPages)
}

// CompilationError represents a LaTeX compilation failure
type CompilationError struct {
	Message   string
	LogOutput string
	Cause     error
}

func (e *CompilationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("LaTeX compilation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("LaTeX compilation error: %s", e.Message)
}

func (e *CompilationError) Unwrap() error {
	return e.Cause
}
