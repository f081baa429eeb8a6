package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &Error{Message: "failed", Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "validation error: failed: boom", err.Error())
	assert.Equal(t, "validation error: failed", (&Error{Message: "failed"}).Error())
}

func TestCompilationError_Unwrap(t *testing.T) {
	cause := errors.New("exit status 1")
	err := &CompilationError{Message: "bad", Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "LaTeX compilation error: bad: exit status 1", err.Error())
}

func TestOrderError_Error(t *testing.T) {
	err := &OrderError{Expected: []string{"summary"}, Got: []string{}}
	assert.Equal(t, "section order error: expected 1 sections, rendered 0 (expected [summary], got [])", err.Error())
}
