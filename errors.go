package harness

import (
	"errors"
	"fmt"

	"github.com/harnesslab/harness/types"
)

// RuntimeError represents an operational error that should lead to exit
// code 2: bad configuration, a broken tree, anything that means the test
// program itself is unwell rather than a test failing.
type RuntimeError struct {
	Err error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error: %v", e.Err)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// NewRuntimeError wraps err for the exit-code mapping.
func NewRuntimeError(err error) *RuntimeError {
	return &RuntimeError{Err: err}
}

// IsRuntimeError checks if the error is or wraps a RuntimeError.
func IsRuntimeError(err error) bool {
	var runtimeErr *RuntimeError
	return err != nil && errors.As(err, &runtimeErr)
}

// TestFailureError represents a run with failed or errored leaves (exit
// code 1). It carries the final counts so callers can render the not-OK
// verdict without re-deriving it from the report.
type TestFailureError struct {
	Stats types.Stats
}

func (e *TestFailureError) Error() string {
	return fmt.Sprintf("test failure: %d failed, %d errored of %d tests",
		e.Stats.Failed, e.Stats.Errored, e.Stats.Total)
}

// NewTestFailureError records the counts of a not-OK run.
func NewTestFailureError(stats types.Stats) *TestFailureError {
	return &TestFailureError{Stats: stats}
}

// IsTestFailureError checks if the error is or wraps a TestFailureError.
func IsTestFailureError(err error) bool {
	var testErr *TestFailureError
	return err != nil && errors.As(err, &testErr)
}
