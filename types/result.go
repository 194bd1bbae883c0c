// Package types contains the shared leaf-level types of the harness:
// tree addresses, outcome statuses and per-test results.
package types

import (
	"time"

	"github.com/harnesslab/harness/diag"
)

// Status classifies the outcome of executing one leaf.
type Status string

const (
	StatusPass  Status = "pass"
	StatusFail  Status = "fail"  // an assertion the test author wrote did not hold
	StatusError Status = "error" // any other uncaught fault
	StatusSkip  Status = "skip"
	StatusTodo  Status = "todo" // declared incomplete; faults inside are downgraded
)

// TestResult captures the outcome of a single leaf run.
type TestResult struct {
	Path     Path
	Status   Status
	Message  string
	Location *diag.Location // recovered from diagnostic text, may be nil
	Duration time.Duration
	Notes    []string // secondary findings that did not determine the status
}

// Stats tracks counts per outcome kind at run level.
type Stats struct {
	Total   int
	Passed  int
	Failed  int
	Errored int
	Skipped int
	Todo    int
}

// Record counts one result.
func (s *Stats) Record(status Status) {
	s.Total++
	switch status {
	case StatusPass:
		s.Passed++
	case StatusFail:
		s.Failed++
	case StatusError:
		s.Errored++
	case StatusSkip:
		s.Skipped++
	case StatusTodo:
		s.Todo++
	}
}

// OK reports whether the run holds: no failed and no errored leaves.
// Skipped and todo leaves do not affect OK-ness.
func (s Stats) OK() bool {
	return s.Failed == 0 && s.Errored == 0
}
