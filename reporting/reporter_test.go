package reporting

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harnesslab/harness/diag"
	"github.com/harnesslab/harness/runner"
	"github.com/harnesslab/harness/types"
)

func result(labels []string, status types.Status, msg string) *types.TestResult {
	p := types.Path{}
	for i, l := range labels {
		p = p.Append(l, i)
	}
	return &types.TestResult{
		Path:     p,
		Status:   status,
		Message:  msg,
		Duration: 10 * time.Millisecond,
	}
}

func TestReporterProgressSymbols(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, true)

	r.LeafCompleted(result([]string{"a"}, types.StatusPass, ""))
	r.LeafCompleted(result([]string{"b"}, types.StatusFail, "boom"))
	r.LeafCompleted(result([]string{"c"}, types.StatusError, "bang"))
	r.LeafCompleted(result([]string{"d"}, types.StatusSkip, ""))
	r.LeafCompleted(result([]string{"e"}, types.StatusTodo, ""))

	assert.Equal(t, ".FEST", buf.String())
}

func TestReporterProgressDisabled(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, false)
	r.LeafCompleted(result([]string{"a"}, types.StatusPass, ""))
	assert.Empty(t, buf.String())
}

func TestReporterStatsAndOK(t *testing.T) {
	r := NewReporter(&bytes.Buffer{}, false)
	r.LeafCompleted(result([]string{"a"}, types.StatusPass, ""))
	r.LeafCompleted(result([]string{"b"}, types.StatusSkip, ""))
	r.LeafCompleted(result([]string{"c"}, types.StatusTodo, ""))
	assert.True(t, r.OK())
	assert.Equal(t, 3, r.Stats().Total)

	r.LeafCompleted(result([]string{"d"}, types.StatusFail, "boom"))
	assert.False(t, r.OK())
	assert.Equal(t, 1, r.Stats().Failed)
}

func TestSummaryListsEveryNotOKLeaf(t *testing.T) {
	r := NewReporter(&bytes.Buffer{}, false)

	failed := result([]string{"suite", "b"}, types.StatusFail, "expected 1, got 2")
	failed.Location = &diag.Location{File: "foo.ml", Line: 12}
	failed.Notes = []string{"resource release failed: unmount failed"}
	errored := result([]string{"suite", "c"}, types.StatusError, "connection refused")

	r.LeafCompleted(result([]string{"suite", "a"}, types.StatusPass, ""))
	r.LeafCompleted(failed)
	r.LeafCompleted(errored)

	summary := r.Summary(&runner.Result{
		RunID:    "run-1",
		Status:   types.StatusFail,
		Duration: 42 * time.Millisecond,
		Stats:    r.Stats(),
	})

	assert.Contains(t, summary, "Total: 3, Passed: 1, Failed: 1, Errored: 1")
	assert.Contains(t, summary, "suite:0:b:1")
	assert.Contains(t, summary, "expected 1, got 2")
	assert.Contains(t, summary, "foo.ml:12")
	assert.Contains(t, summary, "note: resource release failed")
	assert.Contains(t, summary, "suite:0:c:1")
	assert.Contains(t, summary, "connection refused")
}

func TestWriteYAML(t *testing.T) {
	failed := result([]string{"suite", "b"}, types.StatusFail, "boom")
	failed.Location = &diag.Location{File: "foo.ml", Line: 12}

	res := &runner.Result{
		RunID:    "run-1",
		Status:   types.StatusFail,
		Duration: time.Second,
		Results: []*types.TestResult{
			result([]string{"suite", "a"}, types.StatusPass, ""),
			failed,
		},
	}
	res.Stats.Record(types.StatusPass)
	res.Stats.Record(types.StatusFail)

	path := t.TempDir() + "/report.yaml"
	require.NoError(t, WriteYAML(res, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	data := string(raw)
	assert.Contains(t, data, "run_id: run-1")
	assert.Contains(t, data, "status: fail")
	assert.Contains(t, data, "suite:0:b:1")
	assert.Contains(t, data, "location: foo.ml:12")
}
