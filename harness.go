package harness

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/harnesslab/harness/metrics"
	"github.com/harnesslab/harness/reporting"
	"github.com/harnesslab/harness/runner"
	"github.com/harnesslab/harness/suite"
	"github.com/harnesslab/harness/types"
)

// Harness binds a suite tree to one configured run.
type Harness struct {
	config   *Config
	root     *suite.Node
	reporter *reporting.Reporter
	runner   *runner.Runner
	result   *runner.Result
}

// New wires the runner and the reporter for the given tree.
func New(config *Config, root *suite.Node) (*Harness, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}
	if root == nil {
		return nil, errors.New("root node is required")
	}

	reporter := reporting.NewReporter(os.Stdout, config.Progress)
	r, err := runner.New(runner.Config{
		Root:      root,
		Selection: config.Selection,
		Options:   config.Options,
		Timeout:   config.Timeout,
		Log:       config.Log,
		Listener:  &recordingListener{reporter: reporter},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}

	return &Harness{
		config:   config,
		root:     root,
		reporter: reporter,
		runner:   r,
	}, nil
}

// recordingListener fans each completed leaf out to the reporter and the
// metrics counters.
type recordingListener struct {
	reporter *reporting.Reporter
}

func (l *recordingListener) LeafCompleted(res *types.TestResult) {
	l.reporter.LeafCompleted(res)
	metrics.RecordLeaf(res.Status)
}

// ListTests prints every leaf's address and label path, one per line,
// executing nothing.
func (h *Harness) ListTests() {
	for _, entry := range runner.Collect(h.root) {
		fmt.Printf("%s\t%s\n", entry.Path, strings.Join(entry.Path.Labels(), ":"))
	}
}

// Run executes the suite once and renders the report. It returns a
// TestFailureError when the run is not OK, a RuntimeError when the run
// could not complete or an OK run's report artifact could not be
// written, and nil otherwise; the exit code is derived from that by
// the caller.
func (h *Harness) Run(ctx context.Context) error {
	result, err := h.runner.Run(ctx)
	if err != nil {
		metrics.RecordError("run aborted")
		return NewRuntimeError(err)
	}
	h.result = result

	if h.config.Progress {
		fmt.Println()
	}
	h.printResultsTable(result)
	fmt.Println(h.reporter.Summary(result))
	metrics.RecordRun(result.RunID, result.Status, result.Duration)

	// A report-write failure must not mask the test verdict: after a
	// not-OK run it is logged and the exit code keeps reflecting the tests.
	var artifactErr error
	if h.config.ReportFile != "" {
		if err := reporting.WriteYAML(result, h.config.ReportFile); err != nil {
			h.config.Log.Error().Err(err).Str("path", h.config.ReportFile).Msg("failed to write report artifact")
			metrics.RecordError("report artifact write failed")
			artifactErr = err
		}
	}

	h.config.Log.Info().
		Str("run_id", result.RunID).
		Str("status", string(result.Status)).
		Msg("run finished")

	if !result.OK() {
		return NewTestFailureError(result.Stats)
	}
	if artifactErr != nil {
		return NewRuntimeError(artifactErr)
	}
	return nil
}

// Result returns the report of the last completed run, nil before it.
func (h *Harness) Result() *runner.Result {
	return h.result
}
