// Package runner traverses a static test tree depth-first, applies the
// selection filter, executes each selected leaf inside a fresh context
// and classifies the outcome. Execution is strictly sequential: one leaf
// completes, releases its scoped resources and is reported before the
// next begins. Per-leaf faults are contained here and converted into
// result values; they never abort the run.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/harnesslab/harness/diag"
	"github.com/harnesslab/harness/options"
	"github.com/harnesslab/harness/suite"
	"github.com/harnesslab/harness/types"
)

// Entry is one runnable leaf discovered by traversal, addressed by its
// path from the root.
type Entry struct {
	Path types.Path
	Run  suite.Func
}

// Listener observes the ordered event stream of a run.
type Listener interface {
	LeafCompleted(res *types.TestResult)
}

type nopListener struct{}

func (nopListener) LeafCompleted(*types.TestResult) {}

// Config holds everything a runner needs; Root is required.
type Config struct {
	Root *suite.Node
	// Selection restricts execution to leaves whose label path is a
	// descendant-or-self of at least one entry. Empty means run all.
	Selection [][]string
	Options   *options.Snapshot
	// Timeout, when positive, bounds each leaf with an external watchdog.
	// Zero preserves the reference behavior: a hung leaf blocks the run.
	Timeout  time.Duration
	Log      zerolog.Logger
	Listener Listener
}

// Result is the full run report. The runner never terminates the
// process; deriving an exit status from OK-ness is the caller's job.
type Result struct {
	RunID    string
	Status   types.Status
	Duration time.Duration
	Stats    types.Stats
	Results  []*types.TestResult
}

// OK reports whether the run had zero failed and zero errored leaves.
func (r *Result) OK() bool {
	return r.Stats.OK()
}

// Runner executes one tree. Construct with New, run once with Run.
type Runner struct {
	cfg      Config
	entries  []Entry
	listener Listener
	log      zerolog.Logger
}

// New validates the configuration and enumerates the tree. Selection
// entries that match nothing are not an error; they simply select nothing.
func New(cfg Config) (*Runner, error) {
	if cfg.Root == nil {
		return nil, fmt.Errorf("runner: root node is required")
	}
	listener := cfg.Listener
	if listener == nil {
		listener = nopListener{}
	}
	return &Runner{
		cfg:      cfg,
		entries:  Collect(cfg.Root),
		listener: listener,
		log:      cfg.Log,
	}, nil
}

// Collect enumerates every leaf of the tree depth-first, left to right,
// assigning each its path. The root group is the suite's container: its
// name labels the run, not the paths, so its children start the address.
// Used both for execution order and for list-only mode, which must not
// run anything.
func Collect(root *suite.Node) []Entry {
	var entries []Entry
	var walk func(n *suite.Node, p types.Path)
	walk = func(n *suite.Node, p types.Path) {
		if n.IsLeaf() {
			entries = append(entries, Entry{Path: p, Run: n.Run})
			return
		}
		for i, child := range n.Children {
			walk(child, p.Append(child.Name, i))
		}
	}
	if root.IsLeaf() {
		walk(root, types.Path{}.Append(root.Name, 0))
		return entries
	}
	for i, child := range root.Children {
		walk(child, types.Path{}.Append(child.Name, i))
	}
	return entries
}

// Selected reports whether a leaf with the given label path survives the
// selection filter: it does when the filter is empty or some filter entry
// is a prefix of the labels (descendant-or-self).
func Selected(selection [][]string, labels []string) bool {
	if len(selection) == 0 {
		return true
	}
	for _, want := range selection {
		if isLabelPrefix(want, labels) {
			return true
		}
	}
	return false
}

func isLabelPrefix(prefix, labels []string) bool {
	if len(prefix) > len(labels) {
		return false
	}
	for i, l := range prefix {
		if labels[i] != l {
			return false
		}
	}
	return true
}

// Run walks the selected leaves in declaration order and returns the full
// report. ctx cancellation is honored between leaves, never inside one.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	result := &Result{RunID: uuid.New().String()}
	r.log.Info().Str("run_id", result.RunID).Int("leaves", len(r.entries)).Msg("starting run")

	start := time.Now()
	for _, entry := range r.entries {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run interrupted: %w", err)
		}
		if !Selected(r.cfg.Selection, entry.Path.Labels()) {
			continue
		}
		res := r.runLeaf(entry)
		result.Results = append(result.Results, res)
		result.Stats.Record(res.Status)
		r.listener.LeafCompleted(res)
	}
	result.Duration = time.Since(start)
	result.Status = deriveStatus(result.Stats)

	r.log.Info().
		Str("run_id", result.RunID).
		Str("status", string(result.Status)).
		Int("total", result.Stats.Total).
		Int("failed", result.Stats.Failed).
		Int("errored", result.Stats.Errored).
		Dur("duration", result.Duration).
		Msg("run completed")
	return result, nil
}

func deriveStatus(stats types.Stats) types.Status {
	switch {
	case !stats.OK():
		return types.StatusFail
	case stats.Total > 0 && stats.Passed == 0:
		return types.StatusSkip
	default:
		return types.StatusPass
	}
}

// runLeaf executes one leaf to completion and classifies the outcome.
func (r *Runner) runLeaf(entry Entry) *types.TestResult {
	c := suite.NewContext(r.cfg.Options)
	res := &types.TestResult{Path: entry.Path}
	r.log.Debug().Str("test", entry.Path.String()).Msg("running leaf")

	start := time.Now()
	out, timedOut := r.invoke(entry.Run, c)
	res.Duration = time.Since(start)

	if timedOut {
		// The body is still running; its context cannot be released safely.
		res.Status = types.StatusError
		res.Message = fmt.Sprintf("test timed out after %s", r.cfg.Timeout)
		res.Notes = append(res.Notes, "scoped resources not released: body still running")
		return res
	}

	classify(res, c, out)

	// Scoped resources go before the outcome is final, on every exit path.
	// A release failure escalates only when nothing else determined the
	// outcome; a fail, error or todo leaf keeps its status and records the
	// failure as a note (the todo marker suppresses this fault too).
	for _, err := range c.Release() {
		switch res.Status {
		case types.StatusFail, types.StatusError, types.StatusTodo:
			res.Notes = append(res.Notes, fmt.Sprintf("resource release failed: %v", err))
		default:
			res.Status = types.StatusError
			res.Message = fmt.Sprintf("resource release failed: %v", err)
		}
	}
	return res
}

// bodyOutcome is the raw completion of one leaf body before
// classification: its returned error, or the recovered panic value and
// the goroutine stack captured at the recovery point.
type bodyOutcome struct {
	err      error
	panicked bool
	panicVal any
	stack    string
}

// invoke runs the body, optionally under the watchdog. A true second
// return means the watchdog expired and out is meaningless.
func (r *Runner) invoke(fn suite.Func, c *suite.Context) (out bodyOutcome, timedOut bool) {
	if r.cfg.Timeout <= 0 {
		return execute(fn, c), false
	}
	done := make(chan bodyOutcome, 1)
	go func() {
		done <- execute(fn, c)
	}()
	select {
	case out = <-done:
		return out, false
	case <-time.After(r.cfg.Timeout):
		return bodyOutcome{}, true
	}
}

// classify applies the outcome rules: a todo flag downgrades any fault;
// a skip flag is honored at natural return only; assertion faults are
// failures, everything else escaping the body is an error.
func classify(res *types.TestResult, c *suite.Context, out bodyOutcome) {
	fault := out.err
	if out.panicked {
		if err, ok := out.panicVal.(error); ok {
			fault = err
		} else {
			fault = fmt.Errorf("panic: %v", out.panicVal)
		}
	}

	if todo, reason := c.TodoRequested(); todo {
		res.Status = types.StatusTodo
		res.Message = reason
		if fault != nil {
			res.Notes = append(res.Notes, fmt.Sprintf("suppressed fault: %v", fault))
		}
		return
	}

	if fault == nil {
		if skip, reason := c.SkipRequested(); skip {
			res.Status = types.StatusSkip
			res.Message = reason
			return
		}
		res.Status = types.StatusPass
		return
	}

	if ae, ok := types.AsAssertionError(fault); ok {
		res.Status = types.StatusFail
		res.Message = ae.Msg
		res.Location = diag.First(ae.Diagnostic)
		return
	}
	res.Status = types.StatusError
	res.Message = fault.Error()
	res.Location = diag.First(out.stack)
}

// execute is the single recovery point per leaf: the language's native
// fault propagation carries uncaught conditions here and no further.
func execute(fn suite.Func, c *suite.Context) (out bodyOutcome) {
	defer func() {
		if v := recover(); v != nil {
			out.panicked = true
			out.panicVal = v
			out.stack = captureStack()
		}
	}()
	out.err = fn(c)
	return out
}
