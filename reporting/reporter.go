// Package reporting consumes the ordered event stream of a run: it keeps
// running counts per outcome kind, prints one progress symbol per
// completed leaf and renders the final human-readable summary.
package reporting

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/harnesslab/harness/runner"
	"github.com/harnesslab/harness/types"
)

// symbols maps an outcome kind to its incremental progress mark.
var symbols = map[types.Status]string{
	types.StatusPass:  ".",
	types.StatusFail:  "F",
	types.StatusError: "E",
	types.StatusSkip:  "S",
	types.StatusTodo:  "T",
}

// Reporter accumulates results as they complete. Aggregation is pure
// accumulation; no leaf outcome ever makes the reporter itself fail.
type Reporter struct {
	out      io.Writer
	progress bool

	stats    types.Stats
	elapsed  time.Duration
	notOK    []*types.TestResult
}

// NewReporter writes progress to out when progress is enabled.
func NewReporter(out io.Writer, progress bool) *Reporter {
	return &Reporter{out: out, progress: progress}
}

// LeafCompleted implements runner.Listener.
func (r *Reporter) LeafCompleted(res *types.TestResult) {
	r.stats.Record(res.Status)
	r.elapsed += res.Duration
	if res.Status == types.StatusFail || res.Status == types.StatusError {
		r.notOK = append(r.notOK, res)
	}
	if r.progress {
		fmt.Fprint(r.out, symbols[res.Status])
	}
}

// Stats returns the counts accumulated so far.
func (r *Reporter) Stats() types.Stats {
	return r.stats
}

// OK reports current OK-ness: zero failed and zero errored leaves.
func (r *Reporter) OK() bool {
	return r.stats.OK()
}

// Summary renders the end-of-run report: counts by kind, total wall-clock
// duration, and for every failed or errored leaf its path, message and
// location when one was recovered.
func (r *Reporter) Summary(result *runner.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s finished in %.1fs (%.1fs in tests)\n",
		result.RunID, result.Duration.Seconds(), r.elapsed.Seconds())
	fmt.Fprintf(&b, "Total: %d, Passed: %d, Failed: %d, Errored: %d, Skipped: %d, Todo: %d\n",
		r.stats.Total, r.stats.Passed, r.stats.Failed, r.stats.Errored, r.stats.Skipped, r.stats.Todo)

	if len(r.notOK) > 0 {
		b.WriteString("\nNot OK:\n")
		for _, res := range r.notOK {
			fmt.Fprintf(&b, "  [%s] %s: %s", strings.ToUpper(string(res.Status)), res.Path, res.Message)
			if res.Location != nil {
				fmt.Fprintf(&b, " (%s)", res.Location)
			}
			b.WriteString("\n")
			for _, note := range res.Notes {
				fmt.Fprintf(&b, "      note: %s\n", note)
			}
		}
	}
	return b.String()
}
