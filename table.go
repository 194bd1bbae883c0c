package harness

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/harnesslab/harness/runner"
	"github.com/harnesslab/harness/types"
)

// printResultsTable prints the per-test results to the console, grouped
// under their group paths, with a totals footer. The table style follows
// the overall run status.
func (h *Harness) printResultsTable(result *runner.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("Test Results (%s)", formatDuration(result.Duration)))

	t.AppendHeader(table.Row{
		"Test", "Duration", "Status", "Message", "Location",
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Test", WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Duration", Align: text.AlignRight},
		{Name: "Message", WidthMax: 80, WidthMaxEnforcer: text.WrapSoft},
	})

	var lastGroup string
	for _, res := range result.Results {
		group := groupOf(res.Path)
		if group != lastGroup && group != "" {
			t.AppendRow(table.Row{group, "", "", "", ""})
			lastGroup = group
		}
		location := ""
		if res.Location != nil {
			location = res.Location.String()
		}
		name := res.Path[len(res.Path)-1].Label
		indent := ""
		if group != "" {
			indent = "└── "
		}
		t.AppendRow(table.Row{
			indent + name,
			formatDuration(res.Duration),
			statusString(res.Status),
			res.Message,
			location,
		})
	}

	switch result.Status {
	case types.StatusPass:
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	case types.StatusSkip:
		t.SetStyle(table.StyleColoredBlackOnYellowWhite)
	default:
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	}

	t.AppendFooter(table.Row{
		fmt.Sprintf("TOTAL %d", result.Stats.Total),
		formatDuration(result.Duration),
		statusString(result.Status),
		fmt.Sprintf("%d passed, %d failed, %d errored, %d skipped, %d todo",
			result.Stats.Passed, result.Stats.Failed, result.Stats.Errored,
			result.Stats.Skipped, result.Stats.Todo),
		"",
	})

	t.Render()
}

// groupOf renders the group portion of a leaf's path, without ordinals.
func groupOf(p types.Path) string {
	if len(p) < 2 {
		return ""
	}
	return strings.Join(p.Labels()[:len(p)-1], ":")
}

// statusString returns a marked string for a status cell.
func statusString(status types.Status) string {
	switch status {
	case types.StatusPass:
		return "✓ pass"
	case types.StatusSkip:
		return "- skip"
	case types.StatusTodo:
		return "~ todo"
	case types.StatusError:
		return "✗ error"
	default:
		return "✗ fail"
	}
}

// formatDuration formats the duration to seconds with 1 decimal place.
func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
