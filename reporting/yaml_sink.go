package reporting

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harnesslab/harness/runner"
)

// reportDoc is the persisted shape of a run report.
type reportDoc struct {
	RunID    string          `yaml:"run_id"`
	Status   string          `yaml:"status"`
	Duration string          `yaml:"duration"`
	Stats    reportStats     `yaml:"stats"`
	Tests    []reportTestDoc `yaml:"tests"`
}

type reportStats struct {
	Total   int `yaml:"total"`
	Passed  int `yaml:"passed"`
	Failed  int `yaml:"failed"`
	Errored int `yaml:"errored"`
	Skipped int `yaml:"skipped"`
	Todo    int `yaml:"todo"`
}

type reportTestDoc struct {
	Path     string   `yaml:"path"`
	Status   string   `yaml:"status"`
	Message  string   `yaml:"message,omitempty"`
	Location string   `yaml:"location,omitempty"`
	Duration string   `yaml:"duration"`
	Notes    []string `yaml:"notes,omitempty"`
}

// WriteYAML persists the run report as a YAML artifact at path, for
// machine consumption after the process has exited.
func WriteYAML(result *runner.Result, path string) error {
	doc := reportDoc{
		RunID:    result.RunID,
		Status:   string(result.Status),
		Duration: formatDuration(result.Duration),
		Stats: reportStats{
			Total:   result.Stats.Total,
			Passed:  result.Stats.Passed,
			Failed:  result.Stats.Failed,
			Errored: result.Stats.Errored,
			Skipped: result.Stats.Skipped,
			Todo:    result.Stats.Todo,
		},
	}
	for _, res := range result.Results {
		t := reportTestDoc{
			Path:     res.Path.String(),
			Status:   string(res.Status),
			Message:  res.Message,
			Duration: formatDuration(res.Duration),
			Notes:    res.Notes,
		}
		if res.Location != nil {
			t.Location = res.Location.String()
		}
		doc.Tests = append(doc.Tests, t)
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report to %s: %w", path, err)
	}
	return nil
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.3fs", d.Seconds())
}
