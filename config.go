// Package harness is the execution core of an xUnit-style test framework:
// it organizes test cases into a named hierarchical suite, runs them under
// per-test contexts, classifies outcomes and aggregates them into a
// machine-checkable exit status and a human-readable report.
package harness

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/harnesslab/harness/flags"
	"github.com/harnesslab/harness/options"
)

// Config holds the resolved run configuration of one harness invocation.
type Config struct {
	Selection   [][]string // parsed -only-test label paths
	ListTests   bool
	Timeout     time.Duration
	Progress    bool
	ReportFile  string
	MetricsAddr string
	Options     *options.Snapshot
	Log         zerolog.Logger
}

// NewConfig builds a Config from the CLI context: it reads the framework
// flags, loads the optional key = value config file and resolves every
// declared option against CLI args, environment and file, in that order.
func NewConfig(cliCtx *cli.Context, log zerolog.Logger, reg *options.Registry) (*Config, error) {
	fileContents := ""
	if path := cliCtx.String(flags.ConfigFile.Name); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		fileContents = string(data)
	}

	var snapshot *options.Snapshot
	if reg != nil {
		snapshot = reg.Resolve(cliCtx, os.LookupEnv, fileContents)
	} else {
		snapshot = options.NewRegistry().Resolve(cliCtx, os.LookupEnv, fileContents)
	}

	cfg := &Config{
		Selection:   ParseSelection(cliCtx.StringSlice(flags.OnlyTest.Name)),
		ListTests:   cliCtx.Bool(flags.ListTests.Name),
		Timeout:     cliCtx.Duration(flags.Timeout.Name),
		Progress:    cliCtx.Bool(flags.Progress.Name),
		ReportFile:  cliCtx.String(flags.ReportFile.Name),
		MetricsAddr: cliCtx.String(flags.MetricsAddr.Name),
		Options:     snapshot,
		Log:         log,
	}

	log.Debug().
		Int("selection", len(cfg.Selection)).
		Bool("listTests", cfg.ListTests).
		Dur("timeout", cfg.Timeout).
		Str("reportFile", cfg.ReportFile).
		Msg("config resolved")
	return cfg, nil
}

// ParseSelection splits each -only-test value into its label sequence.
// Labels are colon-separated, matching the rendered path syntax without
// the ordinals.
func ParseSelection(raw []string) [][]string {
	var selection [][]string
	for _, entry := range raw {
		var labels []string
		for _, label := range strings.Split(entry, ":") {
			if label != "" {
				labels = append(labels, label)
			}
		}
		if len(labels) > 0 {
			selection = append(selection, labels)
		}
	}
	return selection
}
