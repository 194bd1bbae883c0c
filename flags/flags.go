package flags

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

const EnvVarPrefix = "HARNESS"

// PrefixEnvVar derives the environment variable spelling for a flag.
func PrefixEnvVar(prefix, name string) []string {
	return []string{prefix + "_" + name}
}

var (
	OnlyTest = &cli.StringSliceFlag{
		Name:    "only-test",
		EnvVars: PrefixEnvVar(EnvVarPrefix, "ONLY_TEST"),
		Usage:   "Restrict execution to tests under the given label path (colon-separated, repeatable)",
	}
	ListTests = &cli.BoolFlag{
		Name:    "list-test",
		Value:   false,
		EnvVars: PrefixEnvVar(EnvVarPrefix, "LIST_TEST"),
		Usage:   "Enumerate all test label paths without executing anything",
	}
	ConfigFile = &cli.StringFlag{
		Name:    "config",
		Value:   "",
		EnvVars: PrefixEnvVar(EnvVarPrefix, "CONFIG"),
		Usage:   "Path to a key = value configuration file",
	}
	Timeout = &cli.DurationFlag{
		Name:    "timeout",
		Value:   0,
		EnvVars: PrefixEnvVar(EnvVarPrefix, "TIMEOUT"),
		Usage:   "Per-test watchdog timeout (e.g. '30s'). 0 disables the watchdog.",
	}
	Progress = &cli.BoolFlag{
		Name:    "progress",
		Value:   true,
		EnvVars: PrefixEnvVar(EnvVarPrefix, "PROGRESS"),
		Usage:   "Print one progress symbol per completed test",
	}
	ReportFile = &cli.StringFlag{
		Name:    "report",
		Value:   "",
		EnvVars: PrefixEnvVar(EnvVarPrefix, "REPORT"),
		Usage:   "Write the run report to this file as YAML",
	}
	MetricsAddr = &cli.StringFlag{
		Name:    "metrics-addr",
		Value:   "",
		EnvVars: PrefixEnvVar(EnvVarPrefix, "METRICS_ADDR"),
		Usage:   "Listen address for the Prometheus metrics endpoint (empty = disabled)",
	}
	LogLevel = &cli.StringFlag{
		Name:    "log-level",
		Value:   "info",
		EnvVars: PrefixEnvVar(EnvVarPrefix, "LOG_LEVEL"),
		Usage:   "Log level (trace, debug, info, warn, error)",
	}
)

var Flags = []cli.Flag{
	OnlyTest,
	ListTests,
	ConfigFile,
	Timeout,
	Progress,
	ReportFile,
	MetricsAddr,
	LogLevel,
}

// CheckUnique asserts that no spelling collides, including flags
// contributed by declared options. Collisions indicate an ambiguous
// configuration surface and are fatal.
func CheckUnique(flags []cli.Flag) error {
	seen := make(map[string]struct{})
	for _, flag := range flags {
		for _, name := range flag.Names() {
			if _, ok := seen[name]; ok {
				return fmt.Errorf("duplicate flag %s", name)
			}
			seen[name] = struct{}{}
		}
	}
	return nil
}
