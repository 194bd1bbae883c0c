package harness

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/harnesslab/harness/exitcodes"
	"github.com/harnesslab/harness/flags"
	"github.com/harnesslab/harness/options"
	"github.com/harnesslab/harness/suite"
)

// Main is the entrypoint a test program hands its suite to. It owns the
// CLI surface, the optional metrics endpoint, execution and reporting,
// and exits the process with the contract from exitcodes. reg may be nil
// when the program declares no options of its own.
func Main(name, usage, version string, reg *options.Registry, root *suite.Node) {
	app, err := NewApp(name, usage, version, reg, root)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitcodes.RuntimeErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = app.RunContext(ctx, os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(ExitCode(err))
}

// ExitCode maps a run error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return exitcodes.Success
	case IsRuntimeError(err):
		return exitcodes.RuntimeErr
	default:
		return exitcodes.TestFailure
	}
}

// NewApp assembles the cli application: framework flags plus every flag
// the declared options contribute. Flag collisions are fatal since they
// make the configuration surface ambiguous.
func NewApp(name, usage, version string, reg *options.Registry, root *suite.Node) (*cli.App, error) {
	appFlags := make([]cli.Flag, 0, len(flags.Flags))
	appFlags = append(appFlags, flags.Flags...)
	if reg != nil {
		appFlags = append(appFlags, reg.CLIFlags()...)
	}
	if err := flags.CheckUnique(appFlags); err != nil {
		return nil, fmt.Errorf("ambiguous configuration surface: %w", err)
	}

	app := cli.NewApp()
	app.Name = name
	app.Usage = usage
	app.Version = version
	app.Flags = appFlags
	app.Action = func(cliCtx *cli.Context) error {
		return run(cliCtx, reg, root)
	}
	// Error printing and exit codes are handled by Main; the default
	// handler would exit before the deferred cleanup runs.
	app.ExitErrHandler = func(*cli.Context, error) {}
	return app, nil
}

// run is the single cli action: resolve config, then list or execute.
func run(cliCtx *cli.Context, reg *options.Registry, root *suite.Node) error {
	log := newLogger(cliCtx.String(flags.LogLevel.Name))

	cfg, err := NewConfig(cliCtx, log, reg)
	if err != nil {
		return NewRuntimeError(fmt.Errorf("failed to create config: %w", err))
	}

	h, err := New(cfg, root)
	if err != nil {
		return NewRuntimeError(fmt.Errorf("failed to create harness: %w", err))
	}

	if cfg.ListTests {
		h.ListTests()
		return nil
	}

	ms := NewMetricsServer(log)
	ms.Start(cfg.MetricsAddr)
	defer ms.Shutdown()

	return h.Run(cliCtx.Context)
}

// newLogger builds the process logger at the requested level; unknown
// levels fall back to info.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()
}
