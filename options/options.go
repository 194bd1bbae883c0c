// Package options is a declarative configuration registry: each option is
// declared once with a default and optionally a CLI flag spelling, an
// environment variable and a config-file key, then resolved in a single
// pass into an immutable snapshot. Precedence, highest first: CLI flag,
// environment variable, config-file value, default.
package options

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
)

// Option is one declared configuration knob. Values are strings at this
// level; the snapshot offers typed getters.
type Option struct {
	Name    string
	Default string
	CLIFlag string // flag spelling, empty = no flag
	EnvVar  string // environment variable name, empty = none
	FileKey string // config-file key, empty = none
	Usage   string
}

// Registry collects option declarations before resolution. Declarations
// happen during program initialization; redeclaring a name is a
// programmer error and panics.
type Registry struct {
	declared []Option
	byName   map[string]int
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Declare registers an option. It panics when name was already declared,
// since that makes the configuration surface ambiguous.
func (r *Registry) Declare(opt Option) {
	if opt.Name == "" {
		panic("options: declared option must have a name")
	}
	if _, ok := r.byName[opt.Name]; ok {
		panic(fmt.Sprintf("options: option %q declared twice", opt.Name))
	}
	r.byName[opt.Name] = len(r.declared)
	r.declared = append(r.declared, opt)
}

// CLIFlags materializes every declared option that has a flag spelling as
// a urfave/cli string flag, so declared options appear in -help and pick
// up their environment variable through the usual flag machinery.
func (r *Registry) CLIFlags() []cli.Flag {
	var flags []cli.Flag
	for _, opt := range r.declared {
		if opt.CLIFlag == "" {
			continue
		}
		f := &cli.StringFlag{
			Name:  opt.CLIFlag,
			Value: opt.Default,
			Usage: opt.Usage,
		}
		if opt.EnvVar != "" {
			f.EnvVars = []string{opt.EnvVar}
		}
		flags = append(flags, f)
	}
	return flags
}

// LookupEnv mirrors os.LookupEnv so resolution can be driven by any
// environment, test environments included.
type LookupEnv func(key string) (string, bool)

// Resolve probes, for each declared option in declaration order: the CLI
// flag (only when explicitly set), the environment, the parsed config
// file, then the default. The returned snapshot is immutable and safe to
// share by reference across all test contexts.
func (r *Registry) Resolve(cliCtx *cli.Context, env LookupEnv, fileContents string) *Snapshot {
	file := ParseFile(fileContents)
	values := make(map[string]string, len(r.declared))
	for _, opt := range r.declared {
		values[opt.Name] = resolveOne(opt, cliCtx, env, file)
	}
	return &Snapshot{values: values}
}

func resolveOne(opt Option, cliCtx *cli.Context, env LookupEnv, file map[string]string) string {
	if opt.CLIFlag != "" && cliCtx != nil && cliCtx.IsSet(opt.CLIFlag) {
		return cliCtx.String(opt.CLIFlag)
	}
	if opt.EnvVar != "" && env != nil {
		if v, ok := env(opt.EnvVar); ok {
			return v
		}
	}
	if opt.FileKey != "" {
		if v, ok := file[opt.FileKey]; ok {
			return v
		}
	}
	return opt.Default
}

// ParseFile parses the config-file format: one `key = value` per line,
// `#` introduces a trailing comment, surrounding whitespace is trimmed on
// both key and value, blank lines are ignored. Lines without `=` are
// ignored rather than rejected.
func ParseFile(contents string) map[string]string {
	values := make(map[string]string)
	for _, line := range strings.Split(contents, "\n") {
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.TrimSpace(value)
	}
	return values
}

// Snapshot is the immutable result of one resolution pass.
type Snapshot struct {
	values map[string]string
}

// Get returns the resolved value. Looking up an undeclared name is a
// programmer error and panics; end users never see it for declared names.
func (s *Snapshot) Get(name string) string {
	v, ok := s.values[name]
	if !ok {
		panic(fmt.Sprintf("options: option %q was never declared", name))
	}
	return v
}

// GetBool parses the resolved value as a boolean; unparseable values
// count as false.
func (s *Snapshot) GetBool(name string) bool {
	b, err := strconv.ParseBool(s.Get(name))
	return err == nil && b
}

// GetInt parses the resolved value as an integer, 0 when unparseable.
func (s *Snapshot) GetInt(name string) int {
	n, err := strconv.Atoi(s.Get(name))
	if err != nil {
		return 0
	}
	return n
}

// GetDuration parses the resolved value as a time.Duration, 0 when
// unparseable.
func (s *Snapshot) GetDuration(name string) time.Duration {
	d, err := time.ParseDuration(s.Get(name))
	if err != nil {
		return 0
	}
	return d
}
