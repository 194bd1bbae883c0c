package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func envFrom(m map[string]string) LookupEnv {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// resolveWith runs a throwaway cli app so resolution sees a real flag set.
func resolveWith(t *testing.T, reg *Registry, args []string, env LookupEnv, file string) *Snapshot {
	t.Helper()
	var snap *Snapshot
	app := cli.NewApp()
	app.Flags = reg.CLIFlags()
	app.Action = func(c *cli.Context) error {
		snap = reg.Resolve(c, env, file)
		return nil
	}
	require.NoError(t, app.Run(append([]string{"test"}, args...)))
	require.NotNil(t, snap)
	return snap
}

func newTestRegistry() *Registry {
	reg := NewRegistry()
	reg.Declare(Option{
		Name:    "color",
		Default: "plain",
		CLIFlag: "color",
		EnvVar:  "TEST_COLOR",
		FileKey: "color",
	})
	return reg
}

func TestResolvePrecedence(t *testing.T) {
	env := envFrom(map[string]string{"TEST_COLOR": "green"})
	file := "color = blue"

	t.Run("cli wins over everything", func(t *testing.T) {
		snap := resolveWith(t, newTestRegistry(), []string{"--color", "red"}, env, file)
		assert.Equal(t, "red", snap.Get("color"))
	})

	t.Run("env wins over file and default", func(t *testing.T) {
		snap := resolveWith(t, newTestRegistry(), nil, env, file)
		assert.Equal(t, "green", snap.Get("color"))
	})

	t.Run("file wins over default", func(t *testing.T) {
		snap := resolveWith(t, newTestRegistry(), nil, envFrom(nil), file)
		assert.Equal(t, "blue", snap.Get("color"))
	})

	t.Run("default when nothing else is set", func(t *testing.T) {
		snap := resolveWith(t, newTestRegistry(), nil, envFrom(nil), "")
		assert.Equal(t, "plain", snap.Get("color"))
	})
}

func TestDeclareTwicePanics(t *testing.T) {
	reg := newTestRegistry()
	assert.Panics(t, func() {
		reg.Declare(Option{Name: "color", Default: "other"})
	})
}

func TestDeclareUnnamedPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewRegistry().Declare(Option{Default: "x"})
	})
}

func TestGetUndeclaredPanics(t *testing.T) {
	snap := resolveWith(t, newTestRegistry(), nil, envFrom(nil), "")
	assert.Panics(t, func() {
		snap.Get("nope")
	})
}

func TestParseFile(t *testing.T) {
	contents := `
# a full-line comment
color = blue
  retries =  3   # trailing comment
verbose=true

malformed line without equals
 = valueless key is ignored
empty =
`
	values := ParseFile(contents)
	assert.Equal(t, map[string]string{
		"color":   "blue",
		"retries": "3",
		"verbose": "true",
		"empty":   "",
	}, values)
}

func TestTypedGetters(t *testing.T) {
	reg := NewRegistry()
	reg.Declare(Option{Name: "verbose", Default: "true", FileKey: "verbose"})
	reg.Declare(Option{Name: "retries", Default: "3", FileKey: "retries"})
	reg.Declare(Option{Name: "wait", Default: "1500ms", FileKey: "wait"})
	reg.Declare(Option{Name: "garbage", Default: "not-a-number", FileKey: "garbage"})
	snap := reg.Resolve(nil, nil, "")

	assert.True(t, snap.GetBool("verbose"))
	assert.Equal(t, 3, snap.GetInt("retries"))
	assert.Equal(t, "1500ms", snap.Get("wait"))
	assert.Equal(t, 1500, int(snap.GetDuration("wait").Milliseconds()))
	assert.False(t, snap.GetBool("garbage"))
	assert.Equal(t, 0, snap.GetInt("garbage"))
	assert.Zero(t, snap.GetDuration("garbage"))
}

func TestCLIFlagsOnlyForFlaggedOptions(t *testing.T) {
	reg := NewRegistry()
	reg.Declare(Option{Name: "flagged", Default: "x", CLIFlag: "flagged", EnvVar: "TEST_FLAGGED"})
	reg.Declare(Option{Name: "file-only", Default: "y", FileKey: "file_only"})

	cliFlags := reg.CLIFlags()
	require.Len(t, cliFlags, 1)
	assert.Equal(t, "flagged", cliFlags[0].Names()[0])

	sf, ok := cliFlags[0].(*cli.StringFlag)
	require.True(t, ok)
	assert.Equal(t, []string{"TEST_FLAGGED"}, sf.EnvVars)
}
