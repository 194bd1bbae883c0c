// Command example is a small test program built on the harness. It shows
// the pieces fitting together: a declared option, grouped leaves, skip
// and todo markers, and an assertion fault gated behind an option so the
// default run exits 0.
package main

import (
	"fmt"
	"strings"

	harness "github.com/harnesslab/harness"
	"github.com/harnesslab/harness/options"
	"github.com/harnesslab/harness/suite"
	"github.com/harnesslab/harness/types"
)

var Version = "v0.1.0"

func main() {
	reg := options.NewRegistry()
	reg.Declare(options.Option{
		Name:    "greeting",
		Default: "hello",
		CLIFlag: "greeting",
		EnvVar:  "EXAMPLE_GREETING",
		FileKey: "greeting",
		Usage:   "Greeting the tests check against",
	})
	reg.Declare(options.Option{
		Name:    "exercise-failure",
		Default: "false",
		CLIFlag: "exercise-failure",
		EnvVar:  "EXAMPLE_EXERCISE_FAILURE",
		FileKey: "exercise_failure",
		Usage:   "Run the deliberately failing test",
	})

	root := suite.Group("example",
		suite.Group("strings",
			suite.Leaf("upper", func(c *suite.Context) error {
				greeting := c.Options().Get("greeting")
				if greeting == "" {
					return types.NewAssertionError("greeting must not be empty", "")
				}
				if got := strings.ToUpper(greeting); !strings.EqualFold(got, greeting) {
					return types.NewAssertionError(
						fmt.Sprintf("expected %q to fold-match %q", got, greeting), "")
				}
				return nil
			}),
			suite.Leaf("deliberate failure", func(c *suite.Context) error {
				if !c.Options().GetBool("exercise-failure") {
					c.Skip("enable with -exercise-failure")
					return nil
				}
				return types.NewAssertionError(
					fmt.Sprintf("expected %q to equal %q", "hello", "goodbye"),
					`Raised at file "main.go", line 52, characters 5-11`)
			}),
		),
		suite.Leaf("scoped resources", func(c *suite.Context) error {
			dir, err := c.TempDir()
			if err != nil {
				return err
			}
			if dir == "" {
				return types.NewAssertionError("temp dir should not be empty", "")
			}
			return nil
		}),
		suite.Leaf("wiring pending", func(c *suite.Context) error {
			c.Todo("exercises the fixture server once it exists")
			return fmt.Errorf("fixture server not implemented")
		}),
	)

	harness.Main("example", "harness example suite", Version, reg, root)
}
