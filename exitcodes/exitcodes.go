// Package exitcodes defines the standard exit codes used by the harness.
package exitcodes

// Exit code contract of a harness test binary:
//
// * Success (0): every executed leaf passed, was skipped or was todo;
//   also used by list and help modes, which execute nothing
// * TestFailure (1): at least one leaf failed or errored
// * RuntimeErr (2): the harness itself could not run (bad configuration,
//   broken tree, panics outside leaf bodies)
const (
	Success     = 0
	TestFailure = 1
	RuntimeErr  = 2
)
