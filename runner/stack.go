package runner

import "runtime/debug"

// captureStack grabs the current goroutine stack at the recovery point so
// the locator can attempt to recover a source position from it.
func captureStack() string {
	return string(debug.Stack())
}
