package suite

import (
	"fmt"
	"os"

	"github.com/harnesslab/harness/options"
)

// pendingFlag is the skip/todo marker a body may set at most once.
type pendingFlag int

const (
	flagNone pendingFlag = iota
	flagSkip
	flagTodo
)

// Context is the object handed to every running leaf. It is created fresh
// per invocation and owned exclusively by it; contexts are never shared.
type Context struct {
	opts *options.Snapshot

	flag   pendingFlag
	reason string

	releases []func() error
}

// NewContext builds a context around the resolved configuration snapshot.
// Called by the runner once per leaf.
func NewContext(opts *options.Snapshot) *Context {
	return &Context{opts: opts}
}

// Options exposes the resolved configuration, read-only from the test's
// perspective.
func (c *Context) Options() *options.Snapshot {
	return c.opts
}

// Skip marks the leaf as deliberately not run due to an unmet
// precondition. The body is expected to return promptly afterwards. The
// skip/todo flag is settable exactly once; a second set is a programmer
// error and panics.
func (c *Context) Skip(reason string) {
	c.setFlag(flagSkip, reason)
}

// Todo marks the leaf as declared-incomplete: a subsequent fault in the
// body is downgraded to a todo outcome instead of a failure or error.
func (c *Context) Todo(reason string) {
	c.setFlag(flagTodo, reason)
}

func (c *Context) setFlag(f pendingFlag, reason string) {
	if c.flag != flagNone {
		panic("suite: skip/todo flag already set for this test")
	}
	c.flag = f
	c.reason = reason
}

// SkipRequested reports whether the body asked to skip, and why.
func (c *Context) SkipRequested() (bool, string) {
	return c.flag == flagSkip, c.reason
}

// TodoRequested reports whether the body declared itself incomplete.
func (c *Context) TodoRequested() (bool, string) {
	return c.flag == flagTodo, c.reason
}

// Defer registers a scoped-resource release callback. Releases run in
// reverse-acquisition order when the leaf finishes, on every exit path.
func (c *Context) Defer(release func() error) {
	c.releases = append(c.releases, release)
}

// TempDir provisions a temporary directory scoped to the leaf; its
// removal is registered through Defer.
func (c *Context) TempDir() (string, error) {
	dir, err := os.MkdirTemp("", "harness-*")
	if err != nil {
		return "", fmt.Errorf("provisioning temp dir: %w", err)
	}
	c.Defer(func() error { return os.RemoveAll(dir) })
	return dir, nil
}

// Release runs the registered release callbacks LIFO and collects their
// errors. Called by the runner exactly once per leaf; the stack is
// consumed in the process.
func (c *Context) Release() []error {
	var errs []error
	for i := len(c.releases) - 1; i >= 0; i-- {
		if err := c.releases[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.releases = nil
	return errs
}
