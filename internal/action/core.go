package action

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sethvargo/go-githubactions"
)

// Core is the runner-facing side of the action.
type Core struct {
	gha    *githubactions.Action
	out    *lockedWriter
	getenv func(string) string
	setenv func(string, string) error

	mu     sync.Mutex
	failed bool
}

// Option configures a Core.
type Option func(*Core)

// WithSetenv replaces os.Setenv, used when PATH is updated.
func WithSetenv(fn func(key, value string) error) Option {
	return func(c *Core) {
		if fn != nil {
			c.setenv = fn
		}
	}
}

// New creates a Core writing workflow commands to out and reading the
// environment through getenv.
func New(out io.Writer, getenv func(string) string, opts ...Option) *Core {
	if getenv == nil {
		getenv = os.Getenv
	}
	w := &lockedWriter{w: out}
	c := &Core{
		gha: githubactions.New(
			githubactions.WithWriter(w),
			githubactions.WithGetenv(getenv),
		),
		out:    w,
		getenv: getenv,
		setenv: os.Setenv,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetInput returns the trimmed value of an action input, or "" if unset.
func (c *Core) GetInput(name string) string {
	return c.gha.GetInput(name)
}

// Getenv exposes the environment lookup the Core was built with.
func (c *Core) Getenv(key string) string {
	return c.getenv(key)
}

// Debug emits a debug message. The runner hides it unless step debug
// logging is enabled.
func (c *Core) Debug(msg string, keysAndValues ...interface{}) {
	c.gha.Debugf("%s", formatMessage(msg, keysAndValues...))
}

// Info writes a plain log line.
func (c *Core) Info(msg string, keysAndValues ...interface{}) {
	c.gha.Infof("%s", formatMessage(msg, keysAndValues...))
}

// Warn emits a warning annotation.
func (c *Core) Warn(msg string, keysAndValues ...interface{}) {
	c.gha.Warningf("%s", formatMessage(msg, keysAndValues...))
}

// Error emits an error annotation without failing the step.
func (c *Core) Error(msg string, keysAndValues ...interface{}) {
	c.gha.Errorf("%s", formatMessage(msg, keysAndValues...))
}

// SetFailed reports message as an error annotation and marks the action
// failed. The caller decides the exit code via Failed.
func (c *Core) SetFailed(message string) {
	c.mu.Lock()
	c.failed = true
	c.mu.Unlock()
	c.gha.Errorf("%s", message)
}

// Failed reports whether SetFailed has been called.
func (c *Core) Failed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failed
}

// StartGroup folds the following log lines under name until EndGroup.
func (c *Core) StartGroup(name string) {
	c.gha.Group(name)
}

// EndGroup closes the group opened by StartGroup.
func (c *Core) EndGroup() {
	c.gha.EndGroup()
}

// Write lets child process output be streamed into the job log.
func (c *Core) Write(p []byte) (int, error) {
	return c.out.Write(p)
}

// lockedWriter keeps log lines and streamed child output from
// interleaving mid-line.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// formatMessage appends key/value pairs to a log message as "k=v".
// A trailing key without a value is rendered as "k=<missing>".
func formatMessage(msg string, keysAndValues ...interface{}) string {
	if len(keysAndValues) == 0 {
		return msg
	}

	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		value := "<missing>"
		if i+1 < len(keysAndValues) {
			value = fmt.Sprint(keysAndValues[i+1])
		}
		fmt.Fprintf(&b, " %s=%s", key, value)
	}
	return b.String()
}
