// Package run invokes the external binaries (basecallers, duplex_tools)
// the workflows are built from.
package run

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/asan-emirsaleh/duplex-basecall/internal/console"
)

// Command is a single invocation of an external binary.
type Command struct {
	// Name of the executable, looked up on $PATH if it has no separator
	Name string

	// Args passed to the executable
	Args []string

	// Stdout receives the command's standard output. When nil, stdout is
	// captured together with stderr for error reporting.
	Stdout io.Writer
}

// String is the command line, as echoed before running it.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Runner executes commands. Implementations block until the command exits.
type Runner interface {
	Run(ctx context.Context, c Command) error
}

// Error is returned for a command that failed to start or exited non-zero.
type Error struct {
	// Command that failed
	Command Command

	// ExitCode of the process, -1 if it never started or was killed
	ExitCode int

	// Stderr is the captured error output
	Stderr string

	err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("command '%s' failed: %v", e.Command, e.err)
}

// Unwrap returns the underlying exec error.
func (e *Error) Unwrap() error {
	return e.err
}

// Exec runs commands as subprocesses.
type Exec struct {
	// Console to echo commands and report failures to
	Console *console.Console

	// Echo prints each command before it's run
	Echo bool
}

// NewExec returns an Exec that echoes to c.
func NewExec(c *console.Console) *Exec {
	return &Exec{Console: c, Echo: true}
}

// Run starts the command and waits on it to finish. On a non-zero exit the
// command's error output is logged and an *Error is returned for the
// caller to report.
func (e *Exec) Run(ctx context.Context, c Command) error {
	if e.Echo {
		e.Console.Dimf("Running command: %s", c)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Stderr = &stderr
	if c.Stdout != nil {
		cmd.Stdout = c.Stdout
	} else {
		cmd.Stdout = &stderr
	}

	if err := cmd.Run(); err != nil {
		runErr := &Error{
			Command:  c,
			ExitCode: -1,
			Stderr:   stderr.String(),
			err:      err,
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			runErr.ExitCode = exitErr.ExitCode()
		}

		if runErr.Stderr != "" {
			e.Console.Failf("Error output: %s", runErr.Stderr)
		}
		return runErr
	}

	return nil
}

// Missing returns the executables, of those passed, that can't be found.
func Missing(names ...string) (missing []string) {
	for _, name := range names {
		if _, err := exec.LookPath(name); err != nil {
			missing = append(missing, name)
		}
	}
	return
}
