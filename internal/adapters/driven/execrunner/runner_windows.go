//go:build windows

// Package execrunner replaces the current process with a training command.
package execrunner

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/calvera-labs/vtrain-cli/internal/core/ports/driven"
)

// Compile-time check that Runner implements the driven port.
var _ driven.ProcessRunner = (*Runner)(nil)

// Runner executes commands as child processes. Windows has no execve, so
// the closest equivalent is running the command to completion and exiting
// with its status.
type Runner struct{}

// NewRunner creates a process runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Exec runs argv as a child process, mirrors its exit code, and never
// returns on success.
func (r *Runner) Exec(argv []string, env []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("exec: empty command")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		return fmt.Errorf("exec %s: %w", argv[0], err)
	}

	os.Exit(0)
	return nil
}
