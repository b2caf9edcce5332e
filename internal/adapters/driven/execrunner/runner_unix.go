//go:build !windows

// Package execrunner replaces the current process with a training command.
package execrunner

import (
	"fmt"
	"os/exec"
	"syscall"

	"github.com/calvera-labs/vtrain-cli/internal/core/ports/driven"
)

// Compile-time check that Runner implements the driven port.
var _ driven.ProcessRunner = (*Runner)(nil)

// Runner executes commands by replacing the current process image, so the
// training process receives signals directly and its exit code becomes the
// container's exit code.
type Runner struct{}

// NewRunner creates a process runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Exec replaces the current process with argv. On success it never returns.
func (r *Runner) Exec(argv []string, env []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("exec: empty command")
	}

	path, err := exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("exec: locate %s: %w", argv[0], err)
	}

	if err := syscall.Exec(path, argv, env); err != nil {
		return fmt.Errorf("exec %s: %w", path, err)
	}

	return nil
}
