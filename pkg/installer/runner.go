package installer

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// CommandRunner executes an external command. The package-manager
// invocation goes through this interface so tests can capture the exact
// command line without spawning processes.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// execRunner runs commands with the host terminal's stdio attached, so
// package-manager progress bars and prompts work as usual.
type execRunner struct {
	dir string
}

// NewExecRunner creates a CommandRunner executing in the given working
// directory ("" means the current directory).
func NewExecRunner(dir string) CommandRunner {
	return &execRunner{dir: dir}
}

func (r *execRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}
