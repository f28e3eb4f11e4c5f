package process

import (
	"context"
	"fmt"
	"runtime"
)

// ShellCommand wraps a command line so it is interpreted by the system shell.
func ShellCommand(line string) Command {
	if runtime.GOOS == "windows" {
		return Command{Program: "cmd", Args: []string{"/C", line}}
	}
	return Command{Program: "sh", Args: []string{"-c", line}}
}

// Shell runs line through the system shell and returns its stdout. Anything
// written to stderr is treated as a failure, as is a non-zero exit.
func Shell(ctx context.Context, r Runner, line string) (string, error) {
	out, err := r.Run(ctx, ShellCommand(line))
	if err != nil {
		return "", err
	}

	if out.Stderr != "" {
		return "", fmt.Errorf("shell command %q wrote to stderr:\n\n%s", line, out.Stderr)
	}

	if out.ExitCode != 0 {
		return "", fmt.Errorf("shell command %q exited with code %d", line, out.ExitCode)
	}

	return out.Stdout, nil
}
