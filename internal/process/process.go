package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ToolchainWrapper is the program used to run a command under a specific
// toolchain: `rustup run <toolchain> <program> <args...>`.
const ToolchainWrapper = "rustup"

// Command describes one program invocation.
type Command struct {
	Program string
	Args    []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Toolchain, when set, runs Program through the toolchain wrapper.
	Toolchain string
}

// Argv returns the exact argument vector that will be spawned, including the
// toolchain wrapper when one is selected.
func (c Command) Argv() []string {
	if c.Toolchain != "" {
		argv := make([]string, 0, len(c.Args)+4)
		argv = append(argv, ToolchainWrapper, "run", c.Toolchain, c.Program)
		return append(argv, c.Args...)
	}

	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Program)
	return append(argv, c.Args...)
}

// String renders the argument vector as a single space separated line.
func (c Command) String() string {
	return strings.Join(c.Argv(), " ")
}

// Output captures the result of a process execution.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner spawns commands. A non-zero exit code is reported through
// Output.ExitCode, not as an error; the error return is for spawn failures.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Output, error)
}

// ExitError reports a command that ran but exited with a non-zero status.
type ExitError struct {
	Command Command
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command %q exited with code %d", e.Command.String(), e.Code)
}

// Check runs cmd and turns a non-zero exit code into an *ExitError.
func Check(ctx context.Context, r Runner, cmd Command) (*Output, error) {
	out, err := r.Run(ctx, cmd)
	if err != nil {
		return out, err
	}
	if out.ExitCode != 0 {
		return out, &ExitError{Command: cmd, Code: out.ExitCode}
	}
	return out, nil
}

// Exec runs commands with os/exec.
type Exec struct {
	// Stdout and Stderr receive the streamed output; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
	// Quiet disables streaming. Output is still captured.
	Quiet bool
	// Terminal connects the child directly to the terminal, without capture,
	// for interactive programs such as pagers.
	Terminal bool
}

// Run spawns cmd, streams its output and waits for it to finish.
func (e *Exec) Run(ctx context.Context, cmd Command) (*Output, error) {
	argv := cmd.Argv()
	if argv[0] == "" {
		return nil, errors.New("command has no program")
	}

	c := exec.CommandContext(ctx, argv[0], argv[1:]...)
	c.Dir = cmd.Dir
	c.Stdin = os.Stdin

	var stdoutBuf, stderrBuf bytes.Buffer
	switch {
	case e.Terminal:
		c.Stdout = writerOr(e.Stdout, os.Stdout)
		c.Stderr = writerOr(e.Stderr, os.Stderr)
	case e.Quiet:
		c.Stdout = &stdoutBuf
		c.Stderr = &stderrBuf
	default:
		c.Stdout = io.MultiWriter(writerOr(e.Stdout, os.Stdout), &stdoutBuf)
		c.Stderr = io.MultiWriter(writerOr(e.Stderr, os.Stderr), &stderrBuf)
	}

	err := c.Run()

	output := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			return output, nil
		}
		return output, fmt.Errorf("executing %q: %w", cmd.String(), err)
	}

	return output, nil
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}
	return w
}
