package ci

import (
	"context"
	"fmt"

	"github.com/xtask-base/xtask/internal/actions"
	"github.com/xtask-base/xtask/internal/log"
	"github.com/xtask-base/xtask/internal/platform"
	"github.com/xtask-base/xtask/internal/process"
)

// entry is a step in append order. Setup entries prepare a CI runner and are
// skipped when executing locally.
type entry struct {
	step  actions.Step
	setup bool
}

// Task is a named, platform scoped list of steps.
type Task struct {
	name      string
	platform  platform.Platform
	isNightly bool
	entries   []entry
}

// NewTask starts a task whose first step checks out the repository, installs
// rust and restores the build cache.
func NewTask(name string, p platform.Platform, rust *actions.Rust) *Task {
	t := &Task{
		name:      name,
		platform:  p,
		isNightly: rust.IsNightly(),
	}
	return t.Setup(actions.InstallRust(rust))
}

// Name returns the task name.
func (t *Task) Name() string { return t.name }

// Platform returns the platform the task runs on.
func (t *Task) Platform() platform.Platform { return t.platform }

// IsNightly reports whether the task's toolchain is a nightly channel.
func (t *Task) IsNightly() bool { return t.isNightly }

// ID returns the rendered job key, e.g. "tests-ubuntu-latest".
func (t *Task) ID() string { return t.name + "-" + t.platform.String() }

// Setup appends a step that only runs on CI runners.
func (t *Task) Setup(step actions.Step) *Task {
	t.entries = append(t.entries, entry{step: step, setup: true})
	return t
}

// SetupIf appends a setup step when condition holds.
func (t *Task) SetupIf(condition bool, step actions.Step) *Task {
	if condition {
		t.Setup(step)
	}
	return t
}

// Step appends a step. Its commands run both on CI and locally.
func (t *Task) Step(step actions.Step) *Task {
	t.entries = append(t.entries, entry{step: step})
	return t
}

// StepIf appends a step when condition holds.
func (t *Task) StepIf(condition bool, step actions.Step) *Task {
	if condition {
		t.Step(step)
	}
	return t
}

// Cmd appends a single command.
func (t *Task) Cmd(program string, args ...string) *Task {
	return t.Step(actions.Command(program, args...))
}

// CmdIf appends a single command when condition holds.
func (t *Task) CmdIf(condition bool, program string, args ...string) *Task {
	if condition {
		t.Cmd(program, args...)
	}
	return t
}

// Script appends a multi-line script, one argument vector per line.
func (t *Task) Script(lines ...[]string) *Task {
	return t.Step(actions.Script(lines...))
}

// cmdInDirs appends the command for the workspace root and then once for each
// extra workspace directory.
func (t *Task) cmdInDirs(dirs []string, program string, args ...string) *Task {
	t.Cmd(program, args...)
	for _, dir := range dirs {
		t.Step(actions.Command(program, args...).Dir(dir))
	}
	return t
}

// Tests appends codegen check, clippy, tests, build and docs.
func (t *Task) Tests(extraDirs []string) *Task {
	t.Cmd("cargo", "xtask", "codegen", "--check")
	t.cmdInDirs(extraDirs, "cargo", "clippy", "--all-targets", "--", "-D", "warnings", "-D", "clippy::all")
	t.cmdInDirs(extraDirs, "cargo", "test")
	t.cmdInDirs(extraDirs, "cargo", "build", "--all-targets")
	return t.cmdInDirs(extraDirs, "cargo", "doc")
}

// ReleaseTests appends the release mode test and benchmark run.
func (t *Task) ReleaseTests(extraDirs []string) *Task {
	return t.cmdInDirs(extraDirs, "cargo", "test", "--benches", "--tests", "--release")
}

// Lints appends the formatting check and the unused dependency scan.
func (t *Task) Lints(udepsVersion string, extraDirs []string) *Task {
	t.cmdInDirs(extraDirs, "cargo", "fmt", "--all", "--", "--check")
	t.Setup(actions.Install("cargo-udeps", udepsVersion))
	return t.cmdInDirs(extraDirs, "cargo", "udeps", "--all-targets")
}

// Job converts the task into a workflow job. Every task renders, whatever
// platform the generator runs on.
func (t *Task) Job() actions.Job {
	steps := make([]actions.Step, len(t.entries))
	for i, e := range t.entries {
		steps[i] = e.step
	}
	return actions.Job{Name: t.name, RunsOn: t.platform, Steps: steps}
}

// Commands returns what Execute would spawn on the task's platform.
func (t *Task) Commands() []process.Command {
	var cmds []process.Command
	for _, e := range t.entries {
		if e.setup {
			continue
		}
		for _, cmd := range e.step.Commands() {
			cmd.Toolchain = t.toolchain()
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

// Execute runs the task's commands in order when the task targets the
// executor's platform, and does nothing otherwise. The first failure stops the
// task.
func (t *Task) Execute(ctx context.Context, ex *Executor) error {
	logger := log.SubLogger(log.FromContext(ctx), t.ID())

	if t.platform != ex.Current {
		logger.Debug("skipping task for another platform", "current", ex.Current.String())
		return nil
	}

	ctx = log.IntoContext(ctx, logger)
	for _, e := range t.entries {
		if e.setup {
			continue
		}
		if err := actions.Execute(ctx, ex.Runner, t.toolchain(), e.step); err != nil {
			return fmt.Errorf("task %s: %w", t.ID(), err)
		}
	}

	return nil
}

// toolchain is the wrapper toolchain for local execution, empty for stable.
func (t *Task) toolchain() string {
	if t.isNightly {
		return actions.NightlyToolchain
	}
	return ""
}

// Executor runs tasks locally.
type Executor struct {
	Runner process.Runner
	// Current is the platform tasks must target to run.
	Current platform.Platform
}

// NewExecutor returns an executor for the host platform.
func NewExecutor(runner process.Runner) (*Executor, error) {
	current, err := platform.Current()
	if err != nil {
		return nil, err
	}
	return &Executor{Runner: runner, Current: current}, nil
}
