package ci

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtask-base/xtask/internal/actions"
	"github.com/xtask-base/xtask/internal/log"
	"github.com/xtask-base/xtask/internal/platform"
	"github.com/xtask-base/xtask/internal/process"
	"github.com/xtask-base/xtask/internal/process/processtest"
)

func executorOn(p platform.Platform, rec *processtest.Recorder) *Executor {
	return &Executor{Runner: rec, Current: p}
}

func stable() *actions.Rust { return actions.RustToolchain("1.73").Minimal().Default() }

func TestOtherPlatformsAreNoOps(t *testing.T) {
	for _, current := range platform.Latest() {
		for _, p := range platform.Latest() {
			if p == current {
				continue
			}
			t.Run(current.String()+"/"+p.String(), func(t *testing.T) {
				rec := &processtest.Recorder{}
				task := NewTask("tests", p, stable()).Cmd("cargo", "test")

				require.NoError(t, task.Execute(context.Background(), executorOn(current, rec)))
				assert.Empty(t, rec.Commands())
			})
		}
	}
}

func TestCurrentPlatformRunsEveryRunStepInOrder(t *testing.T) {
	rec := &processtest.Recorder{}
	task := NewTask("tests", platform.UbuntuLatest, stable()).
		Cmd("cargo", "test").
		Step(actions.MultiStep(actions.Checkout(), actions.Command("cargo", "doc"), actions.Command("cargo", "build").Dir("fuzz"))).
		Script([]string{"cargo", "bench"}, []string{"cargo", "clean"})

	require.NoError(t, task.Execute(context.Background(), executorOn(platform.UbuntuLatest, rec)))
	assert.Equal(t, []string{"cargo test", "cargo doc", "cargo build", "cargo bench", "cargo clean"}, rec.Lines())
	assert.Equal(t, "fuzz", rec.Commands()[2].Dir)
}

func TestExecuteStopsAtFirstFailure(t *testing.T) {
	rec := (&processtest.Recorder{}).Fail("cargo test", 101)
	task := NewTask("tests", platform.MacOSLatest, stable()).
		Cmd("cargo", "build").
		Cmd("cargo", "test").
		Cmd("cargo", "doc")

	err := task.Execute(context.Background(), executorOn(platform.MacOSLatest, rec))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tests-macos-latest")

	var exitErr *process.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 101, exitErr.Code)
	assert.Equal(t, []string{"cargo build", "cargo test"}, rec.Lines())
}

func TestExecuteSurfacesSpawnErrors(t *testing.T) {
	spawnErr := errors.New("executable file not found")
	rec := (&processtest.Recorder{}).Respond("cargo build", processtest.Result{Err: spawnErr})
	task := NewTask("tests", platform.WindowsLatest, stable()).Cmd("cargo", "build").Cmd("cargo", "test")

	err := task.Execute(context.Background(), executorOn(platform.WindowsLatest, rec))
	assert.ErrorIs(t, err, spawnErr)
	assert.Len(t, rec.Commands(), 1)
}

func TestSetupStepsAreSkippedLocally(t *testing.T) {
	rec := &processtest.Recorder{}
	task := NewTask("lints", platform.UbuntuLatest, stable()).
		Setup(actions.Install("cargo-udeps", "0.1.43")).
		Cmd("cargo", "udeps")

	require.NoError(t, task.Execute(context.Background(), executorOn(platform.UbuntuLatest, rec)))
	assert.Equal(t, []string{"cargo udeps"}, rec.Lines())
}

func TestNightlyTaskRunsThroughToolchainWrapper(t *testing.T) {
	rec := &processtest.Recorder{}
	task := NewTask("lints", platform.UbuntuLatest, actions.RustToolchain("nightly-2023-10-14")).
		Cmd("cargo", "fmt", "--all").
		Step(actions.Command("cargo", "udeps").Dir("fuzz"))

	require.True(t, task.IsNightly())
	require.NoError(t, task.Execute(context.Background(), executorOn(platform.UbuntuLatest, rec)))

	assert.Equal(t, [][]string{
		{"rustup", "run", "nightly", "cargo", "fmt", "--all"},
		{"rustup", "run", "nightly", "cargo", "udeps"},
	}, rec.Argvs())
	assert.Equal(t, "fuzz", rec.Commands()[1].Dir)
}

func TestStableTaskRunsDirectly(t *testing.T) {
	rec := &processtest.Recorder{}
	task := NewTask("tests", platform.UbuntuLatest, stable()).Cmd("cargo", "fmt", "--all")

	require.False(t, task.IsNightly())
	require.NoError(t, task.Execute(context.Background(), executorOn(platform.UbuntuLatest, rec)))
	assert.Equal(t, [][]string{{"cargo", "fmt", "--all"}}, rec.Argvs())
}

func TestNightlyRenderingIsUnwrapped(t *testing.T) {
	task := NewTask("lints", platform.UbuntuLatest, actions.RustToolchain("nightly")).Cmd("cargo", "fmt")
	rendered := actions.NewWorkflow("w").AddJob(task.Job().Name, task.Platform(), task.Job().Steps...).String()

	assert.Contains(t, rendered, "    - run: cargo fmt\n")
	assert.NotContains(t, rendered, "rustup")
}

func TestTaskWithOnlySetupSpawnsNothing(t *testing.T) {
	rec := &processtest.Recorder{}
	task := NewTask("empty", platform.UbuntuLatest, stable())

	require.NoError(t, task.Execute(context.Background(), executorOn(platform.UbuntuLatest, rec)))
	assert.Empty(t, rec.Commands())
}

func TestConditionalBuilders(t *testing.T) {
	task := NewTask("t", platform.UbuntuLatest, stable()).
		CmdIf(true, "cargo", "test").
		CmdIf(false, "cargo", "miri").
		StepIf(false, actions.Command("cargo", "bench")).
		StepIf(true, actions.Command("cargo", "doc")).
		SetupIf(true, actions.Install("cargo-udeps", "0.1.43")).
		SetupIf(false, actions.Install("cargo-expand", "1.0.0"))

	var lines []string
	for _, c := range task.Commands() {
		lines = append(lines, c.String())
	}
	assert.Equal(t, []string{"cargo test", "cargo doc"}, lines)

	rendered := actions.Render(task.Job().Steps...)
	assert.Contains(t, rendered, "cargo-udeps")
	assert.NotContains(t, rendered, "cargo-expand")
}

func TestNewTaskStartsWithToolchainInstall(t *testing.T) {
	rust := stable().Clippy()
	task := NewTask("tests", platform.UbuntuLatest, rust)

	job := task.Job()
	require.Len(t, job.Steps, 1)
	assert.Equal(t, actions.Render(actions.InstallRust(rust)), actions.Render(job.Steps...))
}

func TestStepsKeepAppendOrder(t *testing.T) {
	task := NewTask("lints", platform.UbuntuLatest, actions.RustToolchain("nightly")).Lints("0.1.43", nil)

	want := actions.Render(actions.InstallRust(actions.RustToolchain("nightly"))) +
		"    - run: cargo fmt --all -- --check\n" +
		"    - run: cargo install cargo-udeps --locked --version 0.1.43\n" +
		"    - run: cargo udeps --all-targets\n"
	assert.Equal(t, want, actions.Render(task.Job().Steps...))
}

func TestExtraDirsRepeatCommands(t *testing.T) {
	task := NewTask("release-tests", platform.UbuntuLatest, stable()).ReleaseTests([]string{"fuzz", "examples"})

	cmds := task.Commands()
	require.Len(t, cmds, 3)
	for i, dir := range []string{"", "fuzz", "examples"} {
		assert.Equal(t, "cargo test --benches --tests --release", cmds[i].String())
		assert.Equal(t, dir, cmds[i].Dir)
	}
}

func TestTestsPreset(t *testing.T) {
	task := NewTask("tests", platform.UbuntuLatest, stable()).Tests([]string{"fuzz"})

	var got []string
	for _, c := range task.Commands() {
		got = append(got, c.Dir+":"+c.String())
	}
	assert.Equal(t, []string{
		":cargo xtask codegen --check",
		":cargo clippy --all-targets -- -D warnings -D clippy::all",
		"fuzz:cargo clippy --all-targets -- -D warnings -D clippy::all",
		":cargo test",
		"fuzz:cargo test",
		":cargo build --all-targets",
		"fuzz:cargo build --all-targets",
		":cargo doc",
		"fuzz:cargo doc",
	}, got)
}

func TestExecuteLogsUnderTaskPrefix(t *testing.T) {
	var buf bytes.Buffer
	ctx := log.IntoContext(context.Background(), slog.New(log.NewHandlerWithOptions(&buf, "xtask", false)))
	task := NewTask("tests", platform.UbuntuLatest, stable()).Cmd("cargo", "test")

	require.NoError(t, task.Execute(ctx, executorOn(platform.UbuntuLatest, &processtest.Recorder{})))
	assert.Contains(t, buf.String(), "xtask/tests-ubuntu-latest")
	assert.Contains(t, buf.String(), "cargo test")
}
