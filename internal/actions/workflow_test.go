package actions

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/xtask-base/xtask/internal/genfile"
	"github.com/xtask-base/xtask/internal/platform"
)

const header = "# This file was generated by [xtask-base](https://github.com/simon-bourne/rust-xtask-base).\n" +
	"# Please do not edit!\n"

func TestWorkflowRendering(t *testing.T) {
	wf := NewWorkflow("basic").
		On(Push().Branch("main"), PullRequest()).
		AddJob("tests", platform.UbuntuLatest, Checkout(), Command("cargo", "test"))

	want := header +
		"name: basic\n" +
		"on:\n" +
		"  push:\n" +
		"    branches:\n" +
		"    - main\n" +
		"  pull_request:\n" +
		"jobs:\n" +
		"  tests-ubuntu-latest:\n" +
		"    runs-on: ubuntu-latest\n" +
		"    steps:\n" +
		"    - uses: actions/checkout@v3\n" +
		"    - run: cargo test\n"
	assert.Equal(t, want, wf.String())
	assert.NoError(t, wf.Validate())
}

func TestWorkflowPushWithoutBranches(t *testing.T) {
	wf := NewWorkflow("w").On(Push(), PullRequest())
	assert.Equal(t, header+"name: w\non:\n  push:\n  pull_request:\njobs:\n", wf.String())
}

func TestJobWithoutStepsRendersEmptyList(t *testing.T) {
	wf := NewWorkflow("w").On(Push()).AddJob("empty", platform.MacOSLatest)

	assert.Contains(t, wf.String(), "  empty-macos-latest:\n    runs-on: macos-latest\n    steps: []\n")

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(wf.String()), &doc))
	jobs := doc["jobs"].(map[string]any)
	job := jobs["empty-macos-latest"].(map[string]any)
	assert.Equal(t, []any{}, job["steps"])
}

func TestJobsOfOnlyEmptyStepsRenderEmptyList(t *testing.T) {
	wf := NewWorkflow("w").AddJob("noop", platform.UbuntuLatest, Empty(), MultiStep())
	assert.Contains(t, wf.String(), "    steps: []\n")
}

func TestRenderingIsDeterministic(t *testing.T) {
	build := func() *Workflow {
		wf := NewWorkflow("ci").On(Push(), PullRequest())
		for _, p := range platform.Latest() {
			wf.AddJob("tests", p, InstallRust(RustToolchain("1.73").Minimal()), Command("cargo", "test"))
		}
		return wf
	}

	assert.Equal(t, build().String(), build().String())
	wf := build()
	assert.Equal(t, wf.String(), wf.String())
}

func TestValidateRejectsCollidingJobs(t *testing.T) {
	wf := NewWorkflow("w").
		AddJob("tests", platform.UbuntuLatest, Command("cargo", "test")).
		AddJob("tests", platform.UbuntuLatest, Command("cargo", "doc"))

	assert.Error(t, wf.Validate())
}

func TestWriteKeepsRepeatedActionInputs(t *testing.T) {
	t.Chdir(t.TempDir())
	ctx := context.Background()

	wf := NewWorkflow("w").On(Push()).
		AddJob("j", platform.UbuntuLatest,
			NewAction("some/action@v1").With("path", "a").With("path", "b").Env("X", 1).Env("X", 2))

	require.NoError(t, wf.Validate())
	require.NoError(t, wf.Write(ctx, false))
	require.NoError(t, wf.Write(ctx, true))

	data, err := os.ReadFile(wf.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "        path: a\n        path: b\n")
}

func TestValidateRejectsMalformedYAML(t *testing.T) {
	wf := NewWorkflow("w").AddJob("j", platform.UbuntuLatest, Command("echo", "key:", "value"))
	assert.ErrorContains(t, wf.Validate(), "invalid YAML")
}

func TestWorkflowPath(t *testing.T) {
	assert.Equal(t, filepath.Join(".github", "workflows", "ci-tests.yml"), NewWorkflow("ci-tests").Path())
}

func TestWorkflowWriteThenCheck(t *testing.T) {
	t.Chdir(t.TempDir())
	ctx := context.Background()

	wf := NewWorkflow("ci-tests").On(Push(), PullRequest()).
		AddJob("tests", platform.WindowsLatest, Command("cargo", "test"))

	require.NoError(t, wf.Write(ctx, false))
	require.NoError(t, wf.Write(ctx, true))

	data, err := os.ReadFile(wf.Path())
	require.NoError(t, err)
	assert.Equal(t, wf.String(), string(data))

	require.NoError(t, os.WriteFile(wf.Path(), []byte("name: edited\n"), 0644))
	err = wf.Write(ctx, true)
	require.Error(t, err)
	assert.True(t, genfile.IsDrift(err))
	assert.Contains(t, err.Error(), wf.Path())

	data, err = os.ReadFile(wf.Path())
	require.NoError(t, err)
	assert.Equal(t, "name: edited\n", string(data))
}
