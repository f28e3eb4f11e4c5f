package ci

import (
	"context"

	"github.com/xtask-base/xtask/internal/actions"
	"github.com/xtask-base/xtask/internal/platform"
)

// DefaultWorkflowName names the rendered workflow file.
const DefaultWorkflowName = "ci-tests"

// CI is the project's pipeline: trigger events plus tasks in declaration
// order.
type CI struct {
	name     string
	triggers []actions.Event
	tasks    []*Task
}

// New returns an empty pipeline rendered as the named workflow.
func New(name string) *CI {
	return &CI{name: name}
}

// Name returns the workflow name.
func (c *CI) Name() string { return c.name }

// On appends trigger events.
func (c *CI) On(events ...actions.Event) *CI {
	c.triggers = append(c.triggers, events...)
	return c
}

// Add appends tasks. Tasks with the same name and platform collide in the
// rendered workflow; keeping them distinct is the caller's job.
func (c *CI) Add(tasks ...*Task) *CI {
	c.tasks = append(c.tasks, tasks...)
	return c
}

// Tasks returns the tasks in declaration order.
func (c *CI) Tasks() []*Task { return append([]*Task(nil), c.tasks...) }

// StandardTests adds a "tests" task for every platform.
func (c *CI) StandardTests(rustVersion string, extraDirs []string) *CI {
	for _, p := range platform.Latest() {
		rust := actions.RustToolchain(rustVersion).Minimal().Default().Clippy()
		c.Add(NewTask("tests", p, rust).Tests(extraDirs))
	}
	return c
}

// StandardReleaseTests adds a "release-tests" task for every platform.
func (c *CI) StandardReleaseTests(rustVersion string, extraDirs []string) *CI {
	for _, p := range platform.Latest() {
		rust := actions.RustToolchain(rustVersion).Minimal().Default()
		c.Add(NewTask("release-tests", p, rust).ReleaseTests(extraDirs))
	}
	return c
}

// StandardLints adds a Linux "lints" task on the nightly toolchain.
func (c *CI) StandardLints(nightlyVersion, udepsVersion string, extraDirs []string) *CI {
	rust := actions.RustToolchain(nightlyVersion).Minimal().Default().Rustfmt()
	return c.Add(NewTask("lints", platform.UbuntuLatest, rust).Lints(udepsVersion, extraDirs))
}

// Options parameterize StandardWorkflow.
type Options struct {
	Name         string
	RustStable   string
	RustNightly  string
	UdepsVersion string
	ExtraDirs    []string
	// PushBranches restricts the push trigger. Empty means every branch.
	PushBranches []string
}

// DefaultOptions returns the toolchain versions the standard workflow pins.
func DefaultOptions() Options {
	return Options{
		Name:         DefaultWorkflowName,
		RustStable:   "1.73",
		RustNightly:  "nightly-2023-10-14",
		UdepsVersion: "0.1.43",
	}
}

// StandardWorkflow runs tests, release tests and lints on push and pull
// request.
func StandardWorkflow(opts Options) *CI {
	push := actions.Push()
	for _, branch := range opts.PushBranches {
		push.Branch(branch)
	}

	return New(opts.Name).
		On(push, actions.PullRequest()).
		StandardTests(opts.RustStable, opts.ExtraDirs).
		StandardReleaseTests(opts.RustStable, opts.ExtraDirs).
		StandardLints(opts.RustNightly, opts.UdepsVersion, opts.ExtraDirs)
}

// Workflow converts the pipeline into a GitHub Actions workflow.
func (c *CI) Workflow() *actions.Workflow {
	wf := actions.NewWorkflow(c.name).On(c.triggers...)
	for _, t := range c.tasks {
		job := t.Job()
		wf.AddJob(job.Name, job.RunsOn, job.Steps...)
	}
	return wf
}

// Write renders the workflow file, or in check mode verifies it is current.
func (c *CI) Write(ctx context.Context, check bool) error {
	return c.Workflow().Write(ctx, check)
}

// Execute runs every task in declaration order, one command at a time,
// stopping at the first failure.
func (c *CI) Execute(ctx context.Context, ex *Executor) error {
	for _, t := range c.tasks {
		if err := t.Execute(ctx, ex); err != nil {
			return err
		}
	}
	return nil
}
