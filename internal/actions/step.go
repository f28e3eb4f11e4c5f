package actions

import (
	"context"
	"strings"

	"github.com/xtask-base/xtask/internal/log"
	"github.com/xtask-base/xtask/internal/process"
)

// Step is one renderable and executable unit of a job. The implementations
// are Action, Run, the group returned by MultiStep and the no-op returned by
// Empty.
type Step interface {
	// Commands returns the commands the step runs when executed locally, in
	// order. Actions have no local meaning and return nil.
	Commands() []process.Command

	render(b *strings.Builder)
}

type emptyStep struct{}

// Empty returns a step that renders nothing and runs nothing.
func Empty() Step { return emptyStep{} }

func (emptyStep) Commands() []process.Command { return nil }
func (emptyStep) render(*strings.Builder)     {}

type multiStep []Step

// MultiStep groups steps. Rendering or executing the group is the same as
// rendering or executing each child in order.
func MultiStep(steps ...Step) Step {
	return multiStep(steps)
}

func (m multiStep) Commands() []process.Command {
	var cmds []process.Command
	for _, s := range m {
		cmds = append(cmds, s.Commands()...)
	}
	return cmds
}

func (m multiStep) render(b *strings.Builder) {
	for _, s := range m {
		s.render(b)
	}
}

// When returns step if condition holds, Empty otherwise.
func When(condition bool, step Step) Step {
	if condition {
		return step
	}
	return Empty()
}

// Execute runs the commands of steps in order, under toolchain when it is not
// empty, stopping at the first failure. Actions run nothing.
func Execute(ctx context.Context, runner process.Runner, toolchain string, steps ...Step) error {
	logger := log.FromContext(ctx)

	for _, cmd := range MultiStep(steps...).Commands() {
		cmd.Toolchain = toolchain
		logger.Info("running", "cmd", cmd.String(), "dir", cmd.Dir)
		if _, err := process.Check(ctx, runner, cmd); err != nil {
			return err
		}
	}

	return nil
}

// Render returns the YAML list items for steps, indented for a job's steps
// block.
func Render(steps ...Step) string {
	var b strings.Builder
	MultiStep(steps...).render(&b)
	return b.String()
}
