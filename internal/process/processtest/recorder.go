// Package processtest provides a fake process.Runner that records every
// command instead of spawning it.
package processtest

import (
	"context"
	"strings"
	"sync"

	"github.com/xtask-base/xtask/internal/process"
)

// Recorder records commands and answers each one with a scripted result.
type Recorder struct {
	mu       sync.Mutex
	commands []process.Command

	// Results maps a command line (process.Command.String) to its result.
	// Commands without an entry succeed with empty output.
	Results map[string]Result
}

// Result is the scripted outcome of one command.
type Result struct {
	Output process.Output
	Err    error
}

// Fail scripts line to exit with code.
func (r *Recorder) Fail(line string, code int) *Recorder {
	return r.Respond(line, Result{Output: process.Output{ExitCode: code}})
}

// Respond scripts line to produce res.
func (r *Recorder) Respond(line string, res Result) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Results == nil {
		r.Results = make(map[string]Result)
	}
	r.Results[line] = res
	return r
}

// Run implements process.Runner.
func (r *Recorder) Run(_ context.Context, cmd process.Command) (*process.Output, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = append(r.commands, cmd)

	res := r.Results[cmd.String()]
	out := res.Output
	return &out, res.Err
}

// Commands returns every recorded command in spawn order.
func (r *Recorder) Commands() []process.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]process.Command(nil), r.commands...)
}

// Argvs returns the recorded argument vectors in spawn order.
func (r *Recorder) Argvs() [][]string {
	cmds := r.Commands()
	argvs := make([][]string, len(cmds))
	for i, c := range cmds {
		argvs[i] = c.Argv()
	}
	return argvs
}

// Lines returns the recorded commands as command lines.
func (r *Recorder) Lines() []string {
	cmds := r.Commands()
	lines := make([]string, len(cmds))
	for i, c := range cmds {
		lines[i] = c.String()
	}
	return lines
}

// String joins Lines with newlines, handy in failure messages.
func (r *Recorder) String() string {
	return strings.Join(r.Lines(), "\n")
}
