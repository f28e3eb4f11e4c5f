package actions

import (
	"fmt"
	"strings"

	shlex "github.com/anmitsu/go-shlex"

	"github.com/xtask-base/xtask/internal/process"
)

// Cmd is a program and its arguments.
type Cmd struct {
	Program string
	Args    []string
}

// NewCmd builds a Cmd from an argument vector. It panics on an empty vector
// or an empty program.
func NewCmd(argv ...string) Cmd {
	if len(argv) == 0 {
		panic("actions: can't extract executable from empty argument list")
	}
	if argv[0] == "" {
		panic("actions: empty program name")
	}
	return Cmd{Program: argv[0], Args: argv[1:]}
}

// String renders the command line as it appears in a `run:` entry.
func (c Cmd) String() string {
	if len(c.Args) == 0 {
		return c.Program
	}
	return c.Program + " " + strings.Join(c.Args, " ")
}

// Run is a `run:` step: one or more commands, optionally in a working
// directory.
type Run struct {
	cmds  []Cmd
	multi bool
	dir   string
}

// Command creates a step that runs a single command. It panics on an empty
// program.
func Command(program string, args ...string) *Run {
	return &Run{cmds: []Cmd{NewCmd(append([]string{program}, args...)...)}}
}

// Script creates a step that runs each argument vector in order. It is
// rendered as a block scalar with one command per line.
func Script(lines ...[]string) *Run {
	if len(lines) == 0 {
		panic("actions: script has no commands")
	}
	r := &Run{multi: true}
	for _, argv := range lines {
		r.cmds = append(r.cmds, NewCmd(argv...))
	}
	return r
}

// Sh creates a single command step from a command line literal, split with
// POSIX shell rules. It panics on an empty or malformed line.
func Sh(line string) *Run {
	argv, err := shlex.Split(line, true)
	if err != nil {
		panic(fmt.Sprintf("actions: parsing command line %q: %v", line, err))
	}
	r := &Run{}
	r.cmds = append(r.cmds, NewCmd(argv...))
	return r
}

// Install creates a step that installs a cargo binary at an exact version.
func Install(crate, version string) *Run {
	return Command("cargo", "install", crate, "--locked", "--version", version)
}

// Dir sets the working directory. An empty dir means the current directory.
func (r *Run) Dir(dir string) *Run {
	r.dir = dir
	return r
}

// WorkingDirectory returns the directory set with Dir.
func (r *Run) WorkingDirectory() string { return r.dir }

// Cmds returns the commands in order.
func (r *Run) Cmds() []Cmd { return append([]Cmd(nil), r.cmds...) }

func (r *Run) Commands() []process.Command {
	cmds := make([]process.Command, len(r.cmds))
	for i, c := range r.cmds {
		cmds[i] = process.Command{
			Program: c.Program,
			Args:    append([]string(nil), c.Args...),
			Dir:     r.dir,
		}
	}
	return cmds
}

func (r *Run) render(b *strings.Builder) {
	b.WriteString("    - ")

	if r.dir != "" {
		fmt.Fprintf(b, "working-directory: %s\n", r.dir)
		b.WriteString("      ")
	}

	if !r.multi && len(r.cmds) == 1 {
		fmt.Fprintf(b, "run: %s\n", r.cmds[0])
		return
	}

	b.WriteString("run: |\n")
	for _, c := range r.cmds {
		fmt.Fprintf(b, "        %s\n", c)
	}
}
