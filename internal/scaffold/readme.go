package scaffold

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/xtask-base/xtask/internal/genfile"
	"github.com/xtask-base/xtask/internal/process"
)

const (
	ReadmeTemplateName = "README.tmpl.md"
	ReadmeName         = "README.md"
)

// BuildReadme renders dir/README.tmpl.md into dir/README.md, or in check mode
// verifies README.md is current.
//
// The template has two functions:
//
//	{{ include "examples/basic.rs" }}  contents of a file
//	{{ shell "cargo run --example basic" }}  stdout of a shell command
//
// Paths and commands are relative to the current directory, not dir. A shell
// command that writes to stderr or exits non-zero fails the build.
func BuildReadme(ctx context.Context, runner process.Runner, dir string, check bool) error {
	src := filepath.Join(dir, ReadmeTemplateName)
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}

	rendered, err := renderReadme(ctx, runner, src, string(data))
	if err != nil {
		return err
	}

	return genfile.Update(ctx, filepath.Join(dir, ReadmeName), rendered, check)
}

func renderReadme(ctx context.Context, runner process.Runner, name, text string) (string, error) {
	funcs := template.FuncMap{
		"include": func(path string) (string, error) {
			data, err := os.ReadFile(path)
			if err != nil {
				return "", fmt.Errorf("including %s: %w", path, err)
			}
			return string(data), nil
		},
		"shell": func(line string) (string, error) {
			return process.Shell(ctx, runner, line)
		},
	}

	tmpl, err := template.New(name).
		Option("missingkey=error").
		Funcs(funcs).
		Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any{}); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}

	return buf.String(), nil
}
