package genfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/xtask-base/xtask/internal/log"
)

// DriftError reports that a generated file differs from its on-disk content.
type DriftError struct {
	Path string
	// Diff lists the changed lines, existing content prefixed with "-" and
	// generated content with "+".
	Diff string
}

func (e *DriftError) Error() string {
	return fmt.Sprintf("differences found in file %q", e.Path)
}

// IsDrift reports whether err is, or wraps, a *DriftError.
func IsDrift(err error) bool {
	var d *DriftError
	return errors.As(err, &d)
}

// Update writes contents to path. When check is true it never writes; it
// compares the existing file with contents, ignoring line ending style, and
// returns a *DriftError if they differ.
func Update(ctx context.Context, path, contents string, check bool) error {
	logger := log.FromContext(ctx)

	if check {
		existing, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		want := normalize(contents)
		got := normalize(string(existing))
		if got != want {
			return &DriftError{Path: path, Diff: lineDiff(got, want)}
		}

		logger.Debug("up to date", "path", path)
		return nil
	}

	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, []byte(contents)) {
		logger.Debug("unchanged, skipping write", "path", path)
		return nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	logger.Debug("wrote file", "path", path)
	return nil
}

// normalize drops carriage returns before line feeds and the final newline so
// files checked out with Windows line endings compare equal.
func normalize(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return strings.TrimSuffix(strings.Join(lines, "\n"), "\n")
}

func lineDiff(existing, generated string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToRunes(existing+"\n", generated+"\n")
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(a, b, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix)
			out.WriteString(line)
		}
	}
	return out.String()
}
