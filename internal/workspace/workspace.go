package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/xtask-base/xtask/internal/log"
	"github.com/xtask-base/xtask/internal/process"
)

// MetadataCommand asks cargo for the workspace layout without resolving
// dependencies.
var MetadataCommand = process.Command{
	Program: "cargo",
	Args:    []string{"metadata", "--format-version", "1", "--no-deps"},
}

// Workspace is the subset of `cargo metadata` the xtask needs.
type Workspace struct {
	Root            string `json:"workspace_root"`
	TargetDirectory string `json:"target_directory"`
}

// TargetDir returns the cargo target directory, where generated artifacts
// such as shell completions go.
func (w *Workspace) TargetDir() string { return w.TargetDirectory }

// Discover runs cargo metadata from the current directory.
func Discover(ctx context.Context, runner process.Runner) (*Workspace, error) {
	out, err := process.Check(ctx, runner, MetadataCommand)
	if err != nil {
		return nil, fmt.Errorf("reading cargo metadata: %w", err)
	}
	return parseMetadata([]byte(out.Stdout))
}

func parseMetadata(data []byte) (*Workspace, error) {
	var ws Workspace
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("parsing cargo metadata: %w", err)
	}
	if ws.Root == "" {
		return nil, errors.New("parsing cargo metadata: workspace_root is missing")
	}
	return &ws, nil
}

// InWorkspace discovers the workspace, changes to its root and calls fn. The
// previous working directory is restored before InWorkspace returns, whether
// or not fn fails.
func InWorkspace(ctx context.Context, runner process.Runner, fn func(*Workspace) error) (err error) {
	ws, err := Discover(ctx, runner)
	if err != nil {
		return err
	}

	prev, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	if err := os.Chdir(ws.Root); err != nil {
		return fmt.Errorf("changing to workspace root: %w", err)
	}
	log.FromContext(ctx).Debug("entered workspace", "root", ws.Root)

	defer func() {
		if cdErr := os.Chdir(prev); cdErr != nil && err == nil {
			err = fmt.Errorf("restoring working directory %s: %w", prev, cdErr)
		}
	}()

	return fn(ws)
}
