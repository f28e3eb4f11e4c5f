package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/xtask-base/xtask/internal/config"
	"github.com/xtask-base/xtask/internal/platform"
	"github.com/xtask-base/xtask/internal/process"
	"github.com/xtask-base/xtask/internal/workspace"
)

type outputMode int

const (
	// captured keeps output for the caller, as cargo metadata needs.
	captured outputMode = iota
	// streamed shows output as it arrives.
	streamed
	// terminal hands the terminal to the child.
	terminal
)

// Process boundaries, replaced in tests.
var (
	newRunner = func(mode outputMode) process.Runner {
		switch mode {
		case captured:
			return &process.Exec{Quiet: true}
		case terminal:
			return &process.Exec{Terminal: true}
		default:
			return &process.Exec{}
		}
	}
	hostPlatform = platform.Current
)

// project is the workspace a command runs in together with its settings.
type project struct {
	ws  *workspace.Workspace
	cfg *config.Config
}

// inProject runs fn from the workspace root with the settings loaded.
func inProject(ctx context.Context, fn func(*project) error) error {
	settings := configPath
	if settings != "" {
		abs, err := filepath.Abs(settings)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", settings, err)
		}
		settings = abs
	}

	return workspace.InWorkspace(ctx, newRunner(captured), func(ws *workspace.Workspace) error {
		path := settings
		if path == "" {
			path = config.Path(ws.Root)
		}

		cfg, err := config.Load(path)
		if err != nil {
			return err
		}

		return fn(&project{ws: ws, cfg: cfg})
	})
}
