package cli

import (
	"context"
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/xtask-base/xtask/internal/log"
	"github.com/xtask-base/xtask/internal/process"
)

func init() {
	rootCmd.AddCommand(fmtCmd, udepsCmd, macroExpandCmd)
}

var fmtCmd = &cobra.Command{
	Use:   "fmt",
	Short: "Format all code",
	Long:  `Run "cargo +nightly fmt --all" in every extra workspace directory, then in the workspace root.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return inProject(ctx, func(p *project) error {
			for _, dir := range p.cfg.ExtraWorkspaceDirs {
				if err := run(ctx, newRunner(streamed), fmtCommand(dir)); err != nil {
					return err
				}
			}
			return run(ctx, newRunner(streamed), fmtCommand(""))
		})
	},
}

func fmtCommand(dir string) process.Command {
	return process.Command{Program: "cargo", Args: []string{"+nightly", "fmt", "--all"}, Dir: dir}
}

var udepsCmd = &cobra.Command{
	Use:   "udeps",
	Short: "Check all dependencies are used",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return inProject(ctx, func(*project) error {
			return run(ctx, newRunner(streamed), process.Command{
				Program: "cargo",
				Args:    []string{"+nightly", "udeps", "--all-targets"},
			})
		})
	},
}

var packageName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

var macroExpandCmd = &cobra.Command{
	Use:   "macro-expand <package>",
	Short: "Show expanded macros",
	Long:  `Expand the package's macros with cargo-expand and page the result through less.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pkg := args[0]
		if !packageName.MatchString(pkg) {
			return fmt.Errorf("invalid package name %q", pkg)
		}

		ctx := cmd.Context()
		return inProject(ctx, func(*project) error {
			line := fmt.Sprintf("cargo expand --color=always --package %s | less -r", pkg)
			return run(ctx, newRunner(terminal), process.ShellCommand(line))
		})
	},
}

func run(ctx context.Context, r process.Runner, cmd process.Command) error {
	log.FromContext(ctx).Info("running", "cmd", cmd.String(), "dir", cmd.Dir)
	_, err := process.Check(ctx, r, cmd)
	return err
}
