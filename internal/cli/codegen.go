package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/xtask-base/xtask/internal/ci"
	"github.com/xtask-base/xtask/internal/log"
	"github.com/xtask-base/xtask/internal/scaffold"
)

var codegenCheck bool

func init() {
	codegenCmd.Flags().BoolVar(&codegenCheck, "check", false, "Check the files wouldn't change. Don't actually generate them")
	rootCmd.AddCommand(codegenCmd)
}

var codegenCmd = &cobra.Command{
	Use:   "codegen",
	Short: "Generate derived files",
	Long: `Generate derived files. Existing content is overwritten.

Always generated: .cargo/config and the CI workflow under .github/workflows.
With a license section in the settings: rustfmt.toml, LICENSE-APACHE and
LICENSE-MIT. For every readme_dirs entry: README.md from README.tmpl.md.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return inProject(ctx, func(p *project) error {
			return codegen(ctx, p, codegenCheck)
		})
	},
}

func codegen(ctx context.Context, p *project, check bool) error {
	logger := log.FromContext(ctx)

	if err := scaffold.GenerateCargoConfig(ctx, check); err != nil {
		return err
	}

	if err := ci.StandardWorkflow(p.cfg.Options()).Write(ctx, check); err != nil {
		return err
	}

	if lic, ok := p.cfg.OpenSourceLicense(time.Now()); ok {
		if err := scaffold.GenerateOpenSourceFiles(ctx, lic, check); err != nil {
			return err
		}
	}

	for _, dir := range p.cfg.ReadmeDirs {
		if err := scaffold.BuildReadme(ctx, newRunner(captured), dir, check); err != nil {
			return err
		}
	}

	if check {
		logger.Info("generated files are up to date")
	} else {
		logger.Info("generated files written")
	}
	return nil
}
