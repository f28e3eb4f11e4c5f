package cli

import (
	"github.com/spf13/cobra"

	"github.com/xtask-base/xtask/internal/ci"
	"github.com/xtask-base/xtask/internal/log"
)

func init() {
	rootCmd.AddCommand(ciCmd)
}

var ciCmd = &cobra.Command{
	Use:   "ci",
	Short: "Run CI checks",
	Long: `Run the standard workflow's checks locally, in order, stopping at the
first failure. Only tasks for the current platform run, and runner setup steps
such as toolchain installation are skipped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		return inProject(ctx, func(p *project) error {
			current, err := hostPlatform()
			if err != nil {
				return err
			}

			ex := &ci.Executor{Runner: newRunner(streamed), Current: current}
			pipeline := ci.StandardWorkflow(p.cfg.Options())
			log.FromContext(ctx).Info("running CI", "workflow", pipeline.Name(), "platform", current.String())

			return pipeline.Execute(ctx, ex)
		})
	},
}
