package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xtask-base/xtask/internal/ci"
)

func init() {
	rootCmd.AddCommand(workflowCmd)
}

var workflowCmd = &cobra.Command{
	Use:   "workflow",
	Short: "Print the generated CI workflow",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return inProject(cmd.Context(), func(p *project) error {
			wf := ci.StandardWorkflow(p.cfg.Options()).Workflow()
			if err := wf.Validate(); err != nil {
				return err
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), wf.String())
			return err
		})
	},
}
