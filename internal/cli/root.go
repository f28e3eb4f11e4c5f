package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/xtask-base/xtask/internal/branding"
	"github.com/xtask-base/xtask/internal/genfile"
	"github.com/xtask-base/xtask/internal/log"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` runs a cargo workspace's CI checks locally and keeps the generated
GitHub Actions workflow, licenses and README in sync with their sources.

Generated files link back to ` + branding.GeneratorURL() + `.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		handler := log.NewHandlerWithOptions(cmd.ErrOrStderr(), branding.CLIName(), verbose)
		cmd.SetContext(log.IntoContext(cmd.Context(), slog.New(handler)))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		fmt.Sprintf("Settings file (default: %s in the workspace root)", branding.ConfigFile()))
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		printError(os.Stderr, err)
	}
	return err
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, "Error:", err)

	var drift *genfile.DriftError
	if errors.As(err, &drift) && drift.Diff != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, drift.Diff)
	}
}
