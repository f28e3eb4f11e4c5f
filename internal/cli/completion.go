package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/xtask-base/xtask/internal/branding"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

func init() {
	rootCmd.AddCommand(shellCompletionCmd)
}

var shellCompletionCmd = &cobra.Command{
	Use:       "shell-completion <shell>",
	Short:     "Generate shell completions",
	Long:      `Write a completion script for bash, zsh, fish or powershell into the cargo target directory.`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: completionShells,
	RunE: func(cmd *cobra.Command, args []string) error {
		shell := args[0]

		return inProject(cmd.Context(), func(p *project) error {
			dir := p.ws.TargetDir()
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("creating %s: %w", dir, err)
			}

			path := filepath.Join(dir, completionFile(shell))
			if err := writeCompletion(cmd.Root(), shell, path); err != nil {
				return fmt.Errorf("generating %s completions: %w", shell, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Completions file generated in `%s`\n", dir)
			return nil
		})
	},
}

func completionFile(shell string) string {
	name := branding.CLIName()
	switch shell {
	case "zsh":
		return "_" + name
	case "fish":
		return name + ".fish"
	case "powershell":
		return "_" + name + ".ps1"
	default:
		return name + ".bash"
	}
}

func writeCompletion(root *cobra.Command, shell, path string) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionFileV2(path, true)
	case "zsh":
		return root.GenZshCompletionFile(path)
	case "fish":
		return root.GenFishCompletionFile(path, true)
	case "powershell":
		return root.GenPowerShellCompletionFileWithDesc(path)
	default:
		return fmt.Errorf("unsupported shell %q", shell)
	}
}
