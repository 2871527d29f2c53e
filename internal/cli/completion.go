package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the shell completion command.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for the given shell.

  $ source <(gridstack completion bash)
  $ gridstack completion zsh > "${fpath[1]}/_gridstack"
  $ gridstack completion fish | source
  PS> gridstack completion powershell | Out-String | Invoke-Expression

Layout file arguments complete to .json and .toml files.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// completeLayoutFiles completes the first positional argument to layout files.
func completeLayoutFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"json", "toml"}, cobra.ShellCompDirectiveFilterFileExt
}
