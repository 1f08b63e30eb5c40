package main

import (
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for ampanel.

To load completions:

Bash:
  $ source <(ampanel completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ ampanel completion bash > /etc/bash_completion.d/ampanel
  # macOS:
  $ ampanel completion bash > $(brew --prefix)/etc/bash_completion.d/ampanel

Zsh:
  $ source <(ampanel completion zsh)
  # To load completions for each session, execute once:
  $ ampanel completion zsh > "${fpath[1]}/_ampanel"

Fish:
  $ ampanel completion fish | source
  # To load completions for each session, execute once:
  $ ampanel completion fish > ~/.config/fish/completions/ampanel.fish

PowerShell:
  PS> ampanel completion powershell | Out-String | Invoke-Expression
  # To load completions for each session, execute once:
  PS> ampanel completion powershell > ampanel.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
		}
		return nil
	},
}

func init() {
	completionCmd.Annotations = map[string]string{skipConfigAnnotation: "true"}
	rootCmd.AddCommand(completionCmd)
}
