package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for ytcrawl.

To load completions:

Bash:
  $ source <(ytcrawl completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ ytcrawl completion bash > /etc/bash_completion.d/ytcrawl
  # macOS:
  $ ytcrawl completion bash > $(brew --prefix)/etc/bash_completion.d/ytcrawl

Zsh:
  $ ytcrawl completion zsh > "${fpath[1]}/_ytcrawl"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ ytcrawl completion fish | source

  # To load completions for each session, execute once:
  $ ytcrawl completion fish > ~/.config/fish/completions/ytcrawl.fish

PowerShell:
  PS> ytcrawl completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}
