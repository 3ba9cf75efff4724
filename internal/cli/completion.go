package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/techradar/pkg/store"
)

// completionCommand creates the completion command for generating shell
// completions. Saved radar IDs complete for "radar show" and "radar delete".
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for techradar.

To load completions:

Bash:
  $ source <(techradar completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ techradar completion bash > /etc/bash_completion.d/techradar
  # macOS:
  $ techradar completion bash > $(brew --prefix)/etc/bash_completion.d/techradar

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ techradar completion zsh > "${fpath[1]}/_techradar"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ techradar completion fish | source

  # To load completions for each session, execute once:
  $ techradar completion fish > ~/.config/fish/completions/techradar.fish

PowerShell:
  PS> techradar completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> techradar completion powershell > techradar.ps1
  # and source this file from your PowerShell profile.
`,
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
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// completeRadarIDs offers the IDs of saved radars, described by their
// repository URL. A store that cannot be opened yields no suggestions.
func (c *CLI) completeRadarIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	var out []string
	_ = c.withStore(ctx, func(ctx context.Context, st store.Store) error {
		list, err := st.List(ctx)
		if err != nil {
			return err
		}
		for _, s := range list {
			if strings.HasPrefix(s.ID, toComplete) {
				out = append(out, s.ID+"\t"+s.RepoURL)
			}
		}
		return nil
	})
	return out, cobra.ShellCompDirectiveNoFileComp
}
