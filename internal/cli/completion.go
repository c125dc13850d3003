package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netmap/pkg/graph"
	"github.com/matzehuels/netmap/pkg/pipeline"
	"github.com/matzehuels/netmap/pkg/store"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for netmap.

To load completions:

Bash:
  $ source <(netmap completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ netmap completion bash > /etc/bash_completion.d/netmap
  # macOS:
  $ netmap completion bash > $(brew --prefix)/etc/bash_completion.d/netmap

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ netmap completion zsh > "${fpath[1]}/_netmap"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ netmap completion fish | source

  # To load completions for each session, execute once:
  $ netmap completion fish > ~/.config/fish/completions/netmap.fish

PowerShell:
  PS> netmap completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> netmap completion powershell > netmap.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}

	return cmd
}

// =============================================================================
// Dynamic Completions
// =============================================================================

// completeAlgorithms completes --algorithm with the layout algorithm names.
func completeAlgorithms(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return graph.Algorithms, cobra.ShellCompDirectiveNoFileComp
}

// completeFormats completes the last entry of a comma-separated --format
// value.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := ""
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[:i+1]
	}
	chosen := make(map[string]bool)
	for _, f := range strings.Split(prefix, ",") {
		chosen[strings.TrimSpace(f)] = true
	}

	var out []string
	for f := range pipeline.ValidFormats {
		if !chosen[f] {
			out = append(out, prefix+f)
		}
	}
	sort.Strings(out)
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// completeTopologyRefs completes the first argument with saved topology
// names, newest first. Completion runs without the root pre-run, so the
// config is loaded here.
func (c *CLI) completeTopologyRefs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if err := c.loadConfig(); err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var out []string
	err := c.withStore(cmd.Context(), func(st store.Store) error {
		list, err := st.List(cmd.Context())
		if err != nil {
			return err
		}
		seen := make(map[string]bool, len(list))
		for _, s := range list {
			if seen[s.Name] || !strings.HasPrefix(s.Name, toComplete) {
				continue
			}
			seen[s.Name] = true
			out = append(out, fmt.Sprintf("%s\t%d nodes, %d links", s.Name, s.Nodes, s.Links))
		}
		return nil
	})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
