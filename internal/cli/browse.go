package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/netmap/pkg/graph"
)

// browseCommand opens the interactive topology browser.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [dataset]",
		Short: "Browse and edit a topology in the terminal",
		Long: `Browse and edit a topology in the terminal.

Nodes are listed by hierarchy level. Select and delete nodes, run layouts,
and write the result back to the dataset file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := graph.ReadDatasetFile(args[0])
			if err != nil {
				return fmt.Errorf("load dataset %s: %w", args[0], err)
			}
			ed := c.newEditor()
			printLoadReport(ed.Load(ds))

			p := tea.NewProgram(NewBrowseModel(cmd.Context(), ed, args[0]),
				tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return err
			}
			if m, ok := final.(BrowseModel); ok && m.Saved {
				printSuccess("Saved")
				printFile(args[0])
			}
			return nil
		},
	}
}
