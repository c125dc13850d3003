package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/netmap/pkg/graph"
	"github.com/matzehuels/netmap/pkg/hierarchy"
	"github.com/matzehuels/netmap/pkg/topology"
)

// hierarchyCommand prints the detected level of every node.
func (c *CLI) hierarchyCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "hierarchy [dataset]",
		Short: "Show the detected level of each node",
		Long: `Show the detected level of each node.

Levels follow link direction: nodes without incoming links are roots at
level 0, and every other node sits one level below its shallowest parent.
Nodes reachable from no root are placed at level 0.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := graph.ReadDatasetFile(args[0])
			if err != nil {
				return fmt.Errorf("load dataset %s: %w", args[0], err)
			}
			g := topology.New()
			printLoadReport(g.Load(ds))
			res := hierarchy.Detect(g.IDs(), g.Links())

			if asJSON {
				data, err := json.MarshalIndent(struct {
					MaxLevel      int                    `json:"maxLevel"`
					Roots         []string               `json:"roots"`
					NodeHierarchy map[string]graph.Level `json:"nodeHierarchy"`
				}{res.MaxLevel, res.Roots, levels(res)}, "", "  ")
				if err != nil {
					return err
				}
				_, err = os.Stdout.Write(append(data, '\n'))
				return err
			}
			writeHierarchyTable(os.Stdout, g, res)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

// levels converts detector output to its serialized form.
func levels(res hierarchy.Result) map[string]graph.Level {
	out := make(map[string]graph.Level, len(res.Info))
	for id, info := range res.Info {
		out[id] = graph.Level{
			Level:     info.Level,
			InDegree:  info.InDegree,
			OutDegree: info.OutDegree,
			Children:  info.Children,
			Parents:   info.Parents,
		}
	}
	return out
}

// writeHierarchyTable renders one row per node, grouped by level.
func writeHierarchyTable(w io.Writer, g *topology.Graph, res hierarchy.Result) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	var rows [][]string
	for level, ids := range res.Groups() {
		sorted := append([]string(nil), ids...)
		sort.Strings(sorted)
		for _, id := range sorted {
			n, _ := g.Node(id)
			info := res.Info[id]
			rows = append(rows, []string{
				strconv.Itoa(level),
				id,
				string(n.Type),
				strconv.Itoa(info.InDegree),
				strconv.Itoa(info.OutDegree),
				strings.Join(info.Children, ", "),
			})
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Level", "Node", "Type", "In", "Out", "Children").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle()
		})

	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("  %d nodes · %d levels · roots: %s",
		res.Len(), res.MaxLevel+1, strings.Join(res.Roots, ", "))))
}
