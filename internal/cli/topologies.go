package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/netmap/pkg/graph"
	"github.com/matzehuels/netmap/pkg/observability"
	"github.com/matzehuels/netmap/pkg/store"
)

// storeCommand manages saved topologies.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage saved topologies",
		Long: `Manage saved topologies.

Topologies are saved under a name in the configured store (a local
directory by default; Redis or MongoDB via the config file). Commands that
take a reference accept a record id or a name; for duplicate names the
newest record wins.`,
	}

	cmd.AddCommand(c.storeListCommand())
	cmd.AddCommand(c.storeSaveCommand())
	cmd.AddCommand(c.storeLoadCommand())
	cmd.AddCommand(c.storeDeleteCommand())

	return cmd
}

// withStore opens the store for the duration of fn.
func (c *CLI) withStore(ctx context.Context, fn func(store.Store) error) error {
	st, err := c.openStore(ctx, observability.NoopStoreHooks{})
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	return fn(st)
}

func (c *CLI) storeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved topologies, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(st store.Store) error {
				list, err := st.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(list) == 0 {
					printInfo("No saved topologies")
					return nil
				}
				writeSummaryTable(os.Stdout, list)
				return nil
			})
		},
	}
}

func (c *CLI) storeSaveCommand() *cobra.Command {
	var name, update string

	cmd := &cobra.Command{
		Use:   "save [dataset]",
		Short: "Save a dataset under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := graph.ReadDatasetFile(args[0])
			if err != nil {
				return fmt.Errorf("load dataset %s: %w", args[0], err)
			}
			ctx := cmd.Context()
			return c.withStore(ctx, func(st store.Store) error {
				var rec *store.Record
				if update != "" {
					existing, err := store.Resolve(ctx, st, update)
					if err != nil {
						return fmt.Errorf("resolve %q: %w", update, err)
					}
					rec, err = st.Update(ctx, existing.ID, name, ds)
					if err != nil {
						return err
					}
				} else {
					if name == "" {
						name = datasetName(args[0])
					}
					rec, err = st.Create(ctx, name, ds)
					if err != nil {
						return err
					}
				}
				printSuccess("Saved %s", StyleHighlight.Render(rec.Name))
				printKeyValue("ID", rec.ID)
				printStats(rec.Dataset.NodeCount(), rec.Dataset.LinkCount(), false)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "record name (default: file name)")
	cmd.Flags().StringVar(&update, "update", "", "replace the record with this id or name instead of creating one")
	return cmd
}

func (c *CLI) storeLoadCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "load [id|name]",
		Short: "Write a saved topology to a dataset file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(st store.Store) error {
				rec, err := store.Resolve(ctx, st, args[0])
				if err != nil {
					return fmt.Errorf("resolve %q: %w", args[0], err)
				}
				path := output
				if path == "" {
					path = rec.Name + ".json"
				}
				if err := graph.WriteDatasetFile(rec.Dataset, path); err != nil {
					return fmt.Errorf("write output %s: %w", path, err)
				}
				printSuccess("Loaded %s", StyleHighlight.Render(rec.Name))
				printFile(path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <name>.json)")
	cmd.ValidArgsFunction = c.completeTopologyRefs
	return cmd
}

func (c *CLI) storeDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [id|name]",
		Short: "Delete a saved topology",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(st store.Store) error {
				rec, err := store.Resolve(ctx, st, args[0])
				if err != nil {
					return fmt.Errorf("resolve %q: %w", args[0], err)
				}
				if err := st.Delete(ctx, rec.ID); err != nil {
					return err
				}
				printSuccess("Deleted %s", StyleHighlight.Render(rec.Name))
				printDetail("ID: %s", rec.ID)
				return nil
			})
		},
	}
	cmd.ValidArgsFunction = c.completeTopologyRefs
	return cmd
}

// datasetName derives a record name from a file path.
func datasetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// writeSummaryTable renders saved topologies as a table.
func writeSummaryTable(w io.Writer, list []store.Summary) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, len(list))
	for i, s := range list {
		rows[i] = []string{
			s.Name,
			strconv.Itoa(s.Nodes),
			strconv.Itoa(s.Links),
			s.UpdatedAt.Local().Format("2006-01-02 15:04"),
			s.ID,
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Name", "Nodes", "Links", "Updated", "ID").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorCyan)
			case col == 4:
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})

	fmt.Fprintln(w, t.Render())
}
