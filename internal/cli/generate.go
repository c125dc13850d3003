package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netmap/pkg/generate"
	"github.com/matzehuels/netmap/pkg/graph"
)

// generateCommand writes a synthetic three-tier network.
func (c *CLI) generateCommand() *cobra.Command {
	var output string
	cfg := generate.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic three-tier network",
		Long: `Generate a synthetic three-tier network.

The network has 2 core switches, 6 distribution switches, and the remaining
switches as access switches, each linked to two distribution switches. End
devices (PCs, laptops, servers, printers and a few routers and firewalls) are
spread across the access switches. The same seed always produces the same
topology.

The output format follows the file extension (.json, .yaml, .yml).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				cfg.Seed = uint64(time.Now().UnixNano())
			}
			prog := newProgress(c.Logger)
			ds, sum, err := generate.Generate(cfg)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Generated %d nodes", sum.Nodes))

			if err := graph.WriteDatasetFile(ds, output); err != nil {
				return fmt.Errorf("write output %s: %w", output, err)
			}

			printSuccess("Topology generated")
			printFile(output)
			printKeyValue("Core", strconv.Itoa(sum.Core))
			printKeyValue("Distribution", strconv.Itoa(sum.Distribution))
			printKeyValue("Access", strconv.Itoa(sum.Access))
			printKeyValue("Devices", strconv.Itoa(sum.Devices))
			printKeyValue("Seed", strconv.FormatUint(cfg.Seed, 10))
			printStats(sum.Nodes, sum.Links, false)
			printNewline()
			printNextStep("Lay out", appName+" layout "+output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "topology.json", "output file")
	cmd.Flags().IntVar(&cfg.Switches, "switches", cfg.Switches, "total switches (at least 8)")
	cmd.Flags().IntVar(&cfg.Devices, "devices", cfg.Devices, "end devices")
	cmd.Flags().Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (default: time-based)")
	cmd.Flags().Float64Var(&cfg.Width, "width", cfg.Width, "canvas width for initial positions")
	cmd.Flags().Float64Var(&cfg.Height, "height", cfg.Height, "canvas height for initial positions")

	return cmd
}
