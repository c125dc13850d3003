package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netmap/pkg/editor"
	"github.com/matzehuels/netmap/pkg/graph"
	"github.com/matzehuels/netmap/pkg/interact"
	"github.com/matzehuels/netmap/pkg/topology"
)

// replayStep pairs one recorded event with the effects it produced.
type replayStep struct {
	Event   interact.Event     `json:"event"`
	Effects []interact.Encoded `json:"effects"`
	State   interact.State     `json:"state"`
}

// replayCommand feeds recorded pointer events to the editor.
func (c *CLI) replayCommand() *cobra.Command {
	var (
		output  string
		effects string
		screen  bool
	)

	cmd := &cobra.Command{
		Use:   "replay [dataset] [events.json]",
		Short: "Replay recorded pointer events against a topology",
		Long: `Replay recorded pointer events against a topology.

The events file is a JSON array of pointer events:

  [{"kind": "pointerdown", "x": 120, "y": 80,
    "target": {"kind": "anchor", "nodeId": "sw-1", "anchor": "bottom"}}, ...]

Each event runs through the interaction state machine in order. The effects
of every event are written as JSON (stdout by default) and the edited
dataset is written to the output file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := graph.ReadDatasetFile(args[0])
			if err != nil {
				return fmt.Errorf("load dataset %s: %w", args[0], err)
			}
			events, err := readEvents(args[1])
			if err != nil {
				return err
			}

			ed := c.newEditor(editor.WithCallbacks(c.replayCallbacks()))
			printLoadReport(ed.Load(ds))
			steps := replay(ed, events, screen)

			w := io.Writer(os.Stdout)
			if effects != "" {
				f, err := os.Create(effects)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			if err := enc.Encode(steps); err != nil {
				return fmt.Errorf("write effects: %w", err)
			}

			if output == "" {
				output = outputPath(args[0], "replayed.json")
			}
			if err := graph.WriteDatasetFile(ed.Data(), output); err != nil {
				return fmt.Errorf("write output %s: %w", output, err)
			}
			c.Logger.Info("replayed events", "events", len(events), "state", ed.State())
			printSuccess("Replayed %d events", len(events))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "edited dataset (default: <input>.replayed.json)")
	cmd.Flags().StringVar(&effects, "effects", "", "write effects to this file instead of stdout")
	cmd.Flags().BoolVar(&screen, "screen", false, "event coordinates are screen space")

	return cmd
}

// readEvents decodes a JSON array of pointer events.
func readEvents(path string) ([]interact.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read events %s: %w", path, err)
	}
	var events []interact.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("parse events %s: %w", path, err)
	}
	return events, nil
}

// replay runs events through ed in order.
func replay(ed *editor.Editor, events []interact.Event, screen bool) []replayStep {
	steps := make([]replayStep, 0, len(events))
	for _, ev := range events {
		var out []interact.Effect
		if screen {
			out = ed.HandleScreen(ev)
		} else {
			out = ed.Handle(ev)
		}
		steps = append(steps, replayStep{Event: ev, Effects: interact.Encode(out), State: ed.State()})
	}
	return steps
}

// replayCallbacks logs model notifications at debug level.
func (c *CLI) replayCallbacks() topology.Callbacks {
	return topology.Callbacks{
		OnNodeClick: func(n topology.Node) {
			c.Logger.Debug("node clicked", "id", n.ID)
		},
		OnNodeDoubleClick: func(n topology.Node) {
			c.Logger.Debug("node double-clicked", "id", n.ID)
		},
		OnNodeContextMenu: func(n topology.Node) {
			c.Logger.Debug("node context menu", "id", n.ID)
		},
		OnLinkCreated: func(l topology.StoredLink) {
			c.Logger.Debug("link created", "source", l.Source, "target", l.Target)
		},
		OnSelectionChanged: func(id string) {
			c.Logger.Debug("selection changed", "id", id)
		},
	}
}
