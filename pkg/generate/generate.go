// Package generate builds synthetic three-tier network topologies for
// demos, benchmarks and layout testing.
//
// A generated network has two core switches, six distribution switches in a
// full mesh with the core, access switches each dual-homed to two adjacent
// distribution switches, and end devices spread evenly across the access
// switches. Links point from the lower tier to the upper one.
package generate

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/matzehuels/netmap/pkg/graph"
)

// Fixed tier sizes.
const (
	CoreSwitches         = 2
	DistributionSwitches = 6
)

// ErrTooFewSwitches is returned when the switch count cannot fill the core
// and distribution tiers.
var ErrTooFewSwitches = errors.New("too few switches for a three-tier topology")

// offlineRate is the share of end devices generated offline.
const offlineRate = 0.05

type weighted struct {
	typ    graph.DeviceType
	label  string
	weight int
}

var deviceMix = []weighted{
	{graph.DevicePC, "PC", 50},
	{graph.DeviceLaptop, "Laptop", 30},
	{graph.DeviceServer, "Server", 10},
	{graph.DevicePrinter, "Printer", 5},
	{graph.DeviceRouter, "Router", 3},
	{graph.DeviceFirewall, "Firewall", 2},
}

// Config controls generation.
type Config struct {
	Switches int     // total switches across all tiers, at least 8
	Devices  int     // end devices
	Seed     uint64  // same seed, same topology
	Width    float64 // canvas used for initial positions
	Height   float64
}

// DefaultConfig returns 20 switches and 500 devices on a 2000x1500 canvas.
func DefaultConfig() Config {
	return Config{Switches: 20, Devices: 500, Seed: 1, Width: 2000, Height: 1500}
}

// Summary counts what Generate produced.
type Summary struct {
	Core         int
	Distribution int
	Access       int
	Devices      int
	Nodes        int
	Links        int
}

// Generate builds a three-tier topology. Nodes carry initial positions:
// switches on evenly spaced rows, devices scattered below their access
// switch.
func Generate(cfg Config) (graph.Dataset, Summary, error) {
	d := DefaultConfig()
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = d.Width, d.Height
	}
	access := cfg.Switches - CoreSwitches - DistributionSwitches
	if access < 0 {
		return graph.Dataset{}, Summary{}, fmt.Errorf("%w: need %d, got %d",
			ErrTooFewSwitches, CoreSwitches+DistributionSwitches, cfg.Switches)
	}
	if access == 0 && cfg.Devices > 0 {
		return graph.Dataset{}, Summary{}, fmt.Errorf("%w: devices need at least one access switch", ErrTooFewSwitches)
	}
	if cfg.Devices < 0 {
		cfg.Devices = 0
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	layer := cfg.Height / 4
	ds := graph.Dataset{}

	row := func(prefix, label string, count int, y float64) []graph.Node {
		spacing := cfg.Width / float64(count+1)
		out := make([]graph.Node, count)
		for i := range out {
			out[i] = graph.Node{
				ID:     fmt.Sprintf("%s-switch-%d", prefix, i+1),
				Type:   graph.DeviceSwitch,
				Label:  fmt.Sprintf("%s Switch %d", label, i+1),
				X:      graph.Float(spacing * float64(i+1)),
				Y:      graph.Float(y),
				Status: graph.StatusOnline,
			}
		}
		ds.Nodes = append(ds.Nodes, out...)
		return out
	}

	core := row("core", "Core", CoreSwitches, layer)
	dist := row("distribution", "Distribution", DistributionSwitches, layer*2)
	for _, c := range core {
		for _, di := range dist {
			ds.Links = append(ds.Links, graph.Link{Source: c.ID, Target: di.ID})
		}
	}

	acc := row("access", "Access", access, layer*3)
	for i, a := range acc {
		ds.Links = append(ds.Links,
			graph.Link{Source: a.ID, Target: dist[i%DistributionSwitches].ID},
			graph.Link{Source: a.ID, Target: dist[(i+1)%DistributionSwitches].ID},
		)
	}

	counter := 0
	if access > 0 {
		per, extra := cfg.Devices/access, cfg.Devices%access
		for i, a := range acc {
			n := per
			if i < extra {
				n++
			}
			for range n {
				counter++
				kind := pick(rng)
				angle := math.Pi/2 + rng.Float64()*math.Pi
				radius := 80 + rng.Float64()*100
				status := graph.StatusOnline
				if rng.Float64() < offlineRate {
					status = graph.StatusOffline
				}
				dev := graph.Node{
					ID:     fmt.Sprintf("device-%d", counter),
					Type:   kind.typ,
					Label:  fmt.Sprintf("%s-%d", kind.label, counter),
					X:      graph.Float(*a.X + math.Cos(angle)*radius),
					Y:      graph.Float(*a.Y + math.Sin(angle)*radius),
					Status: status,
				}
				ds.Nodes = append(ds.Nodes, dev)
				ds.Links = append(ds.Links, graph.Link{Source: dev.ID, Target: a.ID})
			}
		}
	}

	return ds, Summary{
		Core:         CoreSwitches,
		Distribution: DistributionSwitches,
		Access:       access,
		Devices:      counter,
		Nodes:        len(ds.Nodes),
		Links:        len(ds.Links),
	}, nil
}

func pick(rng *rand.Rand) weighted {
	total := 0
	for _, w := range deviceMix {
		total += w.weight
	}
	r := rng.IntN(total)
	for _, w := range deviceMix {
		if r < w.weight {
			return w
		}
		r -= w.weight
	}
	return deviceMix[0]
}
