package layout

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/matzehuels/netmap/pkg/graph"
)

func scatter(coords []int) ([]string, map[string]graph.Point) {
	ids := make([]string, 0, len(coords)/2)
	positions := make(map[string]graph.Point, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		id := fmt.Sprintf("n%d", i/2)
		ids = append(ids, id)
		positions[id] = graph.Point{X: float64(coords[i]), Y: float64(coords[i+1])}
	}
	return ids, positions
}

func TestOverlapProperties(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)
	fp := NewFootprint(30)

	properties.Property("resolution always terminates within budget", prop.ForAll(
		func(coords []int) bool {
			ids, positions := scatter(coords)
			passes, _ := ResolveOverlaps(ids, positions, fp)
			return passes >= 1 && passes <= MaxOverlapPasses
		},
		gen.SliceOf(gen.IntRange(-300, 300)),
	))

	properties.Property("an overlap-free layout is a fixed point", prop.ForAll(
		func(coords []int) bool {
			ids, positions := scatter(coords)
			ResolveOverlaps(ids, positions, fp)
			if len(Overlapping(ids, positions, fp)) > 0 {
				return true
			}

			before := make(map[string]graph.Point, len(positions))
			for k, v := range positions {
				before[k] = v
			}
			passes, moved := ResolveOverlaps(ids, positions, fp)
			if moved || passes != 1 {
				return false
			}
			for k, v := range positions {
				if before[k] != v {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(-1000, 1000)),
	))

	properties.Property("disconnected nodes stay on level zero", prop.ForAll(
		func(n int) bool {
			ids := make([]string, n)
			for i := range ids {
				ids[i] = fmt.Sprintf("iso%d", i)
			}
			g := buildGraph(ids)
			res := Hybrid(g, DefaultOptions())
			if res.MaxLevel != 0 {
				return false
			}
			for _, id := range ids {
				if res.Hierarchy.LevelOf(id) != 0 {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 12),
	))

	properties.TestingRun(t)
}
