package layout

import (
	"math"

	"github.com/matzehuels/netmap/pkg/graph"
)

// MaxOverlapPasses bounds ResolveOverlaps.
const MaxOverlapPasses = 25

// MinSeparation returns the radii of the elliptical exclusion zone around a
// node: horizontal and vertical.
func (f Footprint) MinSeparation() (h, v float64) {
	return f.Width * 1.1, f.Height * 0.95
}

// ResolveOverlaps pushes apart node pairs whose centres lie inside each
// other's exclusion ellipse. positions is updated in place for the listed
// ids; ids without a position are skipped.
//
// Each pass visits every pair once. An overlapping pair is pushed apart
// along the line between the centres by half the remaining overlap each,
// with the horizontal component scaled up by 1.3 so rows spread sideways
// rather than into neighbouring levels. Coincident nodes are pushed
// horizontally. Passes repeat until one finds no overlap or the
// MaxOverlapPasses budget is spent.
//
// It returns the number of passes run and whether any position changed.
func ResolveOverlaps(ids []string, positions map[string]graph.Point, f Footprint) (passes int, moved bool) {
	pts := make([]graph.Point, 0, len(ids))
	live := make([]string, 0, len(ids))
	for _, id := range ids {
		if p, ok := positions[id]; ok {
			pts = append(pts, p)
			live = append(live, id)
		}
	}

	passes, moved = resolve(pts, f)
	if moved {
		for i, id := range live {
			positions[id] = pts[i]
		}
	}
	return passes, moved
}

func resolve(pts []graph.Point, f Footprint) (passes int, moved bool) {
	minH, minV := f.MinSeparation()

	for passes < MaxOverlapPasses {
		passes++
		overlap := false

		for i := 0; i < len(pts); i++ {
			for j := i + 1; j < len(pts); j++ {
				dx := pts[j].X - pts[i].X
				dy := pts[j].Y - pts[i].Y
				d := math.Hypot(dx/minH, dy/minV)
				if d >= 1 {
					continue
				}
				overlap = true
				moved = true

				push := (1 - d) / 2
				angle := math.Atan2(dy, dx)
				px := math.Cos(angle) * push * minH * 1.3
				py := math.Sin(angle) * push * minV

				pts[i].X -= px
				pts[i].Y -= py
				pts[j].X += px
				pts[j].Y += py
			}
		}

		if !overlap {
			break
		}
	}
	return passes, moved
}

// Overlapping reports the pairs of ids whose centres are inside each other's
// exclusion ellipse.
func Overlapping(ids []string, positions map[string]graph.Point, f Footprint) [][2]string {
	minH, minV := f.MinSeparation()
	var out [][2]string
	for i := 0; i < len(ids); i++ {
		a, ok := positions[ids[i]]
		if !ok {
			continue
		}
		for j := i + 1; j < len(ids); j++ {
			b, ok := positions[ids[j]]
			if !ok {
				continue
			}
			if math.Hypot((b.X-a.X)/minH, (b.Y-a.Y)/minV) < 1 {
				out = append(out, [2]string{ids[i], ids[j]})
			}
		}
	}
	return out
}
