package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/netmap/pkg/graph"
)

func testLayout() graph.Layout {
	return graph.Layout{
		Algorithm: graph.AlgorithmHybrid,
		Positions: map[string]graph.Point{
			"core": {X: 100, Y: 100},
			"pc":   {X: 100, Y: 300},
		},
		Dataset: graph.Dataset{
			Nodes: []graph.Node{
				{ID: "core", Type: graph.DeviceSwitch, Label: "Core", Status: graph.StatusOnline},
				{ID: "pc", Type: graph.DevicePC, Status: graph.StatusOffline},
				{ID: "ghost", Type: graph.DevicePC},
			},
			Links: []graph.Link{
				{Source: "pc", Target: "core"},
				{Source: "ghost", Target: "core"},
			},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testLayout(), Options{Labels: true})

	for _, want := range []string{
		"graph G {",
		"layout=neato;",
		`"core" [`,
		`pos="100.00,200.00!"`, // y flipped about the lowest node
		`pos="100.00,0.00!"`,
		`xlabel="Core"`,
		`xlabel="pc"`,
		"shape=box",
		`fillcolor="#f0f0f0"`,
		`style="filled,dashed"`,
		`"pc" -- "core";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}

	// Nodes without a position are left out along with their links.
	if strings.Contains(dot, "ghost") {
		t.Errorf("DOT should skip unplaced nodes\n%s", dot)
	}
}

func TestToDOTWithoutLabels(t *testing.T) {
	dot := ToDOT(testLayout(), Options{})
	if strings.Contains(dot, "xlabel") {
		t.Error("labels disabled but xlabel present")
	}
	if !strings.Contains(dot, "width=0.83") {
		t.Errorf("default radius 30 should give width 60/72\n%s", dot)
	}
}

func TestToDOTFallsBackToNodeCoordinates(t *testing.T) {
	l := graph.Layout{Dataset: graph.Dataset{Nodes: []graph.Node{
		{ID: "a", X: graph.Float(5), Y: graph.Float(7)},
	}}}
	if dot := ToDOT(l, Options{}); !strings.Contains(dot, `pos="5.00,0.00!"`) {
		t.Errorf("node coordinates not used\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="200pt" height="100pt" viewBox="0.00 0.00 200.00 100.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 200.00 100.00" width="200" height="100"`) {
		t.Errorf("normalizeViewBox = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("svg without viewBox changed: %s", got)
	}
}
