package topology

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/matzehuels/netmap/pkg/graph"
)

func newTestGraph(opts ...Option) *Graph {
	opts = append([]Option{WithRand(rand.New(rand.NewPCG(1, 2)))}, opts...)
	return New(opts...)
}

func dataset(ids []string, links ...[2]string) graph.Dataset {
	ds := graph.Dataset{}
	for _, id := range ids {
		ds.Nodes = append(ds.Nodes, graph.Node{ID: id, Type: graph.DeviceSwitch})
	}
	for _, l := range links {
		ds.Links = append(ds.Links, graph.Link{Source: l[0], Target: l[1]})
	}
	return ds
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		ds          graph.Dataset
		wantNodes   int
		wantLinks   int
		wantDropped LoadReport
	}{
		{
			name:      "Empty",
			ds:        graph.Dataset{},
			wantNodes: 0,
			wantLinks: 0,
		},
		{
			name:      "Chain",
			ds:        dataset([]string{"a", "b", "c"}, [2]string{"a", "b"}, [2]string{"b", "c"}),
			wantNodes: 3,
			wantLinks: 2,
		},
		{
			name:        "DanglingLinks",
			ds:          dataset([]string{"a", "b"}, [2]string{"a", "b"}, [2]string{"a", "ghost"}, [2]string{"ghost", "b"}),
			wantNodes:   2,
			wantLinks:   1,
			wantDropped: LoadReport{DroppedLinks: 2},
		},
		{
			name: "DuplicateAndEmptyIDs",
			ds: graph.Dataset{Nodes: []graph.Node{
				{ID: "a"}, {ID: "a"}, {ID: ""}, {ID: "b"},
			}},
			wantNodes:   2,
			wantDropped: LoadReport{DroppedNodes: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGraph()
			report := g.Load(tt.ds)

			if g.Len() != tt.wantNodes || report.Nodes != tt.wantNodes {
				t.Errorf("nodes = %d (report %d), want %d", g.Len(), report.Nodes, tt.wantNodes)
			}
			if g.LinkCount() != tt.wantLinks || report.Links != tt.wantLinks {
				t.Errorf("links = %d (report %d), want %d", g.LinkCount(), report.Links, tt.wantLinks)
			}
			if report.DroppedLinks != tt.wantDropped.DroppedLinks {
				t.Errorf("dropped links = %d, want %d", report.DroppedLinks, tt.wantDropped.DroppedLinks)
			}
			if report.DroppedNodes != tt.wantDropped.DroppedNodes {
				t.Errorf("dropped nodes = %d, want %d", report.DroppedNodes, tt.wantDropped.DroppedNodes)
			}
		})
	}
}

func TestLoadPlacesUnpositionedNodesOnCircle(t *testing.T) {
	g := newTestGraph(WithCanvas(Canvas{Width: 900, Height: 600}))
	ds := dataset([]string{"a", "b", "c", "d"})
	ds.Nodes[2].X = graph.Float(5)
	ds.Nodes[2].Y = graph.Float(7)

	report := g.Load(ds)
	if report.Placed != 3 {
		t.Errorf("placed = %d, want 3", report.Placed)
	}

	radius := 600.0 / 3
	for i, id := range []string{"a", "b", "d"} {
		n, _ := g.Node(id)
		idx := []int{0, 1, 3}[i]
		angle := float64(idx) / 4 * 2 * math.Pi
		wantX := 450 + radius*math.Cos(angle)
		wantY := 300 + radius*math.Sin(angle)
		if math.Abs(n.X-wantX) > 1e-9 || math.Abs(n.Y-wantY) > 1e-9 {
			t.Errorf("%s = (%.3f, %.3f), want (%.3f, %.3f)", id, n.X, n.Y, wantX, wantY)
		}
	}

	c, _ := g.Node("c")
	if c.X != 5 || c.Y != 7 {
		t.Errorf("explicit position overwritten: (%v, %v)", c.X, c.Y)
	}
}

func TestLoadReplacesState(t *testing.T) {
	g := newTestGraph()
	g.Load(dataset([]string{"a", "b"}, [2]string{"a", "b"}))
	g.Select("a")

	g.Load(dataset([]string{"x"}))
	if g.Len() != 1 || g.LinkCount() != 0 {
		t.Fatalf("state not replaced: %d nodes, %d links", g.Len(), g.LinkCount())
	}
	if _, ok := g.Selected(); ok {
		t.Error("selection should be cleared by Load")
	}
	if g.Has("a") {
		t.Error("old node a still indexed")
	}
}

func TestLoadReportsDroppedSelection(t *testing.T) {
	var selections []string
	g := newTestGraph(WithCallbacks(Callbacks{
		OnSelectionChanged: func(id string) { selections = append(selections, id) },
	}))

	g.Load(dataset([]string{"a"}))
	g.Load(dataset([]string{"b"}))
	if len(selections) != 0 {
		t.Fatalf("Load without a selection fired %q", selections)
	}

	g.Select("b")
	g.Load(dataset([]string{"c"}))
	if want := []string{"b", ""}; !slices.Equal(selections, want) {
		t.Errorf("OnSelectionChanged = %q, want %q", selections, want)
	}
	if _, ok := g.Selected(); ok {
		t.Error("selection survived Load")
	}
}

func TestAddNode(t *testing.T) {
	var changed int
	g := newTestGraph(
		WithCallbacks(Callbacks{OnChanged: func() { changed++ }}),
		WithIDGenerator(func() string { return "generated" }),
	)

	n, ok := g.AddNode(graph.Node{ID: "a", Type: "router"})
	if !ok {
		t.Fatal("AddNode(a) = false")
	}
	if n.X < 350 || n.X > 450 || n.Y < 250 || n.Y > 350 {
		t.Errorf("jittered position (%v, %v) outside ±50 of centre", n.X, n.Y)
	}
	if n.Type != graph.DeviceRouter {
		t.Errorf("type = %q, want router", n.Type)
	}

	if _, ok := g.AddNode(graph.Node{ID: "a"}); ok {
		t.Error("duplicate id should be rejected")
	}

	p, ok := g.AddNode(graph.Node{X: graph.Float(1), Y: graph.Float(2)})
	if !ok || p.ID != "generated" {
		t.Errorf("AddNode without id = %+v, %v", p, ok)
	}
	if p.X != 1 || p.Y != 2 {
		t.Errorf("explicit position overwritten: (%v, %v)", p.X, p.Y)
	}

	if changed != 2 {
		t.Errorf("OnChanged fired %d times, want 2", changed)
	}
}

func TestDeleteNodeCascades(t *testing.T) {
	var deleted []string
	g := newTestGraph(WithCallbacks(Callbacks{OnNodeDeleted: func(id string) { deleted = append(deleted, id) }}))
	g.Load(dataset([]string{"A", "B", "C"}, [2]string{"A", "B"}, [2]string{"B", "C"}))

	if !g.DeleteNode("B") {
		t.Fatal("DeleteNode(B) = false")
	}
	if g.Len() != 2 || g.LinkCount() != 0 {
		t.Errorf("after delete: %d nodes, %d links; want 2, 0", g.Len(), g.LinkCount())
	}
	if !g.Has("A") || !g.Has("C") {
		t.Error("A and C should survive")
	}
	if g.DeleteNode("B") {
		t.Error("second delete should be a no-op")
	}
	if len(deleted) != 1 || deleted[0] != "B" {
		t.Errorf("OnNodeDeleted = %v, want [B]", deleted)
	}

	// Index must stay consistent after removal from the middle of the arena.
	if !g.MoveNode("C", 10, 10) {
		t.Fatal("MoveNode(C) after reindex failed")
	}
	c, _ := g.Node("C")
	if c.X != 10 {
		t.Errorf("C.X = %v, want 10", c.X)
	}
}

func TestDeleteNodeKeepsUnrelatedLinks(t *testing.T) {
	g := newTestGraph()
	g.Load(dataset([]string{"A", "B", "C", "D"},
		[2]string{"A", "B"}, [2]string{"C", "A"}, [2]string{"C", "D"}))

	g.DeleteNode("A")
	links := g.Links()
	if len(links) != 1 || links[0] != (StoredLink{Source: "C", Target: "D"}) {
		t.Errorf("links after deleting A = %v, want [C->D]", links)
	}
}

func TestStoredLinkTouches(t *testing.T) {
	l := StoredLink{Source: "a", Target: "b"}
	tests := map[string]bool{"a": true, "b": true, "c": false, "": false}
	for id, want := range tests {
		if got := l.Touches(id); got != want {
			t.Errorf("Touches(%q) = %v, want %v", id, got, want)
		}
	}
}

func TestDeleteSelectedNodeClearsSelection(t *testing.T) {
	var selections []string
	g := newTestGraph(WithCallbacks(Callbacks{OnSelectionChanged: func(id string) { selections = append(selections, id) }}))
	g.Load(dataset([]string{"a", "b"}))
	g.Select("a")
	g.DeleteNode("a")

	if _, ok := g.Selected(); ok {
		t.Error("selection should be empty")
	}
	if len(selections) != 2 || selections[1] != "" {
		t.Errorf("selection changes = %q, want [a \"\"]", selections)
	}
}

func TestAddLink(t *testing.T) {
	var created []StoredLink
	g := newTestGraph(WithCallbacks(Callbacks{OnLinkCreated: func(l StoredLink) { created = append(created, l) }}))
	g.Load(dataset([]string{"A", "B"}))

	tests := []struct {
		name   string
		src    string
		tgt    string
		wantOK bool
	}{
		{"New", "A", "B", true},
		{"SameDirection", "A", "B", false},
		{"Reverse", "B", "A", false},
		{"SelfLink", "A", "A", false},
		{"UnknownSource", "X", "B", false},
		{"UnknownTarget", "A", "X", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := g.AddLink(tt.src, tt.tgt); ok != tt.wantOK {
				t.Errorf("AddLink(%s, %s) = %v, want %v", tt.src, tt.tgt, ok, tt.wantOK)
			}
		})
	}

	if g.LinkCount() != 1 {
		t.Errorf("links = %d, want 1", g.LinkCount())
	}
	if len(created) != 1 || created[0] != (StoredLink{Source: "A", Target: "B"}) {
		t.Errorf("OnLinkCreated = %v", created)
	}
}

func TestDeleteLinkIsDirectional(t *testing.T) {
	var deleted []StoredLink
	g := newTestGraph(WithCallbacks(Callbacks{OnLinkDeleted: func(l StoredLink) { deleted = append(deleted, l) }}))
	g.Load(dataset([]string{"A", "B"}, [2]string{"A", "B"}))

	if g.DeleteLink("B", "A") {
		t.Error("DeleteLink(B, A) should not match stored A→B")
	}
	if g.LinkCount() != 1 {
		t.Fatalf("links = %d, want 1", g.LinkCount())
	}
	if !g.DeleteLink("A", "B") {
		t.Error("DeleteLink(A, B) should succeed")
	}
	if g.LinkCount() != 0 {
		t.Errorf("links = %d, want 0", g.LinkCount())
	}
	if len(deleted) != 1 {
		t.Errorf("OnLinkDeleted fired %d times, want 1", len(deleted))
	}
}

func TestDeleteLinkRemovesFirstMatchOnly(t *testing.T) {
	g := newTestGraph()
	g.Load(dataset([]string{"A", "B"}, [2]string{"A", "B"}, [2]string{"A", "B"}))
	if g.LinkCount() != 2 {
		t.Fatalf("load kept %d links, want 2", g.LinkCount())
	}
	g.DeleteLink("A", "B")
	if g.LinkCount() != 1 {
		t.Errorf("links = %d, want 1", g.LinkCount())
	}
}

func TestDataStripsTransientState(t *testing.T) {
	g := newTestGraph()
	ds := dataset([]string{"a", "b"}, [2]string{"a", "b"})
	ds.Nodes[0].Label = "Alpha"
	ds.Nodes[0].Status = graph.StatusOffline
	g.Load(ds)
	g.Select("a")
	g.SetPositions(map[string]graph.Point{"a": {X: 3, Y: 4}}, true)

	out := g.Data()
	if len(out.Nodes) != 2 || len(out.Links) != 1 {
		t.Fatalf("snapshot = %d nodes, %d links", len(out.Nodes), len(out.Links))
	}
	a := out.Nodes[0]
	if a.ID != "a" || a.Label != "Alpha" || a.Status != graph.StatusOffline || a.Type != graph.DeviceSwitch {
		t.Errorf("node a = %+v", a)
	}
	if !a.HasPosition() || *a.X != 3 || *a.Y != 4 {
		t.Errorf("node a position = %v, %v", a.X, a.Y)
	}
	if out.Links[0] != (graph.Link{Source: "a", Target: "b"}) {
		t.Errorf("link = %+v", out.Links[0])
	}

	// Mutating the snapshot must not reach the model.
	*out.Nodes[0].X = 999
	n, _ := g.Node("a")
	if n.X != 3 {
		t.Error("snapshot aliases the model")
	}
}

func TestSelection(t *testing.T) {
	var changes []string
	g := newTestGraph(WithCallbacks(Callbacks{OnSelectionChanged: func(id string) { changes = append(changes, id) }}))
	g.Load(dataset([]string{"a", "b"}))

	if !g.Select("a") {
		t.Error("Select(a) should change selection")
	}
	if g.Select("a") {
		t.Error("re-selecting a should not report a change")
	}
	if !g.Select("b") {
		t.Error("Select(b) should change selection")
	}
	if g.Select("ghost") {
		t.Error("Select(ghost) should be a no-op")
	}

	selectedCount := 0
	for _, n := range g.Nodes() {
		if n.Selected {
			selectedCount++
		}
	}
	if selectedCount != 1 {
		t.Errorf("%d nodes selected, want 1", selectedCount)
	}
	if sel, ok := g.Selected(); !ok || sel.ID != "b" {
		t.Errorf("Selected() = %v, %v", sel.ID, ok)
	}

	if !g.ClearSelection() {
		t.Error("ClearSelection should report a change")
	}
	if g.ClearSelection() {
		t.Error("second ClearSelection should not report a change")
	}
	want := []string{"a", "b", ""}
	if len(changes) != len(want) {
		t.Fatalf("changes = %q, want %q", changes, want)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("changes[%d] = %q, want %q", i, changes[i], want[i])
		}
	}
}

func TestClickNotifications(t *testing.T) {
	var clicked, dbl, ctx []string
	g := newTestGraph(WithCallbacks(Callbacks{
		OnNodeClick:       func(n Node) { clicked = append(clicked, n.ID) },
		OnNodeDoubleClick: func(n Node) { dbl = append(dbl, n.ID) },
		OnNodeContextMenu: func(n Node) { ctx = append(ctx, n.ID) },
	}))
	g.Load(dataset([]string{"a"}))

	g.Click("a")
	g.DoubleClick("a")
	g.ContextMenu("a")
	g.Click("ghost")

	if len(clicked) != 1 || len(dbl) != 1 || len(ctx) != 1 {
		t.Errorf("click=%v dbl=%v ctx=%v", clicked, dbl, ctx)
	}
	if sel, ok := g.Selected(); !ok || sel.ID != "a" {
		t.Error("Click should select the node")
	}
}

func TestSegmentsFollowNodes(t *testing.T) {
	g := newTestGraph()
	g.Load(dataset([]string{"a", "b", "c"}, [2]string{"a", "b"}, [2]string{"b", "c"}))
	g.MoveNode("b", 100, 200)

	segs := g.Segments("b")
	if len(segs) != 2 {
		t.Fatalf("segments = %d, want 2", len(segs))
	}
	if segs[0].To != (graph.Point{X: 100, Y: 200}) {
		t.Errorf("a→b segment end = %v", segs[0].To)
	}
	if segs[1].From != (graph.Point{X: 100, Y: 200}) {
		t.Errorf("b→c segment start = %v", segs[1].From)
	}
	if len(g.Segments("ghost")) != 0 {
		t.Error("unknown id should have no segments")
	}
}

func TestMoveNodeKeepsPin(t *testing.T) {
	g := newTestGraph()
	g.Load(dataset([]string{"a", "b"}))
	g.SetPositions(map[string]graph.Point{"a": {X: 1, Y: 1}, "ghost": {X: 5, Y: 5}}, true)
	g.MoveNode("a", 50, 60)

	a, _ := g.Node("a")
	if !a.Pinned || a.FX != 50 || a.FY != 60 {
		t.Errorf("pin not moved: %+v", a)
	}
	b, _ := g.Node("b")
	if b.Pinned {
		t.Error("b was never pinned")
	}
	if g.MoveNode("ghost", 1, 1) {
		t.Error("MoveNode(ghost) should fail")
	}
}

func TestBounds(t *testing.T) {
	g := newTestGraph()
	if _, _, ok := g.Bounds(); ok {
		t.Error("empty graph should have no bounds")
	}
	ds := dataset([]string{"a", "b"})
	ds.Nodes[0].X, ds.Nodes[0].Y = graph.Float(-10), graph.Float(5)
	ds.Nodes[1].X, ds.Nodes[1].Y = graph.Float(30), graph.Float(-2)
	g.Load(ds)

	lo, hi, ok := g.Bounds()
	if !ok || lo != (graph.Point{X: -10, Y: -2}) || hi != (graph.Point{X: 30, Y: 5}) {
		t.Errorf("Bounds() = %v, %v, %v", lo, hi, ok)
	}
}

func TestResolve(t *testing.T) {
	a, b := &Node{ID: "a"}, &Node{ID: "b"}
	lookup := func(id string) (*Node, bool) {
		switch id {
		case "a":
			return a, true
		case "b":
			return b, true
		}
		return nil, false
	}

	resolved, dropped := Resolve([]StoredLink{
		{Source: "a", Target: "b"},
		{Source: "a", Target: "x"},
		{Source: "x", Target: "b"},
	}, lookup)

	if dropped != 2 || len(resolved) != 1 {
		t.Fatalf("resolved %d, dropped %d", len(resolved), dropped)
	}
	if resolved[0].Source != a || resolved[0].Target != b {
		t.Error("resolved link does not hold the arena records")
	}
	if resolved[0].Stored() != (StoredLink{Source: "a", Target: "b"}) {
		t.Errorf("Stored() = %v", resolved[0].Stored())
	}
}
