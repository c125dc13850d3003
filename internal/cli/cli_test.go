package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/netmap/pkg/graph"
)

// testCLI is a CLI whose config points the store and cache at a temp dir.
type testCLI struct {
	*CLI
	dir     string
	cfgPath string
}

func newTestCLI(t *testing.T) *testCLI {
	t.Helper()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "netmap.toml")
	data := fmt.Sprintf("[store]\nbackend = 'file'\npath = '%s'\n\n[cache]\ndir = '%s'\n",
		filepath.Join(dir, "store"), filepath.Join(dir, "cache"))
	if err := os.WriteFile(cfg, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return &testCLI{CLI: New(io.Discard, LogInfo), dir: dir, cfgPath: cfg}
}

func (c *testCLI) run(args ...string) error {
	root := c.RootCommand()
	root.SetArgs(append([]string{"--config", c.cfgPath}, args...))
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func (c *testCLI) path(name string) string { return filepath.Join(c.dir, name) }

func TestGenerateLayoutRender(t *testing.T) {
	c := newTestCLI(t)
	topo := c.path("topo.json")

	if err := c.run("generate", "--switches", "10", "--devices", "20", "--seed", "7", "-o", topo); err != nil {
		t.Fatalf("generate: %v", err)
	}
	ds, err := graph.ReadDatasetFile(topo)
	if err != nil {
		t.Fatal(err)
	}
	if ds.NodeCount() != 30 {
		t.Fatalf("generated %d nodes, want 30", ds.NodeCount())
	}

	if err := c.run("layout", topo, "--algorithm", "grid"); err != nil {
		t.Fatalf("layout: %v", err)
	}
	l, err := graph.ReadLayoutFile(c.path("topo.layout.json"))
	if err != nil {
		t.Fatal(err)
	}
	if l.Algorithm != graph.AlgorithmGrid || len(l.Positions) != 30 {
		t.Errorf("layout algorithm=%q positions=%d", l.Algorithm, len(l.Positions))
	}

	// Second run is served from the cache and must match.
	if err := c.run("layout", topo, "--algorithm", "grid", "-o", c.path("again.json")); err != nil {
		t.Fatalf("cached layout: %v", err)
	}
	again, err := graph.ReadLayoutFile(c.path("again.json"))
	if err != nil {
		t.Fatal(err)
	}
	for id, p := range l.Positions {
		if again.Positions[id] != p {
			t.Fatalf("cached position of %s = %v, want %v", id, again.Positions[id], p)
		}
	}

	if err := c.run("render", c.path("topo.layout.json"), "-o", c.path("topo.dot")); err != nil {
		t.Fatalf("render: %v", err)
	}
	dot, err := os.ReadFile(c.path("topo.dot"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(dot), "graph G {") {
		t.Errorf("render output does not start with a graph header: %.40q", dot)
	}

	if err := c.run("render", topo, "--format", "pdf"); err == nil {
		t.Error("render with an unsupported format succeeded")
	}
}

func TestLayoutRejectsUnknownAlgorithm(t *testing.T) {
	c := newTestCLI(t)
	topo := c.path("topo.json")
	if err := graph.WriteDatasetFile(graph.Dataset{Nodes: []graph.Node{{ID: "a"}}}, topo); err != nil {
		t.Fatal(err)
	}
	if err := c.run("layout", topo, "--algorithm", "spiral"); err == nil {
		t.Error("layout with an unknown algorithm succeeded")
	}
}

func TestStoreCommands(t *testing.T) {
	c := newTestCLI(t)
	topo := c.path("office.json")
	ds := graph.Dataset{
		Nodes: []graph.Node{{ID: "core"}, {ID: "sw"}},
		Links: []graph.Link{{Source: "sw", Target: "core"}},
	}
	if err := graph.WriteDatasetFile(ds, topo); err != nil {
		t.Fatal(err)
	}

	if err := c.run("store", "save", topo); err != nil {
		t.Fatalf("store save: %v", err)
	}
	if err := c.run("store", "list"); err != nil {
		t.Fatalf("store list: %v", err)
	}

	out := c.path("copy.json")
	if err := c.run("store", "load", "office", "-o", out); err != nil {
		t.Fatalf("store load: %v", err)
	}
	got, err := graph.ReadDatasetFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if got.NodeCount() != 2 || got.LinkCount() != 1 {
		t.Errorf("loaded %d nodes %d links, want 2 and 1", got.NodeCount(), got.LinkCount())
	}

	if err := c.run("store", "delete", "office"); err != nil {
		t.Fatalf("store delete: %v", err)
	}
	if err := c.run("store", "load", "office", "-o", out); err == nil {
		t.Error("load after delete succeeded")
	}
}

func TestReplay(t *testing.T) {
	c := newTestCLI(t)
	topo := c.path("topo.json")
	ds := graph.Dataset{
		Nodes: []graph.Node{
			{ID: "a", X: graph.Float(100), Y: graph.Float(100)},
			{ID: "b", X: graph.Float(300), Y: graph.Float(100)},
		},
	}
	if err := graph.WriteDatasetFile(ds, topo); err != nil {
		t.Fatal(err)
	}
	events := `[
		{"kind": "pointerdown", "x": 100, "y": 100, "target": {"kind": "node", "nodeId": "a"}},
		{"kind": "pointermove", "x": 150, "y": 200, "target": {"kind": "canvas"}},
		{"kind": "pointerup", "x": 150, "y": 200, "target": {"kind": "canvas"}}
	]`
	if err := os.WriteFile(c.path("events.json"), []byte(events), 0o644); err != nil {
		t.Fatal(err)
	}

	effects := c.path("effects.json")
	if err := c.run("replay", topo, c.path("events.json"), "--effects", effects); err != nil {
		t.Fatalf("replay: %v", err)
	}

	edited, err := graph.ReadDatasetFile(c.path("topo.replayed.json"))
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range edited.Nodes {
		if n.ID == "a" && (*n.X != 150 || *n.Y != 200) {
			t.Errorf("a at (%v, %v), want (150, 200)", *n.X, *n.Y)
		}
	}

	data, err := os.ReadFile(effects)
	if err != nil {
		t.Fatal(err)
	}
	var steps []struct {
		Effects []struct {
			Kind string `json:"kind"`
		} `json:"effects"`
		State string `json:"state"`
	}
	if err := json.Unmarshal(data, &steps); err != nil {
		t.Fatal(err)
	}
	if len(steps) != 3 || steps[1].Effects[0].Kind != "node-moved" || steps[2].State != "idle" {
		t.Errorf("steps = %+v", steps)
	}
}

func TestCacheDirFromConfig(t *testing.T) {
	c := newTestCLI(t)
	c.configPath = c.cfgPath
	if err := c.loadConfig(); err != nil {
		t.Fatal(err)
	}
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != c.path("cache") {
		t.Errorf("cacheDir() = %q, want %q", dir, c.path("cache"))
	}
}

func TestDatasetName(t *testing.T) {
	tests := map[string]string{
		"office.json":        "office",
		"dir/branch.yaml":    "branch",
		"lab":                "lab",
		"a.b/campus.net.yml": "campus.net",
	}
	for in, want := range tests {
		if got := datasetName(in); got != want {
			t.Errorf("datasetName(%q) = %q, want %q", in, got, want)
		}
	}
}
