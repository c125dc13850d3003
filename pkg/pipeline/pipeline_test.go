package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/netmap/pkg/cache"
	"github.com/matzehuels/netmap/pkg/graph"
	"github.com/matzehuels/netmap/pkg/observability"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"png", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateAlgorithm(t *testing.T) {
	for _, name := range graph.Algorithms {
		if err := ValidateAlgorithm(name); err != nil {
			t.Errorf("ValidateAlgorithm(%q) = %v", name, err)
		}
	}
	for _, name := range []string{"", "spring", "Hybrid"} {
		if err := ValidateAlgorithm(name); err == nil {
			t.Errorf("ValidateAlgorithm(%q) should fail", name)
		}
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()

	if opts.Algorithm != graph.AlgorithmHybrid {
		t.Errorf("Algorithm should be hybrid, got %s", opts.Algorithm)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("canvas = %vx%v", opts.Width, opts.Height)
	}
	if opts.NodeRadius != DefaultNodeRadius || opts.LargeGraphThreshold != DefaultThreshold {
		t.Errorf("radius/threshold = %v/%d", opts.NodeRadius, opts.LargeGraphThreshold)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats should be [json], got %v", opts.Formats)
	}
}

func TestArtifactKeyOptsIncludesLabels(t *testing.T) {
	plain := Options{}
	labelled := Options{Labels: true}
	if plain.ArtifactKeyOpts("svg") == labelled.ArtifactKeyOpts("svg") {
		t.Error("labels should change the artifact key")
	}
}

func tree() graph.Dataset {
	return graph.Dataset{
		Nodes: []graph.Node{
			{ID: "core", Type: graph.DeviceSwitch},
			{ID: "a1", Type: graph.DeviceSwitch},
			{ID: "a2", Type: graph.DeviceSwitch},
			{ID: "pc1", Type: graph.DevicePC},
			{ID: "pc2", Type: graph.DevicePC},
		},
		Links: []graph.Link{
			{Source: "core", Target: "a1"},
			{Source: "core", Target: "a2"},
			{Source: "a1", Target: "pc1"},
			{Source: "a2", Target: "pc2"},
			{Source: "a2", Target: "ghost"},
		},
	}
}

func TestComputeLayout(t *testing.T) {
	l, report, err := ComputeLayout(context.Background(), tree(), Options{}, observability.Noop())
	if err != nil {
		t.Fatal(err)
	}
	if report.DroppedLinks != 1 {
		t.Errorf("DroppedLinks = %d, want 1", report.DroppedLinks)
	}
	if l.Algorithm != graph.AlgorithmHybrid || l.MaxLevel != 2 {
		t.Errorf("layout = %s maxLevel %d", l.Algorithm, l.MaxLevel)
	}
	if len(l.Positions) != 5 || len(l.Dataset.Nodes) != 5 {
		t.Errorf("positions = %d, nodes = %d", len(l.Positions), len(l.Dataset.Nodes))
	}
	for _, n := range l.Dataset.Nodes {
		p := l.Positions[n.ID]
		if !n.HasPosition() || *n.X != p.X || *n.Y != p.Y {
			t.Errorf("dataset node %s not at its layout position", n.ID)
		}
	}
	if got := l.NodeHierarchy["pc2"].Level; got != 2 {
		t.Errorf("pc2 level = %d, want 2", got)
	}
}

func TestComputeLayoutUnknownAlgorithm(t *testing.T) {
	_, _, err := ComputeLayout(context.Background(), tree(), Options{Algorithm: "spring"}, observability.Noop())
	if err == nil {
		t.Fatal("unknown algorithm should fail")
	}
}

func TestRenderDOT(t *testing.T) {
	l, _, _ := ComputeLayout(context.Background(), tree(), Options{}, observability.Noop())
	out, err := Render(context.Background(), l, Options{Formats: []string{FormatDOT, FormatJSON}, Labels: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out[FormatDOT]), `"pc1" [`) {
		t.Errorf("DOT output missing node:\n%s", out[FormatDOT])
	}
	parsed, err := graph.UnmarshalLayout(out[FormatJSON])
	if err != nil || len(parsed.Positions) != 5 {
		t.Errorf("JSON output = %v, %v", parsed.Positions, err)
	}
}

type countingCache struct {
	observability.NoopCacheHooks
	hits, misses, sets map[string]int
}

func newCountingCache() *countingCache {
	return &countingCache{hits: map[string]int{}, misses: map[string]int{}, sets: map[string]int{}}
}

func (c *countingCache) OnCacheHit(_ context.Context, k string)        { c.hits[k]++ }
func (c *countingCache) OnCacheMiss(_ context.Context, k string)       { c.misses[k]++ }
func (c *countingCache) OnCacheSet(_ context.Context, k string, _ int) { c.sets[k]++ }

func TestRunnerCaches(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	counts := newCountingCache()
	r := NewRunner(fc, nil, nil, observability.Hooks{Cache: counts})
	defer r.Close()

	opts := Options{Formats: []string{FormatJSON, FormatDOT}}

	first, err := r.Execute(ctx, tree(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run hit the cache: %+v", first.CacheInfo)
	}

	second, err := r.Execute(ctx, tree(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run missed the cache: %+v", second.CacheInfo)
	}
	if first.DatasetHash != second.DatasetHash {
		t.Error("dataset hash changed between runs")
	}
	if string(first.Artifacts[FormatDOT]) != string(second.Artifacts[FormatDOT]) {
		t.Error("cached DOT differs")
	}

	if counts.hits[keyTypeLayout] != 1 || counts.misses[keyTypeLayout] != 1 || counts.sets[keyTypeLayout] != 1 {
		t.Errorf("layout counts: hits %d misses %d sets %d",
			counts.hits[keyTypeLayout], counts.misses[keyTypeLayout], counts.sets[keyTypeLayout])
	}
	if counts.sets[keyTypeArtifact] != 2 {
		t.Errorf("artifact sets = %d, want 2", counts.sets[keyTypeArtifact])
	}

	// Changing the canvas changes the key.
	third, _ := r.Execute(ctx, tree(), Options{Width: 1200, Formats: []string{FormatJSON}})
	if third.CacheInfo.LayoutHit {
		t.Error("different canvas should miss")
	}
}

func TestRunnerRefreshBypassesCache(t *testing.T) {
	ctx := context.Background()
	fc, _ := cache.NewFileCache(t.TempDir())
	r := NewRunner(fc, nil, nil, observability.Hooks{})

	if _, err := r.Layout(ctx, tree(), Options{}); err != nil {
		t.Fatal(err)
	}
	_, hit, err := r.LayoutWithCacheInfo(ctx, tree(), Options{Refresh: true})
	if err != nil || hit {
		t.Errorf("refresh = hit %v, err %v", hit, err)
	}
}

func TestRunnerInvalidFormat(t *testing.T) {
	r := NewRunner(nil, nil, nil, observability.Hooks{})
	_, err := r.Execute(context.Background(), tree(), Options{Formats: []string{"png"}})
	if err == nil {
		t.Fatal("png should be rejected")
	}
	if _, err := r.Layout(context.Background(), tree(), Options{Algorithm: "spring"}); err == nil {
		t.Error("spring should be rejected")
	}
}
