package hierarchy

import (
	"reflect"
	"testing"

	"github.com/matzehuels/netmap/pkg/topology"
)

func links(pairs ...string) []topology.StoredLink {
	out := make([]topology.StoredLink, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, topology.StoredLink{Source: pairs[i], Target: pairs[i+1]})
	}
	return out
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		ids       []string
		links     []topology.StoredLink
		want      map[string]int
		wantMax   int
		wantRoots []string
	}{
		{
			name:      "LinearChain",
			ids:       []string{"A", "B", "C", "D"},
			links:     links("A", "B", "B", "C", "C", "D"),
			want:      map[string]int{"A": 0, "B": 1, "C": 2, "D": 3},
			wantMax:   3,
			wantRoots: []string{"A"},
		},
		{
			name:      "PureCycle",
			ids:       []string{"X", "Y", "Z"},
			links:     links("X", "Y", "Y", "Z", "Z", "X"),
			want:      map[string]int{"X": 0, "Y": 0, "Z": 0},
			wantMax:   0,
			wantRoots: []string{"X", "Y", "Z"},
		},
		{
			name:      "CycleMaxOutDegree",
			ids:       []string{"X", "Y", "Z"},
			links:     links("X", "Y", "Y", "Z", "Z", "X", "X", "Z"),
			want:      map[string]int{"X": 0, "Y": 1, "Z": 1},
			wantMax:   1,
			wantRoots: []string{"X"},
		},
		{
			name:      "IsolatedNode",
			ids:       []string{"A", "B", "lonely"},
			links:     links("A", "B"),
			want:      map[string]int{"A": 0, "B": 1, "lonely": 0},
			wantMax:   1,
			wantRoots: []string{"A", "lonely"},
		},
		{
			name:      "UnreachedCycleForcedToZero",
			ids:       []string{"R", "S", "P", "Q"},
			links:     links("R", "S", "P", "Q", "Q", "P"),
			want:      map[string]int{"R": 0, "S": 1, "P": 0, "Q": 0},
			wantMax:   1,
			wantRoots: []string{"R"},
		},
		{
			name:      "FirstVisitWins",
			ids:       []string{"r1", "r2", "mid", "leaf"},
			links:     links("r1", "mid", "mid", "leaf", "r2", "leaf"),
			want:      map[string]int{"r1": 0, "r2": 0, "mid": 1, "leaf": 1},
			wantMax:   1,
			wantRoots: []string{"r1", "r2"},
		},
		{
			name:      "UnknownEndpointsIgnored",
			ids:       []string{"A", "B"},
			links:     links("A", "ghost", "ghost", "B", "A", "B"),
			want:      map[string]int{"A": 0, "B": 1},
			wantMax:   1,
			wantRoots: []string{"A"},
		},
		{
			name:    "Empty",
			want:    map[string]int{},
			wantMax: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Detect(tt.ids, tt.links)

			for id, want := range tt.want {
				if got := res.LevelOf(id); got != want {
					t.Errorf("level(%s) = %d, want %d", id, got, want)
				}
			}
			if res.MaxLevel != tt.wantMax {
				t.Errorf("MaxLevel = %d, want %d", res.MaxLevel, tt.wantMax)
			}
			if !reflect.DeepEqual(res.Roots, tt.wantRoots) {
				t.Errorf("Roots = %v, want %v", res.Roots, tt.wantRoots)
			}
			for id, info := range res.Info {
				if info.Level == Unvisited {
					t.Errorf("%s left unvisited", id)
				}
			}
		})
	}
}

func TestDetectDegrees(t *testing.T) {
	res := Detect([]string{"core", "d1", "d2"}, links("core", "d1", "core", "d2", "d1", "d2"))

	core := res.Info["core"]
	if core.OutDegree != 2 || core.InDegree != 0 {
		t.Errorf("core degrees = in %d out %d", core.InDegree, core.OutDegree)
	}
	if !reflect.DeepEqual(core.Children, []string{"d1", "d2"}) {
		t.Errorf("core children = %v", core.Children)
	}
	d2 := res.Info["d2"]
	if d2.InDegree != 2 || !reflect.DeepEqual(d2.Parents, []string{"core", "d1"}) {
		t.Errorf("d2 = %+v", d2)
	}
	if d2.Level != 1 {
		t.Errorf("d2 level = %d, want shortest path 1", d2.Level)
	}
}

func TestChildIsOneBelowParentInTree(t *testing.T) {
	ids := []string{"root", "a", "b", "a1", "a2", "b1", "a1x"}
	ls := links("root", "a", "root", "b", "a", "a1", "a", "a2", "b", "b1", "a1", "a1x")
	res := Detect(ids, ls)

	if res.LevelOf("root") != 0 {
		t.Fatalf("root level = %d", res.LevelOf("root"))
	}
	for _, l := range ls {
		if res.LevelOf(l.Target) != res.LevelOf(l.Source)+1 {
			t.Errorf("level(%s)=%d, level(%s)=%d", l.Source, res.LevelOf(l.Source), l.Target, res.LevelOf(l.Target))
		}
	}
}

func TestGroups(t *testing.T) {
	res := Detect([]string{"A", "B", "C", "D", "E"}, links("A", "B", "A", "C", "C", "D"))
	want := [][]string{{"A", "E"}, {"B", "C"}, {"D"}}
	if got := res.Groups(); !reflect.DeepEqual(got, want) {
		t.Errorf("Groups() = %v, want %v", got, want)
	}
	if res.LevelOf("nope") != Unvisited {
		t.Error("unknown id should report Unvisited")
	}
	if Detect(nil, nil).Groups() != nil {
		t.Error("empty result should have no groups")
	}
}

func TestDuplicateIDsCollapsed(t *testing.T) {
	res := Detect([]string{"A", "A", "B"}, links("A", "B"))
	if res.Len() != 2 {
		t.Errorf("Len() = %d, want 2", res.Len())
	}
	if !reflect.DeepEqual(res.IDs(), []string{"A", "B"}) {
		t.Errorf("IDs() = %v", res.IDs())
	}
}
