package cli

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/netmap/pkg/editor"
	"github.com/matzehuels/netmap/pkg/graph"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m BrowseModel, keys ...string) BrowseModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(BrowseModel)
	}
	return m
}

func newBrowseModel(t *testing.T) BrowseModel {
	t.Helper()
	ed := editor.New()
	ed.Load(graph.Dataset{
		Nodes: []graph.Node{
			{ID: "core", Type: graph.DeviceRouter},
			{ID: "sw", Type: graph.DeviceSwitch},
			{ID: "pc", Type: graph.DevicePC, Status: graph.StatusOffline},
		},
		Links: []graph.Link{
			{Source: "core", Target: "sw"},
			{Source: "sw", Target: "pc"},
		},
	})
	return NewBrowseModel(context.Background(), ed, filepath.Join(t.TempDir(), "out.json"))
}

func TestBrowseModelRowsByLevel(t *testing.T) {
	m := newBrowseModel(t)
	if len(m.rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(m.rows))
	}
	for i, want := range []string{"core", "sw", "pc"} {
		if m.rows[i].id != want || m.rows[i].level != i {
			t.Errorf("row %d = %s at level %d, want %s at level %d", i, m.rows[i].id, m.rows[i].level, want, i)
		}
	}
	if m.levels != 3 {
		t.Errorf("levels = %d, want 3", m.levels)
	}
}

func TestBrowseModelNavigation(t *testing.T) {
	m := newBrowseModel(t)

	m = press(m, "up")
	if m.Cursor != 0 {
		t.Errorf("cursor moved above the first row: %d", m.Cursor)
	}
	m = press(m, "down", "j", "down")
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.Cursor)
	}
	m = press(m, "k")
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.Cursor)
	}
}

func TestBrowseModelSelectAndDelete(t *testing.T) {
	m := newBrowseModel(t)

	m = press(m, "down", "enter")
	if sel, ok := m.editor.Graph().Selected(); !ok || sel.ID != "sw" {
		t.Fatalf("selected = %+v, %v", sel, ok)
	}
	if !m.rows[1].selected {
		t.Error("selected row not marked")
	}

	m = press(m, "d")
	if m.editor.Graph().Has("sw") {
		t.Fatal("d did not delete the node under the cursor")
	}
	if m.editor.Graph().LinkCount() != 0 {
		t.Errorf("links after delete = %d, want 0", m.editor.Graph().LinkCount())
	}
	if len(m.rows) != 2 || m.Status != "deleted sw" {
		t.Errorf("rows = %d status = %q", len(m.rows), m.Status)
	}
}

func TestBrowseModelDeleteLastRowClampsCursor(t *testing.T) {
	m := newBrowseModel(t)
	m = press(m, "down", "down", "d")
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.Cursor)
	}
}

func TestBrowseModelLayoutKeys(t *testing.T) {
	m := newBrowseModel(t)

	m = press(m, "b")
	if !strings.HasPrefix(m.Status, "beautified: 3 levels") {
		t.Errorf("status = %q", m.Status)
	}

	m = press(m, "3")
	if m.Status != "arranged "+graph.AlgorithmGrid {
		t.Errorf("status = %q", m.Status)
	}
}

func TestBrowseModelWrite(t *testing.T) {
	m := newBrowseModel(t)
	m = press(m, "w")
	if !m.Saved {
		t.Fatalf("not saved: %s", m.Status)
	}
	ds, err := graph.ReadDatasetFile(m.path)
	if err != nil {
		t.Fatal(err)
	}
	if ds.NodeCount() != 3 || ds.LinkCount() != 2 {
		t.Errorf("wrote %d nodes %d links", ds.NodeCount(), ds.LinkCount())
	}
}

func TestBrowseModelQuit(t *testing.T) {
	m := newBrowseModel(t)
	for _, k := range []string{"q", "esc"} {
		msg := key(k)
		if k == "esc" {
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		}
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Errorf("%s did not quit", k)
			continue
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s returned %T, want tea.QuitMsg", k, cmd())
		}
	}
}

func TestBrowseModelView(t *testing.T) {
	m := newBrowseModel(t)
	view := m.View()
	for _, want := range []string{"core", "sw", "pc", "offline", "[1/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
