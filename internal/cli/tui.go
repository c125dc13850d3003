package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/netmap/pkg/editor"
	"github.com/matzehuels/netmap/pkg/graph"
	"github.com/matzehuels/netmap/pkg/hierarchy"
)

// List styles
var (
	listDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	listOfflineStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// BrowseModel - Interactive topology browser
// =============================================================================

// browseRow is one node in the level-ordered list.
type browseRow struct {
	level    int
	id       string
	typ      graph.DeviceType
	status   graph.Status
	selected bool
	degree   int
	x, y     float64
}

// BrowseModel is the bubbletea model for browsing and editing a topology.
// Nodes are listed by hierarchy level; the cursor picks the node that
// keyboard commands act on.
type BrowseModel struct {
	ctx    context.Context
	editor *editor.Editor
	path   string

	rows   []browseRow
	levels int
	Cursor int
	Offset int
	Height int

	Status string
	Saved  bool
}

// NewBrowseModel creates a browser over ed. path is where 'w' writes the
// dataset back.
func NewBrowseModel(ctx context.Context, ed *editor.Editor, path string) BrowseModel {
	m := BrowseModel{ctx: ctx, editor: ed, path: path, Height: 15}
	m.refresh()
	return m
}

// refresh rebuilds the rows from the editor.
func (m *BrowseModel) refresh() {
	g := m.editor.Graph()
	res := hierarchy.Detect(g.IDs(), g.Links())
	m.levels = res.MaxLevel + 1

	m.rows = make([]browseRow, 0, g.Len())
	for level, ids := range res.Groups() {
		for _, id := range ids {
			n, _ := g.Node(id)
			info := res.Info[id]
			m.rows = append(m.rows, browseRow{
				level:    level,
				id:       id,
				typ:      n.Type,
				status:   n.Status,
				selected: n.Selected,
				degree:   info.InDegree + info.OutDegree,
				x:        n.X,
				y:        n.Y,
			})
		}
	}
	if m.Cursor >= len(m.rows) {
		m.Cursor = max(len(m.rows)-1, 0)
	}
	m.clampOffset()
}

func (m *BrowseModel) clampOffset() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// current returns the id under the cursor.
func (m BrowseModel) current() (string, bool) {
	if len(m.rows) == 0 {
		return "", false
	}
	return m.rows[m.Cursor].id, true
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				m.clampOffset()
			}
		case "down", "j":
			if m.Cursor < len(m.rows)-1 {
				m.Cursor++
				m.clampOffset()
			}
		case "enter", " ":
			if id, ok := m.current(); ok {
				m.editor.Graph().Select(id)
				m.Status = "selected " + id
				m.refresh()
			}
		case "d", "delete":
			if id, ok := m.current(); ok && m.editor.DeleteNode(id) {
				m.Status = "deleted " + id
				m.refresh()
			}
		case "b":
			res := m.editor.Beautify(m.ctx)
			m.Status = fmt.Sprintf("beautified: %d levels, %d overlap passes", res.MaxLevel+1, res.OverlapPasses)
			m.refresh()
		case "1", "2", "3", "4":
			algo := graph.Algorithms[int(msg.String()[0]-'1')]
			if _, err := m.editor.Arrange(m.ctx, algo); err != nil {
				m.Status = err.Error()
			} else {
				m.Status = "arranged " + algo
			}
			m.refresh()
		case "w":
			if err := graph.WriteDatasetFile(m.editor.Data(), m.path); err != nil {
				m.Status = "save failed: " + err.Error()
			} else {
				m.Status = "wrote " + m.path
				m.Saved = true
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		m.clampOffset()
	}
	return m, nil
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Topology"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d nodes · %d links · %d levels",
		len(m.rows), m.editor.Graph().LinkCount(), m.levels)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  d delete  b beautify  1-4 arrange  w write  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.rows))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		sel := ""
		if r.selected {
			sel = "●"
		}
		rows = append(rows, []string{
			cursor,
			fmt.Sprint(r.level),
			r.id,
			string(r.typ),
			string(r.status),
			fmt.Sprint(r.degree),
			fmt.Sprintf("%.0f, %.0f", r.x, r.y),
			sel,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Lvl", "Node", "Type", "Status", "Deg", "Position", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.rows) {
				return lipgloss.NewStyle()
			}
			r := m.rows[idx]
			base := lipgloss.NewStyle()
			switch {
			case col == 4 && r.status == graph.StatusOffline:
				base = listOfflineStyle
			case col == 6:
				base = base.Foreground(colorDim)
			}
			if idx == m.Cursor {
				if col == 4 || col == 6 {
					return base.Bold(true)
				}
				return base.Foreground(colorCyan).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	if len(m.rows) > 0 {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.rows))))
	}
	if m.Status != "" {
		b.WriteString("  " + StyleSuccess.Render(m.Status))
	}
	b.WriteString("\n")

	return b.String()
}
