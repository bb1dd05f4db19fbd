package cli

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/matzehuels/adroutes/pkg/network"
	"github.com/matzehuels/adroutes/pkg/waypoint"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// EdgeListModel - Interactive edge browser
// =============================================================================

// EdgeRow is one classified connection in the browser.
type EdgeRow struct {
	From, To waypoint.ID
	Class    network.Class
	Length   float64
	Marker   string // map marker name at either end, if any
}

// EdgeListModel is the bubbletea model for browsing classified edges.
// Tab cycles a class filter; enter picks the current row.
type EdgeListModel struct {
	Rows     []EdgeRow
	Filter   *network.Class
	Cursor   int
	Offset   int
	Height   int
	Selected *EdgeRow
}

// NewEdgeListModel creates a browser over every edge of c. Bidirectional
// pairs appear once.
func NewEdgeListModel(c *network.Classification, markers []waypoint.Marker) EdgeListModel {
	g := c.Graph()
	t := g.Table()
	names := waypoint.MarkersFor(markers, g.Selection().Contains)
	marker := func(a, b waypoint.ID) string {
		if m, ok := names[a]; ok {
			return m.Name
		}
		if m, ok := names[b]; ok {
			return m.Name
		}
		return ""
	}
	length := func(a, b waypoint.ID) float64 {
		ax, az, _ := t.Position(a)
		bx, bz, _ := t.Position(b)
		return planar.Distance(orb.Point{ax, az}, orb.Point{bx, bz})
	}

	var rows []EdgeRow
	for _, p := range c.Bidirectional {
		rows = append(rows, EdgeRow{p.Lo, p.Hi, network.ClassBidirectional, length(p.Lo, p.Hi), marker(p.Lo, p.Hi)})
	}
	for class, edges := range map[network.Class][]network.Edge{
		network.ClassPriority:    c.Priority,
		network.ClassSubPriority: c.SubPriority,
		network.ClassBackwards:   c.Backwards,
	} {
		for _, e := range edges {
			rows = append(rows, EdgeRow{e.From, e.To, class, length(e.From, e.To), marker(e.From, e.To)})
		}
	}
	sortRows(rows)
	return EdgeListModel{Rows: rows, Height: 15}
}

// Visible returns the rows that pass the current filter.
func (m EdgeListModel) Visible() []EdgeRow {
	if m.Filter == nil {
		return m.Rows
	}
	var out []EdgeRow
	for _, r := range m.Rows {
		if r.Class == *m.Filter {
			out = append(out, r)
		}
	}
	return out
}

func (m EdgeListModel) Init() tea.Cmd {
	return nil
}

func (m EdgeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		visible := m.Visible()
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(visible)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "tab":
			m.Filter = nextFilter(m.Filter)
			m.Cursor, m.Offset = 0, 0
		case "enter":
			if len(visible) == 0 {
				return m, nil
			}
			row := visible[m.Cursor]
			m.Selected = &row
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m EdgeListModel) View() string {
	var b strings.Builder

	filter := "all"
	if m.Filter != nil {
		filter = m.Filter.String()
	}
	b.WriteString(StyleTitle.Render("Connections"))
	b.WriteString(" " + listDimStyle.Render("["+filter+"]"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  tab filter  ⏎ select  q quit"))
	b.WriteString("\n\n")

	visible := m.Visible()
	end := min(m.Offset+m.Height, len(visible))

	var rows [][]string
	for i := m.Offset; i < end; i++ {
		r := visible[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		arrow := "→"
		if r.Class == network.ClassBidirectional {
			arrow = "↔"
		}
		marker := r.Marker
		if marker == "" {
			marker = "—"
		}
		rows = append(rows, []string{cursor, fmt.Sprintf("%d %s %d", r.From, arrow, r.To),
			r.Class.String(), fmt.Sprintf("%.1f", r.Length), marker})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Edge", "Class", "Length", "Marker").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(visible) {
				return lipgloss.NewStyle()
			}
			if col == 2 {
				return lipgloss.NewStyle().Foreground(classColor(visible[idx].Class))
			}
			if idx == m.Cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	pos := 0
	if len(visible) > 0 {
		pos = m.Cursor + 1
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", pos, len(visible))))

	return b.String()
}

// sortRows orders rows by source, target, then class.
func sortRows(rows []EdgeRow) {
	slices.SortFunc(rows, func(a, b EdgeRow) int {
		return cmp.Or(
			cmp.Compare(a.From, b.From),
			cmp.Compare(a.To, b.To),
			cmp.Compare(slices.Index(network.Classes, a.Class), slices.Index(network.Classes, b.Class)),
		)
	})
}

// nextFilter cycles all → each class in render order → all.
func nextFilter(cur *network.Class) *network.Class {
	if cur == nil {
		c := network.Classes[0]
		return &c
	}
	for i, c := range network.Classes {
		if c == *cur && i+1 < len(network.Classes) {
			next := network.Classes[i+1]
			return &next
		}
	}
	return nil
}
