package cli

import (
	"context"
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/adroutes/pkg/network"
	"github.com/matzehuels/adroutes/pkg/pipeline"
)

func sampleResult(t *testing.T) *pipeline.Result {
	t.Helper()
	c := New(&strings.Builder{}, LogInfo)
	res, err := pipeline.NewRunner(nil, nil, c.Logger).Classify(context.Background(), pipeline.Options{})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	return res
}

func TestClassTable(t *testing.T) {
	out := classTable(sampleResult(t), 0)
	for _, want := range []string{"bidirectional", "priority", "subpriority", "backwards", "23→30", "32↔33", "26→27"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestClassTableLimit(t *testing.T) {
	out := classTable(sampleResult(t), 2)
	if !strings.Contains(out, "… +2") {
		t.Errorf("truncated table should note hidden edges:\n%s", out)
	}
	if strings.Contains(out, "28→29") {
		t.Errorf("truncated table lists a hidden edge:\n%s", out)
	}
}

func TestClassifyCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	out, err := runCommand(t, "classify", "--no-cache", "-s", "23-26")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	for _, want := range []string{"23-26", "23→24", "4 waypoints"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestEdgeListModel(t *testing.T) {
	res := sampleResult(t)
	m := NewEdgeListModel(res.Classification, nil)

	counts := res.Classification.Counts()
	total := 0
	for _, n := range counts {
		total += n
	}
	if len(m.Rows) != total {
		t.Fatalf("rows = %d, want %d", len(m.Rows), total)
	}
	if r := m.Rows[0]; r.From != 23 || r.To != 24 {
		t.Errorf("first row = %d→%d, want 23→24", r.From, r.To)
	}

	key := func(m EdgeListModel, s string) EdgeListModel {
		var msg tea.KeyMsg
		switch s {
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		}
		next, _ := m.Update(msg)
		return next.(EdgeListModel)
	}

	m = key(m, "up")
	if m.Cursor != 0 {
		t.Errorf("cursor moved above the first row: %d", m.Cursor)
	}
	m = key(key(m, "down"), "down")
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.Cursor)
	}

	m = key(m, "tab")
	if m.Filter == nil || *m.Filter != network.Classes[0] || m.Cursor != 0 {
		t.Fatalf("tab should filter by %s and reset the cursor", network.Classes[0])
	}
	if got := len(m.Visible()); got != counts[network.Classes[0]] {
		t.Errorf("visible = %d, want %d", got, counts[network.Classes[0]])
	}
	for range network.Classes {
		m = key(m, "tab")
	}
	if m.Filter != nil {
		t.Error("filter should cycle back to all")
	}

	m = key(m, "enter")
	if m.Selected == nil || m.Selected.From != 23 {
		t.Errorf("Selected = %+v", m.Selected)
	}
	if !strings.Contains(m.View(), "Connections") {
		t.Error("view is missing its title")
	}
}

func TestNearestCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	in, err := pipeline.Load(context.Background(), pipeline.Options{})
	if err != nil {
		t.Fatal(err)
	}
	x, z, _ := in.Table().Position(23)

	out, err := runCommand(t, "nearest", "-n", "3", "--", formatCoord(x), formatCoord(z))
	if err != nil {
		t.Fatalf("nearest: %v", err)
	}
	if !strings.Contains(out, "23") || !strings.Contains(out, "0.000") {
		t.Errorf("nearest output:\n%s", out)
	}

	if _, err := runCommand(t, "nearest", "a", "1"); err == nil {
		t.Error("non-numeric coordinate should fail")
	}
}

func formatCoord(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func TestStatsLine(t *testing.T) {
	res := sampleResult(t)
	counts := res.Classification.Counts()

	line := statsLine(res.Selection.Len(), counts, false)
	for _, want := range []string{"14 waypoints", "4 bidirectional", "3 backwards", "2 priority", "4 subpriority", iconFresh} {
		if !strings.Contains(line, want) {
			t.Errorf("statsLine missing %q: %s", want, line)
		}
	}
	if line := statsLine(0, counts, true); !strings.Contains(line, iconCached) {
		t.Errorf("cached statsLine missing %q: %s", iconCached, line)
	}
}
