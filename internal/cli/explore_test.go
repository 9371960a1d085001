package cli

import (
	"context"
	"io"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackviz/pkg/chart"
	"github.com/matzehuels/stackviz/pkg/interact"
	"github.com/matzehuels/stackviz/pkg/pipeline"
)

func newTestExplorer(t *testing.T, linked ...string) *exploreModel {
	t.Helper()
	cfg := chart.DefaultConfig()
	cfg.Fields.X = "fruit"
	cfg.Fields.Y = "n"
	opts := pipeline.Options{
		Input:  writeInput(t, "fruit.csv", fruitCSV),
		Kind:   chart.KindBar,
		Config: &cfg,
	}
	runner := pipeline.NewRunner(nil, nil, log.New(io.Discard))
	m, err := newExploreModel(context.Background(), runner, opts, linked)
	if err != nil {
		t.Fatalf("newExploreModel: %v", err)
	}
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func TestExploreResize(t *testing.T) {
	m := newTestExplorer(t, chart.KindBar)
	if len(m.panes) != 2 {
		t.Fatalf("panes = %d, want 2", len(m.panes))
	}
	if m.panes[0].top != headerLines || m.panes[1].top != headerLines+11 {
		t.Errorf("pane tops = %d, %d, want %d, %d", m.panes[0].top, m.panes[1].top, headerLines, headerLines+11)
	}
	for i, p := range m.panes {
		if p.term == nil || p.term.Cols != 80 || p.term.Rows != 11 {
			t.Errorf("pane %d term = %+v, want 80x11", i, p.term)
		}
	}
	if got := m.paneAt(0); got != -1 {
		t.Errorf("paneAt(header) = %d, want -1", got)
	}
	if got := m.paneAt(12); got != 1 {
		t.Errorf("paneAt(12) = %d, want 1", got)
	}
}

func TestExploreHover(t *testing.T) {
	m := newTestExplorer(t)

	// Column 59, row 16 of the plot maps to canvas (595, 300), inside the
	// second (plum) bar.
	m.Update(tea.MouseMsg{X: 59, Y: 17, Action: tea.MouseActionMotion})
	if !strings.Contains(m.status, "plum") {
		t.Errorf("status = %q, want hover on plum", m.status)
	}
	if m.active != 0 {
		t.Errorf("active = %d, want 0", m.active)
	}

	m.Update(tea.MouseMsg{X: 59, Y: 0, Action: tea.MouseActionMotion})
	if m.status != "hover: none" {
		t.Errorf("status after leaving = %q, want %q", m.status, "hover: none")
	}
	if m.active != -1 {
		t.Errorf("active = %d, want -1", m.active)
	}
	if len(m.events) != 2 {
		t.Errorf("events = %v, want two", m.events)
	}
}

func TestExploreClickFiltersLinkedPane(t *testing.T) {
	m := newTestExplorer(t, chart.KindBar)

	var got []interact.FilterChanged
	m.bus.Subscribe(interact.TopicFilter, func(ev interact.Event) {
		got = append(got, ev.(interact.FilterChanged))
	})

	// Row 8 of an 11-row pane maps to canvas y ~309, inside the plum bar.
	m.Update(tea.MouseMsg{X: 59, Y: 9, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: 59, Y: 9, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	if len(got) != 1 || !slices.Equal(got[0].Categories, []string{"plum"}) {
		t.Fatalf("filter events = %+v, want [plum]", got)
	}
	if got[0].Source != m.panes[0].chart.ID() {
		t.Errorf("source = %q, want first pane", got[0].Source)
	}
	if !strings.Contains(m.View(), "filter: plum") {
		t.Error("View() should show the filter event")
	}
}

func TestExploreQuit(t *testing.T) {
	m := newTestExplorer(t)
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Errorf("%s: cmd = nil, want quit", key)
			continue
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: cmd() is not tea.QuitMsg", key)
		}
	}
}

func TestExploreTickStops(t *testing.T) {
	m := newTestExplorer(t)
	m.animating = true
	_, cmd := m.Update(tickMsg(m.last.Add(frameInterval)))
	if cmd != nil || m.animating {
		t.Errorf("tick without transitions: cmd = %v, animating = %v, want stop", cmd, m.animating)
	}
}

func TestDescribeEvent(t *testing.T) {
	tests := []struct {
		ev   interact.Event
		want string
	}{
		{interact.HoverChanged{Found: true, Key: "k", Label: "k: 1"}, "hover: k: 1"},
		{interact.HoverChanged{Found: true, Key: "k"}, "hover: k"},
		{interact.HoverChanged{}, "hover: none"},
		{interact.SelectionChanged{Lo: 1, Hi: 2.5}, "brush: 1 to 2.5"},
		{interact.SelectionCleared{}, "brush cleared"},
		{interact.FilterChanged{Categories: []string{"a", "b"}}, "filter: a, b"},
		{interact.FilterChanged{}, "filter: all"},
	}
	for _, tt := range tests {
		if got := describeEvent(tt.ev); got != tt.want {
			t.Errorf("describeEvent(%#v) = %q, want %q", tt.ev, got, tt.want)
		}
	}
}
