package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackviz/pkg/chart"
	"github.com/matzehuels/stackviz/pkg/interact"
	"github.com/matzehuels/stackviz/pkg/observability"
	"github.com/matzehuels/stackviz/pkg/pipeline"
	"github.com/matzehuels/stackviz/pkg/render/sink"
)

const (
	frameInterval = 33 * time.Millisecond
	headerLines   = 1
	footerLines   = 1
	maxEventLog   = 4
)

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var flags chartFlags
	var linked []string

	cmd := &cobra.Command{
		Use:   "explore [file]",
		Short: "Explore a chart interactively in the terminal",
		Long: `Explore draws a chart in the terminal and feeds it mouse input: hover to
inspect marks, drag to brush, click a category to filter. Charts passed with
--link share the dataset and react to each other's events.`,
		Example: `  stackviz explore stocks.csv -k line -x date -y price --group symbol --brush
  stackviz explore sales.csv -k bar -x region -y revenue --link scatter`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts, cacheCfg, err := flags.resolve(cmd, args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("transition") {
				opts.Config.Transition = 300 * time.Millisecond
			}
			opts.Logger = loggerFromContext(ctx)

			runner, err := c.newRunner(ctx, cacheCfg, true)
			if err != nil {
				return err
			}
			defer closeQuietly(ctx, runner.Close)

			m, err := newExploreModel(ctx, runner, opts, linked)
			if err != nil {
				return err
			}
			p := tea.NewProgram(m,
				tea.WithContext(ctx),
				tea.WithAltScreen(),
				tea.WithMouseAllMotion(),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = p.Run()
			return err
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringSliceVar(&linked, "link", nil, "additional chart kinds bound to the same data")
	return cmd
}

// =============================================================================
// Explore Model
// =============================================================================

// pane is one chart drawn in a horizontal band of the screen.
type pane struct {
	chart chart.Chart
	term  *sink.Term
	top   int
	rows  int
}

type tickMsg time.Time

// exploreModel is the bubbletea model of the explorer. Charts share a bus
// so that a brush or click in one pane updates the others.
type exploreModel struct {
	ctx     context.Context
	title   string
	panes   []*pane
	bus     *interact.Bus
	painter *painter

	width, height int
	active        int // pane under the pointer, -1 if none
	animating     bool
	last          time.Time

	status string
	events []string
	err    error
}

func newExploreModel(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, linked []string) (*exploreModel, error) {
	ds, _, err := pipeline.Load(ctx, opts)
	if err != nil {
		return nil, err
	}

	m := &exploreModel{
		ctx:     ctx,
		title:   fmt.Sprintf("%s · %s", opts.Input, opts.Kind),
		bus:     interact.NewBus(),
		painter: newPainter(),
		active:  -1,
		status:  "hover, drag or click · q to quit",
	}
	kinds := append([]string{opts.Kind}, linked...)
	charts := make([]chart.Chart, 0, len(kinds))
	for _, kind := range kinds {
		o := opts
		o.Kind = kind
		cfg := *opts.Config
		o.Config = &cfg
		c, err := runner.Chart(ctx, ds, o)
		if err != nil {
			return nil, err
		}
		charts = append(charts, c)
		m.panes = append(m.panes, &pane{chart: c})
	}
	chart.Link(m.bus, charts...)
	m.bus.Subscribe("", m.record)
	return m, nil
}

// record keeps a short log of published events for the footer.
func (m *exploreModel) record(ev interact.Event) {
	observability.Interaction().OnEvent(m.ctx, ev.Origin(), string(ev.Topic()))
	m.events = append(m.events, describeEvent(ev))
	if len(m.events) > maxEventLog {
		m.events = m.events[len(m.events)-maxEventLog:]
	}
}

func describeEvent(ev interact.Event) string {
	switch e := ev.(type) {
	case interact.HoverChanged:
		if !e.Found {
			return "hover: none"
		}
		if e.Label != "" {
			return "hover: " + e.Label
		}
		return "hover: " + e.Key
	case interact.SelectionChanged:
		return fmt.Sprintf("brush: %.4g to %.4g", e.Lo, e.Hi)
	case interact.SelectionCleared:
		return "brush cleared"
	case interact.FilterChanged:
		if len(e.Categories) == 0 {
			return "filter: all"
		}
		return "filter: " + strings.Join(e.Categories, ", ")
	default:
		return string(ev.Topic())
	}
}

func (m *exploreModel) Init() tea.Cmd {
	return m.startTicking()
}

func (m *exploreModel) startTicking() tea.Cmd {
	if m.animating {
		return nil
	}
	m.animating = true
	m.last = time.Now()
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.redraw()
	case tea.MouseMsg:
		if m.pointer(tea.MouseEvent(msg)) {
			m.redraw()
			return m, m.startTicking()
		}
	case tickMsg:
		now := time.Time(msg)
		dt := now.Sub(m.last)
		m.last = now
		running := false
		for _, p := range m.panes {
			if p.chart.Advance(dt) {
				running = true
			}
		}
		m.redraw()
		if !running {
			m.animating = false
			return m, nil
		}
		return m, tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
	}
	return m, nil
}

// resize splits the screen between header, panes and footer.
func (m *exploreModel) resize(width, height int) {
	m.width, m.height = width, height
	avail := max(height-headerLines-footerLines, len(m.panes))
	each := avail / len(m.panes)
	top := headerLines
	for _, p := range m.panes {
		p.top, p.rows = top, each
		top += each
	}
}

// pointer translates a mouse event into pointer events for the pane under
// the cursor and publishes what the chart returns. It reports whether
// anything was published.
func (m *exploreModel) pointer(me tea.MouseEvent) bool {
	idx := m.paneAt(me.Y)
	var out []interact.Event

	if idx != m.active && m.active >= 0 {
		out = append(out, m.panes[m.active].chart.Handle(interact.PointerEvent{Kind: interact.PointerLeave})...)
	}
	if idx >= 0 {
		p := m.panes[idx]
		x, y := p.term.Canvas(me.X, me.Y-p.top)
		if idx != m.active {
			out = append(out, p.chart.Handle(interact.PointerEvent{Kind: interact.PointerEnter, X: x, Y: y})...)
		}
		kind, ok := pointerKind(me)
		if ok {
			out = append(out, p.chart.Handle(interact.PointerEvent{Kind: kind, X: x, Y: y})...)
		}
	}
	m.active = idx

	m.bus.PublishAll(out)
	if len(out) > 0 {
		m.status = describeEvent(out[len(out)-1])
	}
	return len(out) > 0
}

func pointerKind(me tea.MouseEvent) (interact.PointerKind, bool) {
	switch me.Action {
	case tea.MouseActionMotion:
		return interact.PointerMove, true
	case tea.MouseActionPress:
		if me.Button == tea.MouseButtonLeft {
			return interact.PointerDown, true
		}
	case tea.MouseActionRelease:
		return interact.PointerUp, true
	}
	return 0, false
}

// paneAt returns the index of the pane covering screen row y, or -1.
func (m *exploreModel) paneAt(y int) int {
	for i, p := range m.panes {
		if p.term != nil && y >= p.top && y < p.top+p.rows {
			return i
		}
	}
	return -1
}

func (m *exploreModel) redraw() {
	if m.width == 0 {
		return
	}
	for _, p := range m.panes {
		sc, err := p.chart.Render()
		if err != nil {
			m.err = err
			return
		}
		p.term = sink.RenderTerm(sc, m.width, p.rows)
	}
}

func (m *exploreModel) View() string {
	if m.width == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString(StyleDim.Render("  " + m.status))
	for _, p := range m.panes {
		b.WriteByte('\n')
		if p.term != nil {
			b.WriteString(p.term.Render(m.painter.paint))
		}
	}
	b.WriteByte('\n')
	if m.err != nil {
		b.WriteString(StyleWarning.Render(m.err.Error()))
	} else {
		b.WriteString(StyleDim.Render(strings.Join(m.events, " · ")))
	}
	return b.String()
}
