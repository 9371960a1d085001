package chart

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/stackviz/pkg/data"
	"github.com/matzehuels/stackviz/pkg/errors"
	"github.com/matzehuels/stackviz/pkg/interact"
	"github.com/matzehuels/stackviz/pkg/layout"
	"github.com/matzehuels/stackviz/pkg/render/scene"
	"github.com/matzehuels/stackviz/pkg/scale"
)

// Component holds the state every chart variant shares: configuration,
// the current dataset, the element layers and the interactive region.
// Variants embed it.
type Component struct {
	id     string
	kind   string
	cfg    Config
	ds     *data.Dataset
	ready  bool
	layers []*layer
	region *interact.Region
}

func newComponent(kind string) Component {
	return Component{id: uuid.NewString(), kind: kind, cfg: DefaultConfig()}
}

// ID returns the instance ID used as event source.
func (c *Component) ID() string { return c.id }

// Kind returns the chart kind.
func (c *Component) Kind() string { return c.kind }

// Config returns the configuration of the last successful update.
func (c *Component) Config() Config { return c.cfg }

// Dataset returns the dataset of the last successful update.
func (c *Component) Dataset() *data.Dataset { return c.ds }

// Region returns the interactive plot area.
func (c *Component) Region() *interact.Region { return c.region }

// init allocates the named layers once.
func (c *Component) init(names ...string) []*layer {
	if c.ready {
		return c.layers
	}
	c.layers = make([]*layer, len(names))
	for i, n := range names {
		c.layers[i] = newLayer(n)
	}
	c.region = &interact.Region{Source: c.id}
	c.ready = true
	return c.layers
}

// begin validates an update before any state is touched.
func (c *Component) begin(ctx context.Context, ds *data.Dataset, cfg Config, required ...string) error {
	if !c.ready {
		return errors.New(errors.ErrCodeInvalidInput, "%s chart used before Initialize", c.kind)
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeTimeout, err, "update %s chart", c.kind)
	}
	if ds == nil {
		return errors.New(errors.ErrCodeInvalidInput, "%s chart needs a dataset", c.kind)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	var names []string
	for _, r := range required {
		if r == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "%s chart: a required field name is empty", c.kind)
		}
		names = append(names, r)
	}
	return ds.Require(names...)
}

// commit installs a successful update.
func (c *Component) commit(ds *data.Dataset, cfg Config) {
	c.ds, c.cfg = ds, cfg
	for _, l := range c.layers {
		l.configure(cfg)
	}
	m := cfg.Margin
	c.region.Box = layout.Box{
		Left:   m.Left,
		Top:    m.Top,
		Right:  m.Left + cfg.InnerWidth(),
		Bottom: m.Top + cfg.InnerHeight(),
	}
	c.region.Reset()
}

// Handle feeds the pointer event to the region.
func (c *Component) Handle(ev interact.PointerEvent) []interact.Event {
	if c.region == nil || c.ds == nil {
		return nil
	}
	return c.region.Handle(ev)
}

// Receive ignores events by default.
func (c *Component) Receive(interact.Event) bool { return false }

// Advance moves the transitions of every layer.
func (c *Component) Advance(dt time.Duration) bool {
	running := false
	for _, l := range c.layers {
		if l.sel.Advance(dt) {
			running = true
		}
	}
	return running
}

// flush reconciles all staged layers.
func (c *Component) flush() {
	for _, l := range c.layers {
		l.flush()
	}
}

// frame returns an empty scene with the title and the translated plot group.
func (c *Component) frame() (*scene.Scene, *scene.Node) {
	cfg := c.cfg
	s := scene.New(cfg.Width, cfg.Height)
	s.Title = cfg.Title
	if cfg.Title != "" {
		s.Root.Add(scene.Text(cfg.Width/2, cfg.Margin.Top*0.6, cfg.Title, scene.AnchorMiddle,
			scene.Style{FontSize: 14, Fill: "#222"}).WithClass("title"))
	}
	plot := scene.Group("plot", "plot", c.kind).Translate(cfg.Margin.Left, cfg.Margin.Top)
	s.Root.Add(plot)
	return s, plot
}

// tooltip draws the label of the hovered shape, if any.
func (c *Component) tooltip(plot *scene.Node) {
	s, ok := c.region.Hovered()
	if !ok || s.Label == "" {
		return
	}
	x, y := s.Center()
	w := 7*float64(len([]rune(s.Label))) + 8
	// keep the box inside the plot horizontally
	left := min(max(x-w/2, 0), max(c.cfg.InnerWidth()-w, 0))
	top := y - 28
	if top < 0 {
		top = y + 8
	}
	plot.Add(scene.Group("tooltip", "tooltip").Add(
		scene.Rect(left, top, w, 18, scene.Style{Fill: "#ffffff", Stroke: "#999", Opacity: 0.9}),
		scene.Text(left+w/2, top+13, s.Label, scene.AnchorMiddle, scene.Style{FontSize: 11, Fill: "#222"}),
	))
}

// palette returns the categorical color scale for the configuration.
func palette(cfg Config, domain []string) (*scale.Ordinal[string], error) {
	if cfg.Fill != "" {
		return scale.NewOrdinal([]string{cfg.Fill}).SetDomain(domain), nil
	}
	colors, err := scale.SchemeHex(cfg.Scheme, len(domain))
	if err != nil {
		return nil, err
	}
	return scale.NewOrdinal(colors).SetDomain(domain), nil
}

// loaded fails when Render is called before a successful Update.
func (c *Component) loaded() error {
	if !c.ready {
		return errors.New(errors.ErrCodeInvalidInput, "%s chart used before Initialize", c.kind)
	}
	if c.ds == nil {
		return errors.New(errors.ErrCodeInvalidInput, "%s chart has no data, call Update first", c.kind)
	}
	return nil
}
