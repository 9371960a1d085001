package chart

import (
	"time"

	"github.com/matzehuels/stackviz/pkg/data"
	"github.com/matzehuels/stackviz/pkg/errors"
	"github.com/matzehuels/stackviz/pkg/layout"
	"github.com/matzehuels/stackviz/pkg/scale"
)

// Margin is the space between the container edge and the plot area.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// Fields names the dataset fields a chart reads. Which ones are required
// depends on the variant.
type Fields struct {
	X, Y  string
	Color string
	Size  string
	Key   string
	Label string
	// Group names the series of a line chart.
	Group string
	// Facet names the cell of a small-multiple grid.
	Facet string
	// Keys lists the series columns of wide-form stacked data. When empty,
	// stacked charts read long-form data: Color names the series and Y the
	// amount.
	Keys []string
}

// GroupPad is boundary padding for stacked areas: a copy of the last group
// appended under Label with x value Value. It is applied only when set.
type GroupPad struct {
	Label string
	Value data.Value
}

// Annotation labels an x position of a line chart with a dashed rule and
// a note above the plot. With Y set it circles the point (X, Y) and puts
// the note beside it.
type Annotation struct {
	X     data.Value
	Y     *float64
	Label string
}

// Config is the full configuration of a chart. Start from [DefaultConfig].
type Config struct {
	Width, Height float64
	Margin        Margin
	Title         string
	Fields        Fields

	Mode    layout.Mode
	Columns int
	Gap     float64
	Pad     *GroupPad
	Curve   layout.Curve
	Engine  layout.Engine

	// Projection is the map projection of choropleths.
	Projection layout.Projection
	// Annotations mark x positions on line charts.
	Annotations []Annotation

	// Padding is the band scale padding in [0, 1).
	Padding float64
	Ticks   int
	// Scheme is a ColorBrewer scheme for categorical colors.
	Scheme string
	// Fill overrides categorical colors with a single color.
	Fill         string
	Interpolator scale.Blend
	ColorRange   [2]string

	// Brush enables range selection along x on line charts.
	Brush bool
	// Strict rejects duplicate mark keys instead of keeping the last one.
	Strict     bool
	Transition time.Duration
}

// DefaultConfig returns the defaults used by the CLI.
func DefaultConfig() Config {
	return Config{
		Width:        800,
		Height:       400,
		Margin:       Margin{Top: 30, Right: 20, Bottom: 40, Left: 50},
		Mode:         layout.Absolute,
		Columns:      3,
		Gap:          16,
		Curve:        layout.CurveLinear,
		Engine:       layout.EngineForce,
		Projection:   layout.Mercator,
		Padding:      0.1,
		Ticks:        5,
		Scheme:       scale.DefaultScheme,
		Interpolator: scale.BlendHCL,
		ColorRange:   [2]string{"#fee0d2", "#a50f15"},
	}
}

// InnerWidth returns the plot width inside the margins.
func (c Config) InnerWidth() float64 { return c.Width - c.Margin.Left - c.Margin.Right }

// InnerHeight returns the plot height inside the margins.
func (c Config) InnerHeight() float64 { return c.Height - c.Margin.Top - c.Margin.Bottom }

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := errors.ValidateDimensions(c.Width, c.Height); err != nil {
		return err
	}
	m := c.Margin
	if m.Top < 0 || m.Right < 0 || m.Bottom < 0 || m.Left < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "margins must not be negative")
	}
	if c.InnerWidth() <= 0 || c.InnerHeight() <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "margins leave no room for the plot (%vx%v)", c.InnerWidth(), c.InnerHeight())
	}
	if err := errors.ValidateFraction("padding", c.Padding); err != nil {
		return err
	}
	if c.Columns < 0 || c.Ticks < 0 || c.Gap < 0 || c.Transition < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "columns, ticks, gap and transition must not be negative")
	}
	if _, err := layout.ParseMode(string(c.Mode)); err != nil {
		return err
	}
	if _, err := layout.ParseEngine(string(c.Engine)); err != nil {
		return err
	}
	if _, err := layout.ParseProjection(string(c.Projection)); err != nil {
		return err
	}
	for i, a := range c.Annotations {
		if _, ok := a.X.Float(); !ok {
			return errors.New(errors.ErrCodeInvalidConfig, "annotation %d: x %q is not a number or time", i, a.X.Text())
		}
	}
	switch c.Curve {
	case "", layout.CurveLinear, layout.CurveStepAfter:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown curve %q", c.Curve)
	}
	for _, f := range c.fieldNames() {
		if err := errors.ValidateFieldName(f); err != nil {
			return err
		}
	}
	return nil
}

func (c Config) fieldNames() []string {
	f := c.Fields
	var out []string
	for _, n := range []string{f.X, f.Y, f.Color, f.Size, f.Key, f.Label, f.Group, f.Facet} {
		if n != "" {
			out = append(out, n)
		}
	}
	return append(out, f.Keys...)
}

// field returns an accessor for name, or nil when name is empty.
func field(name string) data.Accessor {
	if name == "" {
		return nil
	}
	return data.Get(name)
}
