// Package config reads chart configuration files.
//
// A configuration file is TOML. Every key is optional; keys that are
// present override [chart.DefaultConfig], and command line flags override
// the file:
//
//	[chart]
//	kind = "area"
//	width = 960
//	height = 500
//	title = "Unemployment by industry"
//	transition = "250ms"
//
//	[chart.margin]
//	left = 60
//
//	[fields]
//	x = "date"
//	color = "industry"
//	y = "unemployed"
//
//	[scale]
//	scheme = "Set2"
//
//	[layout]
//	mode = "relative"
//	pad = { label = "end", value = "2010-03-01" }
//
//	[[annotations]]
//	x = "2008-09-15"
//	label = "Lehman"
//
//	[cache]
//	backend = "redis"
//	addr = "localhost:6379"
package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/stackviz/pkg/chart"
	"github.com/matzehuels/stackviz/pkg/data"
	"github.com/matzehuels/stackviz/pkg/data/load"
	"github.com/matzehuels/stackviz/pkg/errors"
	"github.com/matzehuels/stackviz/pkg/layout"
	"github.com/matzehuels/stackviz/pkg/scale"
)

// File is a decoded configuration file. Pointer fields distinguish "unset"
// from the zero value.
type File struct {
	Chart       Chart        `toml:"chart"`
	Input       Input        `toml:"input"`
	Fields      Fields       `toml:"fields"`
	Scale       Scale        `toml:"scale"`
	Layout      Layout       `toml:"layout"`
	Annotations []Annotation `toml:"annotations"`
	Cache       Cache        `toml:"cache"`
}

type Chart struct {
	Kind       string         `toml:"kind"`
	Width      *float64       `toml:"width"`
	Height     *float64       `toml:"height"`
	Title      *string        `toml:"title"`
	Margin     *Margin        `toml:"margin"`
	Transition *time.Duration `toml:"transition"`
	Strict     *bool          `toml:"strict"`
	Brush      *bool          `toml:"brush"`
	Formats    []string       `toml:"formats"`
}

type Margin struct {
	Top    *float64 `toml:"top"`
	Right  *float64 `toml:"right"`
	Bottom *float64 `toml:"bottom"`
	Left   *float64 `toml:"left"`
}

type Input struct {
	Format string `toml:"format"`
	Sheet  string `toml:"sheet"`
}

type Fields struct {
	X     string   `toml:"x"`
	Y     string   `toml:"y"`
	Color string   `toml:"color"`
	Size  string   `toml:"size"`
	Key   string   `toml:"key"`
	Label string   `toml:"label"`
	Group string   `toml:"group"`
	Facet string   `toml:"facet"`
	Keys  []string `toml:"keys"`
}

type Scale struct {
	Padding      *float64 `toml:"padding"`
	Ticks        *int     `toml:"ticks"`
	Scheme       string   `toml:"scheme"`
	Fill         string   `toml:"fill"`
	Interpolator string   `toml:"interpolator"`
	ColorRange   []string `toml:"color_range"`
}

type Layout struct {
	Mode       string   `toml:"mode"`
	Curve      string   `toml:"curve"`
	Engine     string   `toml:"engine"`
	Projection string   `toml:"projection"`
	Columns    *int     `toml:"columns"`
	Gap        *float64 `toml:"gap"`
	Pad        *Pad     `toml:"pad"`
}

// Pad is stacked-area boundary padding. Value is coerced like a data
// cell, so "2010-03-01" becomes a time and "4" a number.
type Pad struct {
	Label string `toml:"label"`
	Value any    `toml:"value"`
}

// Annotation is one note on a line chart. X is coerced like Pad.Value.
type Annotation struct {
	X     any      `toml:"x"`
	Y     *float64 `toml:"y"`
	Label string   `toml:"label"`
}

// Cache selects the artifact cache backend.
type Cache struct {
	Backend  string         `toml:"backend"`
	Dir      string         `toml:"dir"`
	Addr     string         `toml:"addr"`
	Password string         `toml:"password"`
	DB       int            `toml:"db"`
	Prefix   string         `toml:"prefix"`
	TTL      *time.Duration `toml:"ttl"`
}

// Cache backends.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Load reads and decodes path.
func Load(path string) (*File, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeLoadFailed, err, "open config %s", path)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses TOML from r. Unknown keys are rejected so that typos do
// not silently fall back to defaults.
func Decode(r io.Reader) (*File, error) {
	var f File
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	if f.Chart.Kind != "" && !chart.Registered(f.Chart.Kind) {
		return errors.New(errors.ErrCodeInvalidKind, "unknown chart kind %q (available: %s)",
			f.Chart.Kind, strings.Join(chart.Kinds(), ", "))
	}
	if f.Input.Format != "" {
		if _, err := load.ParseFormat(f.Input.Format); err != nil {
			return err
		}
	}
	if n := len(f.Scale.ColorRange); n != 0 && n != 2 {
		return errors.New(errors.ErrCodeInvalidConfig, "scale.color_range needs two colors, got %d", n)
	}
	switch f.Cache.Backend {
	case "", BackendNone, BackendFile:
	case BackendRedis:
		if f.Cache.Addr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", f.Cache.Backend)
	}
	if f.Layout.Pad != nil && f.Layout.Pad.Label == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.pad needs a label")
	}
	for i, a := range f.Annotations {
		if a.X == nil || a.Label == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "annotations[%d] needs x and label", i)
		}
	}
	return nil
}

// Apply overlays the file onto cfg. The result is validated by the chart
// on Update, not here.
func (f *File) Apply(cfg *chart.Config) error {
	c := f.Chart
	setFloat(&cfg.Width, c.Width)
	setFloat(&cfg.Height, c.Height)
	if c.Title != nil {
		cfg.Title = *c.Title
	}
	if m := c.Margin; m != nil {
		setFloat(&cfg.Margin.Top, m.Top)
		setFloat(&cfg.Margin.Right, m.Right)
		setFloat(&cfg.Margin.Bottom, m.Bottom)
		setFloat(&cfg.Margin.Left, m.Left)
	}
	if c.Transition != nil {
		cfg.Transition = *c.Transition
	}
	if c.Strict != nil {
		cfg.Strict = *c.Strict
	}
	if c.Brush != nil {
		cfg.Brush = *c.Brush
	}

	fl := f.Fields
	setString(&cfg.Fields.X, fl.X)
	setString(&cfg.Fields.Y, fl.Y)
	setString(&cfg.Fields.Color, fl.Color)
	setString(&cfg.Fields.Size, fl.Size)
	setString(&cfg.Fields.Key, fl.Key)
	setString(&cfg.Fields.Label, fl.Label)
	setString(&cfg.Fields.Group, fl.Group)
	setString(&cfg.Fields.Facet, fl.Facet)
	if len(fl.Keys) > 0 {
		cfg.Fields.Keys = append([]string(nil), fl.Keys...)
	}

	s := f.Scale
	setFloat(&cfg.Padding, s.Padding)
	if s.Ticks != nil {
		cfg.Ticks = *s.Ticks
	}
	setString(&cfg.Scheme, s.Scheme)
	setString(&cfg.Fill, s.Fill)
	if s.Interpolator != "" {
		cfg.Interpolator = scale.Blend(s.Interpolator)
	}
	if len(s.ColorRange) == 2 {
		cfg.ColorRange = [2]string{s.ColorRange[0], s.ColorRange[1]}
	}

	l := f.Layout
	if l.Mode != "" {
		m, err := layout.ParseMode(l.Mode)
		if err != nil {
			return err
		}
		cfg.Mode = m
	}
	if l.Engine != "" {
		e, err := layout.ParseEngine(l.Engine)
		if err != nil {
			return err
		}
		cfg.Engine = e
	}
	if l.Curve != "" {
		cfg.Curve = layout.Curve(l.Curve)
	}
	if l.Projection != "" {
		p, err := layout.ParseProjection(l.Projection)
		if err != nil {
			return err
		}
		cfg.Projection = p
	}
	if l.Columns != nil {
		cfg.Columns = *l.Columns
	}
	setFloat(&cfg.Gap, l.Gap)
	if l.Pad != nil {
		pad, err := l.Pad.group()
		if err != nil {
			return err
		}
		cfg.Pad = pad
	}

	if len(f.Annotations) > 0 {
		notes := make([]chart.Annotation, len(f.Annotations))
		for i, a := range f.Annotations {
			x, err := value(a.X, fmt.Sprintf("annotations[%d].x", i))
			if err != nil {
				return err
			}
			notes[i] = chart.Annotation{X: x, Y: a.Y, Label: a.Label}
		}
		cfg.Annotations = notes
	}
	return nil
}

func (p *Pad) group() (*chart.GroupPad, error) {
	v, err := value(p.Value, "layout.pad.value")
	if err != nil {
		return nil, err
	}
	return &chart.GroupPad{Label: p.Label, Value: v}, nil
}

// value coerces a decoded TOML scalar like a data cell.
func value(raw any, name string) (data.Value, error) {
	switch x := raw.(type) {
	case nil:
		return data.Null, nil
	case int64:
		return data.Number(float64(x)), nil
	case float64:
		return data.Number(x), nil
	case time.Time:
		return data.Time(x), nil
	case string:
		return load.Scalar(x), nil
	default:
		return data.Null, errors.New(errors.ErrCodeInvalidConfig, "%s has unsupported type %T", name, raw)
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
