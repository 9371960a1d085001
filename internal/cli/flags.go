package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackviz/pkg/chart"
	"github.com/matzehuels/stackviz/pkg/config"
	"github.com/matzehuels/stackviz/pkg/layout"
	"github.com/matzehuels/stackviz/pkg/pipeline"
	"github.com/matzehuels/stackviz/pkg/scale"
)

// chartFlags are the flags shared by render and explore. Flags that were
// set explicitly override the configuration file.
type chartFlags struct {
	config      string
	kind        string
	inputFormat string
	sheet       string

	x, y, color, size string
	key, label        string
	group, facet      string
	keys              []string

	title         string
	width, height float64
	mode          string
	curve         string
	engine        string
	projection    string
	columns       int
	scheme        string
	fill          string
	padding       float64
	brush         bool
	strict        bool
	transition    time.Duration

	noCache bool
}

func (f *chartFlags) bind(cmd *cobra.Command) {
	def := chart.DefaultConfig()
	fs := cmd.Flags()

	fs.StringVarP(&f.config, "config", "c", "", "TOML chart configuration file")
	fs.StringVarP(&f.kind, "kind", "k", "", fmt.Sprintf("chart kind: %v", chart.Kinds()))
	fs.StringVar(&f.inputFormat, "input-format", "", "input format: csv, json, yaml, xlsx, graph, geojson (default: from extension)")
	fs.StringVar(&f.sheet, "sheet", "", "XLSX sheet name (default: first sheet)")

	fs.StringVarP(&f.x, "x", "x", "", "x field")
	fs.StringVarP(&f.y, "y", "y", "", "y field")
	fs.StringVar(&f.color, "color", "", "color (series or category) field")
	fs.StringVar(&f.size, "size", "", "size field (scatter, network)")
	fs.StringVar(&f.key, "key", "", "mark key field")
	fs.StringVar(&f.label, "label", "", "tooltip label field")
	fs.StringVar(&f.group, "group", "", "series field (line)")
	fs.StringVar(&f.facet, "facet", "", "facet field (multiples)")
	fs.StringSliceVar(&f.keys, "keys", nil, "wide-form series columns (area, stackedbar, multiples)")

	fs.StringVar(&f.title, "title", "", "chart title")
	fs.Float64Var(&f.width, "width", def.Width, "canvas width")
	fs.Float64Var(&f.height, "height", def.Height, "canvas height")
	fs.StringVar(&f.mode, "mode", string(def.Mode), "stack mode: absolute, relative")
	fs.StringVar(&f.curve, "curve", string(def.Curve), "line curve: linear, step-after")
	fs.StringVar(&f.engine, "engine", "force", "network layout engine: force, tree, neato")
	fs.StringVar(&f.projection, "projection", string(def.Projection), "map projection: mercator, equirectangular")
	fs.IntVar(&f.columns, "columns", def.Columns, "small-multiple grid columns")
	fs.StringVar(&f.scheme, "scheme", def.Scheme, "ColorBrewer categorical scheme")
	fs.StringVar(&f.fill, "fill", "", "single fill color overriding the scheme")
	fs.Float64Var(&f.padding, "padding", def.Padding, "band padding in [0,1)")
	fs.BoolVar(&f.brush, "brush", false, "enable x brushing (line)")
	fs.BoolVar(&f.strict, "strict", false, "reject duplicate mark keys")
	fs.DurationVar(&f.transition, "transition", 0, "transition duration (explore)")

	fs.BoolVar(&f.noCache, "no-cache", false, "disable the artifact cache")

	_ = cmd.RegisterFlagCompletionFunc("kind", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return chart.Kinds(), cobra.ShellCompDirectiveNoFileComp
	})
}

// resolve merges defaults, the configuration file and explicit flags.
func (f *chartFlags) resolve(cmd *cobra.Command, input string) (pipeline.Options, config.Cache, error) {
	cfg := chart.DefaultConfig()
	var file config.File
	if f.config != "" {
		loaded, err := config.Load(f.config)
		if err != nil {
			return pipeline.Options{}, config.Cache{}, err
		}
		file = *loaded
		if err := file.Apply(&cfg); err != nil {
			return pipeline.Options{}, config.Cache{}, err
		}
	}

	fs := cmd.Flags()
	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	set("x", func() { cfg.Fields.X = f.x })
	set("y", func() { cfg.Fields.Y = f.y })
	set("color", func() { cfg.Fields.Color = f.color })
	set("size", func() { cfg.Fields.Size = f.size })
	set("key", func() { cfg.Fields.Key = f.key })
	set("label", func() { cfg.Fields.Label = f.label })
	set("group", func() { cfg.Fields.Group = f.group })
	set("facet", func() { cfg.Fields.Facet = f.facet })
	set("keys", func() { cfg.Fields.Keys = f.keys })
	set("title", func() { cfg.Title = f.title })
	set("width", func() { cfg.Width = f.width })
	set("height", func() { cfg.Height = f.height })
	set("mode", func() { cfg.Mode = layout.Mode(f.mode) })
	set("curve", func() { cfg.Curve = layout.Curve(f.curve) })
	set("projection", func() { cfg.Projection = layout.Projection(f.projection) })
	set("columns", func() { cfg.Columns = f.columns })
	set("scheme", func() { cfg.Scheme = f.scheme })
	set("fill", func() { cfg.Fill = f.fill })
	set("padding", func() { cfg.Padding = f.padding })
	set("brush", func() { cfg.Brush = f.brush })
	set("strict", func() { cfg.Strict = f.strict })
	set("transition", func() { cfg.Transition = f.transition })
	if fs.Changed("engine") {
		e, err := layout.ParseEngine(f.engine)
		if err != nil {
			return pipeline.Options{}, config.Cache{}, err
		}
		cfg.Engine = e
	}
	if cfg.Scheme == "" {
		cfg.Scheme = scale.DefaultScheme
	}

	kind := f.kind
	if kind == "" {
		kind = file.Chart.Kind
	}
	if kind == "" {
		return pipeline.Options{}, config.Cache{}, fmt.Errorf("chart kind is required: pass --kind or set [chart] kind")
	}
	inputFormat := f.inputFormat
	if inputFormat == "" {
		inputFormat = file.Input.Format
	}
	sheet := f.sheet
	if sheet == "" {
		sheet = file.Input.Sheet
	}

	opts := pipeline.Options{
		Input:       input,
		InputFormat: inputFormat,
		Sheet:       sheet,
		Kind:        kind,
		Config:      &cfg,
		Formats:     file.Chart.Formats,
	}
	return opts, file.Cache, nil
}
