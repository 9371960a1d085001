// Package pipeline runs the load → update → render → encode sequence that
// turns a data file into chart artifacts.
//
// The CLI and tests share this code so that both produce identical output
// for identical input.
//
// # Stages
//
//  1. Load: read and coerce the input file ([Load])
//  2. Update: create the chart and bind the dataset ([Update])
//  3. Render: reconcile the elements into a scene
//  4. Encode: write the scene in every requested format, concurrently ([Encode])
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "sales.csv",
//	    Kind:    chart.KindBar,
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
//
// Encoded artifacts are cached by the hash of the input bytes together with
// every option that affects the output, so rendering an unchanged file again
// only reads the cache.
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackviz/pkg/cache"
	"github.com/matzehuels/stackviz/pkg/chart"
	"github.com/matzehuels/stackviz/pkg/data"
	"github.com/matzehuels/stackviz/pkg/data/load"
	"github.com/matzehuels/stackviz/pkg/errors"
	"github.com/matzehuels/stackviz/pkg/render/scene"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultScale is the PNG pixel density.
	DefaultScale = 2.0

	// DefaultTTL is how long encoded artifacts stay cached.
	DefaultTTL = cache.DefaultTTL
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options
// =============================================================================

// Options configures one pipeline run.
type Options struct {
	// Input options
	Input       string `json:"input"`
	InputFormat string `json:"input_format,omitempty"`
	Sheet       string `json:"sheet,omitempty"`

	// Chart options
	Kind   string        `json:"kind"`
	Config *chart.Config `json:"config,omitempty"` // nil uses chart.DefaultConfig

	// Output options
	Formats     []string `json:"formats,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	Interactive bool     `json:"interactive,omitempty"` // embed hover highlighting in SVG
	Refresh     bool     `json:"refresh,omitempty"`     // ignore cached artifacts

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result holds the outputs of a pipeline run.
type Result struct {
	Dataset     *data.Dataset
	DatasetHash string

	// Scene is nil when every artifact came from the cache.
	Scene *scene.Scene

	// Artifacts holds encoded outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains timing and size information.
type Stats struct {
	Rows       int
	Marks      int
	LoadTime   time.Duration
	UpdateTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // every artifact came from the cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be one of: %s)",
			format, strings.Join(formatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateKind checks that kind names a registered chart.
func ValidateKind(kind string) error {
	if !chart.Registered(kind) {
		return errors.New(errors.ErrCodeInvalidKind, "invalid chart kind %q (must be one of: %s)",
			kind, strings.Join(chart.Kinds(), ", "))
	}
	return nil
}

func formatNames() []string {
	out := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidatePath(o.Input); err != nil {
		return err
	}
	if o.InputFormat != "" {
		if _, err := load.ParseFormat(o.InputFormat); err != nil {
			return err
		}
	}
	if err := ValidateKind(o.Kind); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	o.Formats = dedupe(o.Formats)
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scale must be positive, got %v", o.Scale)
	}
	if o.Config == nil {
		cfg := chart.DefaultConfig()
		o.Config = &cfg
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// staticConfig is the chart configuration used for file output. Transitions
// are disabled so that the rendered scene shows the settled state.
func (o *Options) staticConfig() chart.Config {
	cfg := *o.Config
	cfg.Transition = 0
	return cfg
}

// ArtifactKeyOpts returns cache key options for one output format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	h, err := cache.HashJSON(struct {
		Config      chart.Config
		Scale       float64
		Interactive bool
		Sheet       string
	}{o.staticConfig(), o.Scale, o.Interactive, o.Sheet})
	if err != nil {
		h = ""
	}
	return cache.ArtifactKeyOpts{Kind: o.Kind, Format: format, ConfigHash: h}
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}
