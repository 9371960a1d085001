package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackviz/pkg/pipeline"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	chart       chartFlags
	output      string  // output path, or base path when several formats are written
	formats     string  // comma-separated: svg, png, json
	scale       float64 // PNG pixel density
	interactive bool    // embed hover and brush handlers in SVG output
	refresh     bool    // bypass cached artifacts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a data file as a chart",
		Long: `Render binds the fields of a data file to a chart and writes SVG, PNG or
JSON output. Flags override values from --config.`,
		Example: `  stackviz render sales.csv -k bar -x region -y revenue
  stackviz render flights.csv -k heatmap -x month -y year --color passengers -f svg,png
  stackviz render deps.json -k network --engine tree -o deps.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], &opts)
		},
	}

	opts.chart.bind(cmd)
	fs := cmd.Flags()
	fs.StringVarP(&opts.output, "output", "o", "", "output file path")
	fs.StringVarP(&opts.formats, "format", "f", "", "output formats: svg, png, json (comma-separated)")
	fs.Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG pixel density")
	fs.BoolVar(&opts.interactive, "interactive", false, "embed hover and brush handlers in SVG output")
	fs.BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	popts, cacheCfg, err := opts.chart.resolve(cmd, input)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("format") || len(popts.Formats) == 0 {
		popts.Formats = parseFormats(opts.formats)
	}
	popts.Scale = opts.scale
	popts.Interactive = opts.interactive
	popts.Refresh = opts.refresh
	popts.Logger = logger

	runner, err := c.newRunner(ctx, cacheCfg, opts.chart.noCache)
	if err != nil {
		return err
	}
	defer closeQuietly(ctx, runner.Close)

	spin := newSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Rendering %s chart...", popts.Kind))
	spin.Start()
	result, err := runner.Execute(ctx, popts)
	spin.Stop()
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	paths, err := writeArtifacts(result.Artifacts, opts.output, input)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Wrote %d files", len(paths)))

	w := cmd.OutOrStdout()
	printSuccess(w, "Rendered %s chart", popts.Kind)
	for _, p := range paths {
		printFile(w, p)
	}
	printStats(w, result.Stats.Rows, result.Stats.Marks, result.CacheInfo.RenderHit)
	return nil
}

// writeArtifacts writes each artifact and returns the paths in format
// order. A single artifact goes to output verbatim when output is set.
func writeArtifacts(artifacts map[string][]byte, output, input string) ([]string, error) {
	formats := make([]string, 0, len(artifacts))
	for f := range artifacts {
		formats = append(formats, f)
	}
	slices.Sort(formats)

	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := basePath(output, input) + "." + f
		if len(formats) == 1 && output != "" {
			path = output
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// basePath derives the output path without extension. If output is set,
// its extension is stripped; otherwise the input path is used.
func basePath(output, input string) string {
	if output != "" {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// closeQuietly releases a resource whose close error has nowhere to go.
func closeQuietly(ctx context.Context, fn func() error) {
	if err := fn(); err != nil {
		loggerFromContext(ctx).Debug("close", "error", err)
	}
}
