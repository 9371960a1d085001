package cli

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackviz/pkg/layout"
)

func flagCommand(t *testing.T, args ...string) (*cobra.Command, *chartFlags) {
	t.Helper()
	var f chartFlags
	cmd := &cobra.Command{Use: "test"}
	f.bind(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v): %v", args, err)
	}
	return cmd, &f
}

func TestResolveDefaults(t *testing.T) {
	cmd, f := flagCommand(t, "-k", "bar", "-x", "region", "-y", "sales")
	opts, cacheCfg, err := f.resolve(cmd, "sales.csv")
	if err != nil {
		t.Fatal(err)
	}
	if opts.Kind != "bar" || opts.Input != "sales.csv" {
		t.Errorf("opts = %+v, want bar over sales.csv", opts)
	}
	cfg := opts.Config
	if cfg.Fields.X != "region" || cfg.Fields.Y != "sales" {
		t.Errorf("fields = %+v, want region/sales", cfg.Fields)
	}
	if cfg.Width != 800 || cfg.Engine != layout.EngineForce {
		t.Errorf("config = %+v, want defaults", cfg)
	}
	if cacheCfg.Backend != "" {
		t.Errorf("cache backend = %q, want default", cacheCfg.Backend)
	}
}

func TestResolveFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.toml")
	body := `
[chart]
kind = "line"
width = 640
formats = ["png"]

[input]
format = "csv"

[fields]
x = "date"
y = "price"
keys = ["a", "b"]

[layout]
curve = "step-after"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd, f := flagCommand(t, "-c", path, "-y", "close", "--engine", "tree", "--keys", "c")
	opts, _, err := f.resolve(cmd, "stocks.txt")
	if err != nil {
		t.Fatal(err)
	}
	cfg := opts.Config
	if opts.Kind != "line" || opts.InputFormat != "csv" || !slices.Equal(opts.Formats, []string{"png"}) {
		t.Errorf("opts = %+v, want line from csv to png", opts)
	}
	if cfg.Width != 640 || cfg.Curve != layout.CurveStepAfter {
		t.Errorf("file values not applied: width %v curve %v", cfg.Width, cfg.Curve)
	}
	if cfg.Fields.X != "date" || cfg.Fields.Y != "close" {
		t.Errorf("fields = %+v, want x from file and y from flag", cfg.Fields)
	}
	if !slices.Equal(cfg.Fields.Keys, []string{"c"}) {
		t.Errorf("keys = %v, want [c]", cfg.Fields.Keys)
	}
	if cfg.Engine != layout.EngineTree {
		t.Errorf("engine = %v, want %v", cfg.Engine, layout.EngineTree)
	}
}

func TestResolveProjection(t *testing.T) {
	cmd, f := flagCommand(t, "-k", "choropleth", "--color", "rate")
	opts, _, err := f.resolve(cmd, "states.geojson")
	if err != nil {
		t.Fatal(err)
	}
	if opts.Config.Projection != layout.Mercator {
		t.Errorf("projection = %v, want %v", opts.Config.Projection, layout.Mercator)
	}

	cmd, f = flagCommand(t, "-k", "choropleth", "--color", "rate", "--projection", "equirectangular")
	opts, _, err = f.resolve(cmd, "states.geojson")
	if err != nil {
		t.Fatal(err)
	}
	if opts.Config.Projection != layout.Equirectangular {
		t.Errorf("projection = %v, want %v", opts.Config.Projection, layout.Equirectangular)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no kind", nil},
		{"bad engine", []string{"-k", "network", "--engine", "spring"}},
		{"missing config", []string{"-c", filepath.Join(t.TempDir(), "missing.toml")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, f := flagCommand(t, tt.args...)
			if _, _, err := f.resolve(cmd, "in.csv"); err == nil {
				t.Error("resolve() = nil error, want error")
			}
		})
	}
}

func TestKindCompletion(t *testing.T) {
	cmd, _ := flagCommand(t)
	fn, ok := cmd.GetFlagCompletionFunc("kind")
	if !ok {
		t.Fatal("no completion registered for --kind")
	}
	got, directive := fn(cmd, nil, "")
	if !slices.Contains(got, "heatmap") || directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("completions = %v (%v), want chart kinds", got, directive)
	}
}
