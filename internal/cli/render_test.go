package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fruitCSV = "fruit,n\napple,3\nplum,5\n"

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "png", []string{"png"}},
		{"multiple formats", "svg,png,json", []string{"svg", "png", "json"}},
		{"spaces and blanks", " svg , ,json", []string{"svg", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "data/sales.csv", "data/sales"},
		{"out/chart.svg", "data/sales.csv", "out/chart"},
		{"chart", "sales.csv", "chart"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{"svg": []byte("<svg/>"), "json": []byte("{}")}

	paths, err := writeArtifacts(artifacts, filepath.Join(dir, "nested", "chart.svg"), "in.csv")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "nested", "chart.json"), filepath.Join(dir, "nested", "chart.svg")}
	if len(paths) != 2 || paths[0] != want[0] || paths[1] != want[1] {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("stat %s: %v", p, err)
		}
	}
}

func TestWriteArtifactsSingleKeepsOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "chart.image")
	paths, err := writeArtifacts(map[string][]byte{"svg": []byte("<svg/>")}, out, "in.csv")
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 1 || paths[0] != out {
		t.Errorf("paths = %v, want [%s]", paths, out)
	}
}

func TestRenderCommand(t *testing.T) {
	input := writeInput(t, "fruit.csv", fruitCSV)
	out := filepath.Join(t.TempDir(), "fruit.svg")

	stdout, err := execute(t, "render", input, "-k", "bar", "-x", "fruit", "-y", "n", "-o", out, "--no-cache")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	svg, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte("<svg")) || !bytes.Contains(svg, []byte("bars-plum")) {
		t.Errorf("output is not a bar chart svg: %.200s", svg)
	}
	if !strings.Contains(stdout, "Rendered bar chart") || !strings.Contains(stdout, "2 rows") {
		t.Errorf("stdout = %q, want success message and stats", stdout)
	}
}

func TestRenderCommandConfigFile(t *testing.T) {
	input := writeInput(t, "fruit.csv", fruitCSV)
	dir := t.TempDir()
	cfg := filepath.Join(dir, "chart.toml")
	toml := `
[chart]
kind = "bar"
formats = ["svg", "json"]

[fields]
x = "fruit"
y = "n"

[cache]
backend = "file"
dir = "` + filepath.ToSlash(filepath.Join(dir, "cache")) + `"
`
	if err := os.WriteFile(cfg, []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}

	base := filepath.Join(dir, "chart")
	if _, err := execute(t, "render", input, "-c", cfg, "-o", base); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, ext := range []string{".svg", ".json"} {
		if _, err := os.Stat(base + ext); err != nil {
			t.Errorf("missing %s: %v", ext, err)
		}
	}

	stdout, err := execute(t, "render", input, "-c", cfg, "-o", base)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !strings.Contains(stdout, iconCached) {
		t.Errorf("second render stdout = %q, want cached", stdout)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	input := writeInput(t, "fruit.csv", fruitCSV)
	tests := []struct {
		name string
		args []string
	}{
		{"missing kind", []string{"render", input, "--no-cache"}},
		{"unknown kind", []string{"render", input, "-k", "pie", "--no-cache"}},
		{"missing field", []string{"render", input, "-k", "bar", "-x", "fruit", "-y", "weight", "--no-cache"}},
		{"bad format", []string{"render", input, "-k", "bar", "-x", "fruit", "-y", "n", "-f", "gif", "--no-cache"}},
		{"bad engine", []string{"render", input, "-k", "network", "--engine", "spring", "--no-cache"}},
		{"missing input", []string{"render", filepath.Join(t.TempDir(), "nope.csv"), "-k", "bar", "--no-cache"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Errorf("%v: error = nil, want error", tt.args)
			}
		})
	}
}
