// Package pkg provides the libraries behind stackviz, a data-bound chart
// renderer.
//
// # Overview
//
// stackviz binds tabular and graph data to chart components and renders them
// to a retained scene that several sinks can encode. The pkg directory is
// organized into four areas:
//
//  1. Data - [data] records and typed values, [data/load] file readers
//  2. Charts - [scale], [layout], [bind], [interact] and the [chart] components
//  3. Rendering - [render/scene] and the [render/sink] encoders
//  4. Infrastructure - [pipeline], [cache], [config], [observability], [errors]
//
// # Architecture
//
// The typical data flow:
//
//	CSV / JSON / YAML / XLSX / graph file
//	         ↓
//	    [data/load] (parse and coerce fields)
//	         ↓
//	    [chart] (scales, layout, keyed join with enter/update/exit)
//	         ↓
//	    [render/scene] (retained node tree)
//	         ↓
//	    [render/sink] (SVG, PNG, JSON, terminal cells)
//
// Interactive hosts feed pointer events to [chart.Chart.Handle] and publish
// the resulting events on an [interact.Bus]; [chart.Link] connects several
// charts through one bus.
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	cfg := chart.DefaultConfig()
//	cfg.Fields.X, cfg.Fields.Y = "region", "revenue"
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "sales.csv",
//	    Kind:    chart.KindBar,
//	    Config:  &cfg,
//	    Formats: []string{"svg", "png"},
//	})
//	svg := result.Artifacts["svg"]
//
// # Testing
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/chart/...      # Specific package
//	go test -run Example ./...   # Examples only
//
// [data]: https://pkg.go.dev/github.com/matzehuels/stackviz/pkg/data
// [data/load]: https://pkg.go.dev/github.com/matzehuels/stackviz/pkg/data/load
// [scale]: https://pkg.go.dev/github.com/matzehuels/stackviz/pkg/scale
// [layout]: https://pkg.go.dev/github.com/matzehuels/stackviz/pkg/layout
// [bind]: https://pkg.go.dev/github.com/matzehuels/stackviz/pkg/bind
// [interact]: https://pkg.go.dev/github.com/matzehuels/stackviz/pkg/interact
// [chart]: https://pkg.go.dev/github.com/matzehuels/stackviz/pkg/chart
// [render/scene]: https://pkg.go.dev/github.com/matzehuels/stackviz/pkg/render/scene
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/stackviz/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/stackviz/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/stackviz/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/stackviz/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/stackviz/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/stackviz/pkg/errors
// [chart.Chart.Handle]: https://pkg.go.dev/github.com/matzehuels/stackviz/pkg/chart#Chart
// [chart.Link]: https://pkg.go.dev/github.com/matzehuels/stackviz/pkg/chart#Link
// [interact.Bus]: https://pkg.go.dev/github.com/matzehuels/stackviz/pkg/interact#Bus
package pkg
