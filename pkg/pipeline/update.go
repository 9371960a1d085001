package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/stackviz/pkg/chart"
	"github.com/matzehuels/stackviz/pkg/data"
	"github.com/matzehuels/stackviz/pkg/observability"
)

// Update creates a chart of opts.Kind and binds ds to it. Transitions are
// disabled; see [Options].
func Update(ctx context.Context, ds *data.Dataset, opts Options) (chart.Chart, error) {
	hooks := observability.Pipeline()
	hooks.OnUpdateStart(ctx, opts.Kind, ds.Len())
	start := time.Now()

	c, err := chart.New(opts.Kind)
	if err == nil {
		err = c.Update(ctx, ds, opts.staticConfig())
	}
	hooks.OnUpdateComplete(ctx, opts.Kind, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return c, nil
}
