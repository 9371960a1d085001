package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/stackviz/pkg/cache"
	"github.com/matzehuels/stackviz/pkg/data"
	"github.com/matzehuels/stackviz/pkg/data/load"
	"github.com/matzehuels/stackviz/pkg/errors"
	"github.com/matzehuels/stackviz/pkg/observability"
)

// Load reads the input file and returns the dataset with the hash of its
// raw bytes and input options.
func Load(ctx context.Context, opts Options) (*data.Dataset, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeTimeout, err, "load %s", opts.Input)
	}
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Input)
	start := time.Now()

	ds, raw, err := load.File(opts.Input, load.Format(opts.InputFormat), load.Options{Sheet: opts.Sheet})
	rows := 0
	if ds != nil {
		rows = ds.Len()
	}
	hooks.OnLoadComplete(ctx, opts.Input, rows, time.Since(start), err)
	if err != nil {
		return nil, "", err
	}

	format := opts.InputFormat
	if format == "" {
		if f, err := load.Detect(opts.Input); err == nil {
			format = string(f)
		}
	}
	return ds, cache.Hash(append([]byte(format+"\x00"+opts.Sheet+"\x00"), raw...)), nil
}
