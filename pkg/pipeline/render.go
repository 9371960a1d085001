package pipeline

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/stackviz/pkg/errors"
	"github.com/matzehuels/stackviz/pkg/observability"
	"github.com/matzehuels/stackviz/pkg/render/scene"
	"github.com/matzehuels/stackviz/pkg/render/sink"
)

// Encode writes sc in every format of opts.Formats. The scene is only read,
// so the formats are encoded concurrently.
func Encode(ctx context.Context, sc *scene.Scene, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(opts.Formats))
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.Wrap(errors.ErrCodeTimeout, err, "encode %s", format)
			}
			out, err := encode(sc, format, opts)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", format)
			}
			mu.Lock()
			artifacts[format] = out
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

func encode(sc *scene.Scene, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		var svgOpts []sink.SVGOption
		if opts.Interactive {
			svgOpts = append(svgOpts, sink.WithInteraction())
		}
		return sink.RenderSVG(sc, svgOpts...), nil
	case FormatPNG:
		return sink.RenderPNG(sc, sink.WithScale(opts.Scale))
	case FormatJSON:
		return sink.RenderJSON(sc)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format %q", format)
	}
}
