// Package sink realizes a [scene.Scene] on an output surface.
//
// # Overview
//
// A "sink" turns the primitive tree produced by a chart into a concrete
// format. Charts build scenes without knowing where they end up, so every
// chart renders to every sink:
//
//   - SVG: vector output with optional hover highlighting ([RenderSVG])
//   - PNG: raster output drawn with fogleman/gg ([RenderPNG])
//   - JSON: the scene tree itself, for external tools ([RenderJSON])
//   - Terminal: a character cell grid used by the explorer ([RenderTerm])
//
// Basic usage:
//
//	svg := sink.RenderSVG(sc, sink.WithInteraction())
//	png, err := sink.RenderPNG(sc, sink.WithScale(2))
//
// # Colors
//
// Scene colors are CSS hex strings or CSS color names. The raster sinks
// resolve names through golang.org/x/image/colornames; "none" and empty
// strings are not painted.
//
// # Adding New Formats
//
// To add a new output format:
//
//  1. Create a renderer function: func RenderFoo(s *scene.Scene, opts ...FooOption) ([]byte, error)
//  2. Walk s.Root with [scene.Node.Walk]; the callback receives the parent offset
//  3. Register the format in pkg/pipeline so the CLI can request it
//
// [scene.Scene]: github.com/matzehuels/stackviz/pkg/render/scene.Scene
// [scene.Node.Walk]: github.com/matzehuels/stackviz/pkg/render/scene.Node.Walk
package sink
