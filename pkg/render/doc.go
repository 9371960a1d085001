// Package render groups the retained scene and its encoders.
//
// # Overview
//
// Charts never draw directly. They produce a [scene] tree of groups, rects,
// paths, circles, lines and text, each carrying a stable key and resolved
// style. Sinks walk the tree:
//
//   - SVG via svgo, optionally with embedded hover and brush handlers
//   - PNG via gg at a configurable pixel density
//   - JSON for hosts that draw the scene themselves
//   - terminal cells for the explore command
//
//	sc, _ := c.Render()
//	svg := sink.RenderSVG(sc, sink.WithInteraction())
//	png, err := sink.RenderPNG(sc, sink.WithScale(2))
//
// [scene]: github.com/matzehuels/stackviz/pkg/render/scene
package render
