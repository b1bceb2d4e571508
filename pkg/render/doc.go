// Package render turns word layouts into files.
//
// # Overview
//
// Layout never deals with pixels. This package and its subpackages take the
// [layout.DrawableWord] slice of a render and encode it:
//
//   - SVG and JSON (in the [sink] subpackage)
//   - Graphviz with pinned node positions (in the [dot] subpackage)
//   - PNG and PDF, converted from SVG by [ToPNG] and [ToPDF]
//
// # Format Conversion
//
// [ToPNG] and [ToPDF] shell out to rsvg-convert (from librsvg):
//
//	svg := sink.RenderSVG(words, sink.WithCanvas(500, 500))
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [layout.DrawableWord]: github.com/matzehuels/wordcloud/pkg/layout
// [sink]: github.com/matzehuels/wordcloud/pkg/render/sink
// [dot]: github.com/matzehuels/wordcloud/pkg/render/dot
package render
