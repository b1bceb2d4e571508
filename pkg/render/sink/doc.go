// Package sink encodes word layouts as SVG and JSON.
//
// Both renderers take the words produced by [layout.Compute] and a list of
// functional options:
//
//	svg := sink.RenderSVG(words, sink.WithCanvas(500, 500), sink.WithLegend("a.txt", "b.txt"))
//	data, err := sink.RenderJSON(words, sink.WithJSONCanvas(500, 500), sink.WithJSONSeed(42))
//
// The canvas options take the reference size used by the layout. Words
// found only in the second document are placed past its right edge, so the
// SVG is twice as wide as the reference canvas (see [layout.Bounds]).
//
// [layout.Compute]: github.com/matzehuels/wordcloud/pkg/layout
// [layout.Bounds]: github.com/matzehuels/wordcloud/pkg/layout
package sink
