package sink

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"slices"

	"github.com/matzehuels/wordcloud/pkg/layout"
)

const (
	fontFamily   = `Helvetica, Arial, sans-serif`
	legendSize   = 14
	legendMargin = 8
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width, height float64
	title         string
	background    string
	legend        []string
}

// WithCanvas sets the reference canvas the layout was computed for.
func WithCanvas(width, height float64) SVGOption {
	return func(r *svgRenderer) { r.width, r.height = width, height }
}

// WithTitle adds a <title> element.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithBackground fills the canvas with a colour. The default is transparent.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithLegend draws a key naming the two documents.
func WithLegend(doc1, doc2 string) SVGOption {
	return func(r *svgRenderer) { r.legend = []string{doc1, doc2} }
}

// RenderSVG draws one <text> element per word, coloured by category. Larger
// words are drawn first so that small words stay visible on top of them;
// the output is deterministic for a given input.
func RenderSVG(words []layout.DrawableWord, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	width, height := layout.Bounds(r.width, r.height)

	sorted := slices.Clone(words)
	slices.SortFunc(sorted, func(a, b layout.DrawableWord) int {
		if c := cmp.Compare(b.FontSize, a.FontSize); c != 0 {
			return c
		}
		return cmp.Compare(a.Word, b.Word)
	})

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(r.background))
	}

	fmt.Fprintf(&buf, `  <g font-family="%s">`+"\n", fontFamily)
	for _, w := range sorted {
		fmt.Fprintf(&buf, `    <text class="word %s" x="%.2f" y="%.2f" font-size="%d" fill="%s">%s</text>`+"\n",
			w.Category, w.X, w.Y, w.FontSize, w.Category.Color(), escapeXML(w.Word))
	}
	buf.WriteString("  </g>\n")

	if len(r.legend) == 2 {
		renderLegend(&buf, height, r.legend[0], r.legend[1])
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderLegend(buf *bytes.Buffer, height float64, doc1, doc2 string) {
	entries := []struct {
		cat   layout.Category
		label string
	}{
		{layout.OnlyDoc1, "only in " + doc1},
		{layout.OnlyDoc2, "only in " + doc2},
		{layout.Shared, "in both"},
	}
	fmt.Fprintf(buf, `  <g class="legend" font-family="%s" font-size="%d">`+"\n", fontFamily, legendSize)
	for i, e := range entries {
		y := height - float64(len(entries)-i)*(legendSize+legendMargin) + legendSize
		fmt.Fprintf(buf, `    <text x="%d" y="%.1f" fill="%s">%s</text>`+"\n",
			legendMargin, y, e.cat.Color(), escapeXML(e.label))
	}
	buf.WriteString("  </g>\n")
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
