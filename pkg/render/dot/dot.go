// Package dot renders word layouts through Graphviz.
//
// Every word becomes a plaintext node pinned at its layout position, so
// Graphviz acts purely as a typesetter: the neato engine keeps pinned nodes
// where they are and there are no edges to route.
//
//	src := dot.ToDOT(words, dot.Options{Width: 500, Height: 500})
//	svg, err := dot.RenderSVG(ctx, src)
//
// Graphviz measures positions in points with y growing upwards, so ToDOT
// flips the vertical axis of the layout.
package dot

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/layout"
)

// Options configures DOT generation.
type Options struct {
	// Width and Height are the reference canvas the layout was computed for.
	Width  float64
	Height float64
	// Title is written as the graph label. Empty means none.
	Title string
}

// ToDOT converts a layout to Graphviz DOT source. Node IDs are the words
// themselves; output is sorted by word so equal layouts give equal source.
func ToDOT(words []layout.DrawableWord, opts Options) string {
	width, height := layout.Bounds(opts.Width, opts.Height)

	sorted := slices.Clone(words)
	slices.SortFunc(sorted, func(a, b layout.DrawableWord) int { return cmp.Compare(a.Word, b.Word) })

	var buf bytes.Buffer
	buf.WriteString("graph wordcloud {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=true;\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  outputorder=\"nodesfirst\";\n")
	fmt.Fprintf(&buf, "  bb=\"0,0,%.2f,%.2f\";\n", width, height)
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}
	buf.WriteString("  node [shape=plaintext, margin=0, fontname=\"Helvetica\"];\n")
	buf.WriteString("\n")

	for _, w := range sorted {
		fmt.Fprintf(&buf, "  %q [pos=\"%.2f,%.2f!\", fontsize=%d, fontcolor=%s, class=%q];\n",
			w.Word, w.X, height-w.Y, w.FontSize, w.Category.Color(), w.Category.String())
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders DOT source to SVG using the neato engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render DOT")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root element, which sizes the
// drawing in points, with one sized in user units like the other sinks.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
