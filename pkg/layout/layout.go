// Package layout places the words of two normalized histograms on a canvas.
//
// # Encoding
//
// Every word of the union of both histograms becomes one [DrawableWord]:
//
//   - x encodes which document favors the word. A shared word sits at
//     Width*v1/(v1+v2), so words used mostly by the first document drift
//     right and words used mostly by the second drift left.
//   - The font size encodes overall frequency: 10 + round(1000*weight).
//   - The [Category] encodes whether the word is shared or exclusive.
//   - y is random within [0, Height).
//
// Words found only in the second document are placed just past the right
// edge of the reference canvas (x = Width + v2), words found only in the
// first at Width*v1, near the left edge. Renderers size their canvas to
// include that band.
//
// # Determinism
//
// The union is visited in lexical order and y is drawn from the injected
// [RandSource], so a seeded source reproduces a layout exactly:
//
//	words := layout.Compute(n1, n2, layout.Options{Rand: layout.NewSeeded(42)})
package layout

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/wordcloud/pkg/histogram"
)

const (
	// DefaultWidth and DefaultHeight are the reference canvas dimensions.
	DefaultWidth  = 500.0
	DefaultHeight = 500.0

	baseFontSize  = 10
	fontSizeScale = 1000
	minFontSize   = 1
)

// Category says which documents a word appears in.
type Category int

const (
	Shared Category = iota
	OnlyDoc2
	OnlyDoc1
)

func (c Category) String() string {
	switch c {
	case Shared:
		return "shared"
	case OnlyDoc2:
		return "only-doc2"
	case OnlyDoc1:
		return "only-doc1"
	}
	return "unknown"
}

// Color is the fill colour renderers use for the category.
func (c Category) Color() string {
	switch c {
	case OnlyDoc2:
		return "red"
	case OnlyDoc1:
		return "blue"
	}
	return "black"
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// DrawableWord is one positioned word.
type DrawableWord struct {
	Word     string   `json:"word"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	FontSize int      `json:"font_size"`
	Category Category `json:"category"`
}

// RandSource yields uniform values in [0, 1).
type RandSource interface {
	Float64() float64
}

// NewSeeded returns a PCG-backed source. Equal seeds yield equal sequences.
func NewSeeded(seed uint64) RandSource {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Fixed returns a source that cycles through values. It is meant for tests;
// with no values it always returns 0.
func Fixed(values ...float64) RandSource {
	return &fixedSource{values: values}
}

type fixedSource struct {
	values []float64
	next   int
}

func (f *fixedSource) Float64() float64 {
	if len(f.values) == 0 {
		return 0
	}
	v := f.values[f.next%len(f.values)]
	f.next++
	return v
}

// Options configures [Compute]. Zero values select the defaults.
type Options struct {
	Width  float64
	Height float64
	Rand   RandSource
}

func (o *Options) setDefaults() {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
}

// Compute lays out every word of the union of doc1 and doc2. Both inputs are
// expected to be normalized; they are only read.
//
// The result has exactly one entry per distinct word and is empty when both
// histograms are empty.
func Compute(doc1, doc2 histogram.Histogram, opts Options) []DrawableWord {
	opts.setDefaults()

	union := histogram.Union(doc1, doc2).Sorted()
	words := make([]DrawableWord, 0, len(union))
	for _, w := range union {
		v1, in1 := doc1[w]
		v2, in2 := doc2[w]

		dw := DrawableWord{Word: w}
		switch {
		case in1 && in2:
			dw.Category = Shared
			dw.FontSize = fontSize(v1 + v2)
			dw.X = opts.Width * ratio(v1, v1+v2)
		case in2:
			dw.Category = OnlyDoc2
			dw.FontSize = fontSize(v2)
			dw.X = opts.Width + v2
		default:
			dw.Category = OnlyDoc1
			dw.FontSize = fontSize(v1)
			dw.X = opts.Width * v1
		}
		dw.Y = opts.Rand.Float64() * opts.Height
		words = append(words, dw)
	}
	return words
}

// Bounds returns the extent of the canvas needed to show every word placed
// by Compute with the given reference size: the OnlyDoc2 band extends the
// width by up to another reference width.
func Bounds(width, height float64) (float64, float64) {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return 2 * width, height
}

func fontSize(weight float64) int {
	return max(baseFontSize+int(math.Round(fontSizeScale*weight)), minFontSize)
}

// ratio is a/b, or one half when b is zero (a shared word whose weights were
// both zero).
func ratio(a, b float64) float64 {
	if b == 0 {
		return 0.5
	}
	return a / b
}
