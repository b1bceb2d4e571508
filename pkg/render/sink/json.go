package sink

import (
	"encoding/json"

	"github.com/matzehuels/wordcloud/pkg/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	width, height float64
	seed          uint64
	sessionID     string
	sources       []string
}

// WithJSONCanvas records the reference canvas the layout was computed for.
func WithJSONCanvas(width, height float64) JSONOption {
	return func(r *jsonRenderer) { r.width, r.height = width, height }
}

// WithJSONSeed records the placement seed, enabling reproducible re-rendering.
func WithJSONSeed(seed uint64) JSONOption { return func(r *jsonRenderer) { r.seed = seed } }

// WithJSONSession records the session the layout belongs to.
func WithJSONSession(id string) JSONOption { return func(r *jsonRenderer) { r.sessionID = id } }

// WithJSONSources records the names of the two documents.
func WithJSONSources(doc1, doc2 string) JSONOption {
	return func(r *jsonRenderer) { r.sources = []string{doc1, doc2} }
}

type jsonOutput struct {
	Width     float64               `json:"width"`
	Height    float64               `json:"height"`
	Seed      uint64                `json:"seed,omitempty"`
	SessionID string                `json:"session_id,omitempty"`
	Sources   []string              `json:"sources,omitempty"`
	Counts    map[string]int        `json:"counts"`
	Words     []layout.DrawableWord `json:"words"`
}

// RenderJSON exports the words and render metadata as a pretty-printed JSON
// document. It returns an error only if marshaling fails, and does not
// modify words.
func RenderJSON(words []layout.DrawableWord, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if r.width <= 0 {
		r.width = layout.DefaultWidth
	}
	if r.height <= 0 {
		r.height = layout.DefaultHeight
	}

	counts := map[string]int{
		layout.Shared.String():   0,
		layout.OnlyDoc1.String(): 0,
		layout.OnlyDoc2.String(): 0,
	}
	for _, w := range words {
		counts[w.Category.String()]++
	}

	if words == nil {
		words = []layout.DrawableWord{}
	}
	out := jsonOutput{
		Width:     r.width,
		Height:    r.height,
		Seed:      r.seed,
		SessionID: r.sessionID,
		Sources:   r.sources,
		Counts:    counts,
		Words:     words,
	}
	return json.MarshalIndent(out, "", "  ")
}
