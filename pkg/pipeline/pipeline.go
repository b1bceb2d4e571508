// Package pipeline runs a complete comparison in one call.
//
// This package implements the load → filter → layout → render pipeline
// shared by the CLI and the HTTP UI, so that every entry point validates
// options and produces artifacts the same way.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: read both documents into a [session.Session]
//  2. Filter: apply the requested actions in order
//  3. Layout: place the words of the normalized histograms
//  4. Render: encode the layout in every requested format
//
// # Usage
//
//	runner := pipeline.NewRunner(nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Doc1:    "moby-dick.txt",
//	    Doc2:    "odyssey.txt",
//	    Actions: []string{"common", "unshared"},
//	    Formats: []string{"svg", "json"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Interactive front ends keep their own session and call [Runner.Render]
// after every action.
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/session"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and HTTP UI
// =============================================================================

const (
	// DefaultWidth is the reference canvas width.
	DefaultWidth = layout.DefaultWidth

	// DefaultHeight is the reference canvas height.
	DefaultHeight = layout.DefaultHeight

	// DefaultPNGScale renders PNGs at twice the canvas resolution.
	DefaultPNGScale = 2.0

	// DefaultVizType is the default visualization type.
	DefaultVizType = VizTypeCloud
)

// Visualization types.
const (
	// VizTypeCloud draws the SVG directly.
	VizTypeCloud = "cloud"
	// VizTypeDOT typesets the words through Graphviz.
	VizTypeDOT = "dot"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeCloud: true,
	VizTypeDOT:   true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Load options
	Doc1            string `json:"doc1"`
	Doc2            string `json:"doc2"`
	Stopwords       string `json:"stopwords,omitempty"`
	InfrequentLimit int    `json:"infrequent_limit,omitempty"`

	// Filter options, applied in order
	Actions []string `json:"actions,omitempty"`

	// Layout options
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Seed   uint64  `json:"seed,omitempty"`

	// Render options
	VizType string   `json:"viz_type,omitempty"`
	Formats []string `json:"formats,omitempty"`
	Title   string   `json:"title,omitempty"`
	Legend  bool     `json:"legend,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Session is the loaded and filtered session.
	Session *session.Session

	// Outcomes holds one entry per applied action.
	Outcomes []session.Outcome

	// Words is the computed layout.
	Words []layout.DrawableWord

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Words      int
	Shared     int
	OnlyDoc1   int
	OnlyDoc2   int
	LoadTime   time.Duration
	FilterTime time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
	CacheHits  int
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidVizType, "invalid viz_type: %q (must be one of: cloud, dot)", vizType)
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks and
// dropping duplicates.
func ParseFormats(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills every unset option. It is idempotent.
func (o *Options) SetDefaults() {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.InfrequentLimit <= 0 {
		o.InfrequentLimit = session.DefaultInfrequentLimit
	}
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate applies defaults and checks every option.
func (o *Options) Validate() error {
	o.SetDefaults()
	if o.Doc1 == "" || o.Doc2 == "" {
		return errors.New(errors.ErrCodeInvalidInput, "two documents are required")
	}
	if _, err := session.ParseActions(o.Actions); err != nil {
		return err
	}
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// ValidateForRender applies defaults and checks the render options only.
func (o *Options) ValidateForRender() error {
	o.SetDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// SessionOptions returns the options of the session the pipeline loads.
func (o *Options) SessionOptions() session.Options {
	return session.Options{
		Stopwords:       o.Stopwords,
		InfrequentLimit: o.InfrequentLimit,
		Width:           o.Width,
		Height:          o.Height,
		Seed:            o.Seed,
		Logger:          o.Logger,
	}
}

// IsDOT reports whether words are typeset through Graphviz.
func (o *Options) IsDOT() bool {
	return o.VizType == VizTypeDOT
}
