package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/observability"
	"github.com/matzehuels/wordcloud/pkg/session"
)

// ArtifactTTL is how long cached artifacts stay valid.
const ArtifactTTL = 24 * time.Hour

// Runner encapsulates pipeline execution with artifact caching.
//
// The Runner keeps no per-run state; the session of each run is returned in
// its [Result]. Multiple goroutines can use the same Runner for different
// runs as long as the cache is safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil logger
// selects the default logger.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete load → filter → layout → render pipeline.
//
// A document that cannot be read fails the run: a batch comparison has
// nothing to render with one side missing.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	actions, _ := session.ParseActions(opts.Actions)

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	s, err := session.Load(ctx, opts.Doc1, opts.Doc2, opts.SessionOptions())
	if err != nil {
		return nil, err
	}
	result.Session = s
	result.Stats.LoadTime = time.Since(loadStart)

	r.Logger.Info("loaded documents",
		"words1", len(s.Doc1),
		"words2", len(s.Doc2),
		"duration", result.Stats.LoadTime)

	// Stage 2: Filter
	filterStart := time.Now()
	for _, a := range actions {
		out, err := s.Apply(ctx, a)
		if err != nil {
			return nil, fmt.Errorf("apply %s: %w", a, err)
		}
		if out.Warning {
			r.Logger.Warn(out.Message, "action", a)
		}
		result.Outcomes = append(result.Outcomes, out)
	}
	result.Stats.FilterTime = time.Since(filterStart)

	// Stage 3: Layout
	layoutStart := time.Now()
	words, _ := s.Render(ctx)
	result.Words = words
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Words = len(words)
	for _, w := range words {
		switch w.Category {
		case layout.Shared:
			result.Stats.Shared++
		case layout.OnlyDoc1:
			result.Stats.OnlyDoc1++
		case layout.OnlyDoc2:
			result.Stats.OnlyDoc2++
		}
	}

	r.Logger.Info("computed layout",
		"words", len(words),
		"shared", result.Stats.Shared,
		"duration", result.Stats.LayoutTime)

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, hits, err := r.RenderWithCacheInfo(ctx, s, words, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.Stats.CacheHits = hits

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RenderWithCacheInfo renders every requested format, serving what it can
// from the cache, and returns how many formats were cache hits.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s *session.Session, words []layout.DrawableWord, opts Options) (map[string][]byte, int, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, 0, err
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)

	artifacts, hits, err := r.renderCached(ctx, s, words, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, hits, err
}

func (r *Runner) renderCached(ctx context.Context, s *session.Session, words []layout.DrawableWord, opts Options) (map[string][]byte, int, error) {
	layoutHash := hashLayout(s, words, false)
	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	keys := make(map[string]string, len(opts.Formats))

	for _, format := range opts.Formats {
		hash := layoutHash
		if format == FormatJSON {
			hash = hashLayout(s, words, true)
		}
		key := cache.ArtifactKey(hash, artifactKeyOpts(format, opts))
		keys[format] = key
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Debug("cache read failed", "format", format, "error", err)
		}
		if hit {
			artifacts[format] = data
			continue
		}
		missing = append(missing, format)
	}
	hits := len(opts.Formats) - len(missing)
	if len(missing) == 0 {
		return artifacts, hits, nil
	}

	sub := opts
	sub.Formats = missing
	rendered, err := Render(ctx, s, words, sub)
	if err != nil {
		return nil, hits, err
	}
	for format, data := range rendered {
		artifacts[format] = data
		if err := r.Cache.Set(ctx, keys[format], data, ArtifactTTL); err != nil {
			r.Logger.Debug("cache write failed", "format", format, "error", err)
		}
	}
	return artifacts, hits, nil
}

// Render renders without reporting cache hits.
func (r *Runner) Render(ctx context.Context, s *session.Session, words []layout.DrawableWord, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, s, words, opts)
	return artifacts, err
}

func artifactKeyOpts(format string, opts Options) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:  format,
		VizType: opts.VizType,
		Width:   opts.Width,
		Height:  opts.Height,
		Title:   opts.Title,
		Legend:  opts.Legend,
	}
	if format == FormatPNG {
		k.Scale = DefaultPNGScale
	}
	return k
}

// hashLayout hashes everything an artifact is rendered from. Words are
// sorted first so that equal layouts hash equally. The session ID is only
// part of the hash when withID is set, since only the JSON output records
// it; other formats rendered from the same seed and state share a key
// across sessions.
func hashLayout(s *session.Session, words []layout.DrawableWord, withID bool) string {
	sorted := slices.Clone(words)
	slices.SortFunc(sorted, func(a, b layout.DrawableWord) int {
		switch {
		case a.Word < b.Word:
			return -1
		case a.Word > b.Word:
			return 1
		}
		return 0
	})
	payload := struct {
		Words   []layout.DrawableWord `json:"words"`
		ID      string                `json:"id,omitempty"`
		Seed    uint64                `json:"seed,omitempty"`
		Sources []string              `json:"sources,omitempty"`
	}{Words: sorted}
	if s != nil {
		payload.Seed = s.Seed()
		if withID {
			payload.ID = s.ID
		}
		payload.Sources = []string{s.Source1, s.Source2}
	}
	data, _ := json.Marshal(payload)
	return cache.Hash(data)
}
