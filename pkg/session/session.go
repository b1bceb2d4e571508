// Package session holds the state of one two-document comparison.
//
// A [Session] owns the live histograms of both documents. They are built
// once, when the session is loaded, and afterwards only shrink as the user
// applies actions. Rendering never touches them: every call to
// [Session.Render] normalizes copies and lays those out.
//
// # Usage
//
//	s, err := session.Load(ctx, "a.txt", "b.txt", session.Options{Seed: 7})
//	if err != nil {
//	    // a side failed to load; s is still usable but Render skips
//	}
//	s.Apply(ctx, session.RemoveCommon)
//	s.Apply(ctx, session.RemoveUnshared)
//	words, ok := s.Render(ctx)
//
// # Concurrency
//
// A Session is not safe for concurrent use. Front ends that accept input
// from several goroutines (the HTTP UI) serialize access themselves, so
// that each action completes before the next begins.
package session

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/histogram"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/observability"
)

const (
	// DefaultInfrequentLimit is the first limit used by [RemoveInfrequent].
	DefaultInfrequentLimit = 100

	// DefaultStopwordsPath is the stopword list looked up when none is
	// configured.
	DefaultStopwordsPath = "some-common-words.txt"

	topWords = 10
)

// Options configures a [Session]. Zero values select the defaults.
type Options struct {
	// Stopwords is the stopword list used by [RemoveCommon]. An empty
	// path selects the built-in list.
	Stopwords string

	// InfrequentLimit is the first limit of [RemoveInfrequent]. It halves
	// after every use, never dropping below 1.
	InfrequentLimit int

	// Width and Height are the reference canvas of the layout.
	Width  float64
	Height float64

	// Seed makes the vertical placement reproducible. Zero picks a random
	// seed, which is then reported by [Session.Seed].
	Seed uint64

	Logger *log.Logger
}

func (o *Options) setDefaults() {
	if o.InfrequentLimit <= 0 {
		o.InfrequentLimit = DefaultInfrequentLimit
	}
	if o.Width <= 0 {
		o.Width = layout.DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = layout.DefaultHeight
	}
	if o.Seed == 0 {
		o.Seed = rand.Uint64()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Record is one applied action.
type Record struct {
	Action  Action    `json:"action"`
	Removed int       `json:"removed"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Outcome reports what an action did.
type Outcome struct {
	Action  Action `json:"action"`
	Removed int    `json:"removed"`
	// Message is the user-visible description of the action.
	Message string `json:"message"`
	// Warning is set when the action degraded to a no-op (a soft failure).
	Warning bool `json:"warning,omitempty"`
}

// Session is one comparison of two documents.
type Session struct {
	ID      string
	Source1 string
	Source2 string

	// Doc1 and Doc2 are the live histograms. nil means the document
	// could not be loaded.
	Doc1 histogram.Histogram
	Doc2 histogram.Histogram

	// InfrequentLimit is the limit the next RemoveInfrequent will use.
	InfrequentLimit int

	History []Record

	opts   Options
	rng    layout.RandSource
	logger *log.Logger
}

// New creates a session over two already built histograms. The session
// takes ownership of them.
func New(doc1, doc2 histogram.Histogram, opts Options) *Session {
	opts.setDefaults()
	return &Session{
		ID:              uuid.NewString(),
		Doc1:            doc1,
		Doc2:            doc2,
		InfrequentLimit: opts.InfrequentLimit,
		opts:            opts,
		rng:             layout.NewSeeded(opts.Seed),
		logger:          opts.Logger,
	}
}

// Load reads both documents and builds their histograms.
//
// A document that cannot be read leaves its side nil; the returned session
// is still valid and the error carries [errors.ErrCodeSourceUnreadable] for
// every failed side. Render is skipped until both sides are present.
func Load(ctx context.Context, path1, path2 string, opts Options) (*Session, error) {
	s := New(nil, nil, opts)
	s.Source1, s.Source2 = path1, path2

	var errs []error
	if err := ctx.Err(); err != nil {
		return s, err
	}
	if h, err := histogram.FromFile(path1); err != nil {
		s.logger.Error("cannot load first document", "path", path1, "error", err)
		errs = append(errs, err)
	} else {
		s.Doc1 = h
	}
	if h, err := histogram.FromFile(path2); err != nil {
		s.logger.Error("cannot load second document", "path", path2, "error", err)
		errs = append(errs, err)
	} else {
		s.Doc2 = h
	}

	err := stderrors.Join(errs...)
	observability.Session().OnLoad(ctx, s.ID, len(s.Doc1), len(s.Doc2), err)
	if err == nil {
		s.logger.Debug("loaded documents", "doc1", path1, "words1", len(s.Doc1), "doc2", path2, "words2", len(s.Doc2))
	}
	return s, err
}

// Seed returns the seed of the vertical placement.
func (s *Session) Seed() uint64 { return s.opts.Seed }

// Loaded reports whether both documents are present.
func (s *Session) Loaded() bool {
	return s.Doc1 != nil && s.Doc2 != nil
}

// Apply runs one action against the live histograms.
//
// Failing to read the stopword list is not an error: the histograms are
// left untouched and the returned outcome carries a warning. Applying an
// action before both documents are loaded does nothing. The only errors
// are an unknown action and a cancelled context.
func (s *Session) Apply(ctx context.Context, a Action) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{Action: a}, err
	}

	out := Outcome{Action: a}
	var hookErr error

	switch a {
	case RemoveCommon:
		path := s.opts.Stopwords
		if path == "" {
			out.Message = "Removing common words using the built-in list"
		} else {
			out.Message = fmt.Sprintf("Getting ignorable words from %s", path)
		}
		if !s.Loaded() {
			break
		}
		removed, err := histogram.RemoveStandardCommonWords(s.Doc1, s.Doc2, path)
		if err != nil {
			s.logger.Warn("stopword list unavailable, nothing removed", "path", path, "error", err)
			out.Message = "Could not read the file: " + errors.UserMessage(err)
			out.Warning = true
			hookErr = err
			break
		}
		out.Removed = removed

	case RemoveInfrequent:
		limit := s.InfrequentLimit
		out.Message = fmt.Sprintf("Keeping only the most common %d words", limit)
		if !s.Loaded() {
			break
		}
		out.Removed = histogram.RemoveInfrequentWords(s.Doc1, limit) +
			histogram.RemoveInfrequentWords(s.Doc2, limit)
		s.InfrequentLimit = max(limit/2, 1)

	case RemoveUnshared:
		out.Message = "Keeping only words that occur in both documents"
		if !s.Loaded() {
			break
		}
		out.Removed = histogram.RetainSharedOnly(s.Doc1, s.Doc2)

	default:
		return out, errors.New(errors.ErrCodeInvalidAction, "unknown action %d", int(a))
	}

	if !s.Loaded() {
		out.Message = "Both documents must be loaded first"
		out.Warning = true
	}

	s.History = append(s.History, Record{Action: a, Removed: out.Removed, Message: out.Message, At: time.Now()})
	s.logger.Info(out.Message, "action", a, "removed", out.Removed)
	observability.Session().OnAction(ctx, s.ID, a.String(), out.Removed, hookErr)
	return out, nil
}

// Render lays out normalized copies of both histograms. It reports false,
// and lays out nothing, when a document is absent.
func (s *Session) Render(ctx context.Context) ([]layout.DrawableWord, bool) {
	if !s.Loaded() {
		s.logger.Debug("render skipped, a document is missing")
		observability.Session().OnRender(ctx, s.ID, 0, true)
		return nil, false
	}

	words := layout.Compute(histogram.Normalize(s.Doc1), histogram.Normalize(s.Doc2), layout.Options{
		Width:  s.opts.Width,
		Height: s.opts.Height,
		Rand:   s.rng,
	})
	observability.Session().OnRender(ctx, s.ID, len(words), false)
	return words, true
}

// Size returns the reference canvas of the layout.
func (s *Session) Size() (width, height float64) {
	return s.opts.Width, s.opts.Height
}

// Stats summarizes a session.
type Stats struct {
	ID              string            `json:"id"`
	Source1         string            `json:"source1"`
	Source2         string            `json:"source2"`
	Loaded          bool              `json:"loaded"`
	Words1          int               `json:"words1"`
	Words2          int               `json:"words2"`
	Tokens1         int               `json:"tokens1"`
	Tokens2         int               `json:"tokens2"`
	Shared          int               `json:"shared"`
	OnlyDoc1        int               `json:"only_doc1"`
	OnlyDoc2        int               `json:"only_doc2"`
	InfrequentLimit int               `json:"infrequent_limit"`
	Seed            uint64            `json:"seed"`
	Top1            []histogram.Entry `json:"top1"`
	Top2            []histogram.Entry `json:"top2"`
	History         []Record          `json:"history"`
}

// Snapshot returns a summary of the current state.
func (s *Session) Snapshot() Stats {
	shared := len(histogram.SharedWords(s.Doc1, s.Doc2))
	return Stats{
		ID:              s.ID,
		Source1:         s.Source1,
		Source2:         s.Source2,
		Loaded:          s.Loaded(),
		Words1:          len(s.Doc1),
		Words2:          len(s.Doc2),
		Tokens1:         int(s.Doc1.Total()),
		Tokens2:         int(s.Doc2.Total()),
		Shared:          shared,
		OnlyDoc1:        len(s.Doc1) - shared,
		OnlyDoc2:        len(s.Doc2) - shared,
		InfrequentLimit: s.InfrequentLimit,
		Seed:            s.opts.Seed,
		Top1:            s.Doc1.Top(topWords),
		Top2:            s.Doc2.Top(topWords),
		History:         append([]Record(nil), s.History...),
	}
}
