package pipeline

import (
	"context"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/render"
	"github.com/matzehuels/wordcloud/pkg/render/dot"
	"github.com/matzehuels/wordcloud/pkg/render/sink"
	"github.com/matzehuels/wordcloud/pkg/session"
)

// Render generates output artifacts in the requested formats. s supplies
// the metadata recorded in the JSON and legend; it may be nil.
func Render(ctx context.Context, s *session.Session, words []layout.DrawableWord, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var svg []byte
	svgOnce := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = renderSVG(ctx, s, words, opts)
		return svg, err
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = svgOnce()
		case FormatPNG:
			if data, err = svgOnce(); err == nil {
				data, err = render.ToPNG(ctx, data, DefaultPNGScale)
			}
		case FormatPDF:
			if data, err = svgOnce(); err == nil {
				data, err = render.ToPDF(ctx, data)
			}
		case FormatJSON:
			data, err = sink.RenderJSON(words, jsonOptions(s, opts)...)
		case FormatDOT:
			data = []byte(dot.ToDOT(words, dotOptions(opts)))
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			if errors.GetCode(err) != "" {
				return nil, err
			}
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func renderSVG(ctx context.Context, s *session.Session, words []layout.DrawableWord, opts Options) ([]byte, error) {
	if opts.IsDOT() {
		return dot.RenderSVG(ctx, dot.ToDOT(words, dotOptions(opts)))
	}

	svgOpts := []sink.SVGOption{sink.WithCanvas(opts.Width, opts.Height)}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	if opts.Legend && s != nil {
		svgOpts = append(svgOpts, sink.WithLegend(s.Source1, s.Source2))
	}
	return sink.RenderSVG(words, svgOpts...), nil
}

func jsonOptions(s *session.Session, opts Options) []sink.JSONOption {
	out := []sink.JSONOption{sink.WithJSONCanvas(opts.Width, opts.Height)}
	if s != nil {
		out = append(out,
			sink.WithJSONSeed(s.Seed()),
			sink.WithJSONSession(s.ID),
			sink.WithJSONSources(s.Source1, s.Source2),
		)
	}
	return out
}

func dotOptions(opts Options) dot.Options {
	return dot.Options{Width: opts.Width, Height: opts.Height, Title: opts.Title}
}
