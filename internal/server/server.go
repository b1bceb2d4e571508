// Package server serves a comparison session over HTTP.
//
// The page at / shows the current cloud and one button per action. Every
// request that touches the session runs under a single mutex, so an action
// always completes before the next request is handled.
package server

import (
	"context"
	"embed"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/wordcloud/pkg/buildinfo"
	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/session"
)

//go:embed index.html.tmpl
var templates embed.FS

var indexTmpl = template.Must(template.ParseFS(templates, "index.html.tmpl"))

const shutdownTimeout = 5 * time.Second

// Server exposes one session over HTTP.
type Server struct {
	mu      sync.Mutex
	session *session.Session
	// words is the current layout, reused until an action changes the
	// session. nil means it must be computed again.
	words  []layout.DrawableWord
	runner *pipeline.Runner
	opts   pipeline.Options
	logger *log.Logger
	router chi.Router
}

// New creates a server for s. opts supplies the render settings; its
// formats are ignored since each endpoint picks its own.
func New(s *session.Session, runner *pipeline.Runner, opts pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, logger)
	}
	opts.SetDefaults()

	srv := &Server{session: s, runner: runner, opts: opts, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(srv.observe)

	r.Get("/", srv.handleIndex)
	r.Get("/cloud.svg", srv.handleSVG)
	r.Get("/cloud.json", srv.handleJSON)
	r.Post("/actions/{action}", srv.handleAction)
	r.Get("/stats", srv.handleStats)
	r.Get("/version", srv.handleVersion)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	srv.router = r
	return srv
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- httpServer.Serve(listener) }()
	s.logger.Info("serving word cloud", "address", "http://"+listener.Addr().String())

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

type indexData struct {
	Title   string
	Source1 string
	Source2 string
	Loaded  bool
	SVG     template.HTML
	Stats   session.Stats
	Actions []actionButton
	Message string
}

type actionButton struct {
	Name  string
	Label string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	data := indexData{
		Title:   s.opts.Title,
		Source1: s.session.Source1,
		Source2: s.session.Source2,
		Loaded:  s.session.Loaded(),
		Stats:   s.session.Snapshot(),
		Message: r.URL.Query().Get("msg"),
	}
	for _, a := range session.Actions() {
		data.Actions = append(data.Actions, actionButton{Name: a.String(), Label: a.Label()})
	}
	svg, err := s.render(r.Context(), pipeline.FormatSVG)
	s.mu.Unlock()

	if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
		s.writeError(w, err)
		return
	}
	// SVG output comes from our own sinks, which escape every word.
	data.SVG = template.HTML(svg)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, data); err != nil {
		s.logger.Error("failed to render page", "error", err)
	}
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, pipeline.FormatSVG, "image/svg+xml")
}

func (s *Server) handleJSON(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, pipeline.FormatJSON, "application/json")
}

func (s *Server) serveArtifact(w http.ResponseWriter, r *http.Request, format, contentType string) {
	s.mu.Lock()
	data, err := s.render(r.Context(), format)
	s.mu.Unlock()

	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(data)
}

// render renders one format of the current layout, laying the session out
// first if an action invalidated it. The caller holds mu.
func (s *Server) render(ctx context.Context, format string) ([]byte, error) {
	if s.words == nil {
		words, ok := s.session.Render(ctx)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "both documents must be loaded first")
		}
		s.words = words
		if s.words == nil {
			s.words = []layout.DrawableWord{}
		}
	}
	opts := s.opts
	opts.Formats = []string{format}
	artifacts, err := s.runner.Render(ctx, s.session, s.words, opts)
	if err != nil {
		return nil, err
	}
	return artifacts[format], nil
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	a, err := session.ParseAction(chi.URLParam(r, "action"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.Lock()
	out, err := s.session.Apply(r.Context(), a)
	if err == nil {
		s.words = nil
	}
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}

	// Plain form posts from the page are sent back to it.
	if strings.Contains(r.Header.Get("Accept"), "text/html") || r.FormValue("redirect") != "" {
		http.Redirect(w, r, "/?msg="+url.QueryEscape(out.Message), http.StatusSeeOther)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	stats := s.session.Snapshot()
	s.mu.Unlock()
	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(errors.GetCode(err)),
	})
}

func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidAction, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidVizType:
		return http.StatusBadRequest
	case errors.ErrCodeInvalidInput:
		return http.StatusConflict
	}
	if stderrors.Is(err, context.Canceled) {
		return 499
	}
	return http.StatusInternalServerError
}
