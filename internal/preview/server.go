// Package preview serves generated documents as HTML for local review.
package preview

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"git.home.luguber.info/inful/how2use/internal/foundation/errors"
	"git.home.luguber.info/inful/how2use/internal/logfields"
	"git.home.luguber.info/inful/how2use/internal/markdown"
	"git.home.luguber.info/inful/how2use/internal/output"
)

// Catalog lists the documents that can be previewed. *registry.Registry satisfies it.
type Catalog interface {
	Names() []string
	Has(name string) bool
	Path(name string) string
}

// Decoder turns stored document bytes back into Markdown text.
type Decoder func(data []byte) ([]byte, error)

// Server is the preview HTTP server.
type Server struct {
	Addr    string
	router  *chi.Mux
	server  *http.Server
	docs    Catalog
	decode  Decoder
	files   string
	metrics http.Handler
	errs    *errors.HTTPErrorAdapter
	logger  *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithDecoder sets how stored documents are decoded.
func WithDecoder(d Decoder) Option { return func(s *Server) { s.decode = d } }

// WithFiles serves dir under /files/ so relative image links resolve.
func WithFiles(dir string) Option { return func(s *Server) { s.files = dir } }

// WithMetrics mounts h on /metrics.
func WithMetrics(h http.Handler) Option { return func(s *Server) { s.metrics = h } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(s *Server) { s.logger = l } }

// NewServer creates a preview server for docs.
func NewServer(addr string, docs Catalog, opts ...Option) *Server {
	s := &Server{
		Addr:   addr,
		router: chi.NewRouter(),
		docs:   docs,
		decode: func(b []byte) ([]byte, error) { return b, nil },
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.errs = errors.NewHTTPErrorAdapter(s.logger)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))

	s.router.Get("/health", s.handleHealth)
	s.router.Get("/", s.handleIndex)
	s.router.Get("/docs/{name}", s.handleDocument)
	s.router.Get("/docs/{name}/raw", s.handleRaw)
	if s.files != "" {
		s.router.Handle("/files/*", http.StripPrefix("/files/", http.FileServer(http.Dir(s.files))))
	}
	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics)
	}
}

// Start listens until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("Preview server listening", logfields.Addr(s.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.WrapError(err, errors.CategoryInternal, "preview server failed").
			WithContext("addr", s.Addr).
			Build()
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

type indexEntry struct {
	Name    string
	Present bool
	ModTime string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	entries := make([]indexEntry, 0, len(s.docs.Names()))
	for _, name := range s.docs.Names() {
		e := indexEntry{Name: name}
		if fi, err := os.Stat(s.docs.Path(name)); err == nil {
			e.Present = true
			e.ModTime = fi.ModTime().UTC().Format(time.RFC3339)
		}
		entries = append(entries, e)
	}
	s.render(w, r, indexTemplate, entries)
}

type documentPage struct {
	Name    string
	Outline []markdown.Heading
	Body    template.HTML
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	body, err := s.load(name)
	if err != nil {
		s.errs.WriteErrorResponse(w, r, err)
		return
	}
	opts := markdown.Options{Unsafe: true}
	html, err := markdown.ToHTML(body, opts)
	if err != nil {
		s.errs.WriteErrorResponse(w, r, errors.WrapError(err, errors.CategoryInternal, "render document").Build())
		return
	}
	s.render(w, r, documentTemplate, documentPage{
		Name:    name,
		Outline: markdown.Outline(body, opts),
		// Generated documents are trusted local output and may carry raw HTML.
		Body: template.HTML(html), //nolint:gosec
	})
}

func (s *Server) handleRaw(w http.ResponseWriter, r *http.Request) {
	body, err := s.load(chi.URLParam(r, "name"))
	if err != nil {
		s.errs.WriteErrorResponse(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write(body)
}

// load returns the Markdown of a generated document without frontmatter.
func (s *Server) load(name string) ([]byte, error) {
	if !s.docs.Has(name) {
		return nil, errors.NotFoundError("unknown document").WithContext("document", name).Build()
	}
	path := s.docs.Path(name)
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("document has not been generated").
				WithContext("document", name).
				WithContext("path", path).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "read document").WithContext("path", path).Build()
	}
	text, err := s.decode(data)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "decode document").WithContext("path", path).Build()
	}
	return output.StripFrontmatter(text), nil
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, t *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.Execute(w, data); err != nil {
		s.logger.ErrorContext(r.Context(), "Template execution failed", logfields.Path(r.URL.Path), logfields.Error(err))
	}
}
