// Package registry maps document names to the routines that produce them and
// runs them.
//
// A library ships its manual as a registry of routines:
//
//	r := registry.New(
//		registry.WithOutputDir("docs", ".md"),
//		registry.WithMaterials("docs/md_materials", "md_materials"),
//	)
//	r.MustRegister("Guide", intro, examples)
//	report, err := r.RunAll(ctx)
//
// The how2use command line (cmd/how2use/commands) runs any registry handed
// to it through Global.Register.
package registry

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/how2use/document"
	"git.home.luguber.info/inful/how2use/internal/capture"
	"git.home.luguber.info/inful/how2use/internal/foundation/errors"
	"git.home.luguber.info/inful/how2use/internal/logfields"
	"git.home.luguber.info/inful/how2use/internal/metrics"
	"git.home.luguber.info/inful/how2use/internal/output"
	"git.home.luguber.info/inful/how2use/internal/resource"
)

type entry struct {
	name     string
	routines []document.Routine
}

// Registry holds documents in registration order.
type Registry struct {
	entries []entry
	index   map[string]int

	logger    *slog.Logger
	recorder  metrics.Recorder
	sink      document.Sink
	resources *resource.Loader
	source    capture.SourceReader
	language  string
	pathFor   func(name string) string
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger of runs.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(rec metrics.Recorder) Option {
	return func(r *Registry) { r.recorder = rec }
}

// WithSink sets where finalized documents are written.
func WithSink(s document.Sink) Option {
	return func(r *Registry) { r.sink = s }
}

// WithResources sets the materials loader shared by all documents.
func WithResources(l *resource.Loader) Option {
	return func(r *Registry) { r.resources = l }
}

// WithMaterials loads description files and images from dir. Image links are
// written relative to the output directory as linkBase/<name>.
func WithMaterials(dir, linkBase string) Option {
	return WithResources(resource.NewLoader(dir, linkBase))
}

// WithSource replaces how capture sites are read.
func WithSource(read capture.SourceReader) Option {
	return func(r *Registry) { r.source = read }
}

// WithCodeLanguage sets the fence language of captured code.
func WithCodeLanguage(lang string) Option {
	return func(r *Registry) { r.language = lang }
}

// WithOutputDir writes each document to dir/<name><ext>.
func WithOutputDir(dir, ext string) Option {
	return func(r *Registry) {
		r.pathFor = func(name string) string { return filepath.Join(dir, name+ext) }
	}
}

// WithPathFunc sets the output path of each document.
func WithPathFunc(fn func(name string) string) Option {
	return func(r *Registry) { r.pathFor = fn }
}

// New creates an empty registry writing UTF-8 Markdown files to the working directory.
func New(opts ...Option) *Registry {
	r := &Registry{
		index:    make(map[string]int),
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
		sink:     output.NewWriter(output.Options{Normalize: true}),
	}
	WithOutputDir(".", ".md")(r)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a document produced by routines, run in the given order.
func (r *Registry) Register(name string, routines ...document.Routine) error {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return errors.ValidationError("invalid document name").
			WithContext("document", name).
			Build()
	}
	if slices.ContainsFunc(routines, func(f document.Routine) bool { return f == nil }) {
		return errors.ValidationError("nil routine").
			WithContext("document", name).
			Build()
	}
	if _, exists := r.index[name]; exists {
		return errors.AlreadyExistsError("document already registered").
			WithContext("document", name).
			Build()
	}
	r.index[name] = len(r.entries)
	r.entries = append(r.entries, entry{name: name, routines: slices.Clone(routines)})
	return nil
}

// MustRegister is Register for static tables; it panics on error.
func (r *Registry) MustRegister(name string, routines ...document.Routine) {
	if err := r.Register(name, routines...); err != nil {
		panic(err)
	}
}

// Names returns the registered document names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.name
	}
	return names
}

// Path returns the output path of the named document.
func (r *Registry) Path(name string) string { return r.pathFor(name) }

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// RunAll runs every document in registration order. Cancellation is checked
// between documents; the partial report is returned with the context error.
func (r *Registry) RunAll(ctx context.Context) (*Report, error) {
	return r.run(ctx, r.entries)
}

// RunOne runs a single document.
func (r *Registry) RunOne(ctx context.Context, name string) (*Report, error) {
	i, ok := r.index[name]
	if !ok {
		return nil, errors.NotFoundError("no document registered under this name").
			WithContext("document", name).
			Build()
	}
	return r.run(ctx, r.entries[i:i+1])
}

func (r *Registry) run(ctx context.Context, entries []entry) (*Report, error) {
	start := time.Now()
	report := &Report{RunID: uuid.NewString()}
	logger := r.logger.With(logfields.RunID(report.RunID))
	// Code-block names are unique across the documents of one run.
	names := capture.NewNamespace()

	logger.Info("Run started", logfields.Count(len(entries)))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			report.Duration = time.Since(start)
			logger.Warn("Run canceled", logfields.Error(err))
			return report, err
		}
		report.Results = append(report.Results, r.runDocument(e, names, logger))
	}
	report.Duration = time.Since(start)
	r.recorder.ObserveRunDuration(report.Duration)
	logger.Info("Run finished",
		slog.Int("passed", report.Passed()),
		slog.Int("failed", report.Failed()),
		logfields.Duration(report.Duration))
	return report, nil
}

func (r *Registry) runDocument(e entry, names *capture.Namespace, logger *slog.Logger) document.Result {
	start := time.Now()
	doc := document.New(e.name, r.pathFor(e.name), document.Env{
		Names:        names,
		Resources:    r.resources,
		Source:       r.source,
		CodeLanguage: r.language,
		Logger:       logger,
	})
	for i, routine := range e.routines {
		if err := doc.Run(i, routine); err != nil {
			logger.Error("Routine aborted",
				logfields.Document(e.name),
				logfields.Routine(i),
				logfields.Error(err))
			// Later routines of an aborted document are skipped.
			break
		}
	}
	res := doc.Finalize(r.sink)

	elapsed := time.Since(start)
	r.recorder.ObserveDocumentDuration(e.name, elapsed)
	r.recorder.SetCodeBlocks(e.name, res.Blocks)
	r.recorder.AddAssertionFailures(e.name, countCategory(res.Failures, errors.CategoryAssertion))
	outcome := metrics.OutcomePassed
	if res.Outcome == document.Failed {
		outcome = metrics.OutcomeFailed
	}
	r.recorder.IncDocumentOutcome(e.name, outcome)
	logger.Debug("Document finalized",
		logfields.Document(e.name),
		logfields.Outcome(string(res.Outcome)),
		logfields.Duration(elapsed))
	return res
}

func countCategory(errs []error, category errors.ErrorCategory) int {
	n := 0
	for _, err := range errs {
		if errors.GetCategory(err) == category {
			n++
		}
	}
	return n
}
