package document

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"

	"git.home.luguber.info/inful/how2use/internal/capture"
	"git.home.luguber.info/inful/how2use/internal/foundation/errors"
	"git.home.luguber.info/inful/how2use/internal/logfields"
	"git.home.luguber.info/inful/how2use/internal/resource"
	"git.home.luguber.info/inful/how2use/segment"
)

// Routine is one documentation-producing step of a document.
type Routine func(d *Document)

// Env carries the collaborators a document needs. Zero values are usable.
type Env struct {
	Names        *capture.Namespace
	Resources    *resource.Loader
	Source       capture.SourceReader
	CodeLanguage string
	Logger       *slog.Logger
}

// Document owns one segment stream and its failure state.
type Document struct {
	name   string
	path   string
	env    Env
	logger *slog.Logger

	stream   segment.Stream
	rec      *capture.Recorder
	guards   []*Guard
	refs     []string
	failed   bool
	failures []error
}

// New creates a document that will be written to path.
func New(name, path string, env Env) *Document {
	if env.Logger == nil {
		env.Logger = slog.Default()
	}
	if env.Names == nil {
		env.Names = capture.NewNamespace()
	}
	if env.Source == nil {
		env.Source = os.ReadFile
	}
	return &Document{
		name:   name,
		path:   path,
		env:    env,
		logger: env.Logger.With(logfields.Document(name)),
		rec:    capture.NewRecorder(name, env.Names, env.Source),
	}
}

func (d *Document) Name() string { return d.name }
func (d *Document) Path() string { return d.path }

// Failed reports whether any failure has been recorded. It never resets.
func (d *Document) Failed() bool { return d.failed }

// Failures returns the recorded failure causes in order.
func (d *Document) Failures() []error {
	return append([]error(nil), d.failures...)
}

// Add appends segments to the stream and returns d for chaining.
func (d *Document) Add(segs ...segment.Segment) *Document {
	for _, s := range segs {
		if s.Kind == segment.KindCodeRef {
			d.refs = append(d.refs, s.Text)
		}
	}
	d.stream.Add(segs...)
	return d
}

// Segments returns a copy of the stream built so far.
func (d *Document) Segments() []segment.Segment { return d.stream.Segments() }

// Run executes routine against d. Aborts and panics are recovered and recorded
// as failures; the returned error is the abort cause, if any.
func (d *Document) Run(index int, routine Routine) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if sig, ok := r.(abortSignal); ok {
			err = sig.err
		} else {
			d.logger.Error("Routine panicked",
				logfields.Routine(index),
				slog.String("panic", fmt.Sprint(r)),
				slog.String("stack", string(debug.Stack())))
			err = errors.InternalError("routine panicked").
				WithContext("document", d.name).
				WithContext("routine", index).
				WithContext("panic", fmt.Sprint(r)).
				Build()
		}
		d.fail(err)
	}()
	routine(d)
	return nil
}

// abortSignal unwinds a routine on a structural error. Document.Run recovers it.
type abortSignal struct{ err error }

func (d *Document) abort(err error) {
	panic(abortSignal{err: err})
}

func (d *Document) fail(err error) {
	d.failed = true
	d.failures = append(d.failures, err)
}

// sourceLine returns the trimmed source text at site, used as the expression of
// an assertion written without an explicit description.
func (d *Document) sourceLine(site capture.Site) string {
	read := d.env.Source
	if read == nil {
		return ""
	}
	data, err := read(site.File)
	if err != nil {
		return ""
	}
	lines := strings.Split(string(data), "\n")
	if site.Line < 1 || site.Line > len(lines) {
		return ""
	}
	return strings.TrimSpace(lines[site.Line-1])
}
