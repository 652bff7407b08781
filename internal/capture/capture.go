// Package capture records the literal source text of named code blocks.
//
// A block is opened and sealed at two call sites in the same Go source file; the
// lines strictly between them become the block text, including the calls of any
// block nested inside it. The source file is read at seal time, so generation
// must run where the sources are available (go run, go test) unless a
// SourceReader serves them.
package capture

import (
	"fmt"
	"os"
	"runtime"
	"slices"
	"sync"

	"git.home.luguber.info/inful/how2use/internal/foundation/errors"
	"git.home.luguber.info/inful/how2use/internal/textutil"
)

// Site is a source position.
type Site struct {
	File string
	Line int
}

func (s Site) String() string { return fmt.Sprintf("%s:%d", s.File, s.Line) }

// Caller returns the call site skip frames above the function calling Caller.
func Caller(skip int) Site {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Site{File: "unknown"}
	}
	return Site{File: file, Line: line}
}

// Block is a sealed code block.
type Block struct {
	Name  string
	Lines []string
	Site  Site
}

// Namespace tracks block names across every document of one run, so a name
// can only be claimed once.
type Namespace struct {
	mu     sync.Mutex
	owners map[string]string
}

// NewNamespace returns an empty run-wide namespace.
func NewNamespace() *Namespace {
	return &Namespace{owners: make(map[string]string)}
}

func (n *Namespace) claim(name, doc string) (owner string, ok bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if owner, taken := n.owners[name]; taken {
		return owner, false
	}
	n.owners[name] = doc
	return doc, true
}

// SourceReader returns the contents of a source file.
type SourceReader func(path string) ([]byte, error)

// Recorder captures the blocks of a single document.
type Recorder struct {
	document string
	names    *Namespace
	read     SourceReader
	files    map[string][]string
	open     map[string]Site
	order    []string
	sealed   map[string]*Block
}

// NewRecorder creates a recorder for document whose names are claimed in ns.
// A nil read uses os.ReadFile.
func NewRecorder(document string, ns *Namespace, read SourceReader) *Recorder {
	if ns == nil {
		ns = NewNamespace()
	}
	if read == nil {
		read = os.ReadFile
	}
	return &Recorder{
		document: document,
		names:    ns,
		read:     read,
		files:    make(map[string][]string),
		open:     make(map[string]Site),
		sealed:   make(map[string]*Block),
	}
}

// Begin opens a capture named name at site.
func (r *Recorder) Begin(name string, site Site) error {
	if err := r.claim(name, site); err != nil {
		return err
	}
	r.open[name] = site
	r.order = append(r.order, name)
	return nil
}

// End seals the capture named name, taking the source lines between its Begin
// site and site. Ending an already sealed block is a no-op and reports false.
func (r *Recorder) End(name string, site Site) (bool, error) {
	if _, done := r.sealed[name]; done {
		return false, nil
	}
	begin, ok := r.open[name]
	if !ok {
		return false, errors.CaptureError("capture ended but never begun").
			WithContext("block", name).
			WithContext("location", site.String()).
			Build()
	}
	if begin.File != site.File || site.Line <= begin.Line {
		return false, errors.CaptureError("capture must end later in the same source file").
			WithContext("block", name).
			WithContext("begin", begin.String()).
			WithContext("end", site.String()).
			Build()
	}
	lines, err := r.source(begin.File)
	if err != nil {
		return false, err
	}
	if site.Line > len(lines)+1 {
		return false, errors.CaptureError("capture site is past the end of its source file").
			WithContext("block", name).
			WithContext("end", site.String()).
			Build()
	}

	// Lines are 1-based; keep begin.Line+1 .. site.Line-1 verbatim, including the
	// markers of blocks nested inside this one.
	body := slices.Clone(lines[begin.Line : site.Line-1])
	delete(r.open, name)
	r.sealed[name] = &Block{Name: name, Lines: textutil.Dedent(body), Site: begin}
	return true, nil
}

// Text seals a block directly from raw text.
func (r *Recorder) Text(name, raw string, site Site) error {
	if err := r.claim(name, site); err != nil {
		return err
	}
	r.order = append(r.order, name)
	r.sealed[name] = &Block{Name: name, Lines: textutil.DedentString(raw), Site: site}
	return nil
}

// Lookup returns the lines of a sealed block.
func (r *Recorder) Lookup(name string) ([]string, bool) {
	b, ok := r.sealed[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(b.Lines), true
}

// Sealed reports whether name has been sealed.
func (r *Recorder) Sealed(name string) bool {
	_, ok := r.sealed[name]
	return ok
}

// Unsealed lists captures that were begun but not ended, in begin order.
func (r *Recorder) Unsealed() []string {
	var names []string
	for _, n := range r.order {
		if _, ok := r.open[n]; ok {
			names = append(names, n)
		}
	}
	return names
}

// Blocks returns the sealed blocks in the order they were begun.
func (r *Recorder) Blocks() []Block {
	out := make([]Block, 0, len(r.sealed))
	for _, n := range r.order {
		if b, ok := r.sealed[n]; ok {
			out = append(out, *b)
		}
	}
	return out
}

func (r *Recorder) claim(name string, site Site) error {
	if name == "" {
		return errors.CaptureError("code block name is empty").WithContext("location", site.String()).Build()
	}
	if _, ok := r.open[name]; ok {
		return errors.CaptureError("code block is already open").
			WithContext("block", name).
			WithContext("location", site.String()).
			Build()
	}
	if _, ok := r.sealed[name]; ok {
		return errors.CaptureError("code block is already sealed").
			WithContext("block", name).
			WithContext("location", site.String()).
			Build()
	}
	if owner, ok := r.names.claim(name, r.document); !ok {
		return errors.CaptureError("code block name already used in this run").
			WithContext("block", name).
			WithContext("owner", owner).
			WithContext("location", site.String()).
			Build()
	}
	return nil
}

func (r *Recorder) source(file string) ([]string, error) {
	if lines, ok := r.files[file]; ok {
		return lines, nil
	}
	data, err := r.read(file)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryCapture, "read capture source").
			WithContext("path", file).
			Build()
	}
	lines := textutil.SplitLines(string(data))
	r.files[file] = lines
	return lines, nil
}
