package document

import (
	stderrors "errors"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/how2use/internal/foundation/errors"
	"git.home.luguber.info/inful/how2use/internal/logfields"
	"git.home.luguber.info/inful/how2use/internal/markdown"
	"git.home.luguber.info/inful/how2use/segment"
)

// Outcome is the terminal state of a document.
type Outcome string

const (
	Passed Outcome = "passed"
	Failed Outcome = "failed"
)

// Sink stores and removes rendered documents.
type Sink interface {
	Write(path, title string, body []byte) error
	Remove(path string) (bool, error)
}

// Result describes what Finalize decided.
type Result struct {
	Document string
	Path     string
	Outcome  Outcome
	Failures []error
	// Removed is set when a failed document deleted a file left by an earlier run.
	Removed bool
	Bytes   int
	Blocks  int
	Outline []markdown.Heading
}

// Err joins the failure causes, or returns nil for a passed document.
func (r Result) Err() error {
	return stderrors.Join(r.Failures...)
}

// Finalize decides between emitting and discarding the document. A document
// passes only when no assertion failed, every guard was closed, every capture
// was sealed and every loaded block name resolved; it is then rendered and
// written through sink. Otherwise any existing file at the target path is removed.
func (d *Document) Finalize(sink Sink) Result {
	for _, g := range d.guards {
		d.fail(openGuardError(g))
	}
	d.guards = nil
	for _, name := range d.rec.Unsealed() {
		d.fail(errors.CaptureError("capture begun but never ended").
			WithContext("document", d.name).
			WithContext("block", name).
			Build())
	}
	seen := make(map[string]bool, len(d.refs))
	for _, name := range d.refs {
		if seen[name] || d.rec.Sealed(name) {
			continue
		}
		seen[name] = true
		d.fail(errors.LookupError("code block was never sealed").
			WithContext("document", d.name).
			WithContext("block", name).
			Build())
	}

	res := Result{Document: d.name, Path: d.path, Blocks: len(d.rec.Blocks())}

	var body []byte
	if !d.failed {
		rendered, err := segment.Render(d.stream.Segments(), d.rec.Lookup, segment.RenderOptions{CodeLanguage: d.env.CodeLanguage})
		if err != nil {
			d.fail(err)
		}
		body = rendered
	}
	if !d.failed {
		d.checkImages(body)
	}
	if !d.failed {
		if err := sink.Write(d.path, d.name, body); err != nil {
			d.fail(err)
		}
	}

	if !d.failed {
		res.Outcome = Passed
		res.Bytes = len(body)
		res.Outline = markdown.Outline(body, markdown.Options{})
		d.logger.Info("Document written",
			logfields.Path(d.path),
			slog.Int("bytes", res.Bytes),
			slog.Int("blocks", res.Blocks))
		return res
	}

	res.Outcome = Failed
	removed, err := sink.Remove(d.path)
	if err != nil {
		d.fail(err)
	}
	res.Removed = removed
	res.Failures = d.Failures()

	causes := make([]string, 0, len(res.Failures))
	for _, f := range res.Failures {
		causes = append(causes, f.Error())
	}
	d.logger.Error("Document failed",
		logfields.Path(d.path),
		slog.Bool("removed_stale", removed),
		slog.Int("failures", len(res.Failures)),
		slog.String("causes", strings.Join(causes, "; ")))
	return res
}

// checkImages fails the document when an image, Markdown or raw <img>, points
// at a local file that does not exist relative to the output file. Targets are
// URLs: escapes are decoded and any query or fragment is ignored.
func (d *Document) checkImages(body []byte) {
	base := filepath.Dir(d.path)
	for _, link := range markdown.ExtractLinks(body, markdown.Options{}) {
		if !link.Kind.IsImage() {
			continue
		}
		local, ok := localTarget(link.Destination)
		if !ok {
			continue
		}
		target := filepath.Join(base, filepath.FromSlash(local))
		if _, err := os.Stat(target); err != nil {
			d.fail(errors.NotFoundError("image link points at a missing file").
				WithCause(err).
				WithContext("document", d.name).
				WithContext("resource", link.Destination).
				Build())
		}
	}
}

// localTarget returns the file path of a relative image URL. Remote, data and
// rooted URLs are not checked.
func localTarget(dest string) (string, bool) {
	u, err := url.Parse(dest)
	if err != nil {
		// Not a valid URL; treat it as a plain relative path.
		return dest, !filepath.IsAbs(dest)
	}
	if u.Scheme != "" || u.Host != "" || u.Path == "" || path.IsAbs(u.Path) || filepath.IsAbs(u.Path) {
		return "", false
	}
	return u.Path, true
}
