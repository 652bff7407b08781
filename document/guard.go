package document

import (
	"strings"

	"git.home.luguber.info/inful/how2use/internal/capture"
	"git.home.luguber.info/inful/how2use/internal/foundation/errors"
	"git.home.luguber.info/inful/how2use/internal/logfields"
	"git.home.luguber.info/inful/how2use/segment"
)

// Guard brackets a region of the stream. Close it with defer so the closing
// marker is appended on every exit path:
//
//	defer d.HTMLGuard("center").Close()
type Guard struct {
	doc    *Document
	kind   segment.GuardKind
	tags   []string
	site   capture.Site
	closed bool
}

// BlockGuard opens a quoted block region.
func (d *Document) BlockGuard() *Guard {
	return d.openGuard(segment.GuardBlock, nil, capture.Caller(1))
}

// HTMLGuard opens a region wrapped in the whitespace-separated tags.
func (d *Document) HTMLGuard(tags string) *Guard {
	return d.htmlGuard(tags, capture.Caller(1))
}

// WithBlockGuard runs fn inside a block guard.
func (d *Document) WithBlockGuard(fn func()) {
	g := d.openGuard(segment.GuardBlock, nil, capture.Caller(1))
	defer g.Close()
	fn()
}

// WithHTMLGuard runs fn inside an html guard.
func (d *Document) WithHTMLGuard(tags string, fn func()) {
	g := d.htmlGuard(tags, capture.Caller(1))
	defer g.Close()
	fn()
}

func (d *Document) htmlGuard(tags string, site capture.Site) *Guard {
	list := segment.ParseTags(tags)
	if len(list) == 0 {
		d.abort(errors.GuardError("html guard needs at least one tag").
			WithContext("location", site.String()).
			Build())
	}
	return d.openGuard(segment.GuardHTML, list, site)
}

func (d *Document) openGuard(kind segment.GuardKind, tags []string, site capture.Site) *Guard {
	g := &Guard{doc: d, kind: kind, tags: tags, site: site}
	d.guards = append(d.guards, g)
	d.Add(segment.GuardOpen(kind, tags))
	d.logger.Debug("Guard opened", logfields.Guard(string(kind)), logfields.Location(site.String()))
	return g
}

// Close appends the closing marker. Guards must close in reverse order of opening.
func (g *Guard) Close() {
	d := g.doc
	if g.closed {
		d.abort(errors.GuardError("guard closed twice").
			WithContext("guard", string(g.kind)).
			WithContext("location", g.site.String()).
			Build())
	}
	if n := len(d.guards); n == 0 || d.guards[n-1] != g {
		d.abort(errors.GuardError("guard closed out of order").
			WithContext("guard", string(g.kind)).
			WithContext("location", g.site.String()).
			Build())
	}
	d.guards = d.guards[:len(d.guards)-1]
	g.closed = true
	d.Add(segment.GuardClose(g.kind, g.tags))
}

// Tags returns the html tags of the guard, outermost first.
func (g *Guard) Tags() []string { return append([]string(nil), g.tags...) }

func openGuardError(g *Guard) error {
	return errors.GuardError("guard opened but never closed").
		WithContext("guard", string(g.kind)).
		WithContext("tags", strings.Join(g.tags, " ")).
		WithContext("location", g.site.String()).
		Build()
}
