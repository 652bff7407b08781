package document

import (
	"git.home.luguber.info/inful/how2use/internal/capture"
	"git.home.luguber.info/inful/how2use/internal/logfields"
	"git.home.luguber.info/inful/how2use/segment"
)

// BeginCapture opens a named code block at the call site. The source lines up to
// the matching EndCapture become the block text.
func (d *Document) BeginCapture(name string) {
	if err := d.rec.Begin(name, capture.Caller(1)); err != nil {
		d.abort(err)
	}
}

// EndCapture seals the named block. Sealing is final; ending it again does nothing.
func (d *Document) EndCapture(name string) {
	d.endCapture(name, capture.Caller(1))
}

// EndCaptureAndLoad seals the named block and immediately loads it into the stream.
func (d *Document) EndCaptureAndLoad(name string) {
	d.endCapture(name, capture.Caller(1))
	d.LoadCodeBlock(name)
}

// CaptureText seals a block from explicit text instead of source lines.
func (d *Document) CaptureText(name, raw string) {
	if err := d.rec.Text(name, raw, capture.Caller(1)); err != nil {
		d.abort(err)
	}
}

// LoadCodeBlock appends the named block to the stream. The block may be sealed
// later in the same document; an unsealed name fails the document at Finalize.
func (d *Document) LoadCodeBlock(name string) {
	d.Add(segment.CodeRef(name))
}

// Blocks returns the sealed code blocks in capture order.
func (d *Document) Blocks() []capture.Block { return d.rec.Blocks() }

func (d *Document) endCapture(name string, site capture.Site) {
	sealed, err := d.rec.End(name, site)
	if err != nil {
		d.abort(err)
	}
	if sealed {
		d.logger.Debug("Code block sealed", logfields.Block(name), logfields.Location(site.String()))
	}
}
