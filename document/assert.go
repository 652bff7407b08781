package document

import (
	"strings"

	"git.home.luguber.info/inful/how2use/internal/capture"
	"git.home.luguber.info/inful/how2use/internal/foundation/errors"
	"git.home.luguber.info/inful/how2use/internal/logfields"
)

// Assert records a failure when cond is false. expr describes the condition;
// when omitted the source line of the call is used.
func (d *Document) Assert(cond bool, expr ...string) {
	if cond {
		return
	}
	site := capture.Caller(1)
	text := strings.Join(expr, " ")
	if text == "" {
		text = d.sourceLine(site)
	}
	d.recordAssertion(site, text, nil)
}

// AssertNoError records a failure when err is non-nil, such as the range error
// of a short sequence.
func (d *Document) AssertNoError(err error) {
	if err == nil {
		return
	}
	site := capture.Caller(1)
	d.recordAssertion(site, d.sourceLine(site), err)
}

func (d *Document) recordAssertion(site capture.Site, expr string, cause error) {
	d.logger.Warn("Assertion failed",
		logfields.Location(site.String()),
		logfields.Expression(expr),
		logfields.Error(cause))
	d.fail(errors.AssertionError("assertion failed").
		WithCause(cause).
		WithContext("document", d.name).
		WithContext("location", site.String()).
		WithContext("expression", expr).
		Build())
}
