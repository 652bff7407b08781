// Package summary prints the per-document outcome of a run for terminals.
package summary

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"git.home.luguber.info/inful/how2use/document"
	"git.home.luguber.info/inful/how2use/internal/foundation/errors"
	"git.home.luguber.info/inful/how2use/internal/markdown"
	"git.home.luguber.info/inful/how2use/registry"
)

// maxNameWidth bounds the name column; longer names are truncated.
const maxNameWidth = 40

// Printer writes run summaries.
type Printer struct {
	w     io.Writer
	pass  *color.Color
	fail  *color.Color
	faint *color.Color
}

// NewPrinter creates a printer. Colors are only emitted when colorize is set.
func NewPrinter(w io.Writer, colorize bool) *Printer {
	p := &Printer{
		w:     w,
		pass:  color.New(color.FgGreen, color.Bold),
		fail:  color.New(color.FgRed, color.Bold),
		faint: color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.pass, p.fail, p.faint} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Report prints one line per document, the failure causes of failed documents
// and a closing tally.
func (p *Printer) Report(r *registry.Report) {
	width := 0
	for _, res := range r.Results {
		width = max(width, min(runewidth.StringWidth(res.Document), maxNameWidth))
	}
	for _, res := range r.Results {
		name := runewidth.FillRight(fit(res.Document, width), width)
		if res.Outcome == document.Passed {
			_, _ = fmt.Fprintf(p.w, "%s  %s  %s  %s\n",
				p.pass.Sprint("PASS"), name,
				p.faint.Sprintf("%3d blocks", res.Blocks), res.Path)
			continue
		}
		note := ""
		if res.Removed {
			note = p.faint.Sprint("  (stale file removed)")
		}
		_, _ = fmt.Fprintf(p.w, "%s  %s  %s%s\n",
			p.fail.Sprint("FAIL"), name,
			p.faint.Sprintf("%d failures", len(res.Failures)), note)
		for _, err := range res.Failures {
			_, _ = fmt.Fprintf(p.w, "      %s %s\n", p.faint.Sprint("-"), describe(err))
		}
	}

	tally := fmt.Sprintf("%d documents: %d passed, %d failed in %s",
		len(r.Results), r.Passed(), r.Failed(), r.Duration.Round(time.Millisecond))
	if r.Failed() > 0 {
		_, _ = fmt.Fprintln(p.w, p.fail.Sprint(tally))
		return
	}
	_, _ = fmt.Fprintln(p.w, p.pass.Sprint(tally))
}

// Outline prints the headings of a document, indented by level.
func (p *Printer) Outline(headings []markdown.Heading) {
	for _, h := range headings {
		_, _ = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", h.Level), h.Text)
	}
}

// List prints document names with their output path.
func (p *Printer) List(names []string, path func(string) string) {
	width := 0
	for _, n := range names {
		width = max(width, min(runewidth.StringWidth(n), maxNameWidth))
	}
	for _, n := range names {
		_, _ = fmt.Fprintf(p.w, "%s  %s\n", runewidth.FillRight(fit(n, width), width), p.faint.Sprint(path(n)))
	}
}

func fit(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

func describe(err error) string {
	c, ok := errors.AsClassified(err)
	if !ok {
		return err.Error()
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s", c.Category(), c.Message()))
	for _, key := range []string{"location", "expression", "block", "guard", "resource"} {
		if v, ok := c.Context().GetString(key); ok && v != "" {
			b.WriteString(fmt.Sprintf(" %s=%s", key, v))
		}
	}
	if cause := c.Cause(); cause != nil {
		b.WriteString(": " + cause.Error())
	}
	return b.String()
}
