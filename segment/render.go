package segment

import (
	"bytes"
	"slices"
	"strings"

	"git.home.luguber.info/inful/how2use/internal/foundation/errors"
)

// Resolver looks up the lines of a sealed code block by name.
type Resolver func(name string) (lines []string, ok bool)

// RenderOptions controls Markdown serialization.
type RenderOptions struct {
	// CodeLanguage is the fence info string used for resolved code references.
	CodeLanguage string
}

// Render serializes segments to Markdown in insertion order.
// Unresolvable code references and unbalanced guards are reported as errors.
func Render(segs []Segment, resolve Resolver, opts RenderOptions) ([]byte, error) {
	r := &renderer{}
	for _, s := range segs {
		if err := r.segment(s, resolve, opts); err != nil {
			return nil, err
		}
	}
	if len(r.guards) > 0 {
		top := r.guards[len(r.guards)-1]
		return nil, errors.GuardError("guard opened but never closed").
			WithContext("guard", string(top.Guard)).
			WithContext("open", len(r.guards)).
			Build()
	}
	r.endLine()
	return r.out.Bytes(), nil
}

type renderer struct {
	out    bytes.Buffer
	cur    strings.Builder
	dirty  bool // cur holds text for the current line
	depth  int  // nesting of block guards, rendered as "> " prefixes
	guards []Segment
}

func (r *renderer) segment(s Segment, resolve Resolver, opts RenderOptions) error {
	switch s.Kind {
	case KindText, KindResource:
		r.raw(s.Text)
	case KindNewline:
		if r.dirty {
			r.cur.WriteString("  ")
		}
		r.flush()
	case KindEmptyLine:
		r.endLine()
		r.flush()
	case KindTitle:
		r.endLine()
		r.line(strings.Repeat("#", s.Level) + " " + s.Text)
	case KindCode:
		r.fence(s.Lang, s.Lines)
	case KindCodeRef:
		lines, ok := resolve(s.Text)
		if !ok {
			return errors.LookupError("code block was never sealed").WithContext("block", s.Text).Build()
		}
		r.fence(opts.CodeLanguage, lines)
	case KindGuardOpen:
		r.open(s)
	case KindGuardClose:
		return r.close(s)
	}
	return nil
}

// raw appends text, starting a new output line at every '\n'.
func (r *renderer) raw(text string) {
	for i, part := range strings.Split(text, "\n") {
		if i > 0 {
			r.flush()
		}
		if part != "" {
			r.cur.WriteString(part)
			r.dirty = true
		}
	}
}

func (r *renderer) line(text string) {
	r.cur.WriteString(text)
	r.flush()
}

// endLine terminates the current line if it holds any text.
func (r *renderer) endLine() {
	if r.dirty {
		r.flush()
	}
}

func (r *renderer) flush() {
	prefix := strings.Repeat("> ", r.depth)
	text := r.cur.String()
	if text == "" {
		prefix = strings.TrimRight(prefix, " ")
	}
	r.out.WriteString(prefix)
	r.out.WriteString(text)
	r.out.WriteByte('\n')
	r.cur.Reset()
	r.dirty = false
}

func (r *renderer) fence(lang string, lines []string) {
	r.endLine()
	r.line("```" + lang)
	for _, l := range lines {
		r.line(l)
	}
	r.line("```")
}

func (r *renderer) open(s Segment) {
	r.endLine()
	r.guards = append(r.guards, s)
	switch s.Guard {
	case GuardBlock:
		r.depth++
	case GuardHTML:
		var b strings.Builder
		for _, t := range s.Tags {
			b.WriteString("<" + t + ">")
		}
		r.line(b.String())
		r.flush()
	}
}

func (r *renderer) close(s Segment) error {
	if len(r.guards) == 0 {
		return errors.GuardError("guard closed without a matching open").WithContext("guard", string(s.Guard)).Build()
	}
	top := r.guards[len(r.guards)-1]
	if top.Guard != s.Guard || !slices.Equal(top.Tags, s.Tags) {
		return errors.GuardError("guard closed out of order").
			WithContext("guard", string(s.Guard)).
			WithContext("expected", string(top.Guard)).
			Build()
	}
	r.guards = r.guards[:len(r.guards)-1]
	r.endLine()
	switch s.Guard {
	case GuardBlock:
		r.depth--
		r.flush()
	case GuardHTML:
		r.flush()
		var b strings.Builder
		for _, t := range slices.Backward(s.Tags) {
			b.WriteString("</" + t + ">")
		}
		r.line(b.String())
	}
	return nil
}
