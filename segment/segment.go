// Package segment defines the ordered units a document is built from and the
// append-only stream that holds them.
package segment

import (
	"iter"
	"slices"
	"strings"

	"git.home.luguber.info/inful/how2use/internal/textutil"
)

// Kind discriminates the Segment union.
type Kind int

const (
	KindText Kind = iota
	KindNewline
	KindEmptyLine
	KindTitle
	KindCode
	KindCodeRef
	KindResource
	KindGuardOpen
	KindGuardClose
)

var kindNames = [...]string{"text", "newline", "empty_line", "title", "code", "code_ref", "resource", "guard_open", "guard_close"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// GuardKind selects how a guarded region is rendered.
type GuardKind string

const (
	GuardBlock GuardKind = "block"
	GuardHTML  GuardKind = "html"
)

// Segment is one renderable unit. Only the fields relevant to Kind are set.
type Segment struct {
	Kind  Kind
	Text  string    // text, title, resource payload; block name for KindCodeRef
	Level int       // heading level for KindTitle
	Lang  string    // info string for KindCode
	Lines []string  // code lines for KindCode
	Guard GuardKind // guard kind for KindGuardOpen/KindGuardClose
	Tags  []string  // html tags for GuardHTML
}

// Text is a literal piece of prose appended to the current line.
func Text(s string) Segment { return Segment{Kind: KindText, Text: s} }

// Newline ends the current line.
func Newline() Segment { return Segment{Kind: KindNewline} }

// EmptyLine ends the current line and leaves one blank line.
func EmptyLine() Segment { return Segment{Kind: KindEmptyLine} }

// Title is a heading. Levels outside 1..6 are clamped.
func Title(text string, level int) Segment {
	return Segment{Kind: KindTitle, Text: text, Level: min(max(level, 1), 6)}
}

// Code is a fenced code block.
func Code(lang string, lines []string) Segment {
	return Segment{Kind: KindCode, Lang: lang, Lines: slices.Clone(lines)}
}

// CodeRef refers to a named code block resolved when the stream is rendered.
func CodeRef(name string) Segment { return Segment{Kind: KindCodeRef, Text: name} }

// Resource is an already-loaded external resource rendered verbatim.
func Resource(payload string) Segment { return Segment{Kind: KindResource, Text: payload} }

// GuardOpen starts a guarded region.
func GuardOpen(kind GuardKind, tags []string) Segment {
	return Segment{Kind: KindGuardOpen, Guard: kind, Tags: slices.Clone(tags)}
}

// GuardClose ends the most recently opened guarded region.
func GuardClose(kind GuardKind, tags []string) Segment {
	return Segment{Kind: KindGuardClose, Guard: kind, Tags: slices.Clone(tags)}
}

// HTMLTag wraps a short message in the whitespace-separated tags, outermost first.
func HTMLTag(text, tags string) Segment {
	list := ParseTags(tags)
	var b strings.Builder
	for _, t := range list {
		b.WriteString("<" + t + ">")
	}
	b.WriteString(text)
	for _, t := range slices.Backward(list) {
		b.WriteString("</" + t + ">")
	}
	return Text(b.String())
}

// Prose is free-form multi-line description text. Common indentation is removed
// and every line ends with a newline.
func Prose(raw string) Segment {
	lines := textutil.DedentString(raw)
	if len(lines) == 0 {
		return Resource("")
	}
	return Resource(strings.Join(lines, "\n") + "\n")
}

// PseudoCode is a dedented, non-executable code block with no language.
func PseudoCode(raw string) Segment {
	return Code("", textutil.DedentString(raw))
}

// ParseTags splits a tag list such as "center strong blockquote".
func ParseTags(tags string) []string {
	return strings.Fields(tags)
}

// Stream is an append-only ordered sequence of segments.
type Stream struct {
	segs []Segment
}

// Add appends segments in order and returns the stream for chaining.
func (s *Stream) Add(segs ...Segment) *Stream {
	s.segs = append(s.segs, segs...)
	return s
}

// Len returns the number of appended segments.
func (s *Stream) Len() int { return len(s.segs) }

// All iterates the segments in insertion order.
func (s *Stream) All() iter.Seq[Segment] { return slices.Values(s.segs) }

// Segments returns a copy of the appended segments.
func (s *Stream) Segments() []Segment { return slices.Clone(s.segs) }
