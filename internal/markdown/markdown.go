package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// ParseBody parses a Markdown body into a Goldmark AST.
func ParseBody(body []byte, _ Options) gmast.Node {
	return goldmark.New().Parser().Parse(text.NewReader(body))
}

// Outline returns the headings of a rendered document in order.
func Outline(body []byte, opts Options) []Heading {
	root := ParseBody(body, opts)
	headings := make([]Heading, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if h, ok := n.(*gmast.Heading); ok {
			headings = append(headings, Heading{Level: h.Level, Text: plainText(h, body)})
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})
	return headings
}

// ExtractLinks parses a Markdown body and extracts link-like constructs,
// including <img> and <a> targets inside raw HTML.
func ExtractLinks(body []byte, opts Options) []Link {
	root := ParseBody(body, opts)
	links := make([]Link, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, Link{Kind: LinkKindAuto, Destination: string(node.URL(body))})
		case *gmast.Image:
			links = append(links, Link{Kind: LinkKindImage, Destination: string(node.Destination)})
		case *gmast.Link:
			links = append(links, Link{Kind: LinkKindInline, Destination: string(node.Destination)})
		case *gmast.HTMLBlock, *gmast.RawHTML:
			links = append(links, htmlLinks(rawHTML(node, body))...)
		}
		return gmast.WalkContinue, nil
	})
	return links
}

// ToHTML renders a Markdown body to an HTML fragment.
func ToHTML(body []byte, opts Options) ([]byte, error) {
	var rendererOpts []goldmark.Option
	if opts.Unsafe {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(html.WithUnsafe()))
	}
	var buf bytes.Buffer
	if err := goldmark.New(rendererOpts...).Convert(body, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func plainText(n gmast.Node, source []byte) string {
	var b strings.Builder
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gmast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(t.Value)
		case *gmast.CodeSpan:
			for child := t.FirstChild(); child != nil; child = child.NextSibling() {
				if txt, ok := child.(*gmast.Text); ok {
					b.Write(txt.Segment.Value(source))
				}
			}
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})
	return b.String()
}
