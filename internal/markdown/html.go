package markdown

import (
	"bytes"

	gmast "github.com/yuin/goldmark/ast"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// rawHTML returns the source bytes of an HTML block or inline raw HTML node.
func rawHTML(n gmast.Node, source []byte) []byte {
	var buf bytes.Buffer
	switch node := n.(type) {
	case *gmast.HTMLBlock:
		lines := node.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(source))
		}
		if node.HasClosure() {
			buf.Write(node.ClosureLine.Value(source))
		}
	case *gmast.RawHTML:
		for i := 0; i < node.Segments.Len(); i++ {
			seg := node.Segments.At(i)
			buf.Write(seg.Value(source))
		}
	}
	return buf.Bytes()
}

// htmlLinks extracts <img src> and <a href> targets from an HTML fragment.
func htmlLinks(fragment []byte) []Link {
	var links []Link
	z := xhtml.NewTokenizer(bytes.NewReader(fragment))
	for {
		switch z.Next() {
		case xhtml.ErrorToken:
			return links
		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			tok := z.Token()
			switch tok.DataAtom {
			case atom.Img:
				if src := attr(tok, "src"); src != "" {
					links = append(links, Link{Kind: LinkKindHTMLImage, Destination: src})
				}
			case atom.A:
				if href := attr(tok, "href"); href != "" {
					links = append(links, Link{Kind: LinkKindHTMLAnchor, Destination: href})
				}
			}
		}
	}
}

func attr(tok xhtml.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
