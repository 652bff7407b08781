package markdown

// Options controls how Markdown is parsed for analysis and preview.
type Options struct {
	// Unsafe lets raw HTML (guard tags, <img> resources) through when rendering HTML.
	Unsafe bool
}

type LinkKind string

const (
	LinkKindInline LinkKind = "inline"
	LinkKindImage  LinkKind = "image"
	LinkKindAuto   LinkKind = "auto"
	// Targets found in raw HTML.
	LinkKindHTMLImage  LinkKind = "html_image"
	LinkKindHTMLAnchor LinkKind = "html_anchor"
)

// IsImage reports whether the link embeds an image.
func (k LinkKind) IsImage() bool { return k == LinkKindImage || k == LinkKindHTMLImage }

type Link struct {
	Kind        LinkKind
	Destination string
}

// Heading is one entry of a document outline.
type Heading struct {
	Level int
	Text  string
}
