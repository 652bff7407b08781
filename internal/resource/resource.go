// Package resource loads external materials (description text files and images)
// that documents embed.
package resource

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"git.home.luguber.info/inful/how2use/internal/foundation/errors"
	"git.home.luguber.info/inful/how2use/internal/textutil"
	"git.home.luguber.info/inful/how2use/segment"
)

// Loader resolves resource names inside a materials directory.
type Loader struct {
	fsys     fs.FS
	dir      string
	linkBase string
}

// NewLoader returns a loader reading from dir. linkBase is the slash-separated
// path written into image links, relative to the output directory.
func NewLoader(dir, linkBase string) *Loader {
	return NewLoaderFS(os.DirFS(dir), dir, linkBase)
}

// NewLoaderFS is NewLoader over an arbitrary filesystem.
func NewLoaderFS(fsys fs.FS, dir, linkBase string) *Loader {
	return &Loader{fsys: fsys, dir: dir, linkBase: strings.TrimSuffix(linkBase, "/")}
}

// Dir returns the materials directory on disk.
func (l *Loader) Dir() string { return l.dir }

// DescriptionFile loads a text file and returns it as dedented prose.
func (l *Loader) DescriptionFile(name string) (segment.Segment, error) {
	if err := l.check(name); err != nil {
		return segment.Segment{}, err
	}
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return segment.Segment{}, l.notFound(name, err)
	}
	return segment.Prose(textutil.NFC(string(data))), nil
}

// Image returns an image reference. A positive width renders an <img> tag with
// that display width; otherwise a Markdown image at original size.
func (l *Loader) Image(name string, width int) (segment.Segment, error) {
	if err := l.check(name); err != nil {
		return segment.Segment{}, err
	}
	info, err := fs.Stat(l.fsys, name)
	if err != nil {
		return segment.Segment{}, l.notFound(name, err)
	}
	if info.IsDir() {
		return segment.Segment{}, errors.NotFoundError("resource is a directory").
			WithContext("resource", name).
			Build()
	}
	link := name
	if l.linkBase != "" {
		link = l.linkBase + "/" + name
	}
	if width > 0 {
		return segment.Resource(fmt.Sprintf("<img src=\"%s\" width=\"%d\">", link, width)), nil
	}
	return segment.Resource(fmt.Sprintf("![%s](%s)", path.Base(name), link)), nil
}

func (l *Loader) check(name string) error {
	if !fs.ValidPath(name) || name == "." {
		return errors.ValidationError("invalid resource name").
			WithContext("resource", name).
			Build()
	}
	return nil
}

func (l *Loader) notFound(name string, cause error) error {
	return errors.NotFoundError("resource not found").
		WithCause(cause).
		WithContext("resource", name).
		WithContext("dir", l.dir).
		Build()
}
