package document

import (
	"git.home.luguber.info/inful/how2use/internal/foundation/errors"
	"git.home.luguber.info/inful/how2use/internal/logfields"
)

// LoadDescriptionFile appends a text file from the materials directory as prose.
func (d *Document) LoadDescriptionFile(name string) {
	loader := d.env.Resources
	if loader == nil {
		d.abort(errors.ConfigError("no materials directory configured").WithContext("resource", name).Build())
	}
	seg, err := loader.DescriptionFile(name)
	if err != nil {
		d.abort(err)
	}
	d.logger.Debug("Description file loaded", logfields.Resource(name))
	d.Add(seg)
}

// LoadImage appends an image from the materials directory. A width of zero keeps
// the original size.
func (d *Document) LoadImage(name string, width int) {
	loader := d.env.Resources
	if loader == nil {
		d.abort(errors.ConfigError("no materials directory configured").WithContext("resource", name).Build())
	}
	seg, err := loader.Image(name, width)
	if err != nil {
		d.abort(err)
	}
	d.Add(seg)
}
