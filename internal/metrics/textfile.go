package metrics

import (
	"git.home.luguber.info/inful/how2use/internal/foundation/errors"

	prom "github.com/prometheus/client_golang/prometheus"
)

// WriteTextfile writes the metrics of reg in the node exporter textfile format.
func WriteTextfile(reg *prom.Registry, path string) error {
	if err := prom.WriteToTextfile(path, reg); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write metrics textfile").
			WithContext("path", path).
			Build()
	}
	return nil
}
