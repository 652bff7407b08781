package commands

import (
	"fmt"

	"git.home.luguber.info/inful/how2use/internal/config"
	"git.home.luguber.info/inful/how2use/internal/foundation/errors"
	"git.home.luguber.info/inful/how2use/internal/guide"
	"git.home.luguber.info/inful/how2use/internal/logfields"
)

// InitCmd implements the 'init' command.
type InitCmd struct{}

func (c *InitCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	written, err := guide.InstallMaterials(cfg.Materials.Directory)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "install materials").
			WithContext("path", cfg.Materials.Directory).
			Build()
	}
	g.logger().Info("Materials installed", logfields.Path(cfg.Materials.Directory), logfields.Count(len(written)))
	for _, name := range written {
		_, _ = fmt.Fprintln(g.stdout(), name)
	}
	return nil
}
