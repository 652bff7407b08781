package commands

import (
	"context"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/how2use/internal/foundation/errors"
	"git.home.luguber.info/inful/how2use/internal/logfields"
	"git.home.luguber.info/inful/how2use/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Doc string `name:"doc" help:"Regenerate only the named document."`
}

func (c *WatchCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	env, err := newEnvironment(g, root)
	if err != nil {
		return err
	}
	if c.Doc != "" && !env.registry.Has(c.Doc) {
		return errors.NotFoundError("no document registered under this name").
			WithContext("document", c.Doc).
			Build()
	}

	rerun := env.rerunFunc(g, root, c.Doc)
	rerun(ctx)

	w, err := watch.New([]string{env.cfg.Materials.Directory}, env.cfg.Watch.Debounce, rerun, env.logger)
	if err != nil {
		return err
	}
	return w.Run(ctx)
}

// rerunFunc generates documents and prints the summary. Failures are reported
// but do not stop a long-running command.
func (e *environment) rerunFunc(g *Global, root *CLI, doc string) func(context.Context) {
	p := g.printer(root)
	return func(ctx context.Context) {
		report, err := e.run(ctx, doc)
		if err != nil {
			e.logger.Error("Generation failed", logfields.Error(err))
			return
		}
		p.Report(report)
	}
}
