package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/how2use/internal/metrics"
	"git.home.luguber.info/inful/how2use/internal/preview"
	"git.home.luguber.info/inful/how2use/internal/watch"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr    string `name:"addr" help:"Listen address (overrides preview.addr)."`
	NoWatch bool   `name:"no-watch" help:"Do not regenerate documents when materials change."`
}

func (c *ServeCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	env, err := newEnvironment(g, root)
	if err != nil {
		return err
	}
	addr := c.Addr
	if addr == "" {
		addr = env.cfg.Preview.Addr
	}

	rerun := env.rerunFunc(g, root, "")
	rerun(ctx)

	srv := preview.NewServer(addr, env.registry,
		preview.WithDecoder(env.writer.Decode),
		preview.WithFiles(env.cfg.Output.Directory),
		preview.WithMetrics(metrics.HTTPHandler(env.recorder.Registry())),
		preview.WithLogger(env.logger),
	)

	grp, ctx := errgroup.WithContext(ctx)
	grp.Go(srv.Start)
	grp.Go(func() error {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})
	if !c.NoWatch && isDir(env.cfg.Materials.Directory) {
		w, err := watch.New([]string{env.cfg.Materials.Directory}, env.cfg.Watch.Debounce, rerun, env.logger)
		if err != nil {
			cancel()
			return errors.Join(err, grp.Wait())
		}
		grp.Go(func() error { return w.Run(ctx) })
	}
	return grp.Wait()
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
