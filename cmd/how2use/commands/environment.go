package commands

import (
	"context"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/how2use/internal/config"
	"git.home.luguber.info/inful/how2use/internal/foundation/errors"
	"git.home.luguber.info/inful/how2use/internal/guide"
	"git.home.luguber.info/inful/how2use/internal/logfields"
	"git.home.luguber.info/inful/how2use/internal/metrics"
	"git.home.luguber.info/inful/how2use/internal/output"
	"git.home.luguber.info/inful/how2use/internal/resource"
	"git.home.luguber.info/inful/how2use/registry"
)

// environment is everything a command needs to generate documents.
type environment struct {
	cfg      *config.Config
	registry *registry.Registry
	recorder *metrics.PrometheusRecorder
	writer   *output.Writer
	logger   *slog.Logger
}

func newEnvironment(g *Global, root *CLI) (*environment, error) {
	logger := g.logger()
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}

	env := &environment{
		cfg:      cfg,
		recorder: metrics.NewPrometheusRecorder(nil),
		writer:   output.NewWriter(cfg.WriterOptions()),
		logger:   logger,
	}
	env.registry = registry.New(
		registry.WithLogger(logger),
		registry.WithRecorder(env.recorder),
		registry.WithSink(env.writer),
		registry.WithResources(materialsLoader(cfg, logger)),
		registry.WithSource(guide.ReadSource),
		registry.WithCodeLanguage(cfg.Code.Language),
		registry.WithPathFunc(cfg.DocumentPath),
	)
	if g.Register != nil {
		if err := g.Register(env.registry); err != nil {
			return nil, err
		}
	}
	return env, nil
}

// materialsLoader reads the configured materials directory. Documents that load
// resources fail with a not-found error when it is missing.
func materialsLoader(cfg *config.Config, logger *slog.Logger) *resource.Loader {
	dir := cfg.Materials.Directory
	if !isDir(dir) {
		logger.Warn("Materials directory not found; run 'how2use init' to install the bundled materials",
			logfields.Path(dir))
	}
	return resource.NewLoader(dir, cfg.ImageLinkBase())
}

func (e *environment) run(ctx context.Context, doc string) (*registry.Report, error) {
	if err := os.MkdirAll(e.cfg.Output.Directory, 0o755); err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "create output directory").
			WithContext("path", e.cfg.Output.Directory).
			Build()
	}
	if doc != "" {
		return e.registry.RunOne(ctx, doc)
	}
	return e.registry.RunAll(ctx)
}
