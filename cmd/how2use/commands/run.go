package commands

import (
	"context"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/how2use/document"
	"git.home.luguber.info/inful/how2use/internal/metrics"
)

// RunCmd implements the 'run' command.
type RunCmd struct {
	Doc         string `name:"doc" help:"Generate only the named document."`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics of the run to this file (textfile collector format)."`
	Outline     bool   `name:"outline" help:"Print the heading outline of every written document."`
}

func (c *RunCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	env, err := newEnvironment(g, root)
	if err != nil {
		return err
	}
	report, err := env.run(ctx, c.Doc)
	if err != nil {
		return err
	}

	p := g.printer(root)
	p.Report(report)
	if c.Outline {
		for _, res := range report.Results {
			if res.Outcome == document.Passed {
				p.Outline(res.Outline)
			}
		}
	}
	if c.MetricsFile != "" {
		if err := metrics.WriteTextfile(env.recorder.Registry(), c.MetricsFile); err != nil {
			return err
		}
	}
	return report.Err()
}
