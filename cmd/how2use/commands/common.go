// Package commands implements the how2use command line.
package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"git.home.luguber.info/inful/how2use/internal/summary"
	"git.home.luguber.info/inful/how2use/registry"
)

// Global carries state shared by all subcommands.
type Global struct {
	// Logger overrides the logger configured from the global flags.
	Logger *slog.Logger
	Stdout io.Writer
	// Register adds the documents of this binary to a registry.
	Register func(r *registry.Registry) error
}

// CLI definition and global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"how2use.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	NoColor bool             `name:"no-color" help:"Disable colored output"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Run   RunCmd   `cmd:"" default:"1" help:"Generate documents (all, or one with --doc)"`
	List  ListCmd  `cmd:"" help:"List registered documents and their output paths"`
	Watch WatchCmd `cmd:"" help:"Regenerate documents whenever the materials directory changes"`
	Serve ServeCmd `cmd:"" help:"Generate documents and serve an HTML preview"`
	Init  InitCmd  `cmd:"" help:"Install the bundled sample materials"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

func (g *Global) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}

func (g *Global) stdout() io.Writer {
	if g.Stdout != nil {
		return g.Stdout
	}
	return os.Stdout
}

func (g *Global) printer(root *CLI) *summary.Printer {
	out := g.stdout()
	colorize := false
	if f, ok := out.(*os.File); ok && !root.NoColor {
		colorize = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return summary.NewPrinter(out, colorize)
}
