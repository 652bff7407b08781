package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/how2use/cmd/how2use/commands"
	"git.home.luguber.info/inful/how2use/internal/foundation/errors"
	"git.home.luguber.info/inful/how2use/internal/guide"
	"git.home.luguber.info/inful/how2use/internal/version"
	"git.home.luguber.info/inful/how2use/registry"
)

func main() {
	cli := &commands.CLI{}
	kctx := kong.Parse(cli,
		kong.Name("how2use"),
		kong.Description("Generate Markdown manuals from executed, asserted example code."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	err := kctx.Run(&commands.Global{
		Stdout:   os.Stdout,
		Register: func(r *registry.Registry) error { return guide.Register(r) },
	}, cli)

	adapter := errors.NewCLIErrorAdapter(cli.Verbose, slog.Default())
	os.Exit(adapter.Report(os.Stderr, err))
}
