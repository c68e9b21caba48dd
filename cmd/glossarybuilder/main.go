package main

import (
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/glossarybuilder/cmd/glossarybuilder/commands"
	"git.home.luguber.info/inful/glossarybuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/glossarybuilder/internal/prompt"
	"git.home.luguber.info/inful/glossarybuilder/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("glossarybuilder"),
		kong.Description("Generate a cross-linked HTML glossary from a term/definition text file."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	global := &commands.Global{
		Prompter: prompt.New(os.Stdin, os.Stderr),
		Out:      os.Stdout,
	}
	if err := parser.Run(global, cli); err != nil {
		os.Exit(errors.NewCLIErrorAdapter(cli.Verbose, nil).Handle(err))
	}
}
