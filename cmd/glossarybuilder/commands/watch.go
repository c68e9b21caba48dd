package commands

import (
	"context"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/glossarybuilder/internal/logfields"
	"git.home.luguber.info/inful/glossarybuilder/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Input  string `short:"i" help:"Glossary input file (overrides config input)"`
	Output string `short:"o" help:"Output directory for the generated pages"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return w.run(ctx, g, root)
}

func (w *WatchCmd) run(ctx context.Context, g *Global, root *CLI) error {
	cfg, fromFile, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	input, err := ResolveInput(g, w.Input, cfg)
	if err != nil {
		return err
	}
	output, err := ResolveOutputDir(g, w.Output, cfg, fromFile)
	if err != nil {
		return err
	}

	p := newPipeline(g, cfg)
	rebuild := func(ctx context.Context) error {
		_, err := p.run(ctx, input, output)
		return err
	}
	// A broken first build is reported but watching still starts so the
	// input can be fixed in place.
	if err := rebuild(ctx); err != nil {
		p.logger.Error("Initial build failed", logfields.Error(err))
	}

	return watch.New(input, rebuild).Run(ctx)
}
