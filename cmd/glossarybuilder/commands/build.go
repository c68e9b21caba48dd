package commands

import (
	"context"
	"fmt"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Input  string `short:"i" help:"Glossary input file (overrides config input)"`
	Output string `short:"o" help:"Output directory for the generated pages"`
	Verify bool   `help:"Verify internal links after building"`
	Title  string `help:"Index page title (overrides config index.title)"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, fromFile, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	if b.Verify {
		cfg.Build.VerifyLinks = true
	}
	if b.Title != "" {
		cfg.Index.Title = b.Title
	}

	input, err := ResolveInput(g, b.Input, cfg)
	if err != nil {
		return err
	}
	output, err := ResolveOutputDir(g, b.Output, cfg, fromFile)
	if err != nil {
		return err
	}

	result, err := newPipeline(g, cfg).run(context.Background(), input, output)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.out(), "Wrote %d pages and the index to %s (%d terms, %d links)\n",
		result.PagesWritten, result.OutputDir, result.Terms, result.LinksRendered)
	return nil
}
