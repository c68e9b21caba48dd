package commands

import (
	"fmt"

	"git.home.luguber.info/inful/glossarybuilder/internal/linkverify"
)

// VerifyCmd implements the 'verify' command.
type VerifyCmd struct {
	Output string `short:"o" help:"Directory of a generated glossary (defaults to config output.directory)"`
}

func (v *VerifyCmd) Run(g *Global, root *CLI) error {
	cfg, _, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	dir := v.Output
	if dir == "" {
		dir = cfg.Output.Directory
	}

	result, err := linkverify.VerifySite(dir)
	if err != nil {
		return err
	}
	out := g.out()
	for _, broken := range result.Broken {
		_, _ = fmt.Fprintf(out, "%s: broken link %q (%s)\n", broken.Page, broken.Target, broken.Text)
	}
	_, _ = fmt.Fprintf(out, "Checked %d links in %d pages, %d broken\n", result.Checked, result.Pages, len(result.Broken))
	return result.Err()
}
