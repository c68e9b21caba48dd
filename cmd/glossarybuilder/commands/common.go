package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/glossarybuilder/internal/build"
	"git.home.luguber.info/inful/glossarybuilder/internal/config"
	"git.home.luguber.info/inful/glossarybuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/glossarybuilder/internal/logfields"
	"git.home.luguber.info/inful/glossarybuilder/internal/metrics"
	"git.home.luguber.info/inful/glossarybuilder/internal/prompt"
)

// Global carries process-wide collaborators shared by all subcommands.
type Global struct {
	Logger   *slog.Logger
	Prompter prompt.Prompter
	Out      io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"glossary.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build  BuildCmd  `cmd:"" help:"Generate the glossary pages and index"`
	Init   InitCmd   `cmd:"" help:"Initialize a new configuration file"`
	Verify VerifyCmd `cmd:"" help:"Check the internal links of a generated glossary"`
	Watch  WatchCmd  `cmd:"" help:"Build, then rebuild whenever the input file changes"`
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

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return io.Discard
	}
	return g.Out
}

// loadConfig reads the configuration file, falling back to defaults when it
// does not exist, and reconfigures logging from it. The boolean reports
// whether a file was loaded.
func loadConfig(g *Global, root *CLI) (*config.Config, bool, error) {
	cfg, found, err := config.LoadOrDefault(root.Config)
	if err != nil {
		return nil, false, err
	}
	logger := configureLogging(cfg, root.Verbose)
	if g != nil {
		g.Logger = logger
	}
	if !found {
		logger.Debug("No configuration file, using defaults", logfields.Path(root.Config))
	}
	return cfg, found, nil
}

// configureLogging installs the handler selected by the logging section.
// --verbose always wins over the configured level.
func configureLogging(cfg *config.Config, verbose bool) *slog.Logger {
	level := cfg.Logging.Level.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if config.NormalizeLogFormat(string(cfg.Logging.Format)) == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// ResolveInput picks the input path: flag, then config, then a prompt.
func ResolveInput(g *Global, flag string, cfg *config.Config) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if cfg.Input != "" {
		return cfg.Input, nil
	}
	return ask(g, "Glossary input file", "")
}

// ResolveOutputDir picks the output directory: flag, then a configuration
// file, then a prompt offering the default.
func ResolveOutputDir(g *Global, flag string, cfg *config.Config, fromFile bool) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if fromFile {
		return cfg.Output.Directory, nil
	}
	return ask(g, "Output directory", cfg.Output.Directory)
}

func ask(g *Global, title, placeholder string) (string, error) {
	if g == nil || g.Prompter == nil {
		if placeholder != "" {
			return placeholder, nil
		}
		return "", errors.ValidationError("missing value").WithContext("field", title).Build()
	}
	answer, err := g.Prompter.Ask(title, placeholder)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryValidation, "no value given").
			WithContext("field", title).
			Build()
	}
	return answer, nil
}

// pipeline runs builds with metrics exported to the configured textfile.
type pipeline struct {
	cfg      *config.Config
	service  *build.Service
	recorder *metrics.PrometheusRecorder
	logger   *slog.Logger
}

func newPipeline(g *Global, cfg *config.Config) *pipeline {
	logger := slog.Default()
	if g != nil && g.Logger != nil {
		logger = g.Logger
	}
	p := &pipeline{
		cfg:     cfg,
		service: build.NewService().WithLogger(logger),
		logger:  logger,
	}
	if cfg.Metrics.Textfile != "" {
		p.recorder = metrics.NewPrometheusRecorder(nil)
		p.service.WithRecorder(p.recorder)
	}
	return p
}

func (p *pipeline) run(ctx context.Context, input, output string) (*build.Result, error) {
	result, err := p.service.Run(ctx, build.Request{Config: p.cfg, InputPath: input, OutputDir: output})
	if p.recorder != nil {
		if werr := p.recorder.WriteTextfile(p.cfg.Metrics.Textfile); werr != nil {
			p.logger.Warn("Failed to write metrics textfile",
				logfields.Path(p.cfg.Metrics.Textfile),
				logfields.Error(werr))
		}
	}
	return result, err
}
