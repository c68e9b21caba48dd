package build

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/glossarybuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/glossarybuilder/internal/glossary"
	"git.home.luguber.info/inful/glossarybuilder/internal/htmlgen"
	"git.home.luguber.info/inful/glossarybuilder/internal/lineio"
	"git.home.luguber.info/inful/glossarybuilder/internal/linkverify"
	"git.home.luguber.info/inful/glossarybuilder/internal/logfields"
	"git.home.luguber.info/inful/glossarybuilder/internal/metrics"
	"git.home.luguber.info/inful/glossarybuilder/internal/workspace"
)

// Service executes glossary builds.
type Service struct {
	workspaceFactory func() *workspace.Manager
	recorder         metrics.Recorder
	logger           *slog.Logger
}

// NewService creates a Service with default dependencies.
func NewService() *Service {
	return &Service{
		workspaceFactory: func() *workspace.Manager {
			return workspace.NewManager("")
		},
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
}

// WithWorkspaceFactory allows injecting a custom workspace factory (for testing).
func (s *Service) WithWorkspaceFactory(factory func() *workspace.Manager) *Service {
	s.workspaceFactory = factory
	return s
}

// WithRecorder sets the metrics recorder.
func (s *Service) WithRecorder(r metrics.Recorder) *Service {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	s.recorder = r
	return s
}

// WithLogger sets the logger.
func (s *Service) WithLogger(l *slog.Logger) *Service {
	if l != nil {
		s.logger = l
	}
	return s
}

// Run executes the complete pipeline. Either every page and the index are
// written or an error is returned; with staged output the output directory
// is left untouched on failure.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	result := &Result{
		RunID:     uuid.NewString(),
		InputPath: req.InputPath,
		OutputDir: req.OutputDir,
		StartTime: start,
	}
	log := s.logger.With(logfields.RunID(result.RunID))

	err := s.run(ctx, req, result, log)

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(start)
	s.recorder.ObserveBuildDuration(result.Duration)
	switch {
	case err == nil:
		result.Status = StatusSuccess
		s.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
		log.Info("Glossary build completed",
			logfields.Output(req.OutputDir),
			logfields.Count(result.PagesWritten),
			logfields.Links(result.LinksRendered),
			logfields.Duration(result.Duration))
	case ctx.Err() != nil:
		result.Status = StatusCancelled
		s.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
	default:
		result.Status = StatusFailed
		s.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
	}
	return result, err
}

func (s *Service) run(ctx context.Context, req Request, result *Result, log *slog.Logger) error {
	if req.Config == nil {
		return errors.ConfigError("config required").Build()
	}
	if req.InputPath == "" {
		return errors.ValidationError("glossary input path required").Build()
	}
	if req.OutputDir == "" {
		return errors.ValidationError("output directory required").Build()
	}
	log.Info("Starting glossary build", logfields.Input(req.InputPath), logfields.Output(req.OutputDir))

	var g *glossary.Glossary
	if err := s.stage(ctx, log, StageExtract, func() error {
		var err error
		g, err = extract(req.InputPath)
		return err
	}); err != nil {
		return err
	}
	result.Terms = g.Len()
	result.DistinctTerms = g.Distinct()
	s.recorder.SetTerms(g.Len(), g.Distinct())
	log.Debug("Extracted glossary", logfields.Count(g.Len()), slog.Int("distinct", g.Distinct()))

	if err := s.stage(ctx, log, StageSort, func() error {
		g.Sort()
		return nil
	}); err != nil {
		return err
	}

	renderDir := req.OutputDir
	if req.Config.Output.IsStaged() {
		ws := s.workspaceFactory()
		if err := ws.Create(); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to create workspace").Fatal().Build()
		}
		defer func() {
			if err := ws.Cleanup(); err != nil {
				log.Warn("Failed to cleanup workspace", logfields.Error(err))
			}
		}()
		renderDir = ws.GetPath()
	} else if err := os.MkdirAll(renderDir, 0o750); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
			Fatal().
			WithContext("path", renderDir).
			Build()
	}
	out := lineio.DirCreator{Dir: renderDir}

	if err := s.stage(ctx, log, StagePages, func() error {
		stats, err := htmlgen.WritePages(out, g)
		result.PagesWritten = stats.Pages
		result.LinksRendered = stats.Links
		s.recorder.AddPagesWritten(stats.Pages)
		s.recorder.AddLinksRendered(stats.Links)
		return err
	}); err != nil {
		return err
	}

	if err := s.stage(ctx, log, StageIndex, func() error {
		return htmlgen.WriteIndex(out, req.Config.Index.Title, g.Terms)
	}); err != nil {
		return err
	}

	if err := s.stage(ctx, log, StagePublish, func() error {
		return publish(renderDir, req.OutputDir, req.Config.Output.IsStaged(), req.Config.Output.Clean, g)
	}); err != nil {
		return err
	}

	if req.Config.Build.VerifyLinks {
		if err := s.stage(ctx, log, StageVerify, func() error {
			links, err := linkverify.VerifySite(req.OutputDir)
			if err != nil {
				return err
			}
			result.Links = links
			return links.Err()
		}); err != nil {
			return err
		}
	}
	return nil
}

// stage runs fn as the named stage, recording duration and outcome.
func (s *Service) stage(ctx context.Context, log *slog.Logger, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		s.recorder.IncStageResult(name, metrics.ResultFailed)
		return err
	}
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	s.recorder.ObserveStageDuration(name, elapsed)
	if err != nil {
		s.recorder.IncStageResult(name, metrics.ResultFailed)
		log.Error("Build stage failed", logfields.Stage(name), logfields.Error(err))
		return err
	}
	s.recorder.IncStageResult(name, metrics.ResultSuccess)
	log.Debug("Build stage completed", logfields.Stage(name), logfields.Duration(elapsed))
	return nil
}

func extract(inputPath string) (*glossary.Glossary, error) {
	r, err := lineio.OpenFile(inputPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to open glossary input").
			Fatal().
			WithContext("path", inputPath).
			Build()
	}
	defer func() {
		_ = r.Close()
	}()

	g, err := glossary.Extract(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInput, "failed to read glossary input").
			Fatal().
			WithContext("path", inputPath).
			Build()
	}
	return g, nil
}

// publish moves a staged build into outputDir, or removes stale pages from an
// unstaged one when clean is set.
func publish(renderDir, outputDir string, staged, clean bool, g *glossary.Glossary) error {
	if staged {
		if _, err := workspace.Publish(renderDir, outputDir, clean); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to publish glossary").
				Fatal().
				WithContext("path", outputDir).
				Build()
		}
		return nil
	}
	if !clean {
		return nil
	}
	keep := map[string]bool{htmlgen.IndexPage: true}
	for _, term := range g.Terms {
		keep[htmlgen.PageName(term)] = true
	}
	if _, err := workspace.RemoveStaleHTML(outputDir, keep); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to clean output directory").
			Fatal().
			WithContext("path", outputDir).
			Build()
	}
	return nil
}
