package build

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/glossarybuilder/internal/config"
	"git.home.luguber.info/inful/glossarybuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/glossarybuilder/internal/metrics"
	"git.home.luguber.info/inful/glossarybuilder/internal/workspace"
)

const sampleGlossary = "Java\nA language.\n\nclass\nA Java blueprint.\n"

func writeInput(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "glossary.txt")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func readDir(t *testing.T, dir string) map[string]string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	files := make(map[string]string, len(entries))
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		files[e.Name()] = string(data)
	}
	return files
}

func names(files map[string]string) []string {
	out := make([]string, 0, len(files))
	for name := range files {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func TestRun_SampleGlossary(t *testing.T) {
	out := filepath.Join(t.TempDir(), "site")
	res, err := NewService().Run(context.Background(), Request{
		Config:    config.Default(),
		InputPath: writeInput(t, sampleGlossary),
		OutputDir: out,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, res.Status)
	assert.True(t, res.Status.IsSuccess())
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 2, res.Terms)
	assert.Equal(t, 2, res.DistinctTerms)
	assert.Equal(t, 2, res.PagesWritten)
	assert.Equal(t, 1, res.LinksRendered)

	files := readDir(t, out)
	assert.Equal(t, []string{"Java.html", "class.html", "index.html"}, names(files))
	assert.Contains(t, files["class.html"], `<blockquote>A <a href="Java.html">Java</a> blueprint.</blockquote>`)
	assert.Contains(t, files["Java.html"], "<blockquote>A language.</blockquote>")

	index := files["index.html"]
	classAt := strings.Index(index, `<li><a href="class.html">class</a></li>`)
	javaAt := strings.Index(index, `<li><a href="Java.html">Java</a></li>`)
	require.GreaterOrEqual(t, classAt, 0)
	require.GreaterOrEqual(t, javaAt, 0)
	assert.Less(t, classAt, javaAt)
}

func TestRun_Deterministic(t *testing.T) {
	input := writeInput(t, sampleGlossary+"\nObject\nEvery class extends Object, even Java ones.\n")
	first := filepath.Join(t.TempDir(), "a")
	second := filepath.Join(t.TempDir(), "b")

	for _, dir := range []string{first, second} {
		_, err := NewService().Run(context.Background(), Request{Config: config.Default(), InputPath: input, OutputDir: dir})
		require.NoError(t, err)
	}
	assert.Equal(t, readDir(t, first), readDir(t, second))
}

func TestRun_EmptyInputWritesOnlyIndex(t *testing.T) {
	out := t.TempDir()
	res, err := NewService().Run(context.Background(), Request{
		Config:    config.Default(),
		InputPath: writeInput(t, ""),
		OutputDir: out,
	})
	require.NoError(t, err)
	assert.Zero(t, res.PagesWritten)

	files := readDir(t, out)
	assert.Equal(t, []string{"index.html"}, names(files))
	assert.Contains(t, files["index.html"], "<ul>\n</ul>")
}

func TestRun_EveryTermHasPage(t *testing.T) {
	input := writeInput(t, "b\none\n\na\ntwo\n\nb\nthree\n\nC\nfour\n")
	out := t.TempDir()
	res, err := NewService().Run(context.Background(), Request{Config: config.Default(), InputPath: input, OutputDir: out})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Terms)
	assert.Equal(t, 3, res.DistinctTerms)

	files := readDir(t, out)
	for _, term := range []string{"a", "b", "C"} {
		assert.Contains(t, files, term+".html")
	}
	assert.Contains(t, files["b.html"], "<blockquote>one</blockquote>")
	assert.Equal(t, 2, strings.Count(files["index.html"], `<li><a href="b.html">b</a></li>`))
}

func TestRun_MissingInput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "site")
	res, err := NewService().Run(context.Background(), Request{
		Config:    config.Default(),
		InputPath: filepath.Join(t.TempDir(), "missing.txt"),
		OutputDir: out,
	})
	require.Error(t, err)
	assert.Equal(t, StatusFailed, res.Status)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
	assert.NoDirExists(t, out)
}

func TestRun_InvalidRequest(t *testing.T) {
	svc := NewService()
	_, err := svc.Run(context.Background(), Request{InputPath: "in", OutputDir: "out"})
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))

	_, err = svc.Run(context.Background(), Request{Config: config.Default(), OutputDir: "out"})
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))

	_, err = svc.Run(context.Background(), Request{Config: config.Default(), InputPath: "in"})
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestRun_StagedFailureLeavesOutputUntouched(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(out, "old.html"), []byte("old"), 0o600))

	// "z/y" cannot be created as a flat page file, so rendering fails midway.
	input := writeInput(t, "Alpha\nfirst\n\nz/y\nbroken\n")
	cfg := config.Default()
	cfg.Output.Clean = true

	res, err := NewService().Run(context.Background(), Request{Config: cfg, InputPath: input, OutputDir: out})
	require.Error(t, err)
	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, map[string]string{"old.html": "old"}, readDir(t, out))
}

func TestRun_WorkspaceIsCleanedUp(t *testing.T) {
	base := t.TempDir()
	svc := NewService().WithWorkspaceFactory(func() *workspace.Manager {
		return workspace.NewManager(base)
	})
	_, err := svc.Run(context.Background(), Request{
		Config:    config.Default(),
		InputPath: writeInput(t, sampleGlossary),
		OutputDir: t.TempDir(),
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_CleanRemovesStalePages(t *testing.T) {
	for _, staged := range []bool{true, false} {
		t.Run(map[bool]string{true: "staged", false: "direct"}[staged], func(t *testing.T) {
			out := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(out, "Gone.html"), []byte("stale"), 0o600))
			require.NoError(t, os.WriteFile(filepath.Join(out, "notes.txt"), []byte("keep"), 0o600))

			cfg := config.Default()
			cfg.Output.Clean = true
			cfg.Output.Staged = &staged

			_, err := NewService().Run(context.Background(), Request{
				Config:    cfg,
				InputPath: writeInput(t, sampleGlossary),
				OutputDir: out,
			})
			require.NoError(t, err)
			assert.Equal(t, []string{"Java.html", "class.html", "index.html", "notes.txt"}, names(readDir(t, out)))
		})
	}
}

func TestRun_WithoutCleanKeepsStalePages(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(out, "Gone.html"), []byte("stale"), 0o600))

	_, err := NewService().Run(context.Background(), Request{
		Config:    config.Default(),
		InputPath: writeInput(t, sampleGlossary),
		OutputDir: out,
	})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "Gone.html"))
}

func TestRun_VerifyLinks(t *testing.T) {
	cfg := config.Default()
	cfg.Build.VerifyLinks = true

	res, err := NewService().Run(context.Background(), Request{
		Config:    cfg,
		InputPath: writeInput(t, sampleGlossary),
		OutputDir: t.TempDir(),
	})
	require.NoError(t, err)
	require.NotNil(t, res.Links)
	assert.True(t, res.Links.OK())
	assert.Equal(t, 3, res.Links.Pages)
	assert.Positive(t, res.Links.Checked)
}

func TestRun_VerifyLinksWithSpecialCharacterTerms(t *testing.T) {
	cfg := config.Default()
	cfg.Build.VerifyLinks = true
	out := t.TempDir()

	res, err := NewService().Run(context.Background(), Request{
		Config:    cfg,
		InputPath: writeInput(t, "C#\nA language like Java.\n\nJava\nNot C# at all.\n\nWhat?\nAsk about C# here.\n"),
		OutputDir: out,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Links)
	assert.Empty(t, res.Links.Broken)
	assert.Equal(t, []string{"C#.html", "Java.html", "What?.html", "index.html"}, names(readDir(t, out)))

	files := readDir(t, out)
	assert.Contains(t, files["Java.html"], `Not <a href="C#.html">C#</a> at all.`)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := filepath.Join(t.TempDir(), "site")
	res, err := NewService().Run(ctx, Request{
		Config:    config.Default(),
		InputPath: writeInput(t, sampleGlossary),
		OutputDir: out,
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StatusCancelled, res.Status)
	assert.NoDirExists(t, out)
}

type fakeRecorder struct {
	stages   map[string]metrics.ResultLabel
	outcome  metrics.BuildOutcomeLabel
	total    int
	distinct int
	pages    int
	links    int
}

func (f *fakeRecorder) ObserveStageDuration(string, time.Duration) {}
func (f *fakeRecorder) ObserveBuildDuration(time.Duration)         {}
func (f *fakeRecorder) IncStageResult(stage string, r metrics.ResultLabel) {
	if f.stages == nil {
		f.stages = map[string]metrics.ResultLabel{}
	}
	f.stages[stage] = r
}
func (f *fakeRecorder) IncBuildOutcome(o metrics.BuildOutcomeLabel) { f.outcome = o }
func (f *fakeRecorder) SetTerms(total, distinct int)                { f.total, f.distinct = total, distinct }
func (f *fakeRecorder) AddPagesWritten(n int)                       { f.pages += n }
func (f *fakeRecorder) AddLinksRendered(n int)                      { f.links += n }

func TestRun_RecordsMetrics(t *testing.T) {
	rec := &fakeRecorder{}
	_, err := NewService().WithRecorder(rec).Run(context.Background(), Request{
		Config:    config.Default(),
		InputPath: writeInput(t, sampleGlossary),
		OutputDir: t.TempDir(),
	})
	require.NoError(t, err)

	assert.Equal(t, metrics.BuildOutcomeSuccess, rec.outcome)
	assert.Equal(t, 2, rec.total)
	assert.Equal(t, 2, rec.distinct)
	assert.Equal(t, 2, rec.pages)
	assert.Equal(t, 1, rec.links)
	for _, stage := range []string{StageExtract, StageSort, StagePages, StageIndex, StagePublish} {
		assert.Equal(t, metrics.ResultSuccess, rec.stages[stage], stage)
	}
	assert.NotContains(t, rec.stages, StageVerify)
}

func TestRun_RecordsFailedStage(t *testing.T) {
	rec := &fakeRecorder{}
	_, err := NewService().WithRecorder(rec).Run(context.Background(), Request{
		Config:    config.Default(),
		InputPath: filepath.Join(t.TempDir(), "missing.txt"),
		OutputDir: t.TempDir(),
	})
	require.Error(t, err)
	assert.Equal(t, metrics.BuildOutcomeFailed, rec.outcome)
	assert.Equal(t, metrics.ResultFailed, rec.stages[StageExtract])
}
