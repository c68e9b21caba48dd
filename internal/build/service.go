// Package build runs the glossary pipeline: extract, sort, render pages,
// render the index, publish and optionally verify links.
// All execution paths (build, watch, tests) route through Service.
package build

import (
	"time"

	"git.home.luguber.info/inful/glossarybuilder/internal/config"
	"git.home.luguber.info/inful/glossarybuilder/internal/linkverify"
)

// Stage names used for logging and metrics.
const (
	StageExtract = "extract"
	StageSort    = "sort"
	StagePages   = "pages"
	StageIndex   = "index"
	StagePublish = "publish"
	StageVerify  = "verify"
)

// Request contains all inputs required to execute a glossary build.
type Request struct {
	// Config is the loaded configuration for this build.
	Config *config.Config

	// InputPath is the glossary source file.
	InputPath string

	// OutputDir is the directory receiving the pages and the index.
	OutputDir string
}

// Result contains the outcome of a build execution.
type Result struct {
	Status    Status
	RunID     string
	InputPath string
	OutputDir string

	// Terms counts sequence entries including duplicates; DistinctTerms counts pages.
	Terms         int
	DistinctTerms int
	PagesWritten  int
	LinksRendered int

	// Links holds the verification result when link verification ran.
	Links *linkverify.Result

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// Status represents the outcome of a build execution.
type Status string

const (
	StatusSuccess   Status = "success"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// IsSuccess returns true if the build completed successfully.
func (s Status) IsSuccess() bool {
	return s == StatusSuccess
}
