// Package pipeline runs radar analyses for the CLI and the HTTP server.
//
// This package wraps [radar.Analyzer] with the concerns every entry point
// shares: cloning remote repositories, caching results by repository state,
// rendering output formats and persisting radars. By centralizing this logic,
// the CLI and the server behave the same way.
//
// # Stages
//
//  1. Source: a local working tree, or a sparse clone of a remote URL
//  2. Analyze: [radar.Analyzer.Analyze], skipped on a cache hit
//  3. Render: one artifact per requested format
//  4. Save: optional, merged with the curated stages of the stored radar
//
// # Usage
//
//	runner := pipeline.NewRunner(analyzer, cache, store, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    RepoPath: ".",
//	    Formats:  []string{"table"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(string(result.Artifacts["table"]))
package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/techradar/pkg/errors"
	"github.com/matzehuels/techradar/pkg/render"
)

// DefaultFormat is rendered when no format is requested.
const DefaultFormat = render.FormatTable

// Options configures one pipeline run. Exactly one of RepoPath and RepoURL
// must be set.
type Options struct {
	RepoPath string // Local working tree
	RepoURL  string // Remote repository, cloned for the run

	SkipHistory bool     // Only analyze the working tree
	Refresh     bool     // Ignore cached results
	Formats     []string // Output formats (default: table)
	Save        bool     // Persist the radar (requires a store)
	AllowLocal  bool     // Accept local paths and file:// URLs as RepoURL

	// Progress receives human-readable progress messages (optional).
	Progress func(string, ...any)
}

// ValidateAndSetDefaults checks the options and fills defaults.
func (o *Options) ValidateAndSetDefaults() error {
	switch {
	case o.RepoPath == "" && o.RepoURL == "":
		return errors.New(errors.ErrCodeInvalidInput, "either a repository path or URL is required")
	case o.RepoPath != "" && o.RepoURL != "":
		return errors.New(errors.ErrCodeInvalidInput, "repository path and URL are mutually exclusive")
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if err := render.ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Progress == nil {
		o.Progress = func(string, ...any) {}
	}
	return nil
}

// Stats reports timings of a run.
type Stats struct {
	CloneTime   time.Duration
	AnalyzeTime time.Duration
	RenderTime  time.Duration
}

// String formats the stats for debug logs.
func (s Stats) String() string {
	return fmt.Sprintf("clone=%s analyze=%s render=%s", s.CloneTime, s.AnalyzeTime, s.RenderTime)
}
