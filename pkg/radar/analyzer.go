package radar

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/techradar/pkg/deps"
	"github.com/matzehuels/techradar/pkg/git"
	"github.com/matzehuels/techradar/pkg/history"
	"github.com/matzehuels/techradar/pkg/observability"
	"github.com/matzehuels/techradar/pkg/techmap"
)

// DefaultConcurrency is the default number of manifests analyzed at once.
const DefaultConcurrency = 4

// Options configures an Analyzer.
type Options struct {
	Concurrency        int                  // Manifests analyzed concurrently (default: 4)
	HistoryConcurrency int                  // Revision reads per manifest (default: history.DefaultConcurrency)
	SkipHistory        bool                 // Only analyze the working tree
	Progress           func(string, ...any) // Human-readable progress messages (optional)
	Logger             func(string, ...any) // Debug callback for absorbed failures (optional)

	// OpenRepo returns the version-control backend for a working tree
	// (default: git.Open). A failure disables history for the run.
	OpenRepo func(ctx context.Context, dir string) (git.Repository, error)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.HistoryConcurrency <= 0 {
		opts.HistoryConcurrency = history.DefaultConcurrency
	}
	if opts.Progress == nil {
		opts.Progress = func(string, ...any) {}
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	if opts.OpenRepo == nil {
		opts.OpenRepo = func(ctx context.Context, dir string) (git.Repository, error) {
			return git.Open(ctx, dir)
		}
	}
	return opts
}

// ManifestResult records what one manifest contributed to an analysis.
type ManifestResult struct {
	Path         string   `json:"path"`
	Ecosystem    string   `json:"ecosystem"`
	Type         string   `json:"type"`
	Dependencies []string `json:"dependencies"`
	Historical   []string `json:"historical,omitempty"` // Union over all snapshots
	Snapshots    int      `json:"snapshots"`
}

// Result is the outcome of one analysis run.
type Result struct {
	RunID     string           `json:"runId"`
	Repo      string           `json:"repo"`
	Matrix    Matrix           `json:"matrix"`
	Manifests []ManifestResult `json:"manifests"`
	Duration  time.Duration    `json:"duration"`
}

// Analyzer runs radar analyses against a fixed mapping configuration and
// manifest registry. It is safe for concurrent use.
type Analyzer struct {
	cfg  *techmap.Config
	reg  *deps.Registry
	opts Options
}

// New returns an Analyzer. cfg and reg are shared read-only.
func New(cfg *techmap.Config, reg *deps.Registry, opts Options) *Analyzer {
	return &Analyzer{cfg: cfg, reg: reg, opts: opts.WithDefaults()}
}

// Config returns the mapping configuration.
func (a *Analyzer) Config() *techmap.Config { return a.cfg }

// Registry returns the manifest registry.
func (a *Analyzer) Registry() *deps.Registry { return a.reg }

// DiscoverManifests returns the files of files that a parser handles.
func (a *Analyzer) DiscoverManifests(files []string) []deps.Manifest {
	return a.reg.Discover(files)
}

// ExtractCurrent parses content and tags the result with the manifest's
// ecosystem. Unparseable content yields an empty list.
func (a *Analyzer) ExtractCurrent(m deps.Manifest, content []byte) []deps.Dependency {
	return deps.Tag(m.Ecosystem, deps.Extract(m.Parser, m.Path, content, a.opts.Logger))
}

// WalkHistory returns the snapshots of filePath in the repository at
// repoPath, oldest first. Unknown files and repositories without version
// control yield no snapshots.
func (a *Analyzer) WalkHistory(ctx context.Context, repoPath, filePath string) []history.Snapshot {
	m, ok := a.reg.Route(filePath)
	if !ok {
		return []history.Snapshot{}
	}
	w := a.walker(ctx, repoPath)
	if w == nil {
		return []history.Snapshot{}
	}
	return w.Walk(ctx, m.Path, m.Parser)
}

// Resolve maps an identifier to its technology within its own ecosystem.
func (a *Analyzer) Resolve(d deps.Dependency) string {
	return a.cfg.Resolve(d.Ecosystem, d.Name)
}

// Categorize returns the category of a technology name.
func (a *Analyzer) Categorize(name string) string {
	return a.cfg.CategoryOf(name)
}

// AnalyzeDir lists the files under repoPath and analyzes them.
func (a *Analyzer) AnalyzeDir(ctx context.Context, repoPath string) (*Result, error) {
	a.opts.Progress("Scanning repository for dependency files...")
	files, err := ListFiles(repoPath, nil)
	if err != nil {
		return nil, err
	}
	a.opts.Progress("Found %d total files", len(files))
	return a.Analyze(ctx, repoPath, files)
}

// Analyze runs the full analysis over files, which are slash-separated
// paths relative to repoPath. The result is always populated; per-file and
// per-commit failures only reduce coverage. The error is non-nil only when
// ctx ended before the run completed, in which case the result is partial.
func (a *Analyzer) Analyze(ctx context.Context, repoPath string, files []string) (*Result, error) {
	start := time.Now()
	manifests := a.DiscoverManifests(files)

	hooks := observability.Analysis()
	hooks.OnAnalyzeStart(ctx, repoPath, len(manifests))

	a.opts.Progress("Analyzing %d dependency files...", len(manifests))

	var walker *history.Walker
	if !a.opts.SkipHistory && len(manifests) > 0 {
		walker = a.walker(ctx, repoPath)
	}

	type slot struct {
		current    []deps.Dependency
		historical []deps.Dependency
		result     ManifestResult
	}
	slots := make([]slot, len(manifests))
	var done atomic.Int64

	var g errgroup.Group
	g.SetLimit(a.opts.Concurrency)
	for i, m := range manifests {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			s := &slots[i]
			s.result = ManifestResult{Path: m.Path, Ecosystem: m.Ecosystem, Type: m.Parser.Type()}

			content, err := os.ReadFile(filepath.Join(repoPath, filepath.FromSlash(m.Path)))
			if err != nil {
				a.opts.Logger("read %s: %v", m.Path, err)
				s.current = []deps.Dependency{}
			} else {
				s.current = a.ExtractCurrent(m, content)
			}
			s.result.Dependencies = names(s.current)

			n := done.Add(1)
			if len(s.current) > 0 {
				a.opts.Progress("[%d/%d] %s: %d dependencies", n, len(manifests), m.Path, len(s.current))
			} else {
				a.opts.Progress("[%d/%d] %s: no dependencies", n, len(manifests), m.Path)
			}

			if walker == nil || ctx.Err() != nil {
				return nil
			}
			a.opts.Progress("Extracting history for %s...", m.Path)
			snaps := walker.Walk(ctx, m.Path, m.Parser)
			a.opts.Progress("Found %d historical snapshots for %s", len(snaps), m.Path)

			s.historical = deps.Tag(m.Ecosystem, history.Union(snaps))
			s.result.Historical = names(s.historical)
			s.result.Snapshots = len(snaps)
			return nil
		})
	}
	_ = g.Wait()

	var current, historical []deps.Dependency
	results := make([]ManifestResult, 0, len(slots))
	for i := range slots {
		current = append(current, slots[i].current...)
		historical = append(historical, slots[i].historical...)
		if slots[i].result.Path != "" {
			results = append(results, slots[i].result)
		}
	}

	adopt := Aggregate(current, a.Resolve, a.Categorize)
	remove := Aggregate(Removed(current, historical), a.Resolve, a.Categorize)
	adopt, remove = Reconcile(adopt, remove)

	a.opts.Progress("Identified %d technologies in use", len(adopt))

	res := &Result{
		RunID:     uuid.NewString(),
		Repo:      repoPath,
		Matrix:    NewMatrix(adopt, remove),
		Manifests: results,
		Duration:  time.Since(start),
	}

	err := ctx.Err()
	hooks.OnAnalyzeComplete(ctx, repoPath, observability.AnalysisStats{
		Manifests: len(manifests),
		Adopt:     len(res.Matrix.Adopt),
		Remove:    len(res.Matrix.Remove),
	}, res.Duration, err)
	if err != nil {
		return res, err
	}
	a.opts.Progress("Tech radar analysis complete")
	return res, nil
}

func (a *Analyzer) walker(ctx context.Context, repoPath string) *history.Walker {
	repo, err := a.opts.OpenRepo(ctx, repoPath)
	if err != nil {
		a.opts.Logger("history disabled: %v", err)
		return nil
	}
	return history.NewWalker(repo, history.Options{
		Concurrency: a.opts.HistoryConcurrency,
		Logger:      a.opts.Logger,
	})
}

func names(ds []deps.Dependency) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Name
	}
	return out
}
