package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/techradar/pkg/cache"
	"github.com/matzehuels/techradar/pkg/clone"
	"github.com/matzehuels/techradar/pkg/git"
	"github.com/matzehuels/techradar/pkg/observability"
	"github.com/matzehuels/techradar/pkg/radar"
	"github.com/matzehuels/techradar/pkg/render"
	"github.com/matzehuels/techradar/pkg/store"
)

// Result is the outcome of a pipeline run.
type Result struct {
	Analysis  *radar.Result     // Analysis result; Matrix.Branch is the checked-out branch
	Matrix    radar.Matrix      // Matrix as rendered and saved (merged with the stored radar)
	Artifacts map[string][]byte // Rendered output by format
	CacheHit  bool
	CacheKey  string // Empty when caching was not possible
	Stats     Stats
}

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for its collaborators. Multiple goroutines
// can safely use the same Runner with different options.
type Runner struct {
	Analyzer *radar.Analyzer
	Cache    cache.Cache
	Store    store.Store // Optional; required for Options.Save
	Logger   *log.Logger
	TTL      time.Duration
}

// NewRunner creates a runner. If c is nil, a NullCache is used (caching
// disabled). st may be nil.
func NewRunner(a *radar.Analyzer, c cache.Cache, st store.Store, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Analyzer: a,
		Cache:    c,
		Store:    st,
		Logger:   logger,
		TTL:      cache.DefaultTTL,
	}
}

// Execute runs the complete source → analyze → render → save pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if opts.Save && r.Store == nil {
		return nil, fmt.Errorf("save requested but no store is configured")
	}

	result := &Result{}
	repoPath, branch := opts.RepoPath, ""
	if opts.RepoURL != "" {
		cloneStart := time.Now()
		cl, err := clone.Clone(ctx, opts.RepoURL, clone.Options{
			Patterns:   r.Analyzer.Registry().SparsePatterns(),
			Progress:   opts.Progress,
			AllowLocal: opts.AllowLocal,
		})
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := cl.Cleanup(); err != nil {
				r.Logger.Warn("failed to remove clone", "dir", cl.Dir, "error", err)
			}
		}()
		repoPath, branch = cl.Dir, cl.Branch
		result.Stats.CloneTime = time.Since(cloneStart)
		r.Logger.Debug("cloned repository", "url", opts.RepoURL, "branch", branch, "duration", result.Stats.CloneTime)
	}
	if branch == "" {
		branch = r.localBranch(ctx, repoPath)
	}

	analyzeStart := time.Now()
	res, hit, key, err := r.AnalyzeWithCacheInfo(ctx, repoPath, opts)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	if opts.RepoURL != "" {
		res.Repo = opts.RepoURL
	}
	if branch != "" {
		res.Matrix.Branch = branch
	}
	result.Analysis = res
	result.CacheHit = hit
	result.CacheKey = key
	result.Stats.AnalyzeTime = time.Since(analyzeStart)

	r.Logger.Info("analyzed repository",
		"manifests", len(res.Manifests),
		"adopt", len(res.Matrix.Adopt),
		"remove", len(res.Matrix.Remove),
		"cached", hit,
		"duration", result.Stats.AnalyzeTime)

	result.Matrix = res.Matrix
	if opts.Save {
		merged, err := r.save(ctx, opts, res)
		if err != nil {
			return nil, fmt.Errorf("save: %w", err)
		}
		result.Matrix = merged
	}

	renderStart := time.Now()
	result.Artifacts = make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := render.Render(ctx, result.Matrix, format)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		result.Artifacts[format] = data
	}
	result.Stats.RenderTime = time.Since(renderStart)
	r.Logger.Debug("rendered outputs", "formats", opts.Formats, "stats", result.Stats)

	return result, nil
}

// AnalyzeWithCacheInfo analyzes the working tree at repoPath, using the
// cache when the repository HEAD can be resolved. It reports whether the
// result came from the cache and the key used.
func (r *Runner) AnalyzeWithCacheInfo(ctx context.Context, repoPath string, opts Options) (*radar.Result, bool, string, error) {
	if opts.Progress == nil {
		opts.Progress = func(string, ...any) {}
	}
	opts.Progress("Scanning repository for dependency files...")
	files, err := radar.ListFiles(repoPath, nil)
	if err != nil {
		return nil, false, "", fmt.Errorf("list files: %w", err)
	}
	opts.Progress("Found %d total files", len(files))

	key := r.cacheKey(ctx, repoPath, files, opts)
	hooks := observability.Cache()

	if key != "" && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached radar.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				hooks.OnCacheHit(ctx, "analysis")
				opts.Progress("Using cached analysis")
				return &cached, true, key, nil
			}
			// Undecodable entry: fall through and overwrite it.
		} else if err != nil {
			r.Logger.Warn("cache read failed", "error", err)
		}
		hooks.OnCacheMiss(ctx, "analysis")
	}

	a := r.analyzer(opts)
	res, err := a.Analyze(ctx, repoPath, files)
	if err != nil {
		return nil, false, key, err
	}

	if key != "" {
		if data, err := json.Marshal(res); err == nil {
			if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
				r.Logger.Warn("cache write failed", "error", err)
			} else {
				hooks.OnCacheSet(ctx, "analysis", len(data))
			}
		}
	}
	return res, false, key, nil
}

// analyzer returns the runner's analyzer reconfigured for opts.
func (r *Runner) analyzer(opts Options) *radar.Analyzer {
	return radar.New(r.Analyzer.Config(), r.Analyzer.Registry(), radar.Options{
		SkipHistory: opts.SkipHistory,
		Progress:    opts.Progress,
		Logger:      r.Logger.Debugf,
	})
}

// cacheKey returns the analysis key, or "" when HEAD cannot be resolved.
// Manifest contents are hashed so uncommitted edits change the key.
func (r *Runner) cacheKey(ctx context.Context, repoPath string, files []string, opts Options) string {
	head, err := (&git.Repo{Dir: repoPath}).HeadCommit(ctx)
	if err != nil {
		r.Logger.Debug("caching disabled: no HEAD", "error", err)
		return ""
	}
	manifests := r.Analyzer.DiscoverManifests(files)
	entries := make([]string, 0, len(manifests))
	for _, m := range manifests {
		data, err := os.ReadFile(filepath.Join(repoPath, filepath.FromSlash(m.Path)))
		if err != nil {
			data = nil
		}
		entries = append(entries, m.Path+"@"+cache.Hash(data))
	}
	return cache.AnalysisKey(head, entries, r.Analyzer.Config().Fingerprint(), cache.AnalysisKeyOpts{
		SkipHistory: opts.SkipHistory,
	})
}

// save merges res into the stored radar and writes it back.
func (r *Runner) save(ctx context.Context, opts Options, res *radar.Result) (radar.Matrix, error) {
	repoURL := opts.RepoURL
	if repoURL == "" {
		abs, err := filepath.Abs(opts.RepoPath)
		if err != nil {
			return radar.Matrix{}, err
		}
		repoURL = "file://" + filepath.ToSlash(abs)
	}
	id := store.RepoDocID(repoURL)

	matrix := res.Matrix
	prev, err := r.Store.Load(ctx, id)
	if err != nil {
		r.Logger.Warn("could not load saved radar", "id", id, "error", err)
	} else if prev != nil {
		matrix = matrix.Merge(prev.Matrix)
	}

	rec := &store.Record{ID: id, RepoURL: repoURL, Matrix: matrix}
	if err := r.Store.Save(ctx, rec); err != nil {
		return radar.Matrix{}, err
	}
	r.Logger.Info("saved radar", "id", id)
	return matrix, nil
}

// Close releases resources held by the runner.
func (r *Runner) Close(ctx context.Context) error {
	var firstErr error
	if r.Cache != nil {
		firstErr = r.Cache.Close()
	}
	if r.Store != nil {
		if err := r.Store.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// localBranch returns the branch checked out at dir, or "" when dir is not a
// git working tree or HEAD is detached.
func (r *Runner) localBranch(ctx context.Context, dir string) string {
	branch, err := (&git.Repo{Dir: dir}).CurrentBranch(ctx)
	if err != nil {
		r.Logger.Debug("no branch for working tree", "dir", dir, "error", err)
		return ""
	}
	return branch
}
