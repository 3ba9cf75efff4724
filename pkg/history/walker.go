package history

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/techradar/pkg/deps"
	"github.com/matzehuels/techradar/pkg/git"
	"github.com/matzehuels/techradar/pkg/observability"
)

// DefaultConcurrency is the default number of concurrent revision reads.
const DefaultConcurrency = 8

// Snapshot is the dependency list of a manifest at one commit.
type Snapshot struct {
	Commit       string   `json:"commit"`
	CommitDate   string   `json:"commitDate"` // YYYY-MM-DD
	Dependencies []string `json:"dependencies"`
}

// Options configures a Walker.
type Options struct {
	Concurrency int                                // Concurrent revision reads (default: 8)
	Logger      func(string, ...any)               // Debug callback for skipped commits (optional)
	Progress    func(path string, done, total int) // Called after each revision (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	if opts.Progress == nil {
		opts.Progress = func(string, int, int) {}
	}
	return opts
}

// Walker reads manifest history from a repository. The set of available
// commits is listed once per Walker and shared by all walks.
//
// A Walker is safe for concurrent use.
type Walker struct {
	repo git.Repository
	opts Options

	mu    sync.Mutex
	avail git.CommitSet
}

// NewWalker returns a Walker over repo.
func NewWalker(repo git.Repository, opts Options) *Walker {
	return &Walker{repo: repo, opts: opts.WithDefaults()}
}

// Available returns the commits reachable from local refs. A failed listing
// is retried on the next call.
func (w *Walker) Available(ctx context.Context) git.CommitSet {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.avail != nil {
		return w.avail
	}
	set, err := w.repo.ListAvailableCommits(ctx)
	if err != nil {
		w.opts.Logger("list available commits: %v", err)
		return git.CommitSet{}
	}
	w.avail = set
	return set
}

// Walk returns the snapshots of path, oldest first.
func (w *Walker) Walk(ctx context.Context, path string, parser deps.ManifestParser) []Snapshot {
	hooks := observability.History()
	hooks.OnWalkStart(ctx, path)
	start := time.Now()

	commits, err := w.repo.ListCommitsForFile(ctx, path)
	if err != nil {
		w.opts.Logger("history %s: %v", path, err)
		hooks.OnWalkComplete(ctx, path, observability.WalkStats{}, time.Since(start), err)
		return []Snapshot{}
	}

	avail := w.Available(ctx)
	var todo []git.Commit
	for _, c := range commits {
		if avail.Available(c.Hash) {
			todo = append(todo, c)
		}
	}
	stats := observability.WalkStats{Logged: len(commits), Available: len(todo)}
	if skipped := len(commits) - len(todo); skipped > 0 {
		w.opts.Logger("history %s: %d of %d commits unavailable locally", path, skipped, len(commits))
	}

	slots := make([]*Snapshot, len(todo))
	var done atomic.Int64

	var g errgroup.Group
	g.SetLimit(w.opts.Concurrency)
	for i, c := range todo {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			defer func() {
				w.opts.Progress(path, int(done.Add(1)), len(todo))
			}()
			if ctx.Err() != nil {
				return nil
			}
			content, err := w.repo.ReadFileAtRevision(ctx, path, c.Hash)
			if err != nil {
				w.opts.Logger("history %s@%.12s: %v", path, c.Hash, err)
				return nil
			}
			slots[i] = &Snapshot{
				Commit:       c.Hash,
				CommitDate:   c.Date,
				Dependencies: deps.Extract(parser, path, content, w.opts.Logger),
			}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]Snapshot, 0, len(slots))
	for _, s := range slots {
		if s != nil {
			out = append(out, *s)
		}
	}
	slices.Reverse(out)

	stats.Snapshots = len(out)
	hooks.OnWalkComplete(ctx, path, stats, time.Since(start), ctx.Err())
	return out
}

// Union returns every identifier named by any snapshot, deduplicated, in
// order of first appearance.
func Union(snapshots []Snapshot) []string {
	var all []string
	for _, s := range snapshots {
		all = append(all, s.Dependencies...)
	}
	return deps.Unique(all)
}
