// Package clone fetches a remote repository for analysis.
//
// [Clone] creates a sparse checkout restricted to manifest files while
// fetching the complete commit history, so the history walker can read every
// revision of every manifest without downloading the rest of the tree.
package clone

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/matzehuels/techradar/pkg/errors"
	"github.com/matzehuels/techradar/pkg/git"
)

// DefaultFetchTimeout bounds the history fetch.
const DefaultFetchTimeout = 3 * time.Minute

// DefaultBranch is checked out when the remote does not report a HEAD branch.
const DefaultBranch = "main"

// Options configures Clone.
type Options struct {
	Patterns     []string             // Sparse-checkout patterns (required)
	Progress     func(string, ...any) // Human-readable progress messages (optional)
	FetchTimeout time.Duration        // Timeout for fetching history (default: 3m)
	TempDir      string               // Parent of the clone directory (default: os.TempDir())
	AllowLocal   bool                 // Accept local paths and file:// URLs
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Progress == nil {
		opts.Progress = func(string, ...any) {}
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	return opts
}

// Result is a checked-out clone.
type Result struct {
	Dir    string // Working tree root
	Branch string // Checked-out branch
}

// Cleanup removes the clone.
func (r *Result) Cleanup() error {
	if r == nil || r.Dir == "" {
		return nil
	}
	return os.RemoveAll(r.Dir)
}

var headBranchRE = regexp.MustCompile(`HEAD branch: (.+)`)

// Clone creates a sparse, full-history clone of url. On failure the partial
// clone is removed and the error has code CLONE_FAILED, TIMEOUT or
// INVALID_INPUT.
func Clone(ctx context.Context, url string, opts Options) (*Result, error) {
	opts = opts.WithDefaults()
	if err := validate(url, opts.AllowLocal); err != nil {
		return nil, err
	}
	if len(opts.Patterns) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no sparse-checkout patterns")
	}
	if err := git.Available(); err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp(opts.TempDir, "techradar-")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create clone directory")
	}
	res := &Result{Dir: dir}

	if err := run(ctx, res, url, opts); err != nil {
		_ = res.Cleanup()
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeCloneFailed, err, "clone %s", url)
	}
	return res, nil
}

func run(ctx context.Context, res *Result, url string, opts Options) error {
	dir := res.Dir
	gitIn := func(ctx context.Context, args ...string) ([]byte, error) {
		return git.Run(ctx, dir, args...)
	}

	opts.Progress("Initializing sparse checkout...")
	if _, err := gitIn(ctx, "init", "-q"); err != nil {
		return err
	}
	if _, err := gitIn(ctx, "config", "core.sparseCheckout", "true"); err != nil {
		return err
	}

	sparseFile := filepath.Join(dir, ".git", "info", "sparse-checkout")
	if err := os.MkdirAll(filepath.Dir(sparseFile), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(sparseFile, []byte(strings.Join(opts.Patterns, "\n")+"\n"), 0o644); err != nil {
		return err
	}
	opts.Progress("Sparse checkout patterns (%d):", len(opts.Patterns))
	for _, p := range head(opts.Patterns, 10) {
		opts.Progress("  - %s", p)
	}
	if n := len(opts.Patterns) - 10; n > 0 {
		opts.Progress("  ... and %d more", n)
	}

	opts.Progress("Fetching full history for dependency files...")
	if _, err := gitIn(ctx, "remote", "add", "origin", url); err != nil {
		return err
	}

	opts.Progress("Downloading dependency file history...")
	start := time.Now()
	fetchCtx, cancel := context.WithTimeout(ctx, opts.FetchTimeout)
	defer cancel()
	if _, err := gitIn(fetchCtx, "fetch", "-q", "origin"); err != nil {
		return err
	}
	// A complete repository refuses --unshallow.
	_, _ = gitIn(fetchCtx, "fetch", "-q", "--unshallow")
	opts.Progress("Download complete in %.1fs", time.Since(start).Seconds())

	opts.Progress("Getting repository information...")
	res.Branch = DefaultBranch
	if out, err := gitIn(ctx, "remote", "show", "origin"); err == nil {
		if m := headBranchRE.FindSubmatch(out); m != nil {
			if b := strings.TrimSpace(string(m[1])); b != "" && b != "(unknown)" {
				res.Branch = b
			}
		}
	}

	opts.Progress("Checking out %s branch...", res.Branch)
	if strings.HasPrefix(res.Branch, "-") {
		return fmt.Errorf("invalid branch name %q", res.Branch)
	}
	if _, err := gitIn(ctx, "checkout", "-q", res.Branch); err != nil {
		return err
	}

	opts.Progress("Clone complete (branch: %s)", res.Branch)
	return nil
}

func validate(url string, allowLocal bool) error {
	if allowLocal && isLocal(url) {
		if strings.HasPrefix(url, "-") {
			return errors.New(errors.ErrCodeInvalidInput, "invalid repository path: %s", url)
		}
		return nil
	}
	return errors.ValidateRepoURL(url)
}

func isLocal(url string) bool {
	return strings.HasPrefix(url, "file://") || filepath.IsAbs(url)
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
