package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/matzehuels/techradar/pkg/errors"
)

// DefaultTimeout bounds a single git invocation.
const DefaultTimeout = 30 * time.Second

// Repository is the set of version-control reads history analysis performs.
// Implementations must be safe for concurrent use.
type Repository interface {
	// ListAvailableCommits returns the hashes of all commits reachable from
	// any local ref or HEAD.
	ListAvailableCommits(ctx context.Context) (CommitSet, error)

	// ListCommitsForFile returns the commits that touched path, following
	// renames, newest first.
	ListCommitsForFile(ctx context.Context, path string) ([]Commit, error)

	// ReadFileAtRevision returns the content of path as of commit.
	ReadFileAtRevision(ctx context.Context, path, commit string) ([]byte, error)
}

// Commit is one entry of a file's log.
type Commit struct {
	Hash string // Full commit hash
	Date string // Author date as YYYY-MM-DD
}

// CommitSet is a set of commit hashes.
type CommitSet map[string]struct{}

// NewCommitSet returns a set holding hashes.
func NewCommitSet(hashes ...string) CommitSet {
	s := make(CommitSet, len(hashes))
	for _, h := range hashes {
		s[h] = struct{}{}
	}
	return s
}

// Available reports whether the commit's objects are present locally.
func (s CommitSet) Available(hash string) bool {
	_, ok := s[hash]
	return ok
}

// Repo runs git in a working directory.
type Repo struct {
	Dir     string        // Working tree root
	Timeout time.Duration // Per-command timeout (default: 30s)
}

// Open returns a Repo for dir after checking that git is installed and dir
// is inside a working tree.
func Open(ctx context.Context, dir string) (*Repo, error) {
	if err := Available(); err != nil {
		return nil, err
	}
	r := &Repo{Dir: dir}
	out, err := r.run(ctx, "rev-parse", "--is-inside-work-tree")
	if err != nil || strings.TrimSpace(string(out)) != "true" {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "not a git working tree: %s", dir)
	}
	return r, nil
}

// Available reports an error if the git binary is not on PATH.
func Available() error {
	if _, err := exec.LookPath("git"); err != nil {
		return errors.Wrap(errors.ErrCodeGitUnavailable, err, "git executable not found")
	}
	return nil
}

// ListAvailableCommits runs "git rev-list --all". A repository without any
// commit, or with refs git cannot walk, yields an empty set.
func (r *Repo) ListAvailableCommits(ctx context.Context) (CommitSet, error) {
	out, err := r.run(ctx, "rev-list", "--all")
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return CommitSet{}, nil
	}
	set := CommitSet{}
	for _, line := range strings.Split(string(out), "\n") {
		if h := strings.TrimSpace(line); h != "" {
			set[h] = struct{}{}
		}
	}
	return set, nil
}

// ListCommitsForFile runs "git log --follow" for path.
func (r *Repo) ListCommitsForFile(ctx context.Context, path string) ([]Commit, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	out, err := r.run(ctx, "log", "--follow", "--format=%H|%ai", "--", path)
	if err != nil {
		return nil, err
	}
	return parseLog(out), nil
}

// ReadFileAtRevision runs "git show <commit>:./<path>". The path is relative
// to Dir, which need not be the repository root.
func (r *Repo) ReadFileAtRevision(ctx context.Context, path, commit string) ([]byte, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	if commit == "" || strings.HasPrefix(commit, "-") {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid commit %q", commit)
	}
	return r.run(ctx, "show", commit+":./"+path)
}

// HeadCommit returns the hash HEAD points to.
func (r *Repo) HeadCommit(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// CurrentBranch returns the checked-out branch name, or "" when HEAD is
// detached.
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	branch := strings.TrimSpace(string(out))
	if branch == "HEAD" {
		return "", nil
	}
	return branch, nil
}

func (r *Repo) run(ctx context.Context, args ...string) ([]byte, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return Run(ctx, r.Dir, args...)
}

// Run executes git with args in dir and returns its standard output. The
// error includes git's standard error.
func Run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_TERMINAL_PROMPT=0",
		"GIT_NO_LAZY_FETCH=1",
		"LC_ALL=C",
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.Wrap(errors.ErrCodeTimeout, err, "git %s", args[0])
		}
		return nil, fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}

// parseLog parses "%H|%ai" lines. The date keeps only the YYYY-MM-DD part.
func parseLog(out []byte) []Commit {
	var commits []Commit
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		hash, date, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "|")
		if !ok || hash == "" {
			continue
		}
		if day, _, found := strings.Cut(date, " "); found {
			date = day
		}
		commits = append(commits, Commit{Hash: hash, Date: date})
	}
	return commits
}
