package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// initTestRepo creates a temporary git repo with identity configured.
func initTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	runGit(t, dir, "init", "-q")
	runGit(t, dir, "config", "user.email", "test@test.com")
	runGit(t, dir, "config", "user.name", "Test")
	runGit(t, dir, "config", "commit.gpgsign", "false")
	return dir
}

// runGit runs a git command in the given directory and returns trimmed stdout.
func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
	return strings.TrimSpace(string(out))
}

func commitFile(t *testing.T, dir, path, content, date string) string {
	t.Helper()
	full := filepath.Join(dir, path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	runGit(t, dir, "add", path)
	cmd := exec.Command("git", "commit", "-q", "-m", "update "+path)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_AUTHOR_DATE="+date, "GIT_COMMITTER_DATE="+date)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git commit: %v\n%s", err, out)
	}
	return runGit(t, dir, "rev-parse", "HEAD")
}

var hexHashRe = regexp.MustCompile(`^[0-9a-f]{40,64}$`)

func TestRepoHistory(t *testing.T) {
	dir := initTestRepo(t)
	ctx := context.Background()

	first := commitFile(t, dir, "go.mod", "module a\n", "2023-01-15T10:00:00Z")
	commitFile(t, dir, "README.md", "hi\n", "2023-02-01T10:00:00Z")
	second := commitFile(t, dir, "go.mod", "module a\n\nrequire x v1.0.0\n", "2023-03-20T10:00:00Z")

	repo, err := Open(ctx, dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	commits, err := repo.ListCommitsForFile(ctx, "go.mod")
	if err != nil {
		t.Fatalf("ListCommitsForFile: %v", err)
	}
	if len(commits) != 2 {
		t.Fatalf("got %d commits, want 2", len(commits))
	}
	if commits[0].Hash != second || commits[1].Hash != first {
		t.Errorf("commits not newest first: %+v", commits)
	}
	if commits[0].Date != "2023-03-20" || commits[1].Date != "2023-01-15" {
		t.Errorf("dates = %q, %q", commits[0].Date, commits[1].Date)
	}

	avail, err := repo.ListAvailableCommits(ctx)
	if err != nil {
		t.Fatalf("ListAvailableCommits: %v", err)
	}
	if len(avail) != 3 || !avail.Available(first) || avail.Available("deadbeef") {
		t.Errorf("available = %v", avail)
	}

	old, err := repo.ReadFileAtRevision(ctx, "go.mod", first)
	if err != nil {
		t.Fatalf("ReadFileAtRevision: %v", err)
	}
	if string(old) != "module a\n" {
		t.Errorf("content = %q", old)
	}

	if _, err := repo.ReadFileAtRevision(ctx, "missing.txt", first); err == nil {
		t.Error("expected error reading a file absent at the revision")
	}

	head, err := repo.HeadCommit(ctx)
	if err != nil || head != second || !hexHashRe.MatchString(head) {
		t.Errorf("HeadCommit = %q, %v", head, err)
	}
}

func TestRepoFollowsRenames(t *testing.T) {
	dir := initTestRepo(t)
	ctx := context.Background()

	commitFile(t, dir, "old/package.json", `{"dependencies": {"react": "18"}}`+"\n", "2023-01-01T00:00:00Z")
	runGit(t, dir, "mv", "old", "web")
	runGit(t, dir, "commit", "-q", "-m", "move")

	repo := &Repo{Dir: dir}
	commits, err := repo.ListCommitsForFile(ctx, "web/package.json")
	if err != nil {
		t.Fatal(err)
	}
	if len(commits) != 2 {
		t.Errorf("got %d commits across rename, want 2", len(commits))
	}
}

func TestRepoSubdirectory(t *testing.T) {
	dir := initTestRepo(t)
	ctx := context.Background()

	first := commitFile(t, dir, "svc/go.mod", "module svc\n\nrequire x v1.0.0\n", "2023-01-01T00:00:00Z")
	commitFile(t, dir, "svc/go.mod", "module svc\n", "2023-02-01T00:00:00Z")

	repo, err := Open(ctx, filepath.Join(dir, "svc"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	commits, err := repo.ListCommitsForFile(ctx, "go.mod")
	if err != nil {
		t.Fatal(err)
	}
	if len(commits) != 2 {
		t.Fatalf("got %d commits, want 2", len(commits))
	}
	content, err := repo.ReadFileAtRevision(ctx, "go.mod", first)
	if err != nil {
		t.Fatalf("ReadFileAtRevision: %v", err)
	}
	if !strings.Contains(string(content), "require x") {
		t.Errorf("content = %q", content)
	}
}

func TestRepoEmpty(t *testing.T) {
	dir := initTestRepo(t)
	repo := &Repo{Dir: dir}

	avail, err := repo.ListAvailableCommits(context.Background())
	if err != nil {
		t.Fatalf("ListAvailableCommits on empty repo: %v", err)
	}
	if len(avail) != 0 {
		t.Errorf("available = %v, want empty", avail)
	}
}

func TestOpenNotARepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	if _, err := Open(context.Background(), t.TempDir()); err == nil {
		t.Error("expected error for a directory outside any repository")
	}
}

func TestRejectsUnsafeArguments(t *testing.T) {
	repo := &Repo{Dir: t.TempDir()}
	ctx := context.Background()

	if _, err := repo.ReadFileAtRevision(ctx, "go.mod", "--output=/tmp/x"); err == nil {
		t.Error("expected error for option-like commit")
	}
	if _, err := repo.ReadFileAtRevision(ctx, "../etc/passwd", "HEAD"); err == nil {
		t.Error("expected error for path traversal")
	}
	if _, err := repo.ListCommitsForFile(ctx, "/abs/path"); err == nil {
		t.Error("expected error for absolute path")
	}
}

func TestParseLog(t *testing.T) {
	out := []byte("abc|2024-05-01 12:00:00 +0200\n\nmalformed\ndef|2023-12-31 23:59:59 -0800\n")
	got := parseLog(out)
	if len(got) != 2 {
		t.Fatalf("parseLog() = %+v", got)
	}
	if got[0] != (Commit{Hash: "abc", Date: "2024-05-01"}) || got[1] != (Commit{Hash: "def", Date: "2023-12-31"}) {
		t.Errorf("parseLog() = %+v", got)
	}
}
