package pipeline

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/techradar/pkg/cache"
	"github.com/matzehuels/techradar/pkg/deps/languages"
	"github.com/matzehuels/techradar/pkg/errors"
	"github.com/matzehuels/techradar/pkg/radar"
	"github.com/matzehuels/techradar/pkg/store"
	"github.com/matzehuels/techradar/pkg/techmap"
)

func testRunner(t *testing.T, c cache.Cache, st store.Store) *Runner {
	t.Helper()
	a := radar.New(techmap.MustDefault(), languages.Registry(), radar.Options{})
	return NewRunner(a, c, st, log.New(io.Discard))
}

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

// gitRepo returns a committed repository holding a package.json.
func gitRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	runGit(t, dir, "init", "-q")
	runGit(t, dir, "config", "user.email", "test@test.com")
	runGit(t, dir, "config", "user.name", "Test")
	runGit(t, dir, "config", "commit.gpgsign", "false")
	writeFile(t, dir, "package.json", `{"dependencies": {"react": "^18"}}`)
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-q", "-m", "init")
	return dir
}

func TestValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"path", Options{RepoPath: "."}, false},
		{"url", Options{RepoURL: "https://github.com/a/b"}, false},
		{"neither", Options{}, true},
		{"both", Options{RepoPath: ".", RepoURL: "https://github.com/a/b"}, true},
		{"bad format", Options{RepoPath: ".", Formats: []string{"png"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			err := opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && (len(opts.Formats) == 0 || opts.Progress == nil) {
				t.Error("defaults not applied")
			}
		})
	}

	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("missing source code = %s, want INVALID_INPUT", errors.GetCode(err))
	}
}

func TestExecuteLocal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"dependencies": {"react": "^18", "react-dom": "^18"}}`)

	r := testRunner(t, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		RepoPath: dir,
		Formats:  []string{"json", "table"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Matrix.Adopt) != 1 || res.Matrix.Adopt[0].Name != "React" {
		t.Errorf("Adopt = %+v", res.Matrix.Adopt)
	}
	if res.CacheHit {
		t.Error("no cache configured, should not hit")
	}
	if !strings.Contains(string(res.Artifacts["json"]), `"React"`) {
		t.Errorf("json artifact = %s", res.Artifacts["json"])
	}
	if len(res.Artifacts["table"]) == 0 {
		t.Error("table artifact missing")
	}
}

func TestExecuteLocalBranch(t *testing.T) {
	dir := gitRepo(t)
	runGit(t, dir, "checkout", "-q", "-b", "feature/radar")

	r := testRunner(t, nil, nil)
	res, err := r.Execute(context.Background(), Options{RepoPath: dir, Formats: []string{"json"}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Matrix.Branch != "feature/radar" {
		t.Errorf("Branch = %q, want feature/radar", res.Matrix.Branch)
	}

	plain := t.TempDir()
	writeFile(t, plain, "package.json", `{"dependencies": {"react": "^18"}}`)
	res, err = r.Execute(context.Background(), Options{RepoPath: plain, Formats: []string{"json"}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Matrix.Branch != "" {
		t.Errorf("Branch outside git = %q, want empty", res.Matrix.Branch)
	}
}

func TestExecuteCaches(t *testing.T) {
	dir := gitRepo(t)
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := testRunner(t, c, nil)
	ctx := context.Background()

	first, err := r.Execute(ctx, Options{RepoPath: dir})
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheHit || first.CacheKey == "" {
		t.Fatalf("first run: hit %v key %q", first.CacheHit, first.CacheKey)
	}

	second, err := r.Execute(ctx, Options{RepoPath: dir})
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheHit {
		t.Error("second run should hit the cache")
	}
	if second.Analysis.RunID != first.Analysis.RunID {
		t.Error("cached result should be returned unchanged")
	}

	refreshed, err := r.Execute(ctx, Options{RepoPath: dir, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.CacheHit {
		t.Error("Refresh should bypass the cache")
	}

	// Uncommitted manifest edits change the key.
	writeFile(t, dir, "package.json", `{"dependencies": {"vue": "^3"}}`)
	edited, err := r.Execute(ctx, Options{RepoPath: dir})
	if err != nil {
		t.Fatal(err)
	}
	if edited.CacheHit {
		t.Error("edited manifest should miss the cache")
	}
	if len(edited.Matrix.Adopt) != 1 || edited.Matrix.Adopt[0].Name != "Vue" {
		t.Errorf("Adopt = %+v, want [Vue]", edited.Matrix.Adopt)
	}

	// SkipHistory is part of the key.
	skipped, err := r.Execute(ctx, Options{RepoPath: dir, SkipHistory: true})
	if err != nil {
		t.Fatal(err)
	}
	if skipped.CacheHit || skipped.CacheKey == edited.CacheKey {
		t.Error("SkipHistory should use a separate key")
	}
}

func TestExecuteSaveMergesCuratedStages(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"dependencies": {"react": "^18", "jest": "^29"}}`)

	st := store.NewMemoryStore()
	abs, _ := filepath.Abs(dir)
	repoURL := "file://" + filepath.ToSlash(abs)
	ctx := context.Background()
	if err := st.Save(ctx, &store.Record{
		RepoURL: repoURL,
		Matrix:  radar.Matrix{Hold: []radar.TechnologyItem{{Name: "Jest", Category: "Testing"}}},
	}); err != nil {
		t.Fatal(err)
	}

	r := testRunner(t, nil, st)
	res, err := r.Execute(ctx, Options{RepoPath: dir, Save: true, Formats: []string{"json"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Matrix.Hold) != 1 || res.Matrix.Hold[0].Name != "Jest" {
		t.Errorf("Hold = %+v, want curated Jest", res.Matrix.Hold)
	}
	for _, it := range res.Matrix.Adopt {
		if it.Name == "Jest" {
			t.Error("curated technology should not also be adopted")
		}
	}

	saved, err := st.Load(ctx, store.RepoDocID(repoURL))
	if err != nil || saved == nil {
		t.Fatalf("Load = %v, %v", saved, err)
	}
	if len(saved.Matrix.Adopt) != 1 || saved.Matrix.Adopt[0].Name != "React" {
		t.Errorf("saved Adopt = %+v", saved.Matrix.Adopt)
	}
}

func TestExecuteSaveWithoutStore(t *testing.T) {
	r := testRunner(t, nil, nil)
	if _, err := r.Execute(context.Background(), Options{RepoPath: t.TempDir(), Save: true}); err == nil {
		t.Error("Save without a store should fail")
	}
}

func TestExecuteMissingPath(t *testing.T) {
	r := testRunner(t, nil, nil)
	_, err := r.Execute(context.Background(), Options{RepoPath: filepath.Join(t.TempDir(), "missing")})
	if err == nil {
		t.Error("missing repository path should fail")
	}
}
