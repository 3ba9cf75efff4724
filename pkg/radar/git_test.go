package radar

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"testing"
)

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

func commitManifest(t *testing.T, dir, rel, content string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	runGit(t, dir, "add", rel)
	runGit(t, dir, "commit", "-q", "-m", "update "+rel)
}

// monorepo returns a repository whose svc/go.mod dropped logrus in its
// second commit.
func monorepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	runGit(t, dir, "init", "-q")
	runGit(t, dir, "config", "user.email", "test@test.com")
	runGit(t, dir, "config", "user.name", "Test")
	runGit(t, dir, "config", "commit.gpgsign", "false")
	commitManifest(t, dir, "svc/go.mod", "module svc\n\nrequire github.com/sirupsen/logrus v1.0.0\n")
	commitManifest(t, dir, "svc/go.mod", "module svc\n\nrequire go.uber.org/zap v1.27.0\n")
	return dir
}

func TestAnalyzeDirGitHistory(t *testing.T) {
	root := monorepo(t)

	for _, tt := range []struct {
		name string
		path string
	}{
		{"repository root", root},
		{"subdirectory", filepath.Join(root, "svc")},
	} {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newTestAnalyzer(Options{}).AnalyzeDir(context.Background(), tt.path)
			if err != nil {
				t.Fatal(err)
			}
			if len(res.Matrix.Adopt) != 1 || res.Matrix.Adopt[0].Name != "Zap" {
				t.Errorf("Adopt = %+v, want [Zap]", res.Matrix.Adopt)
			}
			if len(res.Matrix.Remove) != 1 {
				t.Fatalf("Remove = %+v, want [Logrus]", res.Matrix.Remove)
			}
			got := res.Matrix.Remove[0]
			if got.Name != "Logrus" || got.Category != "Logging" ||
				!slices.Equal(got.Dependencies, []string{"github.com/sirupsen/logrus"}) {
				t.Errorf("Remove[0] = %+v", got)
			}
		})
	}
}
