package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/techradar/pkg/pipeline"
	"github.com/matzehuels/techradar/pkg/radar"
	"github.com/matzehuels/techradar/pkg/render"
	"github.com/matzehuels/techradar/pkg/store"
	"github.com/matzehuels/techradar/pkg/techmap"
)

// newTestCLI isolates cache and store directories from the user's.
func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TECHRADAR_CACHE", "none")
	t.Setenv("TECHRADAR_MONGO_URI", "")
	var buf bytes.Buffer
	return New(&buf, LogInfo)
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newTestCLI(t).RootCommand()
	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"analyze", "serve", "radar", "cache", "ecosystems", "completion"} {
		if !slices.Contains(names, want) {
			t.Errorf("missing subcommand %q in %v", want, names)
		}
	}
	if root.PersistentFlags().Lookup("mappings") == nil {
		t.Error("missing --mappings flag")
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{render.FormatTable}},
		{"json", []string{"json"}},
		{"table, svg,", []string{"table", "svg"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output string
		want   string
	}{
		{"", "radar"},
		{"out/radar.svg", "out/radar"},
		{"report.JSON", "report"},
		{"report.html", "report.html"},
		{"report", "report"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output); got != tt.want {
			t.Errorf("basePath(%q) = %q, want %q", tt.output, got, tt.want)
		}
	}
}

func TestRadarID(t *testing.T) {
	if got := radarID("github_com_user_repo"); got != "github_com_user_repo" {
		t.Errorf("radarID(id) = %q", got)
	}
	if got := radarID("https://github.com/User/repo.git"); got != "github_com_user_repo" {
		t.Errorf("radarID(url) = %q", got)
	}
}

func TestWriteArtifactsMultipleFormats(t *testing.T) {
	dir := t.TempDir()
	res := &pipeline.Result{Artifacts: map[string][]byte{
		render.FormatJSON: []byte("{}\n"),
		render.FormatDOT:  []byte("digraph {}\n"),
	}}
	base := filepath.Join(dir, "out", "radar.json")
	if err := writeArtifacts(res, []string{render.FormatJSON, render.FormatDOT}, base); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"radar.json", "radar.dot"} {
		if _, err := os.Stat(filepath.Join(dir, "out", name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

func writeManifest(t *testing.T, dir string) {
	t.Helper()
	manifest := `{"dependencies": {"react": "^18.0.0"}, "devDependencies": {"jest": "^29.0.0"}}`
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(manifest), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestAnalyzeCommandWritesJSON(t *testing.T) {
	repo := t.TempDir()
	writeManifest(t, repo)
	out := filepath.Join(t.TempDir(), "radar.json")

	root := newTestCLI(t).RootCommand()
	root.SetArgs([]string{"analyze", repo, "--skip-history", "--format", "json", "--output", out})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("analyze: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var m radar.Matrix
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("decode %s: %v", out, err)
	}
	var names []string
	for _, it := range m.Adopt {
		names = append(names, it.Name)
	}
	if !slices.Equal(names, []string{"React", "Jest"}) {
		t.Errorf("adopt = %v, want [React Jest]", names)
	}
}

func TestAnalyzeCommandSaveAndRadarShow(t *testing.T) {
	repo := t.TempDir()
	writeManifest(t, repo)
	out := filepath.Join(t.TempDir(), "radar.dot")

	c := newTestCLI(t)
	root := c.RootCommand()
	root.SetArgs([]string{"analyze", repo, "--skip-history", "--save", "-f", "dot", "-o", out})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("analyze --save: %v", err)
	}

	st, err := store.NewFileStore("")
	if err != nil {
		t.Fatal(err)
	}
	list, err := st.List(context.Background())
	if err != nil || len(list) != 1 {
		t.Fatalf("saved radars = %v, %v; want 1", list, err)
	}

	root = c.RootCommand()
	root.SetArgs([]string{"radar", "show", list[0].ID, "--format", "json"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Errorf("radar show: %v", err)
	}

	root = c.RootCommand()
	root.SetArgs([]string{"radar", "delete", list[0].ID})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Errorf("radar delete: %v", err)
	}
	if list, _ = st.List(context.Background()); len(list) != 0 {
		t.Errorf("radar still listed after delete: %v", list)
	}
}

func TestAnalyzeCommandRejectsPathAndURL(t *testing.T) {
	root := newTestCLI(t).RootCommand()
	root.SetArgs([]string{"analyze", ".", "--url", "https://github.com/user/repo"})
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("analyze with path and --url should fail")
	}
}

func TestAnalyzeCommandRejectsUnknownFormat(t *testing.T) {
	root := newTestCLI(t).RootCommand()
	root.SetArgs([]string{"analyze", ".", "--format", "pdf"})
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("analyze --format pdf should fail")
	}
}

func TestRadarShowMissing(t *testing.T) {
	root := newTestCLI(t).RootCommand()
	root.SetArgs([]string{"radar", "show", "nothing_here"})
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("radar show for a missing radar should fail")
	}
}

func TestMappingsFlagLoadsDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, eco := range techmap.Ecosystems {
		table := "{}\n"
		if eco == "javascript" {
			table = "Web:\n  \"Acme Web\": [\"acme-*\"]\n"
		}
		if err := os.WriteFile(filepath.Join(dir, eco+".yaml"), []byte(table), 0644); err != nil {
			t.Fatal(err)
		}
	}
	c := newTestCLI(t)
	c.mappingsDir = dir
	cfg, err := c.mappings()
	if err != nil {
		t.Fatalf("mappings: %v", err)
	}
	if got := cfg.Resolve("javascript", "acme-router"); got != "Acme Web" {
		t.Errorf("Resolve = %q, want Acme Web", got)
	}
	if got := cfg.Resolve("javascript", "react"); got != "react" {
		t.Errorf("Resolve(react) = %q, built-in tables should not be used", got)
	}
}

func TestCompleteRadarIDs(t *testing.T) {
	c := newTestCLI(t)
	st, err := store.NewFileStore("")
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, url := range []string{"https://github.com/acme/web", "https://github.com/acme/api", "https://gitlab.com/other/tool"} {
		if err := st.Save(ctx, &store.Record{RepoURL: url}); err != nil {
			t.Fatal(err)
		}
	}

	cmd := c.RootCommand()
	cmd.SetContext(ctx)
	got, directive := c.completeRadarIDs(cmd, nil, store.RepoDocID("https://github.com/acme"))
	if directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("directive = %v", directive)
	}
	slices.Sort(got)
	want := []string{
		store.RepoDocID("https://github.com/acme/api") + "\thttps://github.com/acme/api",
		store.RepoDocID("https://github.com/acme/web") + "\thttps://github.com/acme/web",
	}
	if !slices.Equal(got, want) {
		t.Errorf("completeRadarIDs() = %q, want %q", got, want)
	}

	if got, _ := c.completeRadarIDs(cmd, []string{"x"}, ""); len(got) != 0 {
		t.Errorf("second argument completed %q", got)
	}
}

func TestCompletionCommand(t *testing.T) {
	root := newTestCLI(t).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"completion", "bash"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(out.Bytes(), []byte("techradar")) {
		t.Errorf("bash completion does not mention techradar:\n%.200s", out.String())
	}
}
