package store

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/techradar/pkg/radar"
)

func TestRepoDocID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://github.com/user/repo", "github_com_user_repo"},
		{"https://github.com/User/Repo.git", "github_com_user_repo"},
		{"http://gitlab.com/group/sub/project", "gitlab_com_group_sub_project"},
		{"git@github.com:user/repo.git", "git_github_com_user_repo"},
		{"  https://github.com/a/b  ", "github_com_a_b"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := RepoDocID(tt.url); got != tt.want {
				t.Errorf("RepoDocID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	m := radar.NewMatrix(
		[]radar.TechnologyItem{{Name: "React", Category: "Frontend Frameworks", Dependencies: []string{"react"}}},
		nil,
	)
	m.Branch = "main"
	rec := &Record{RepoURL: "https://github.com/user/repo", Matrix: m}
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rec.ID != "github_com_user_repo" {
		t.Errorf("ID = %q", rec.ID)
	}
	if rec.SavedAt.IsZero() {
		t.Error("SavedAt not set")
	}

	got, err := s.Load(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got == nil {
		t.Fatal("Load returned nil for saved record")
	}
	if got.RepoURL != rec.RepoURL || got.Matrix.Branch != "main" || len(got.Matrix.Adopt) != 1 {
		t.Errorf("Load = %+v", got)
	}

	// Loaded records are copies
	got.Matrix.Adopt[0].Name = "changed"
	again, _ := s.Load(ctx, rec.ID)
	if again.Matrix.Adopt[0].Name != "React" {
		t.Error("mutating a loaded record changed the store")
	}
}

func TestMemoryStoreMiss(t *testing.T) {
	got, err := NewMemoryStore().Load(context.Background(), "missing")
	if got != nil || err != nil {
		t.Errorf("Load(missing) = %v, %v; want nil, nil", got, err)
	}
}

func TestMemoryStoreListAndDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	for i, url := range []string{"https://a.com/x", "https://b.com/y", "https://c.com/z"} {
		if err := s.Save(ctx, &Record{RepoURL: url, SavedAt: base.Add(time.Duration(i) * time.Hour)}); err != nil {
			t.Fatal(err)
		}
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 || list[0].ID != "c_com_z" || list[2].ID != "a_com_x" {
		t.Errorf("List() = %+v, want newest first", list)
	}

	if err := s.Delete(ctx, "b_com_y"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "b_com_y"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
	list, _ = s.List(ctx)
	if len(list) != 2 {
		t.Errorf("List() after Delete has %d entries, want 2", len(list))
	}
}

func TestMemoryStoreSaveInvalid(t *testing.T) {
	s := NewMemoryStore()
	if err := s.Save(context.Background(), nil); err == nil {
		t.Error("Save(nil) should fail")
	}
	if err := s.Save(context.Background(), &Record{}); err == nil {
		t.Error("Save without id or url should fail")
	}
}

func TestMemoryStoreCancelledLoad(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewMemoryStore().Load(ctx, "x"); err == nil {
		t.Error("Load with cancelled context should fail")
	}
}
