package techmap

import (
	"testing"
)

func mustTable(t *testing.T, eco string, techs []Technology) *Table {
	t.Helper()
	tbl, err := NewTable(eco, techs)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return tbl
}

func TestResolve(t *testing.T) {
	techs := []Technology{
		{Name: "B", Category: "Wild", Patterns: []string{"f*"}},
		{Name: "A", Category: "Exact", Patterns: []string{"foo"}},
		{Name: "React Router", Category: "Routing", Patterns: []string{"react-router*"}},
		{Name: "First", Category: "Tie", Patterns: []string{"tie-*"}},
		{Name: "Second", Category: "Tie", Patterns: []string{"tie-*"}},
	}

	tests := []struct {
		id   string
		want string
	}{
		{"foo", "A"},
		{"FOO", "A"},
		{"food", "B"},
		{"react-router-dom", "React Router"},
		{"tie-breaker", "First"},
		{"unknown-lib", "unknown-lib"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := Resolve(tt.id, techs, false); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestResolveCaseSensitive(t *testing.T) {
	techs := []Technology{{Name: "Newtonsoft.Json", Category: "Serialization", Patterns: []string{"Newtonsoft.Json"}}}

	if got := Resolve("newtonsoft.json", techs, true); got != "newtonsoft.json" {
		t.Errorf("case-sensitive Resolve = %q, want identifier unchanged", got)
	}
	if got := Resolve("newtonsoft.json", techs, false); got != "Newtonsoft.Json" {
		t.Errorf("case-insensitive Resolve = %q, want Newtonsoft.Json", got)
	}
}

func TestTableResolveDeterministic(t *testing.T) {
	tbl := mustTable(t, "test", []Technology{
		{Name: "React", Category: "Frontend Frameworks", Patterns: []string{"react", "react-dom"}},
		{Name: "Angular", Category: "Frontend Frameworks", Patterns: []string{"@angular/*"}},
	})

	for i := 0; i < 3; i++ {
		if got := tbl.Resolve("react-dom"); got != "React" {
			t.Fatalf("call %d: Resolve(react-dom) = %q", i, got)
		}
		if got := tbl.Resolve("@angular/core"); got != "Angular" {
			t.Fatalf("call %d: Resolve(@angular/core) = %q", i, got)
		}
		if got := tbl.Resolve("left-pad"); got != "left-pad" {
			t.Fatalf("call %d: Resolve(left-pad) = %q", i, got)
		}
	}
}

func TestNewTableErrors(t *testing.T) {
	tests := []struct {
		name  string
		techs []Technology
	}{
		{"empty name", []Technology{{Category: "C", Patterns: []string{"x"}}}},
		{"empty category", []Technology{{Name: "X", Patterns: []string{"x"}}}},
		{"reserved category", []Technology{{Name: "X", Category: Other, Patterns: []string{"x"}}}},
		{"no patterns", []Technology{{Name: "X", Category: "C"}}},
		{"empty pattern", []Technology{{Name: "X", Category: "C", Patterns: []string{""}}}},
		{"duplicate", []Technology{
			{Name: "X", Category: "C", Patterns: []string{"x"}},
			{Name: "X", Category: "D", Patterns: []string{"y"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTable("test", tt.techs); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestTableCategoriesKeepOrder(t *testing.T) {
	tbl := mustTable(t, "test", []Technology{
		{Name: "Zed", Category: "Z", Patterns: []string{"zed"}},
		{Name: "Alpha", Category: "A", Patterns: []string{"alpha"}},
		{Name: "Zulu", Category: "Z", Patterns: []string{"zulu"}},
	})

	cats := tbl.Categories()
	if len(cats) != 2 || cats[0].Name != "Z" || cats[1].Name != "A" {
		t.Fatalf("Categories() = %+v", cats)
	}
	if got := cats[0].Technologies; len(got) != 2 || got[0] != "Zed" || got[1] != "Zulu" {
		t.Errorf("Z technologies = %v", got)
	}
	if tbl.Len() != 3 {
		t.Errorf("Len() = %d, want 3", tbl.Len())
	}
}
