package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/techradar/pkg/radar"
)

func testMatrix() radar.Matrix {
	return radar.NewMatrix(
		[]radar.TechnologyItem{
			{Name: "React", Category: "Frontend Frameworks", Dependencies: []string{"react", "react-dom"}, RemovedDependencies: []string{"react-is"}},
			{Name: "Jest", Category: "Testing", Dependencies: []string{"jest"}},
		},
		[]radar.TechnologyItem{
			{Name: "Moment.js", Category: "Utilities", Dependencies: []string{"moment"}},
		},
	)
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testMatrix(), Options{})

	for _, want := range []string{
		"digraph radar {",
		`subgraph "cluster_adopt"`,
		`subgraph "cluster_remove"`,
		`label="Adopt"`,
		`"adopt/category/Testing" -> "adopt/tech/Jest";`,
		`"remove/tech/Moment.js" [label="Moment.js"];`,
		`style="rounded,filled,dashed"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "cluster_trial") {
		t.Error("empty stages should be omitted")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testMatrix(), Options{Detailed: true})
	if !strings.Contains(dot, `label="React\nreact\nreact-dom\n- react-is"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestToDOTEmpty(t *testing.T) {
	dot := ToDOT(radar.NewMatrix(nil, nil), Options{})
	if strings.Contains(dot, "subgraph") {
		t.Errorf("empty matrix should have no clusters:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50">`
	if !strings.HasPrefix(out, want) {
		t.Errorf("normalizeViewBox() = %s", out)
	}

	plain := []byte("<svg><g/></svg>")
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox should be unchanged")
	}
}
