package radar_test

import (
	"fmt"

	"github.com/matzehuels/techradar/pkg/deps"
	"github.com/matzehuels/techradar/pkg/radar"
	"github.com/matzehuels/techradar/pkg/techmap"
)

func ExampleAggregate() {
	cfg := techmap.MustDefault()
	resolve := func(d deps.Dependency) string { return cfg.Resolve(d.Ecosystem, d.Name) }

	ids := deps.Tag("javascript", []string{"react", "left-pad", "react-dom", "jest"})
	for _, item := range radar.Aggregate(ids, resolve, cfg.CategoryOf) {
		fmt.Printf("%s (%s): %v\n", item.Name, item.Category, item.Dependencies)
	}
	// Output:
	// React (Frontend Frameworks): [react react-dom]
	// Jest (Testing): [jest]
	// left-pad (Other): [left-pad]
}

func ExampleRemoved() {
	current := deps.Tag("go", []string{"a", "b"})
	historical := deps.Tag("go", []string{"a", "b", "c", "d"})
	fmt.Println(radar.Removed(current, historical))
	// Output: [go:c go:d]
}
