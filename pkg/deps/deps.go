package deps

import (
	"cmp"
	"slices"
)

// Dependency is a package identifier tagged with the ecosystem whose parser
// produced it. Identifiers are only ever resolved against the mapping table
// of their own ecosystem.
type Dependency struct {
	Ecosystem string // Ecosystem name (e.g., "javascript")
	Name      string // Ecosystem-native identifier (e.g., "react-dom")
}

func (d Dependency) String() string {
	return d.Ecosystem + ":" + d.Name
}

// Tag attaches ecosystem to every name.
func Tag(ecosystem string, names []string) []Dependency {
	out := make([]Dependency, len(names))
	for i, n := range names {
		out[i] = Dependency{Ecosystem: ecosystem, Name: n}
	}
	return out
}

// Compare orders dependencies by ecosystem, then by name.
func Compare(a, b Dependency) int {
	if c := cmp.Compare(a.Ecosystem, b.Ecosystem); c != 0 {
		return c
	}
	return cmp.Compare(a.Name, b.Name)
}

// Unique returns names with empty strings and duplicates removed, keeping
// first-occurrence order.
func Unique(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// Sorted returns a sorted copy of deps.
func Sorted(deps []Dependency) []Dependency {
	out := slices.Clone(deps)
	slices.SortFunc(out, Compare)
	return out
}
