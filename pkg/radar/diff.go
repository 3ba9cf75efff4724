package radar

import "github.com/matzehuels/techradar/pkg/deps"

// Removed returns the identifiers of historical that are absent from
// current, deduplicated, in order of first appearance in historical.
func Removed(current, historical []deps.Dependency) []deps.Dependency {
	have := make(map[deps.Dependency]bool, len(current))
	for _, d := range current {
		have[d] = true
	}
	out := []deps.Dependency{}
	for _, d := range historical {
		if have[d] || d.Name == "" {
			continue
		}
		have[d] = true
		out = append(out, d)
	}
	return out
}
