package radar

import (
	"cmp"
	"slices"

	"github.com/matzehuels/techradar/pkg/deps"
	"github.com/matzehuels/techradar/pkg/techmap"
)

// TechnologyItem is one technology of the radar with the raw identifiers
// that resolved to it.
type TechnologyItem struct {
	Name                string   `json:"name"`
	Category            string   `json:"category"`
	Dependencies        []string `json:"dependencies"`
	RemovedDependencies []string `json:"removedDependencies,omitempty"`
}

// ResolveFunc maps an identifier to its technology name.
type ResolveFunc func(deps.Dependency) string

// CategorizeFunc maps a technology name to its category.
type CategorizeFunc func(string) string

// Aggregate groups ids by technology. Each item lists the original
// identifiers that resolved to it, deduplicated and in input order. Items
// are sorted by [Compare].
func Aggregate(ids []deps.Dependency, resolve ResolveFunc, categorize CategorizeFunc) []TechnologyItem {
	index := make(map[string]int)
	items := []TechnologyItem{}
	seen := make(map[string]map[string]bool)

	for _, d := range ids {
		if d.Name == "" {
			continue
		}
		name := resolve(d)
		i, ok := index[name]
		if !ok {
			i = len(items)
			index[name] = i
			items = append(items, TechnologyItem{Name: name, Category: categorize(name)})
			seen[name] = make(map[string]bool)
		}
		if seen[name][d.Name] {
			continue
		}
		seen[name][d.Name] = true
		items[i].Dependencies = append(items[i].Dependencies, d.Name)
	}

	slices.SortStableFunc(items, Compare)
	return items
}

// Compare orders items with category [techmap.Other] last, then by
// category, then by name.
func Compare(a, b TechnologyItem) int {
	aOther, bOther := a.Category == techmap.Other, b.Category == techmap.Other
	switch {
	case aOther && !bOther:
		return 1
	case !aOther && bOther:
		return -1
	}
	if c := cmp.Compare(a.Category, b.Category); c != 0 {
		return c
	}
	return cmp.Compare(a.Name, b.Name)
}

// Reconcile folds every removed item whose technology is still adopted into
// the adopted item's RemovedDependencies. It returns new slices; the inputs
// are not modified.
func Reconcile(adopt, remove []TechnologyItem) ([]TechnologyItem, []TechnologyItem) {
	outAdopt := make([]TechnologyItem, len(adopt))
	index := make(map[string]int, len(adopt))
	for i, item := range adopt {
		item.Dependencies = slices.Clone(item.Dependencies)
		item.RemovedDependencies = slices.Clone(item.RemovedDependencies)
		outAdopt[i] = item
		index[item.Name] = i
	}

	outRemove := []TechnologyItem{}
	for _, item := range remove {
		i, ok := index[item.Name]
		if !ok {
			item.Dependencies = slices.Clone(item.Dependencies)
			outRemove = append(outRemove, item)
			continue
		}
		merged := append(outAdopt[i].RemovedDependencies, item.Dependencies...)
		outAdopt[i].RemovedDependencies = deps.Unique(merged)
	}
	return outAdopt, outRemove
}
