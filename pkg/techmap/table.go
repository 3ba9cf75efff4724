package techmap

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// memoSize bounds the per-table resolution cache. History walks resolve the
// same identifiers once per snapshot, so a small cache absorbs most lookups.
const memoSize = 4096

// Technology is one entry of a mapping table.
type Technology struct {
	Name     string   // Canonical display name (e.g., "React")
	Category string   // Owning category (e.g., "Frontend Frameworks")
	Patterns []string // Ordered identifier patterns
}

// Category groups technology names in table order.
type Category struct {
	Name         string
	Technologies []string
}

// Table is the immutable mapping table of one ecosystem.
type Table struct {
	ecosystem    string
	technologies []Technology
	categories   []Category
	memo         *lru.Cache[string, string]
}

// NewTable builds a table from categories given in order. Each category's
// technologies are taken in the order of techs. It returns an error if a
// technology name is repeated, a category is named [Other], or a technology
// has no patterns.
func NewTable(ecosystem string, techs []Technology) (*Table, error) {
	t := &Table{ecosystem: ecosystem}
	seen := make(map[string]bool, len(techs))
	catIdx := make(map[string]int)

	for _, tech := range techs {
		switch {
		case tech.Name == "":
			return nil, mappingError(ecosystem, "technology with empty name in category %q", tech.Category)
		case tech.Category == "":
			return nil, mappingError(ecosystem, "technology %q has no category", tech.Name)
		case tech.Category == Other:
			return nil, mappingError(ecosystem, "category %q is reserved", Other)
		case len(tech.Patterns) == 0:
			return nil, mappingError(ecosystem, "technology %q has no patterns", tech.Name)
		case seen[tech.Name]:
			return nil, mappingError(ecosystem, "technology %q listed twice", tech.Name)
		}
		for _, p := range tech.Patterns {
			if p == "" {
				return nil, mappingError(ecosystem, "technology %q has an empty pattern", tech.Name)
			}
		}
		seen[tech.Name] = true

		i, ok := catIdx[tech.Category]
		if !ok {
			i = len(t.categories)
			catIdx[tech.Category] = i
			t.categories = append(t.categories, Category{Name: tech.Category})
		}
		t.categories[i].Technologies = append(t.categories[i].Technologies, tech.Name)

		patterns := make([]string, len(tech.Patterns))
		copy(patterns, tech.Patterns)
		t.technologies = append(t.technologies, Technology{
			Name:     tech.Name,
			Category: tech.Category,
			Patterns: patterns,
		})
	}

	memo, err := lru.New[string, string](memoSize)
	if err != nil {
		return nil, err
	}
	t.memo = memo
	return t, nil
}

// Ecosystem returns the ecosystem name the table belongs to.
func (t *Table) Ecosystem() string { return t.ecosystem }

// Technologies returns a copy of the flattened technology list in table order.
func (t *Table) Technologies() []Technology {
	out := make([]Technology, len(t.technologies))
	copy(out, t.technologies)
	return out
}

// Categories returns a copy of the table's categories in order.
func (t *Table) Categories() []Category {
	out := make([]Category, len(t.categories))
	for i, c := range t.categories {
		out[i] = Category{Name: c.Name, Technologies: append([]string(nil), c.Technologies...)}
	}
	return out
}

// Len returns the number of technologies in the table.
func (t *Table) Len() int { return len(t.technologies) }

// Resolve maps id to its technology name using case-insensitive matching.
// Results are memoized; the table itself is never modified.
func (t *Table) Resolve(id string) string {
	if name, ok := t.memo.Get(id); ok {
		return name
	}
	name := Resolve(id, t.technologies, false)
	t.memo.Add(id, name)
	return name
}

// Resolve returns the name of the first technology in techs owning an exact
// pattern equal to id, otherwise the first owning a wildcard pattern matching
// id, otherwise id itself.
func Resolve(id string, techs []Technology, caseSensitive bool) string {
	for _, tech := range techs {
		for _, p := range tech.Patterns {
			if !IsWildcard(p) && Match(id, p, caseSensitive) {
				return tech.Name
			}
		}
	}
	for _, tech := range techs {
		for _, p := range tech.Patterns {
			if IsWildcard(p) && Match(id, p, caseSensitive) {
				return tech.Name
			}
		}
	}
	return id
}
