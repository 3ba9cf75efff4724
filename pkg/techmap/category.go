package techmap

import "strings"

// Other is the fallback category for technologies absent from every table.
// It has no backing pattern data and always sorts last.
const Other = "Other"

// CategoryIndex answers category lookups over the merged categories of
// several tables.
type CategoryIndex struct {
	categories []Category
	byName     map[string]string
}

// NewCategoryIndex merges the categories of tables in order. Categories with
// the same name are concatenated; a technology listed under several
// categories belongs to the first.
func NewCategoryIndex(tables ...*Table) *CategoryIndex {
	idx := &CategoryIndex{byName: make(map[string]string)}
	pos := make(map[string]int)

	for _, t := range tables {
		for _, c := range t.categories {
			i, ok := pos[c.Name]
			if !ok {
				i = len(idx.categories)
				pos[c.Name] = i
				idx.categories = append(idx.categories, Category{Name: c.Name})
			}
			idx.categories[i].Technologies = append(idx.categories[i].Technologies, c.Technologies...)
		}
	}

	for _, c := range idx.categories {
		for _, name := range c.Technologies {
			key := strings.ToLower(name)
			if _, ok := idx.byName[key]; !ok {
				idx.byName[key] = c.Name
			}
		}
	}
	return idx
}

// CategoryOf returns the first category listing name, compared
// case-insensitively, or [Other].
func (idx *CategoryIndex) CategoryOf(name string) string {
	if c, ok := idx.byName[strings.ToLower(name)]; ok {
		return c
	}
	return Other
}

// Categories returns the merged categories in order.
func (idx *CategoryIndex) Categories() []Category {
	out := make([]Category, len(idx.categories))
	for i, c := range idx.categories {
		out[i] = Category{Name: c.Name, Technologies: append([]string(nil), c.Technologies...)}
	}
	return out
}
