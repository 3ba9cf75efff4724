// Package techmap maps raw package identifiers to human-facing technology
// names and categories.
//
// # Mapping Tables
//
// Each ecosystem ships a curated table of the form
//
//	category -> technology -> [patterns]
//
// stored as YAML under data/ and embedded into the binary. Tables are loaded
// once ([Default]) or from a caller-supplied directory ([LoadDir]) and are
// immutable afterwards. A malformed table is a deployment defect and fails the
// load with an INVALID_MAPPING error.
//
// # Resolution
//
// [Table.Resolve] returns the technology owning the first matching pattern.
// Exact patterns (no '*') are tried across the whole table before any
// wildcard pattern, so a broad pattern such as "@angular/*" never shadows a
// separately mapped package. Within a pass, table order breaks ties. An
// identifier that matches nothing resolves to itself.
//
// # Categories
//
// [CategoryIndex] merges the category lists of all tables and answers
// [CategoryIndex.CategoryOf] by case-insensitive name lookup, falling back to
// [Other].
package techmap
