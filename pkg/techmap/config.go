package techmap

import (
	"crypto/sha256"
	"encoding/hex"
)

// Config is the immutable set of mapping tables used by an analysis. It is
// built once and shared read-only between concurrent runs.
type Config struct {
	tables      map[string]*Table
	order       []string
	categories  *CategoryIndex
	fingerprint string
}

// NewConfig builds a configuration from tables. Later tables with the same
// ecosystem replace earlier ones; category order follows the argument order.
func NewConfig(tables ...*Table) *Config {
	cfg := &Config{tables: make(map[string]*Table, len(tables))}
	for _, t := range tables {
		if _, ok := cfg.tables[t.ecosystem]; !ok {
			cfg.order = append(cfg.order, t.ecosystem)
		}
		cfg.tables[t.ecosystem] = t
	}
	ordered := make([]*Table, 0, len(cfg.order))
	for _, eco := range cfg.order {
		ordered = append(ordered, cfg.tables[eco])
	}
	cfg.categories = NewCategoryIndex(ordered...)
	cfg.fingerprint = cfg.hashTables()
	return cfg
}

// Table returns the table for ecosystem, or nil.
func (c *Config) Table(ecosystem string) *Table {
	return c.tables[ecosystem]
}

// Ecosystems returns the ecosystems with a table, in load order.
func (c *Config) Ecosystems() []string {
	return append([]string(nil), c.order...)
}

// Resolve maps id within the table of ecosystem. Identifiers of ecosystems
// without a table resolve to themselves.
func (c *Config) Resolve(ecosystem, id string) string {
	t := c.tables[ecosystem]
	if t == nil {
		return id
	}
	return t.Resolve(id)
}

// CategoryOf returns the category of a technology name across all tables.
func (c *Config) CategoryOf(name string) string {
	return c.categories.CategoryOf(name)
}

// Categories returns the merged category index.
func (c *Config) Categories() *CategoryIndex {
	return c.categories
}

// Fingerprint identifies the table contents the configuration was loaded
// from. It changes whenever a pattern, name or category changes and is used
// to invalidate cached analyses.
func (c *Config) Fingerprint() string {
	return c.fingerprint
}

func (c *Config) hashTables() string {
	h := sha256.New()
	for _, eco := range c.order {
		h.Write([]byte(eco))
		h.Write([]byte{0})
		for _, tech := range c.tables[eco].technologies {
			h.Write([]byte(tech.Category + "\x00" + tech.Name + "\x00"))
			for _, p := range tech.Patterns {
				h.Write([]byte(p + "\x00"))
			}
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

func fingerprint(ecosystems []string, raw [][]byte) string {
	h := sha256.New()
	for i, eco := range ecosystems {
		h.Write([]byte(eco))
		h.Write([]byte{0})
		h.Write(raw[i])
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
