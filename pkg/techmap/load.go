package techmap

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/techradar/pkg/errors"
)

//go:embed data/*.yaml
var embedded embed.FS

// Ecosystems lists the ecosystems with a bundled table, in registry order.
// Each has a data file named <ecosystem>.yaml.
var Ecosystems = []string{"javascript", "python", "java", "cpp", "go", "rust", "csharp"}

var (
	defaultOnce   sync.Once
	defaultConfig *Config
	defaultErr    error
)

// Default returns the configuration built from the embedded tables. It is
// loaded on first use and shared afterwards.
func Default() (*Config, error) {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embedded, "data")
		if err != nil {
			defaultErr = err
			return
		}
		defaultConfig, defaultErr = Load(sub, Ecosystems...)
	})
	return defaultConfig, defaultErr
}

// MustDefault is like [Default] but panics if the embedded tables are
// malformed.
func MustDefault() *Config {
	cfg, err := Default()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadDir loads the tables of ecosystems from <dir>/<ecosystem>.yaml.
// Missing files are an error.
func LoadDir(dir string, ecosystems ...string) (*Config, error) {
	if len(ecosystems) == 0 {
		ecosystems = Ecosystems
	}
	return Load(os.DirFS(dir), ecosystems...)
}

// Load reads <ecosystem>.yaml from fsys for each ecosystem and builds a
// configuration from the parsed tables.
func Load(fsys fs.FS, ecosystems ...string) (*Config, error) {
	tables := make([]*Table, 0, len(ecosystems))
	raw := make([][]byte, 0, len(ecosystems))
	for _, eco := range ecosystems {
		data, err := fs.ReadFile(fsys, eco+".yaml")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidMapping, err, "read %s table", eco)
		}
		t, err := ParseTable(eco, data)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
		raw = append(raw, data)
	}
	cfg := NewConfig(tables...)
	cfg.fingerprint = fingerprint(ecosystems, raw)
	return cfg, nil
}

// ParseTable decodes a YAML mapping table. The document must be a mapping of
// category names to mappings of technology names to pattern lists. Key order
// is preserved.
func ParseTable(ecosystem string, data []byte) (*Table, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMapping, err, "%s: decode table", ecosystem)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, mappingError(ecosystem, "empty table")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, nodeError(ecosystem, root, "expected a mapping of categories")
	}

	var techs []Technology
	for i := 0; i+1 < len(root.Content); i += 2 {
		catKey, catVal := root.Content[i], root.Content[i+1]
		if catKey.Kind != yaml.ScalarNode {
			return nil, nodeError(ecosystem, catKey, "category name must be a string")
		}
		if catVal.Kind != yaml.MappingNode {
			return nil, nodeError(ecosystem, catVal, "category %q must map technologies to patterns", catKey.Value)
		}
		for j := 0; j+1 < len(catVal.Content); j += 2 {
			techKey, techVal := catVal.Content[j], catVal.Content[j+1]
			if techKey.Kind != yaml.ScalarNode {
				return nil, nodeError(ecosystem, techKey, "technology name must be a string")
			}
			if techVal.Kind != yaml.SequenceNode {
				return nil, nodeError(ecosystem, techVal, "technology %q must list patterns", techKey.Value)
			}
			patterns := make([]string, 0, len(techVal.Content))
			for _, p := range techVal.Content {
				if p.Kind != yaml.ScalarNode {
					return nil, nodeError(ecosystem, p, "pattern of %q must be a string", techKey.Value)
				}
				patterns = append(patterns, p.Value)
			}
			techs = append(techs, Technology{
				Name:     techKey.Value,
				Category: catKey.Value,
				Patterns: patterns,
			})
		}
	}
	return NewTable(ecosystem, techs)
}

func mappingError(ecosystem, format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidMapping, "%s: %s", ecosystem, fmt.Sprintf(format, args...))
}

func nodeError(ecosystem string, n *yaml.Node, format string, args ...any) error {
	return mappingError(ecosystem, "line %d: %s", n.Line, fmt.Sprintf(format, args...))
}
