package javascript

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/matzehuels/techradar/pkg/deps"
)

const typesScope = "@types/"

var sections = []string{"dependencies", "devDependencies", "peerDependencies"}

// PackageJSON parses package.json files.
type PackageJSON struct{}

func (p *PackageJSON) Type() string              { return "package.json" }
func (p *PackageJSON) Patterns() []string        { return []string{"package.json"} }
func (p *PackageJSON) Supports(name string) bool { return strings.EqualFold(name, "package.json") }

func (p *PackageJSON) Parse(path string, content []byte) ([]string, error) {
	var pkg map[string]json.RawMessage
	if err := json.Unmarshal(content, &pkg); err != nil {
		return nil, err
	}

	var names []string
	for _, section := range sections {
		raw, ok := pkg[section]
		if !ok {
			continue
		}
		keys, err := objectKeys(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", section, err)
		}
		for _, k := range keys {
			if !strings.HasPrefix(k, typesScope) {
				names = append(names, k)
			}
		}
	}
	return deps.Unique(names), nil
}

// objectKeys returns the keys of a JSON object in document order. A null
// section has no keys.
func objectKeys(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		keys = append(keys, key)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}
