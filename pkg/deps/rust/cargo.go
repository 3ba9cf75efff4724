package rust

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/techradar/pkg/deps"
)

var keyRE = regexp.MustCompile(`^([a-zA-Z0-9_-]+)\s*=`)

// CargoToml parses Cargo.toml files.
type CargoToml struct{}

func (c *CargoToml) Type() string              { return "Cargo.toml" }
func (c *CargoToml) Patterns() []string        { return []string{"Cargo.toml"} }
func (c *CargoToml) Supports(name string) bool { return strings.EqualFold(name, "cargo.toml") }

func (c *CargoToml) Parse(path string, content []byte) ([]string, error) {
	var doc map[string]any
	md, err := toml.Decode(string(content), &doc)
	if err != nil {
		return scanCargo(content)
	}

	var names []string
	for _, key := range md.Keys() {
		if len(key) < 2 {
			continue
		}
		if isDependencyTable(key[:len(key)-1]) {
			names = append(names, key[len(key)-1])
		}
	}
	return deps.Unique(names), nil
}

// isDependencyTable reports whether table is the path of a table whose keys
// are crate names.
func isDependencyTable(table []string) bool {
	switch len(table) {
	case 1:
		return isDependencySection(table[0])
	case 2:
		return table[0] == "workspace" && table[1] == "dependencies"
	case 3:
		return table[0] == "target" && isDependencySection(table[2])
	}
	return false
}

func isDependencySection(name string) bool {
	return name == "dependencies" || name == "dev-dependencies" || name == "build-dependencies"
}

// scanCargo reads crate names from a Cargo.toml that is not valid TOML.
func scanCargo(content []byte) ([]string, error) {
	var names []string
	inDeps := false

	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		if strings.HasPrefix(line, "[") {
			header := strings.Split(strings.Trim(line, "[] "), ".")
			inDeps = isDependencyTable(header)
			if !inDeps && len(header) >= 2 && isDependencyTable(header[:len(header)-1]) {
				names = append(names, header[len(header)-1])
			}
			continue
		}
		if !inDeps {
			continue
		}
		if m := keyRE.FindStringSubmatch(line); m != nil {
			names = append(names, m[1])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return deps.Unique(names), nil
}
