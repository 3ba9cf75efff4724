package python

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/techradar/pkg/deps"
)

// Pipfile parses Pipenv's Pipfile.
type Pipfile struct{}

func (p *Pipfile) Type() string              { return "Pipfile" }
func (p *Pipfile) Patterns() []string        { return []string{"Pipfile"} }
func (p *Pipfile) Supports(name string) bool { return strings.EqualFold(name, "Pipfile") }

func (p *Pipfile) Parse(path string, content []byte) ([]string, error) {
	var doc map[string]any
	md, err := toml.Decode(string(content), &doc)
	if err != nil {
		return scanPipfile(content)
	}

	var names []string
	for _, key := range md.Keys() {
		if len(key) == 2 && isPackageTable(key[0]) {
			names = append(names, key[1])
		}
	}
	return deps.Unique(names), nil
}

func isPackageTable(name string) bool {
	return name == "packages" || name == "dev-packages"
}

// scanPipfile reads "name = ..." lines inside the package tables of a
// Pipfile that is not valid TOML.
func scanPipfile(content []byte) ([]string, error) {
	var names []string
	inPackages := false

	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		if strings.HasPrefix(line, "[") {
			inPackages = isPackageTable(strings.Trim(line, "[] "))
			continue
		}
		if !inPackages {
			continue
		}
		key, _, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		names = append(names, requirementName(strings.Trim(strings.TrimSpace(key), `"'`)))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return deps.Unique(names), nil
}
