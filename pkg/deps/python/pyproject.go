package python

import (
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/techradar/pkg/deps"
)

var dependenciesArrayRE = regexp.MustCompile(`dependencies\s*=\s*\[`)

// PyProject parses pyproject.toml files. It reads PEP 621
// project.dependencies and the Poetry dependency tables, skipping Poetry's
// "python" interpreter constraint.
type PyProject struct{}

func (p *PyProject) Type() string              { return "pyproject.toml" }
func (p *PyProject) Patterns() []string        { return []string{"pyproject.toml"} }
func (p *PyProject) Supports(name string) bool { return strings.EqualFold(name, "pyproject.toml") }

func (p *PyProject) Parse(path string, content []byte) ([]string, error) {
	var doc struct {
		Project struct {
			Dependencies []string `toml:"dependencies"`
		} `toml:"project"`
	}
	md, err := toml.Decode(string(content), &doc)
	if err != nil {
		return scanDependenciesArray(content), nil
	}

	var names []string
	for _, req := range doc.Project.Dependencies {
		names = append(names, requirementName(req))
	}
	for _, key := range md.Keys() {
		if name, ok := poetryDependency(key); ok {
			names = append(names, name)
		}
	}
	return deps.Unique(names), nil
}

// poetryDependency reports whether key names a package in one of Poetry's
// dependency tables:
//
//	tool.poetry.dependencies.<name>
//	tool.poetry.dev-dependencies.<name>
//	tool.poetry.group.<group>.dependencies.<name>
func poetryDependency(key toml.Key) (string, bool) {
	if len(key) < 4 || key[0] != "tool" || key[1] != "poetry" {
		return "", false
	}
	var name string
	switch {
	case len(key) == 4 && (key[2] == "dependencies" || key[2] == "dev-dependencies"):
		name = key[3]
	case len(key) == 6 && key[2] == "group" && key[4] == "dependencies":
		name = key[5]
	default:
		return "", false
	}
	if strings.EqualFold(name, "python") {
		return "", false
	}
	return name, true
}

// scanDependenciesArray extracts the quoted requirements of the first
// "dependencies = [...]" array in content.
func scanDependenciesArray(content []byte) []string {
	body, ok := arrayLiteral(content, dependenciesArrayRE)
	if !ok {
		return []string{}
	}
	return quotedNames(body)
}
