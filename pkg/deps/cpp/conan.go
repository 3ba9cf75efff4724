package cpp

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"

	"github.com/matzehuels/techradar/pkg/deps"
)

// quotedRefRE matches the name part of a quoted "name/version" reference.
var quotedRefRE = regexp.MustCompile(`["']([a-zA-Z0-9_.+-]+)/`)

// Conanfile parses conanfile.txt and conanfile.py recipes.
type Conanfile struct{}

func (c *Conanfile) Type() string       { return "conanfile" }
func (c *Conanfile) Patterns() []string { return []string{"conanfile.txt", "conanfile.py"} }

func (c *Conanfile) Supports(name string) bool {
	return strings.EqualFold(name, "conanfile.txt") || strings.EqualFold(name, "conanfile.py")
}

func (c *Conanfile) Parse(path string, content []byte) ([]string, error) {
	if strings.HasSuffix(strings.ToLower(path), ".txt") {
		return parseConanText(content)
	}

	var names []string
	for _, m := range quotedRefRE.FindAllSubmatch(content, -1) {
		names = append(names, string(m[1]))
	}
	return deps.Unique(names), nil
}

func parseConanText(content []byte) ([]string, error) {
	var names []string
	inRequires := false

	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		if strings.HasPrefix(line, "[") {
			section := strings.Trim(line, "[] ")
			inRequires = section == "requires" || section == "tool_requires" || section == "build_requires"
			continue
		}
		if !inRequires {
			continue
		}
		if name, _, ok := strings.Cut(line, "/"); ok {
			names = append(names, strings.TrimSpace(name))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return deps.Unique(names), nil
}
