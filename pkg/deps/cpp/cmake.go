package cpp

import (
	"regexp"
	"strings"

	"github.com/matzehuels/techradar/pkg/deps"
)

var findPackageRE = regexp.MustCompile(`(?i)find_package\s*\(\s*([a-zA-Z0-9_]+)`)

// CMakeLists parses CMakeLists.txt files.
type CMakeLists struct{}

func (c *CMakeLists) Type() string              { return "CMakeLists.txt" }
func (c *CMakeLists) Patterns() []string        { return []string{"CMakeLists.txt"} }
func (c *CMakeLists) Supports(name string) bool { return strings.EqualFold(name, "CMakeLists.txt") }

func (c *CMakeLists) Parse(path string, content []byte) ([]string, error) {
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		if j := strings.IndexByte(line, '#'); j >= 0 {
			lines[i] = line[:j]
		}
	}
	// Arguments may start on the line after the parenthesis.
	var names []string
	for _, m := range findPackageRE.FindAllStringSubmatch(strings.Join(lines, "\n"), -1) {
		names = append(names, m[1])
	}
	return deps.Unique(names), nil
}
