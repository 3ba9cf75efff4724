package python

import (
	"regexp"
	"strings"
)

var installRequiresRE = regexp.MustCompile(`install_requires\s*=\s*\[`)

// SetupPy parses the install_requires list of a setup.py script. The script
// is never executed; requirements assembled at runtime are not seen.
type SetupPy struct{}

func (s *SetupPy) Type() string              { return "setup.py" }
func (s *SetupPy) Patterns() []string        { return []string{"setup.py"} }
func (s *SetupPy) Supports(name string) bool { return strings.EqualFold(name, "setup.py") }

func (s *SetupPy) Parse(path string, content []byte) ([]string, error) {
	body, ok := arrayLiteral(content, installRequiresRE)
	if !ok {
		return []string{}, nil
	}
	return quotedNames(body), nil
}
