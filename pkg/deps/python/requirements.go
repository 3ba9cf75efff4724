package python

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/matzehuels/techradar/pkg/deps"
)

const requirementsPattern = "requirements*.txt"

// Requirements parses pip requirements files.
type Requirements struct{}

func (r *Requirements) Type() string       { return "requirements.txt" }
func (r *Requirements) Patterns() []string { return []string{requirementsPattern} }

func (r *Requirements) Supports(name string) bool {
	ok, _ := doublestar.Match(requirementsPattern, strings.ToLower(name))
	return ok
}

func (r *Requirements) Parse(path string, content []byte) ([]string, error) {
	var names []string
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' || line[0] == '-' {
			continue
		}
		if strings.Contains(line, "://") || strings.HasPrefix(line, "git+") {
			continue
		}
		names = append(names, requirementName(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return deps.Unique(names), nil
}
