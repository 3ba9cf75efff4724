package golang

import (
	"bufio"
	"bytes"
	"strings"

	"golang.org/x/mod/modfile"

	"github.com/matzehuels/techradar/pkg/deps"
)

// GoModParser parses go.mod files.
type GoModParser struct{}

func (p *GoModParser) Type() string              { return "go.mod" }
func (p *GoModParser) Patterns() []string        { return []string{"go.mod"} }
func (p *GoModParser) Supports(name string) bool { return name == "go.mod" }

func (p *GoModParser) Parse(path string, content []byte) ([]string, error) {
	f, err := modfile.ParseLax(path, content, nil)
	if err != nil {
		return scanGoMod(content)
	}

	names := make([]string, 0, len(f.Require))
	for _, req := range f.Require {
		names = append(names, req.Mod.Path)
	}
	return deps.Unique(names), nil
}

// scanGoMod extracts require paths without a full parse.
func scanGoMod(content []byte) ([]string, error) {
	var names []string
	inRequire := false

	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		// Handle require block
		if strings.HasPrefix(line, "require (") || line == "require(" {
			inRequire = true
			continue
		}
		if inRequire && line == ")" {
			inRequire = false
			continue
		}

		// Single-line require
		if strings.HasPrefix(line, "require ") && !strings.Contains(line, "(") {
			line = strings.TrimPrefix(line, "require ")
		} else if !inRequire {
			continue
		}

		names = append(names, parseRequireLine(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return deps.Unique(names), nil
}

func parseRequireLine(line string) string {
	if idx := strings.Index(line, "//"); idx != -1 {
		line = line[:idx]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[0], `"`)
}
