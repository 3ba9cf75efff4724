package java

import (
	"regexp"
	"strings"

	"github.com/matzehuels/techradar/pkg/deps"
)

var (
	// coordinateRE matches the group:artifact prefix of a quoted coordinate.
	coordinateRE = regexp.MustCompile(`['"]([a-zA-Z0-9_.-]+:[a-zA-Z0-9_.-]+)`)
	// mapNotationRE matches group: 'g', name: 'a' declarations.
	mapNotationRE = regexp.MustCompile(`group\s*[:=]\s*['"]([a-zA-Z0-9_.-]+)['"]\s*,\s*name\s*[:=]\s*['"]([a-zA-Z0-9_.-]+)['"]`)
)

// GradleParser parses Groovy and Kotlin Gradle build scripts.
type GradleParser struct{}

func (g *GradleParser) Type() string       { return "build.gradle" }
func (g *GradleParser) Patterns() []string { return []string{"build.gradle", "build.gradle.kts"} }

func (g *GradleParser) Supports(name string) bool {
	return name == "build.gradle" || name == "build.gradle.kts"
}

func (g *GradleParser) Parse(path string, content []byte) ([]string, error) {
	var names []string
	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "*") {
			continue
		}
		for _, m := range coordinateRE.FindAllStringSubmatch(line, -1) {
			names = append(names, m[1])
		}
		for _, m := range mapNotationRE.FindAllStringSubmatch(line, -1) {
			names = append(names, m[1]+":"+m[2])
		}
	}
	return deps.Unique(names), nil
}
