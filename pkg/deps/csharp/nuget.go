package csharp

import (
	"regexp"
	"strings"

	"github.com/matzehuels/techradar/pkg/deps"
)

var (
	packageReferenceRE = regexp.MustCompile(`<(?:PackageReference|PackageVersion)\s+Include\s*=\s*"([^"]+)"`)
	packageIDRE        = regexp.MustCompile(`<package\s+id\s*=\s*"([^"]+)"`)
)

const centralPackagesFile = "Directory.Packages.props"

// ProjectFile parses *.csproj and Directory.Packages.props files.
type ProjectFile struct{}

func (p *ProjectFile) Type() string       { return "csproj" }
func (p *ProjectFile) Patterns() []string { return []string{"*.csproj", centralPackagesFile} }

func (p *ProjectFile) Supports(name string) bool {
	return deps.MatchFilename(p.Patterns(), name)
}

func (p *ProjectFile) Parse(path string, content []byte) ([]string, error) {
	return submatches(packageReferenceRE, content), nil
}

// PackagesConfig parses legacy packages.config files.
type PackagesConfig struct{}

func (p *PackagesConfig) Type() string              { return "packages.config" }
func (p *PackagesConfig) Patterns() []string        { return []string{"packages.config"} }
func (p *PackagesConfig) Supports(name string) bool { return strings.EqualFold(name, "packages.config") }

func (p *PackagesConfig) Parse(path string, content []byte) ([]string, error) {
	return submatches(packageIDRE, content), nil
}

func submatches(re *regexp.Regexp, content []byte) []string {
	var names []string
	for _, m := range re.FindAllSubmatch(content, -1) {
		names = append(names, strings.TrimSpace(string(m[1])))
	}
	return deps.Unique(names)
}
