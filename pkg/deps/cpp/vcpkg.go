package cpp

import (
	"encoding/json"
	"strings"

	"github.com/matzehuels/techradar/pkg/deps"
)

// Vcpkg parses vcpkg.json manifests.
type Vcpkg struct{}

func (v *Vcpkg) Type() string              { return "vcpkg.json" }
func (v *Vcpkg) Patterns() []string        { return []string{"vcpkg.json"} }
func (v *Vcpkg) Supports(name string) bool { return strings.EqualFold(name, "vcpkg.json") }

func (v *Vcpkg) Parse(path string, content []byte) ([]string, error) {
	var manifest struct {
		Dependencies []vcpkgDependency `json:"dependencies"`
	}
	if err := json.Unmarshal(content, &manifest); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(manifest.Dependencies))
	for _, d := range manifest.Dependencies {
		names = append(names, d.Name)
	}
	return deps.Unique(names), nil
}

// vcpkgDependency is either a bare port name or an object with a name.
type vcpkgDependency struct {
	Name string
}

func (d *vcpkgDependency) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		d.Name = name
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	d.Name = obj.Name
	return nil
}
