package deps_test

import (
	"fmt"

	"github.com/matzehuels/techradar/pkg/deps"
	"github.com/matzehuels/techradar/pkg/deps/languages"
)

func ExampleRegistry_Route() {
	reg := languages.Registry()

	for _, path := range []string{"web/package.json", "services/api/go.mod", "README.md"} {
		m, ok := reg.Route(path)
		if !ok {
			fmt.Println(path, "-> ignored")
			continue
		}
		fmt.Println(path, "->", m.Ecosystem)
	}
	// Output:
	// web/package.json -> javascript
	// services/api/go.mod -> go
	// README.md -> ignored
}

func ExampleExtract() {
	reg := languages.Registry()
	m, _ := reg.Route("package.json")

	content := []byte(`{"devDependencies": {"@types/node": "1.0.0", "lodash": "1.0.0"}}`)
	fmt.Println(deps.Extract(m.Parser, m.Path, content, nil))
	// Output:
	// [lodash]
}
