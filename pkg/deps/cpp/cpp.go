package cpp

import "github.com/matzehuels/techradar/pkg/deps"

// Language covers CMake, Conan and vcpkg projects.
var Language = &deps.Language{
	Name:            "cpp",
	Title:           "C/C++",
	ManifestParsers: manifestParsers,
}

func manifestParsers() []deps.ManifestParser {
	return []deps.ManifestParser{&CMakeLists{}, &Conanfile{}, &Vcpkg{}}
}
