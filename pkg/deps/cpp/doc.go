// Package cpp extracts C and C++ library names from build and package
// manager files.
//
//   - [CMakeLists]: the package name of every find_package() call
//   - [Conanfile]: references under [requires] and [tool_requires] in
//     conanfile.txt, and quoted "name/version" references in conanfile.py
//   - [Vcpkg]: the "dependencies" array of vcpkg.json, where each entry is a
//     port name or an object with a "name" field
//
// CMake and Conan names are returned as written; vcpkg port names are
// lowercase by convention. The technology tables match case-insensitively.
package cpp
