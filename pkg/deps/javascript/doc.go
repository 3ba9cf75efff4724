// Package javascript extracts npm dependencies from package.json manifests.
//
// # Manifest Parsing
//
// [PackageJSON] reads the "dependencies", "devDependencies" and
// "peerDependencies" objects and returns their keys in declaration order.
// Type-definition packages under the @types/ scope describe another
// package's API rather than a technology choice and are dropped:
//
//	names, _ := (&javascript.PackageJSON{}).Parse("package.json", content)
//
// Invalid JSON is an error; a well-formed manifest without dependency
// sections yields an empty list.
package javascript
