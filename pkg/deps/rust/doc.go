// Package rust extracts crate dependencies from Cargo.toml manifests.
//
// [CargoToml] returns the crate names declared in [dependencies],
// [dev-dependencies], [build-dependencies], [workspace.dependencies] and
// platform-specific [target.<cfg>.dependencies] tables, in declaration
// order. Both the inline form (serde = "1") and the table form
// ([dependencies.serde]) are recognized.
//
// A manifest that is not valid TOML is scanned line by line for "name ="
// keys inside those tables.
package rust
