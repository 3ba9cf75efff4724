// Package python extracts PyPI dependencies from Python project manifests.
//
// # Manifest Parsing
//
// Four formats are recognized, each by its own parser:
//
//   - [Requirements]: requirements.txt and variants such as
//     requirements-dev.txt, one requirement per line
//   - [SetupPy]: quoted requirements inside an install_requires list
//   - [PyProject]: PEP 621 project.dependencies and Poetry dependency tables
//   - [Pipfile]: keys of the [packages] and [dev-packages] tables
//
// Identifiers are returned as written, without PEP 503 normalization; the
// technology tables match them case-insensitively. Version specifiers,
// extras and environment markers are stripped.
//
// TOML-based formats fall back to a textual scan when the file does not
// decode, so a manifest with a single syntax error still contributes the
// dependencies that can be recognized.
package python
