// Package golang extracts module requirements from go.mod files.
//
// [GoModParser] returns the full module path of every require directive,
// including "// indirect" requirements, in declaration order. Both the
// single-line and the parenthesized block forms are recognized.
//
// Files are parsed with golang.org/x/mod/modfile in lax mode. Content that
// modfile rejects (for example a go.mod from an old toolchain with a
// malformed directive) is scanned line by line instead, so a historical
// revision still yields its requirements.
package golang
