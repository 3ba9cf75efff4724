package radar

import (
	"io/fs"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludes are directories never searched for manifests.
var DefaultExcludes = []string{
	"**/node_modules",
	"**/.git",
	"**/dist",
	"**/build",
}

// ListFiles returns the regular files under root as slash-separated paths
// relative to root, in lexical order. Directories matching any of excludes
// (doublestar patterns against the relative path) are not descended into;
// nil means [DefaultExcludes].
func ListFiles(root string, excludes []string) ([]string, error) {
	if excludes == nil {
		excludes = DefaultExcludes
	}
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			// Unreadable entries are skipped.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel != "." && excluded(rel, excludes) {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func excluded(rel string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
