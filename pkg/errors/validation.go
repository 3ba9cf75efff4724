package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePath validates a slash-separated path inside a repository.
// It rejects paths that could escape the working tree.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// scpLikeRE matches scp-style git remotes such as git@github.com:owner/repo.git.
var scpLikeRE = regexp.MustCompile(`^[A-Za-z0-9._-]+@[A-Za-z0-9.-]+:[A-Za-z0-9._/~-]+$`)

// ValidateRepoURL validates a remote repository URL before it is handed to git.
// Accepted forms are http(s)://, ssh://, git:// URLs and scp-style remotes.
// Option-like values and embedded whitespace are rejected so the URL can never
// be interpreted as a git flag.
func ValidateRepoURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "repository URL cannot be empty")
	}
	if strings.HasPrefix(rawURL, "-") {
		return New(ErrCodeInvalidInput, "repository URL cannot start with '-'")
	}
	for _, r := range rawURL {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "repository URL contains invalid characters")
		}
	}

	for _, scheme := range []string{"https://", "http://", "ssh://", "git://"} {
		if strings.HasPrefix(rawURL, scheme) {
			if len(rawURL) == len(scheme) {
				return New(ErrCodeInvalidInput, "repository URL has no host")
			}
			return nil
		}
	}
	if scpLikeRE.MatchString(rawURL) {
		return nil
	}
	return New(ErrCodeInvalidInput, "unsupported repository URL: %q", rawURL)
}
