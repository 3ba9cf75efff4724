package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// AnalysisKeyOpts are the analysis options that change the result.
type AnalysisKeyOpts struct {
	SkipHistory bool `json:"skip_history"`
}

// AnalysisKey returns the key of an analysis of the repository at commit
// head over manifests, using mapping tables with the given fingerprint.
// The manifest order does not matter.
func AnalysisKey(head string, manifests []string, fingerprint string, opts AnalysisKeyOpts) string {
	sorted := slices.Clone(manifests)
	slices.Sort(sorted)
	return hashKey("analysis", head, sorted, fingerprint, opts)
}
