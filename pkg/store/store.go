// Package store persists technology radars keyed by repository URL.
//
// A saved radar keeps the user-curated stages (assess, trial, hold) next to
// the analyzed ones, so a later analysis can be merged into it with
// [radar.Matrix.Merge].
//
// Backends:
//   - [MemoryStore]: process-local, for development and tests
//   - [FileStore]: JSON files under ~/.config/techradar, for the CLI
//   - [MongoStore]: MongoDB collection, for servers
package store

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/matzehuels/techradar/pkg/radar"
)

// DefaultLoadTimeout bounds a single Load.
const DefaultLoadTimeout = 2 * time.Second

// Record is a saved radar.
type Record struct {
	ID      string       `json:"id" bson:"_id"`
	RepoURL string       `json:"repoUrl" bson:"repoUrl"`
	Matrix  radar.Matrix `json:"matrix" bson:"matrix"`
	SavedAt time.Time    `json:"savedAt" bson:"savedAt"`
}

// Summary describes a saved radar without its items.
type Summary struct {
	ID      string    `json:"id" bson:"_id"`
	RepoURL string    `json:"repoUrl" bson:"repoUrl"`
	SavedAt time.Time `json:"savedAt" bson:"savedAt"`
}

// Store persists radar records. Implementations must be safe for
// concurrent use.
type Store interface {
	// Save writes rec, replacing any record with the same ID. An empty ID
	// is derived from RepoURL; a zero SavedAt is set to now.
	Save(ctx context.Context, rec *Record) error

	// Load returns the record with the given ID, or nil, nil when there is
	// none. It gives up after the store's load timeout.
	Load(ctx context.Context, id string) (*Record, error)

	// Delete removes a record. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error

	// List returns all records, most recently saved first.
	List(ctx context.Context) ([]Summary, error)

	// Close releases the backend.
	Close(ctx context.Context) error
}

var (
	schemeRE = regexp.MustCompile(`^https?://`)
	nonIDRE  = regexp.MustCompile(`[^a-z0-9]`)
)

// RepoDocID derives a stable record ID from a repository URL, so
// "https://github.com/user/repo.git" and "https://github.com/User/repo"
// share "github_com_user_repo".
func RepoDocID(repoURL string) string {
	id := strings.ToLower(strings.TrimSpace(repoURL))
	id = schemeRE.ReplaceAllString(id, "")
	id = strings.TrimSuffix(id, ".git")
	return nonIDRE.ReplaceAllString(id, "_")
}

// prepare fills the derived fields of rec before it is written.
func prepare(rec *Record) {
	if rec.ID == "" {
		rec.ID = RepoDocID(rec.RepoURL)
	}
	if rec.SavedAt.IsZero() {
		rec.SavedAt = time.Now().UTC()
	}
}
