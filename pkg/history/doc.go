// Package history reconstructs the dependency lists a manifest file declared
// at each commit that touched it.
//
// [Walker.Walk] lists the file's commits (following renames), drops commits
// whose objects are not available locally, reads the file at each remaining
// commit and parses it with the manifest's parser. The resulting
// [Snapshot] list is ordered oldest first.
//
// Failures are absorbed at the narrowest scope: an unavailable commit or an
// unreadable revision is skipped, an unparseable revision yields an empty
// snapshot, and a file whose log cannot be read yields no snapshots at all.
// Walk itself never fails.
//
// Revisions are read concurrently with a bounded number of git processes.
// Cancelling the context stops dispatching new reads; Walk then returns the
// snapshots completed so far.
package history
