// Package git provides the read-only version-control operations used by
// history analysis.
//
// # Operations
//
// The [Repository] interface lists everything the history walker needs:
//
//   - [Repository.ListAvailableCommits]: commits reachable from any local ref
//   - [Repository.ListCommitsForFile]: commits that touched a file, newest
//     first, following renames
//   - [Repository.ReadFileAtRevision]: a file's content at a commit
//
// [Repo] implements it by running the git binary in the working directory.
// Commands run with a per-call timeout and never prompt or fetch: lazy
// fetching of missing blobs in partial clones is disabled so that an absent
// object fails fast instead of reaching for the network.
//
// # Partial Clones
//
// Under shallow or sparse clones the log of a file can name commits whose
// objects were never fetched. Callers check [CommitSet.Available] before
// reading a revision rather than relying on the read to fail.
package git
