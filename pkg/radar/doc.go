// Package radar turns the manifests of a repository into a technology radar.
//
// # Overview
//
// An analysis runs in four steps:
//
//  1. Discovery: [Analyzer.DiscoverManifests] routes the repository's file
//     list through a [deps.Registry]; files no parser claims are ignored.
//  2. Extraction: [Analyzer.ExtractCurrent] parses each manifest's working
//     tree content into ecosystem-tagged identifiers.
//  3. History: [Analyzer.WalkHistory] reads every earlier revision of each
//     manifest with a [history.Walker].
//  4. Aggregation: identifiers found only in history are [Removed], both
//     sets are grouped into technologies with [Aggregate], and [Reconcile]
//     folds removed identifiers of still-used technologies into the adopted
//     item.
//
// [Analyzer.Analyze] composes the steps and always produces a [Result]:
// a manifest that cannot be read or parsed, or a commit that is not
// available locally, reduces coverage but never fails the run.
//
// # Matrix
//
// The output is a [Matrix] with the five adoption stages of a technology
// radar. Analysis fills Adopt and Remove; Assess, Trial and Hold are
// curated by users and preserved by the store.
package radar
