// Package ecp implements the core of an in-memory approximate
// nearest-neighbor search engine built on the extended Cluster
// Pruning (eCP) family.
//
// Given a corpus of fixed-dimension descriptors, CreateIndex builds a
// hierarchical tree of representative descriptors ("leaders"). Query
// descends the tree through the b most promising branches at each
// level and accumulates a top-k result under a chosen distance
// metric. Insert walks the tree to the nearest leaf cluster, appends
// the new point, and reclusters bottom-up whenever a size policy is
// violated, growing the root when necessary.
//
// The package is single-threaded with respect to any one *Index: Query
// calls against the same index may run concurrently with each other,
// but Insert must not overlap with any other operation on that index.
// Distinct indices are fully independent and may have different
// dimensions and metrics.
//
// ecp does not persist an index to storage, does not support deletion
// of individual points, and does not guarantee exact nearest
// neighbors — recall is traded for speed via the branching factor b.
package ecp
