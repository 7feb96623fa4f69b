// Package txgraph models a financial transaction network as a directed
// temporal multigraph: accounts are nodes, individual transactions are
// edges, and every analysis engine in this library runs over one Graph
// snapshot built per request.
//
// What:
//
//   - Graph: thread-safe directed multigraph with ordered adjacency,
//     O(1) pair multiplicity, and incrementally-maintained node aggregates
//     (in/out counts, in/out sums, first/last-seen window).
//   - Node: account identity, optional label/metadata, aggregates, and the
//     risk score/tier stamped by a scoring pass.
//   - Edge: one immutable transaction (timestamp, decimal amount, optional
//     currency and kind tags). Parallel edges are never collapsed.
//   - Build: the ingestion surface - seeds then records, abort on first
//     failure so no partially-built graph reaches the engines.
//
// Why:
//   - Cycle detection, isomorphism search, and risk scoring all need the
//     same traversal primitives over one append-only snapshot.
//   - Deterministic adjacency order (insertion order) keeps every analysis
//     result reproducible run over run.
//
// Key Types:
//
//   - Graph, Node, Edge
//   - Tier: TierUnscored, TierLow, TierMedium, TierHigh
//   - Direction: DirOut, DirIn, DirBoth
//   - Seed, Record, BuildOption
//
// Complexity:
//
//   - AddNode, AddEdge, HasEdge, Multiplicity: O(1) amortized
//   - Neighbors: O(d) for d incident edges
//   - Nodes: O(V·logV); Edges: O(E)
//
// Errors:
//
//   - ErrEmptyNodeID   empty node ID
//   - ErrDuplicateNode re-adding an existing account
//   - ErrUnknownNode   edge or lookup referencing an absent account
//   - ErrEdgeNotFound  lookup of an absent edge ID
//   - ErrBadAmount     negative transaction amount
//   - ErrBadTimestamp  zero transaction timestamp
//
// Concurrency:
//
// Two RWMutexes (node catalog vs. edges+adjacency) let concurrent read-only
// analyses share one Graph. Within one request the graph is read-shared,
// write-exclusive: build first, analyze after.
package txgraph
