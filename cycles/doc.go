// Package cycles finds directed cycles in a transaction graph: the
// money-laundering "layering" signature where funds travel through
// intermediate accounts and return to their origin.
//
// What:
//
//   - FindCycles: depth-bounded DFS from every node along outgoing edges,
//     implemented with an explicit frame stack (no native recursion), with
//     cooperative cancellation and an optional work budget checked at every
//     edge expansion.
//   - Canonicalization: every found cycle is rotated so the smallest node
//     ID leads (Booth's minimal rotation, O(L)); rotations of one physical
//     cycle therefore dedupe to a single entry. Direction is preserved.
//   - Flagging: cycles are marked as layering candidates when aggregate
//     value exceeds a caller-supplied threshold or the hop count falls in a
//     caller-supplied suspicious band (default 3..5).
//   - Self-loops count as degenerate hop-1 cycles and are reported
//     separately from multi-hop cycles, one per self-loop edge.
//
// Key Types:
//
//   - Cycle: closed node sequence, traversed edges, hops, aggregate value,
//     flag.
//   - Result: Cycles, SelfLoops, Complete, Steps.
//   - Option / Options: WithContext, WithValueThreshold, WithSuspiciousHops,
//     WithBudget, WithMaxCycles.
//
// Errors:
//
//   - ErrNilGraph        graph pointer is nil
//   - ErrInvalidBound    maxHops < 1
//   - ErrTimeout         budget or deadline exhausted (partial result
//     returned, Complete=false)
//   - ErrOptionViolation invalid option supplied
//
// Determinism:
//
// Start nodes are iterated in sorted order, adjacency in insertion order,
// and the final cycle list is sorted by canonical signature: identical
// graphs and parameters produce byte-identical results.
package cycles
