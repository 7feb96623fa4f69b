// Package isomorph answers "where else does this shape occur": given a seed
// account, it extracts the transaction typology around it and enumerates
// every other place in the graph with the exact same structure.
//
// What:
//
//   - ExtractPattern: BFS ball of a given hop radius around the seed
//     (both edge directions), induced on every graph edge whose endpoints
//     both fall inside the ball.
//   - FindMatches: VF2-style state-space search for occurrences of that
//     pattern. Mappings must be exact: a bijection from pattern nodes onto
//     distinct graph nodes preserving edges, non-edges, and parallel-edge
//     multiplicities in both orientations, self-loops included.
//   - Pruning: candidates whose in/out degree cannot cover the pattern
//     node's are rejected before edge checks.
//   - Dedup: matches over the same graph-node set collapse to one; the
//     pattern's own occurrence is excluded unless WithSelfMatch is set.
//
// Key Types:
//
//   - Pattern: the extracted template (Seed, Radius, Nodes, Edges) with
//     multiplicity and degree lookups.
//   - Match: pattern-to-graph node mapping plus its sorted node set.
//   - Result: Pattern, Matches, Complete, Steps.
//   - Option / Options: WithContext, WithMaxMatches, WithBudget,
//     WithSelfMatch.
//
// Errors:
//
//   - ErrNilGraph        graph pointer is nil
//   - ErrInvalidRadius   radius < 1
//   - ErrUnknownNode     seed absent from the graph
//   - ErrTimeout         budget or deadline exhausted (partial result
//     returned, Complete=false)
//   - ErrOptionViolation invalid option supplied
//
// Determinism:
//
// Pattern nodes are assigned in a fixed order (degree-descending, ID
// tiebreak) and candidates are enumerated in sorted ID order, so identical
// graphs and parameters produce byte-identical match lists.
package isomorph
