// Package risk turns raw graph structure into analyst-facing signals: a
// 0-100 risk score per account, structuring-pattern flags, and assembled
// fraud rings.
//
// What:
//
//   - Score: blends three normalized components per node - transaction
//     velocity (count and value rates over the node's active window),
//     cycle participation, and degree centrality - into a weighted 0-100
//     score, assigns a tier, and stamps both onto the graph.
//   - DetectPatterns: flags aggregators (fan-in bursts), dispersers
//     (fan-out bursts), and shell layers (thinly-used accounts forwarding
//     to one another) using a sliding burst window over sorted edge
//     timestamps.
//   - AssembleRings: groups flagged accounts into fraud rings - connected
//     cycle components, hub-and-counterparty clusters, shell chains - with
//     stable RING_001-style identifiers and averaged member scores.
//
// Key Types:
//
//   - Result: per-node score, tier, and the three components.
//   - Weights / Thresholds: the score blend and tier cut-offs, validated.
//   - Flags: sorted aggregator/disperser/shell account lists.
//   - Ring: one assembled group with pattern classification and score.
//   - Option / Options: WithContext, WithWeights, WithThresholds,
//     WithWindow, WithMinBurst, WithShellBand.
//
// Errors:
//
//   - ErrNilGraph          graph pointer is nil
//   - ErrInvalidWeights    negative weight or zero weight sum
//   - ErrInvalidThresholds tier cut-offs out of order
//   - ErrTimeout           pattern detection cancelled (partial Flags)
//   - ErrOptionViolation   invalid option supplied
//
// Determinism:
//
// Normalization denominators are graph-wide maxima, nodes are scored in
// sorted order, and ring assembly phases iterate sorted inputs: identical
// graphs, cycles, and parameters reproduce identical output, ring numbers
// included.
package risk
