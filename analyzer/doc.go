// Package analyzer composes the engine packages into the full AML
// analysis pipeline and shapes their output into a structured report.
//
// What:
//
//   - Analyzer.Run: over one read-only graph snapshot, runs cycle
//     detection and structuring-pattern detection concurrently (errgroup),
//     then risk scoring, fraud-ring assembly, and report building. Every
//     run gets a UUID and start/completion events on the configured zap
//     logger.
//   - RunCycleDetection / RunIsomorphismSearch / RunRiskScoring:
//     single-engine entry points, each a pure function of the graph plus
//     parameters, for callers composing their own pipeline.
//   - Report: suspicious accounts (score, tier, pattern tags, ring
//     membership), fraud rings, and summary counts, JSON-tagged for
//     whatever encoding the caller applies.
//
// Key Types:
//
//   - Config / DefaultConfig: every pipeline knob in one place; zero
//     values fall back to defaults.
//   - Report, SuspiciousAccount, Ring, Summary: the structured output.
//   - FlagThresholds: cycle-flagging parameters for RunCycleDetection.
//
// The graph must stay unmutated while Run executes: the detection phase
// shares it between two goroutines under the read-shared, write-exclusive
// discipline the engines assume.
package analyzer
