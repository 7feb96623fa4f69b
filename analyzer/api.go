// Package analyzer: single-engine entry points. Each is a pure function of
// the graph snapshot plus its parameters, for callers that want one engine
// without the full pipeline.
package analyzer

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/finlytics-lab/amlnet/cycles"
	"github.com/finlytics-lab/amlnet/isomorph"
	"github.com/finlytics-lab/amlnet/risk"
	"github.com/finlytics-lab/amlnet/txgraph"
)

// FlagThresholds parameterizes cycle flagging for RunCycleDetection.
// The zero value selects the engine defaults (hop band 3..5, no value
// threshold).
type FlagThresholds struct {
	// Value flags cycles whose aggregate value strictly exceeds it.
	Value *decimal.Decimal

	// SuspiciousLo and SuspiciousHi bound the flagged hop band; both zero
	// means the default band.
	SuspiciousLo int
	SuspiciousHi int
}

// RunCycleDetection enumerates cycles of at most maxHops hops and flags
// the ones crossing the supplied thresholds.
func RunCycleDetection(ctx context.Context, g *txgraph.Graph, maxHops int, ft FlagThresholds) (*cycles.Result, error) {
	opts := []cycles.Option{cycles.WithContext(ctx)}
	if ft.SuspiciousLo != 0 || ft.SuspiciousHi != 0 {
		opts = append(opts, cycles.WithSuspiciousHops(ft.SuspiciousLo, ft.SuspiciousHi))
	}
	if ft.Value != nil {
		opts = append(opts, cycles.WithValueThreshold(*ft.Value))
	}

	return cycles.FindCycles(g, maxHops, opts...)
}

// RunIsomorphismSearch finds structural clones of the radius-hop
// neighborhood around seedID. maxMatches <= 0 selects the engine default
// cap.
func RunIsomorphismSearch(ctx context.Context, g *txgraph.Graph, seedID string, radius, maxMatches int) (*isomorph.Result, error) {
	opts := []isomorph.Option{isomorph.WithContext(ctx)}
	if maxMatches > 0 {
		opts = append(opts, isomorph.WithMaxMatches(maxMatches))
	}

	return isomorph.FindMatches(g, seedID, radius, opts...)
}

// RunRiskScoring scores every account against the supplied cycles. Zero
// values for weights or thresholds select the package defaults.
func RunRiskScoring(g *txgraph.Graph, cycleList []cycles.Cycle, w risk.Weights, t risk.Thresholds) ([]risk.Result, error) {
	var opts []risk.Option
	if w != (risk.Weights{}) {
		opts = append(opts, risk.WithWeights(w))
	}
	if t != (risk.Thresholds{}) {
		opts = append(opts, risk.WithThresholds(t))
	}

	return risk.Score(g, cycleList, opts...)
}
