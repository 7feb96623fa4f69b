// Package analyzer wires the engine packages into one analysis pipeline:
// cycle detection and pattern detection run concurrently over a read-only
// graph snapshot, then risk scoring, ring assembly, and report building
// run over their combined output.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/finlytics-lab/amlnet/cycles"
	"github.com/finlytics-lab/amlnet/risk"
	"github.com/finlytics-lab/amlnet/txgraph"
)

// ErrNilGraph is returned when Run is handed a nil graph.
var ErrNilGraph = errors.New("analyzer: graph is nil")

// Analyzer executes the full analysis pipeline over graph snapshots.
// One Analyzer is safe for concurrent Run calls as long as each call gets
// its own graph, or the shared graph stays unmutated for the duration.
type Analyzer struct {
	cfg Config
	log *zap.Logger
}

// New builds an Analyzer; zero-valued Config fields fall back to defaults
// and a nil Logger disables logging.
func New(cfg Config) *Analyzer {
	cfg = cfg.withDefaults()
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Analyzer{cfg: cfg, log: log}
}

// Run executes the pipeline: concurrent cycle + pattern detection, then
// scoring, ring assembly, and report building. The graph must not be
// mutated while Run executes.
//
// Engine failures, timeouts included, abort the whole run: a partial
// analysis would misstate which accounts are clean. Callers retry with a
// larger budget or a smaller hop bound.
func (a *Analyzer) Run(ctx context.Context, g *txgraph.Graph) (*Report, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	runID := uuid.NewString()
	start := time.Now()
	a.log.Info("analysis_started",
		zap.String("run_id", runID),
		zap.Int("nodes", g.NodeCount()),
		zap.Int("edges", g.EdgeCount()),
	)

	// Detection phase: both engines only read the graph, so they share it.
	var (
		cycRes *cycles.Result
		flags  *risk.Flags
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		opts := []cycles.Option{
			cycles.WithContext(egCtx),
			cycles.WithSuspiciousHops(a.cfg.SuspiciousLo, a.cfg.SuspiciousHi),
			cycles.WithBudget(a.cfg.Budget),
		}
		if a.cfg.ValueThreshold != nil {
			opts = append(opts, cycles.WithValueThreshold(*a.cfg.ValueThreshold))
		}
		var err error
		cycRes, err = cycles.FindCycles(g, a.cfg.MaxHops, opts...)

		return err
	})
	eg.Go(func() error {
		var err error
		flags, err = risk.DetectPatterns(g,
			risk.WithContext(egCtx),
			risk.WithWindow(a.cfg.Window),
			risk.WithMinBurst(a.cfg.MinBurst),
			risk.WithShellBand(a.cfg.ShellLo, a.cfg.ShellHi),
		)

		return err
	})
	if err := eg.Wait(); err != nil {
		a.log.Error("analysis_failed", zap.String("run_id", runID), zap.Error(err))
		return nil, fmt.Errorf("analyzer: Run %s: %w", runID, err)
	}

	// Scoring and assembly consume the detection output sequentially.
	results, err := risk.Score(g, cycRes.Cycles,
		risk.WithWeights(a.cfg.Weights),
		risk.WithThresholds(a.cfg.Thresholds),
	)
	if err != nil {
		a.log.Error("analysis_failed", zap.String("run_id", runID), zap.Error(err))
		return nil, fmt.Errorf("analyzer: Run %s: %w", runID, err)
	}
	rings, err := risk.AssembleRings(g, flags, cycRes.Cycles, results)
	if err != nil {
		a.log.Error("analysis_failed", zap.String("run_id", runID), zap.Error(err))
		return nil, fmt.Errorf("analyzer: Run %s: %w", runID, err)
	}

	rep := buildReport(g, cycRes, flags, results, rings, runID, time.Since(start), a.cfg.HighVelocity)
	a.log.Info("analysis_complete",
		zap.String("run_id", runID),
		zap.Int("cycles", len(cycRes.Cycles)),
		zap.Int("self_loops", len(cycRes.SelfLoops)),
		zap.Int("fan_in", len(flags.FanIn)),
		zap.Int("fan_out", len(flags.FanOut)),
		zap.Int("shells", len(flags.Shells)),
		zap.Int("rings", len(rings)),
		zap.Int("suspicious", len(rep.SuspiciousAccounts)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return rep, nil
}
