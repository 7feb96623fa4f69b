// Package risk scores accounts on a 0-100 scale by blending three
// normalized behavioral components: transaction velocity, cycle
// participation, and degree centrality. Tier assignment and score stamping
// happen in the same pass, so the graph leaves Score ready for reporting.
//
// Complexity:
//
//   - Time:   O(V + C·L) (V=#nodes, C=#cycles supplied, L=avg cycle length)
//   - Memory: O(V)
package risk

import (
	"fmt"
	"time"

	"github.com/finlytics-lab/amlnet/cycles"
	"github.com/finlytics-lab/amlnet/txgraph"
)

// rawStats carries one node's un-normalized components between the two
// scoring passes.
type rawStats struct {
	countRate float64 // transactions per hour
	valueRate float64 // transferred value per hour
	part      float64 // cycles the node appears in
	degree    float64 // in+out edge count
}

// Score computes a risk Result for every node of the graph, stamps each
// node's RiskScore and RiskTier, and returns the results in sorted node
// order.
//
// Components are normalized against graph-wide maxima, so scores are
// relative to the dataset under analysis rather than absolute: the busiest
// account defines velocity 1.0. A graph with no activity scores everything
// zero. cycleList is typically the Cycles field of a cycles.Result; pass
// nil when cycle detection was skipped.
//
// Returns ErrNilGraph, ErrInvalidWeights, ErrInvalidThresholds, or
// ErrOptionViolation on invalid input.
func Score(g *txgraph.Graph, cycleList []cycles.Cycle, opts ...Option) ([]Result, error) {
	// 1) Validate the graph handle
	if g == nil {
		return nil, ErrNilGraph
	}

	// 2) Build options and validate knobs
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if err := o.Weights.validate(); err != nil {
		return nil, err
	}
	if err := o.Thresholds.validate(); err != nil {
		return nil, err
	}

	// 3) Count cycle participation per node
	part := make(map[string]int)
	for _, c := range cycleList {
		seen := make(map[string]bool, len(c.Nodes))
		for _, id := range c.Nodes {
			if !seen[id] {
				seen[id] = true
				part[id]++
			}
		}
	}

	// 4) First pass: raw components and graph-wide maxima
	nodes := g.Nodes()
	raw := make([]rawStats, len(nodes))
	var maxCount, maxValue, maxPart, maxDegree float64
	for i, id := range nodes {
		n, err := g.Node(id)
		if err != nil {
			return nil, fmt.Errorf("risk: Score: node %q: %w", id, err)
		}

		// Active window, floored at one hour so a single burst does not
		// divide by a near-zero span.
		window := n.LastSeen.Sub(n.FirstSeen)
		if window < time.Hour {
			window = time.Hour
		}
		hours := window.Hours()

		s := rawStats{
			countRate: float64(n.InCount+n.OutCount) / hours,
			valueRate: n.InSum.Add(n.OutSum).InexactFloat64() / hours,
			part:      float64(part[id]),
			degree:    float64(n.InCount + n.OutCount),
		}
		raw[i] = s

		maxCount = maxf(maxCount, s.countRate)
		maxValue = maxf(maxValue, s.valueRate)
		maxPart = maxf(maxPart, s.part)
		maxDegree = maxf(maxDegree, s.degree)
	}

	// 5) Second pass: normalize, blend, tier, stamp
	wSum := o.Weights.Velocity + o.Weights.Cyclic + o.Weights.Centrality
	results := make([]Result, len(nodes))
	for i, id := range nodes {
		s := raw[i]
		velocity := (norm(s.countRate, maxCount) + norm(s.valueRate, maxValue)) / 2
		cyclic := norm(s.part, maxPart)
		centrality := norm(s.degree, maxDegree)

		blended := o.Weights.Velocity*velocity +
			o.Weights.Cyclic*cyclic +
			o.Weights.Centrality*centrality
		score := 100 * blended / wSum
		tier := o.Thresholds.tierFor(score)

		if err := g.StampRisk(id, score, tier); err != nil {
			return nil, fmt.Errorf("risk: Score: stamp %q: %w", id, err)
		}
		results[i] = Result{
			NodeID:     id,
			Score:      score,
			Tier:       tier,
			Velocity:   velocity,
			Cyclic:     cyclic,
			Centrality: centrality,
		}
	}

	return results, nil
}

// tierFor maps a blended score onto its tier.
func (t Thresholds) tierFor(score float64) txgraph.Tier {
	switch {
	case score >= t.High:
		return txgraph.TierHigh
	case score >= t.Medium:
		return txgraph.TierMedium
	default:
		return txgraph.TierLow
	}
}

// norm scales v against the graph maximum; an all-zero column stays zero.
func norm(v, max float64) float64 {
	if max == 0 {
		return 0
	}

	return v / max
}

func maxf(a, b float64) float64 {
	if b > a {
		return b
	}

	return a
}
