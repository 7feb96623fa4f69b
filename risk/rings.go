// Package risk: fraud-ring assembly. Individually flagged accounts are
// grouped into rings: connected cycle participants, aggregator and
// disperser hubs with their counterparties, and chains of shell accounts.
package risk

import (
	"fmt"
	"math"
	"sort"

	"github.com/finlytics-lab/amlnet/cycles"
	"github.com/finlytics-lab/amlnet/txgraph"
)

// Ring pattern classifications.
const (
	PatternCycle  = "cycle"
	PatternFanIn  = "fan_in"
	PatternFanOut = "fan_out"
	PatternShell  = "shell_layering"
)

// Ring is one assembled group of related flagged accounts.
type Ring struct {
	// ID is a stable "RING_001"-style identifier, numbered in assembly
	// order.
	ID string

	// Pattern is one of the Pattern* constants.
	Pattern string

	// Members lists the accounts in the ring, sorted.
	Members []string

	// Score is the average member risk score, rounded to one decimal.
	Score float64
}

// AssembleRings groups flagged accounts into fraud rings, in four phases:
//
//  1. Connected components over cycle participants (>= 2 members).
//  2. Fan-in clusters: each aggregator hub plus its payers (>= 3 members,
//     hub not already ringed).
//  3. Fan-out clusters: each disperser hub plus its payees, same rules.
//  4. Connected components over shell accounts (>= 2 members).
//
// Components treat edges as undirected so both sides of a chain land in
// one ring. An account can belong to several rings; membership for
// reporting resolves first-assigned-wins via RingIndex. Phases and
// in-phase iteration are deterministic, so ring numbering is reproducible.
func AssembleRings(g *txgraph.Graph, flags *Flags, cycleList []cycles.Cycle, results []Result) ([]Ring, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if flags == nil {
		flags = &Flags{}
	}

	scores := make(map[string]float64, len(results))
	for _, r := range results {
		scores[r.NodeID] = r.Score
	}

	var (
		rings    []Ring
		counter  int
		assigned = make(map[string]string)
	)
	addRing := func(pattern string, members []string) {
		counter++
		r := Ring{
			ID:      fmt.Sprintf("RING_%03d", counter),
			Pattern: pattern,
			Members: members,
			Score:   roundedAvg(members, scores),
		}
		rings = append(rings, r)
		for _, m := range members {
			if _, ok := assigned[m]; !ok {
				assigned[m] = r.ID
			}
		}
	}

	// 1) Cycle components
	participants := make(map[string]bool)
	for _, c := range cycleList {
		for _, id := range c.Nodes {
			participants[id] = true
		}
	}
	comps, err := weakComponents(g, participants)
	if err != nil {
		return nil, err
	}
	for _, comp := range comps {
		if len(comp) >= 2 {
			addRing(PatternCycle, comp)
		}
	}

	// 2) Fan-in clusters
	for _, hub := range flags.FanIn {
		if _, ok := assigned[hub]; ok {
			continue
		}
		cluster, err := hubCluster(g, hub, txgraph.DirIn)
		if err != nil {
			return nil, err
		}
		if len(cluster) >= 3 {
			addRing(PatternFanIn, cluster)
		}
	}

	// 3) Fan-out clusters
	for _, hub := range flags.FanOut {
		if _, ok := assigned[hub]; ok {
			continue
		}
		cluster, err := hubCluster(g, hub, txgraph.DirOut)
		if err != nil {
			return nil, err
		}
		if len(cluster) >= 3 {
			addRing(PatternFanOut, cluster)
		}
	}

	// 4) Shell chains
	shellSet := make(map[string]bool, len(flags.Shells))
	for _, id := range flags.Shells {
		shellSet[id] = true
	}
	comps, err = weakComponents(g, shellSet)
	if err != nil {
		return nil, err
	}
	for _, comp := range comps {
		if len(comp) >= 2 {
			addRing(PatternShell, comp)
		}
	}

	return rings, nil
}

// RingIndex resolves each account to the first ring it was assembled into,
// mirroring the assignment order AssembleRings itself uses.
func RingIndex(rings []Ring) map[string]string {
	idx := make(map[string]string)
	for _, r := range rings {
		for _, m := range r.Members {
			if _, ok := idx[m]; !ok {
				idx[m] = r.ID
			}
		}
	}

	return idx
}

// hubCluster returns the hub plus its distinct counterparties on one edge
// direction, sorted.
func hubCluster(g *txgraph.Graph, hub string, dir txgraph.Direction) ([]string, error) {
	edges, err := g.Neighbors(hub, dir)
	if err != nil {
		return nil, fmt.Errorf("risk: AssembleRings: %q: %w", hub, err)
	}
	set := map[string]bool{hub: true}
	for _, e := range edges {
		if dir == txgraph.DirIn {
			set[e.From] = true
		} else {
			set[e.To] = true
		}
	}

	return sortedKeys(set), nil
}

// weakComponents finds connected components of the subgraph induced on
// set, ignoring edge direction. Components surface in sorted order of
// their smallest member; each component is itself sorted.
func weakComponents(g *txgraph.Graph, set map[string]bool) ([][]string, error) {
	ids := sortedKeys(set)
	visited := make(map[string]bool, len(ids))
	var comps [][]string

	for _, start := range ids {
		if visited[start] {
			continue
		}
		var comp []string
		queue := []string{start}
		visited[start] = true
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			comp = append(comp, id)

			edges, err := g.Neighbors(id, txgraph.DirBoth)
			if err != nil {
				return nil, fmt.Errorf("risk: AssembleRings: %q: %w", id, err)
			}
			for _, e := range edges {
				nbr := e.To
				if nbr == id {
					nbr = e.From
				}
				if set[nbr] && !visited[nbr] {
					visited[nbr] = true
					queue = append(queue, nbr)
				}
			}
		}
		sort.Strings(comp)
		comps = append(comps, comp)
	}

	return comps, nil
}

// roundedAvg averages member scores to one decimal place.
func roundedAvg(members []string, scores map[string]float64) float64 {
	if len(members) == 0 {
		return 0
	}
	var sum float64
	for _, m := range members {
		sum += scores[m]
	}

	return math.Round(sum/float64(len(members))*10) / 10
}
