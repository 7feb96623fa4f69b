// Package isomorph: pattern extraction.
//
// ExtractPattern cuts the k-hop ball around a seed node - frontier BFS over
// both edge directions - and induces the subgraph on it: every graph edge
// with both endpoints inside the ball belongs to the pattern. The result is
// the typology template FindMatches searches for.
package isomorph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/finlytics-lab/amlnet/txgraph"
)

// queueItem pairs a node ID with its BFS depth from the seed.
type queueItem struct {
	id    string
	depth int
}

// ExtractPattern returns the induced subgraph of all nodes reachable from
// seedID within radius hops, ignoring edge direction for reachability.
// Returns ErrNilGraph, ErrInvalidRadius, or ErrUnknownNode.
// Complexity: O(ball vertices + E) - the induction pass scans all edges.
func ExtractPattern(g *txgraph.Graph, seedID string, radius int) (*Pattern, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if radius < 1 {
		return nil, fmt.Errorf("isomorph: ExtractPattern(%q): radius=%d: %w", seedID, radius, ErrInvalidRadius)
	}
	if !g.HasNode(seedID) {
		return nil, fmt.Errorf("isomorph: ExtractPattern(%q): %w", seedID, ErrUnknownNode)
	}

	// Frontier BFS across both directions up to the radius.
	visited := map[string]bool{seedID: true}
	queue := []queueItem{{id: seedID}}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		if item.depth == radius {
			continue
		}
		edges, err := g.Neighbors(item.id, txgraph.DirBoth)
		if err != nil {
			return nil, fmt.Errorf("isomorph: ExtractPattern(%q): Neighbors(%q): %w", seedID, item.id, err)
		}
		for _, e := range edges {
			nbr := e.To
			if nbr == item.id {
				nbr = e.From
			}
			if !visited[nbr] {
				visited[nbr] = true
				queue = append(queue, queueItem{id: nbr, depth: item.depth + 1})
			}
		}
	}

	// Induce the subgraph: keep every edge with both endpoints in the ball.
	p := &Pattern{
		Seed:   seedID,
		Radius: radius,
		mult:   make(map[string]map[string]int),
		inDeg:  make(map[string]int),
		outDeg: make(map[string]int),
	}
	for id := range visited {
		p.Nodes = append(p.Nodes, id)
	}
	sort.Strings(p.Nodes)
	for _, e := range g.Edges() {
		if !visited[e.From] || !visited[e.To] {
			continue
		}
		p.Edges = append(p.Edges, e)
		if p.mult[e.From] == nil {
			p.mult[e.From] = make(map[string]int)
		}
		p.mult[e.From][e.To]++
		p.outDeg[e.From]++
		p.inDeg[e.To]++
	}
	p.setSig = joinIDs(p.Nodes)
	p.order = mappingOrder(p)

	return p, nil
}

// mappingOrder fixes the deterministic order in which pattern nodes are
// assigned during the search: densest first (tighter constraints prune
// earlier), node ID as tiebreak.
func mappingOrder(p *Pattern) []string {
	order := append([]string(nil), p.Nodes...)
	sort.SliceStable(order, func(i, j int) bool {
		di := p.inDeg[order[i]] + p.outDeg[order[i]]
		dj := p.inDeg[order[j]] + p.outDeg[order[j]]
		if di != dj {
			return di > dj
		}

		return order[i] < order[j]
	})

	return order
}

// joinIDs renders a sorted ID slice as one comparable signature.
func joinIDs(ids []string) string {
	return strings.Join(ids, ",")
}
