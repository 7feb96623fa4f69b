// Package txgraph: Graph method implementations.
//
// This file provides thread-safe, O(1) (amortized) operations for node and
// edge management on the Graph type defined in types.go. We leverage separate
// RWMutex locks for nodes (muNode) and edges+adjacency (muEdgeAdj) to
// minimize contention; the fixed lock order is muNode before muEdgeAdj.
// Adjacency is stored as ordered per-node slices (insertion order), and
// pairCount[from][to] keeps constant-time multiplicity lookups.

package txgraph

import (
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
)

const (
	edgeIDPrefix = "t"
)

// AddNode inserts a new node with the given ID into the Graph.
// Returns ErrEmptyNodeID if id is empty, ErrDuplicateNode if the id is
// already present: re-adding an account is a collaborator bug, not a no-op.
// Complexity: O(1) amortized.
func (g *Graph) AddNode(id string, opts ...NodeOption) error {
	// Validate input: empty IDs are not allowed
	if id == "" {
		return ErrEmptyNodeID
	}
	// Acquire write lock on the node catalog only
	g.muNode.Lock()
	defer g.muNode.Unlock()

	// Reject duplicates so an ingestion bug cannot silently merge accounts
	if _, exists := g.nodes[id]; exists {
		return fmt.Errorf("txgraph: AddNode(%q): %w", id, ErrDuplicateNode)
	}
	// Insert the Node and apply per-node options
	n := &Node{ID: id, Metadata: make(map[string]string)}
	for _, opt := range opts {
		opt(n)
	}
	g.nodes[id] = n

	return nil
}

// HasNode reports whether a node with the given ID exists in the graph.
// Complexity: O(1).
func (g *Graph) HasNode(id string) bool {
	if id == "" {
		return false // empty ID considered absent
	}
	g.muNode.RLock()
	defer g.muNode.RUnlock()
	_, exists := g.nodes[id]

	return exists
}

// Node returns the live *Node for id, or ErrUnknownNode.
// Callers must treat the returned struct as read-only while any concurrent
// analysis shares the graph; risk stamping goes through StampRisk.
// Complexity: O(1).
func (g *Graph) Node(id string) (*Node, error) {
	if id == "" {
		return nil, ErrEmptyNodeID
	}
	g.muNode.RLock()
	defer g.muNode.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("txgraph: Node(%q): %w", id, ErrUnknownNode)
	}

	return n, nil
}

// AddEdge records one transaction from 'from' to 'to' and returns its unique
// Edge.ID. Parallel edges are always kept; self-loops are allowed. Endpoints
// are never auto-created: the ingestion collaborator registers accounts
// before transactions, so a missing endpoint fails with ErrUnknownNode.
//
// Returns ErrEmptyNodeID, ErrBadAmount, ErrBadTimestamp, ErrUnknownNode.
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(from, to string, ts time.Time, amount decimal.Decimal, opts ...EdgeOption) (string, error) {
	// 1) Input validation
	if from == "" || to == "" {
		return "", ErrEmptyNodeID
	}
	// 2) Amount constraint: negative transfers are malformed records
	if amount.IsNegative() {
		return "", fmt.Errorf("txgraph: AddEdge(%q→%q): amount %s: %w", from, to, amount, ErrBadAmount)
	}
	// 3) Timestamp constraint: the temporal window math needs a real instant
	if ts.IsZero() {
		return "", fmt.Errorf("txgraph: AddEdge(%q→%q): %w", from, to, ErrBadTimestamp)
	}

	// 4) Lock the node catalog for the whole operation: we verify endpoints
	//    and update their aggregates under one critical section.
	g.muNode.Lock()
	defer g.muNode.Unlock()

	src, ok := g.nodes[from]
	if !ok {
		return "", fmt.Errorf("txgraph: AddEdge(%q→%q): source: %w", from, to, ErrUnknownNode)
	}
	dst, ok := g.nodes[to]
	if !ok {
		return "", fmt.Errorf("txgraph: AddEdge(%q→%q): destination: %w", from, to, ErrUnknownNode)
	}

	// 5) Lock edges & adjacency (muNode is already held; fixed order)
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	// 6) Generate a new atomic Edge.ID
	eid := fmt.Sprintf("%s%d", edgeIDPrefix, atomic.AddUint64(&g.nextEdgeID, 1))

	// 7) Construct the Edge and apply per-edge options
	e := &Edge{ID: eid, From: from, To: to, Timestamp: ts, Amount: amount}
	for _, opt := range opts {
		opt(e)
	}

	// 8) Store in the global map, the insertion-order list, and adjacency
	g.edges[eid] = e
	g.edgeList = append(g.edgeList, e)
	g.out[from] = append(g.out[from], e)
	g.in[to] = append(g.in[to], e)
	if g.pairCount[from] == nil {
		g.pairCount[from] = make(map[string]int)
	}
	g.pairCount[from][to]++

	// 9) Maintain endpoint aggregates incrementally
	src.OutCount++
	src.OutSum = src.OutSum.Add(amount)
	src.touch(ts)
	dst.InCount++
	dst.InSum = dst.InSum.Add(amount)
	dst.touch(ts)

	return eid, nil
}

// touch widens the node's active window to include ts.
func (n *Node) touch(ts time.Time) {
	if n.FirstSeen.IsZero() || ts.Before(n.FirstSeen) {
		n.FirstSeen = ts
	}
	if ts.After(n.LastSeen) {
		n.LastSeen = ts
	}
}

// HasEdge reports true if at least one edge from 'from' to 'to' exists.
// Complexity: O(1).
func (g *Graph) HasEdge(from, to string) bool {
	return g.Multiplicity(from, to) > 0
}

// Multiplicity returns the number of parallel edges on the ordered pair.
// Complexity: O(1).
func (g *Graph) Multiplicity(from, to string) int {
	if from == "" || to == "" {
		return 0
	}
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return g.pairCount[from][to]
}

// Edge returns the edge with the given ID, or ErrEdgeNotFound.
// Complexity: O(1).
func (g *Graph) Edge(id string) (*Edge, error) {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	e, ok := g.edges[id]
	if !ok {
		return nil, fmt.Errorf("txgraph: Edge(%q): %w", id, ErrEdgeNotFound)
	}

	return e, nil
}

// Neighbors returns the edges incident to node 'id' on the requested side:
// DirOut for outgoing, DirIn for incoming, DirBoth for outgoing followed by
// incoming. The result is a fresh slice in insertion order, so traversal
// over it is deterministic. Returns ErrUnknownNode for an absent id.
// Complexity: O(d), where d is the number of returned edges.
func (g *Graph) Neighbors(id string, dir Direction) ([]*Edge, error) {
	if id == "" {
		return nil, ErrEmptyNodeID
	}
	// Ensure the node exists
	g.muNode.RLock()
	_, ok := g.nodes[id]
	g.muNode.RUnlock()
	if !ok {
		return nil, fmt.Errorf("txgraph: Neighbors(%q): %w", id, ErrUnknownNode)
	}

	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	var out []*Edge
	switch dir {
	case DirOut:
		out = append(out, g.out[id]...)
	case DirIn:
		out = append(out, g.in[id]...)
	case DirBoth:
		out = append(out, g.out[id]...)
		out = append(out, g.in[id]...)
	}

	return out, nil
}

// Degree returns the in- and out-degree of id, counting parallel edges.
// A self-loop counts once on each side.
// Complexity: O(1).
func (g *Graph) Degree(id string) (in, out int, err error) {
	n, err := g.Node(id)
	if err != nil {
		return 0, 0, err
	}

	return n.InCount, n.OutCount, nil
}

// Nodes returns all node IDs in sorted order.
// Complexity: O(V·logV).
func (g *Graph) Nodes() []string {
	g.muNode.RLock()
	defer g.muNode.RUnlock()
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// Edges returns all edges in insertion order (one entry per transaction).
// Complexity: O(E).
func (g *Graph) Edges() []*Edge {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	out := make([]*Edge, len(g.edgeList))
	copy(out, g.edgeList)

	return out
}

// NodeCount returns the total number of nodes. O(1).
func (g *Graph) NodeCount() int {
	g.muNode.RLock()
	defer g.muNode.RUnlock()

	return len(g.nodes)
}

// EdgeCount returns the total number of edges. O(1).
func (g *Graph) EdgeCount() int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.edgeList)
}

// TotalVolume returns the summed amount over all edges.
// Complexity: O(E).
func (g *Graph) TotalVolume() decimal.Decimal {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	total := decimal.Zero
	for _, e := range g.edgeList {
		total = total.Add(e.Amount)
	}

	return total
}

// StampRisk writes the scoring result onto the node.
// Returns ErrUnknownNode if id is absent.
// Complexity: O(1).
func (g *Graph) StampRisk(id string, score float64, tier Tier) error {
	if id == "" {
		return ErrEmptyNodeID
	}
	g.muNode.Lock()
	defer g.muNode.Unlock()
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("txgraph: StampRisk(%q): %w", id, ErrUnknownNode)
	}
	n.RiskScore = score
	n.RiskTier = tier

	return nil
}
