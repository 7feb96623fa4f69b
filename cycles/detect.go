// Package cycles implements bounded enumeration of directed simple cycles
// over a txgraph.Graph: the layering-signature search of the analytic core.
//
// FindCycles runs a depth-bounded, explicitly-stacked DFS from every node
// along outgoing edges, tracking the current path as an ordered sequence
// plus an in-path set. A path closing back on its start node with 2..maxHops
// edges is a cycle; found cycles are canonicalized by minimal rotation
// (Booth) and deduplicated by signature, so rotations of one physical cycle
// appear at most once. The final list is sorted for deterministic output.
//
// Complexity:
//
//   - Time:   exponential in the worst case; maxHops is the mandatory
//     caller-supplied bound that keeps the search tractable.
//   - Memory: O(V + maxHops) per start (explicit stack, no recursion).
package cycles

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finlytics-lab/amlnet/txgraph"
)

// Internal stop causes distinguished from real failures.
var (
	errBudget = errors.New("expansion budget exhausted")
	errCap    = errors.New("cycle cap reached")
)

// frame tracks one node on the DFS path plus the index of the next outgoing
// edge to expand, replacing native recursion with an explicit stack.
type frame struct {
	id   string
	next int
}

// walker encapsulates mutable search state.
type walker struct {
	opts    Options
	ctx     context.Context
	maxHops int

	// out is a per-node snapshot of outgoing adjacency, taken once so the
	// search never re-locks the graph mid-traversal.
	out map[string][]*txgraph.Edge

	steps     uint64
	seen      map[string]struct{}
	cycles    []Cycle
	selfLoops []Cycle
}

// FindCycles enumerates all distinct directed simple cycles of at most
// maxHops edges, annotated with aggregate value and layering flags.
//
// Returns ErrNilGraph or ErrInvalidBound for invalid input and
// ErrOptionViolation for bad options. On budget or deadline exhaustion it
// returns the partial result collected so far (Complete=false) together
// with ErrTimeout; hitting the MaxCycles cap truncates without error.
func FindCycles(g *txgraph.Graph, maxHops int, opts ...Option) (*Result, error) {
	// 1) Validate input
	if g == nil {
		return nil, ErrNilGraph
	}
	if maxHops < 1 {
		return nil, fmt.Errorf("cycles: FindCycles: maxHops=%d: %w", maxHops, ErrInvalidBound)
	}
	// 2) Build options and catch any invalid ones immediately
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	// 3) Prepare the walker with a one-shot adjacency snapshot
	nodes := g.Nodes()
	w := &walker{
		opts:    o,
		ctx:     o.Ctx,
		maxHops: maxHops,
		out:     make(map[string][]*txgraph.Edge, len(nodes)),
		seen:    make(map[string]struct{}),
	}
	for _, id := range nodes {
		es, err := g.Neighbors(id, txgraph.DirOut)
		if err != nil {
			return nil, fmt.Errorf("cycles: FindCycles: Neighbors(%q): %w", id, err)
		}
		w.out[id] = es
	}

	// 4) Report degenerate self-loops separately, one per self-loop edge
	for _, e := range g.Edges() {
		if e.From == e.To {
			w.selfLoops = append(w.selfLoops, Cycle{
				Nodes:   []string{e.From, e.From},
				Edges:   []*txgraph.Edge{e},
				Hops:    1,
				Value:   e.Amount,
				Flagged: w.flagged(1, e.Amount),
			})
		}
	}

	// 5) Launch the bounded DFS from every node (sorted, deterministic)
	for _, start := range nodes {
		if err := w.search(start); err != nil {
			res := w.finish(false)
			switch {
			case errors.Is(err, errCap):
				// Truncated on request: partial but not a failure.
				return res, nil
			case errors.Is(err, errBudget):
				return res, fmt.Errorf("cycles: FindCycles: %w after %d steps", ErrTimeout, w.steps)
			default:
				// Context cancellation or deadline.
				return res, fmt.Errorf("cycles: FindCycles: %w: %v", ErrTimeout, err)
			}
		}
	}

	return w.finish(true), nil
}

// search runs one explicitly-stacked DFS rooted at start. Each stack frame
// holds a path node and a cursor into its outgoing edges; pushing walks
// deeper, an exhausted cursor pops back. A cancellation/budget check runs at
// every edge expansion.
func (w *walker) search(start string) error {
	stack := []frame{{id: start}}
	pathNodes := []string{start}
	pathEdges := make([]*txgraph.Edge, 0, w.maxHops)
	inPath := map[string]bool{start: true}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		edges := w.out[top.id]

		// Cursor exhausted: backtrack
		if top.next >= len(edges) {
			inPath[top.id] = false
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				pathNodes = pathNodes[:len(pathNodes)-1]
				pathEdges = pathEdges[:len(pathEdges)-1]
			}
			continue
		}
		e := edges[top.next]
		top.next++

		// Cooperative cancellation, once per expansion step
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}
		w.steps++
		if w.opts.Budget > 0 && w.steps > w.opts.Budget {
			return errBudget
		}

		// Closing edge: path start reached again
		if e.To == start {
			// hop-1 self-loops are reported by the separate scan
			if hops := len(pathEdges) + 1; hops >= 2 {
				if err := w.record(pathNodes, pathEdges, e); err != nil {
					return err
				}
			}
			continue
		}
		// Simple-cycle invariant: never revisit a path node
		if inPath[e.To] {
			continue
		}
		// Depth bound: a node pushed here still needs a closing edge,
		// so the path may only grow while strictly below maxHops
		if len(pathEdges)+1 >= w.maxHops {
			continue
		}
		stack = append(stack, frame{id: e.To})
		pathNodes = append(pathNodes, e.To)
		pathEdges = append(pathEdges, e)
		inPath[e.To] = true
	}

	return nil
}

// record canonicalizes the found cycle, dedupes it by signature, and
// appends it with aggregate value and flags. Parallel-edge variants of one
// node sequence collapse to the first-found edge path.
func (w *walker) record(pathNodes []string, pathEdges []*txgraph.Edge, closing *txgraph.Edge) error {
	open := append([]string(nil), pathNodes...)
	eds := append(append([]*txgraph.Edge(nil), pathEdges...), closing)

	nodes, edges, sig := canonical(open, eds)
	if _, dup := w.seen[sig]; dup {
		return nil
	}
	w.seen[sig] = struct{}{}

	value := sumAmounts(edges)
	hops := len(edges)
	w.cycles = append(w.cycles, Cycle{
		Nodes:   nodes,
		Edges:   edges,
		Hops:    hops,
		Value:   value,
		Flagged: w.flagged(hops, value),
	})
	if w.opts.MaxCycles > 0 && len(w.cycles) >= w.opts.MaxCycles {
		return errCap
	}

	return nil
}

// flagged applies the caller-supplied layering heuristics.
func (w *walker) flagged(hops int, value decimal.Decimal) bool {
	if w.opts.ValueThreshold != nil && value.GreaterThan(*w.opts.ValueThreshold) {
		return true
	}

	return hops >= w.opts.SuspiciousLo && hops <= w.opts.SuspiciousHi
}

// finish sorts the collected cycles by canonical signature and assembles
// the Result. Sorting runs on partial results too, so even a truncated
// answer is deterministic.
func (w *walker) finish(complete bool) *Result {
	sort.Slice(w.cycles, func(i, j int) bool {
		return joinSig(w.cycles[i].Nodes) < joinSig(w.cycles[j].Nodes)
	})

	return &Result{
		Cycles:    w.cycles,
		SelfLoops: w.selfLoops,
		Complete:  complete,
		Steps:     w.steps,
	}
}

// sumAmounts totals the traversed transaction amounts.
func sumAmounts(edges []*txgraph.Edge) decimal.Decimal {
	total := decimal.Zero
	for _, e := range edges {
		total = total.Add(e.Amount)
	}

	return total
}
