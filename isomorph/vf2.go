// Package isomorph implements VF2-style subgraph isomorphism search over a
// txgraph.Graph: given a seed node and a radius, extract its neighborhood
// as a pattern and enumerate all structurally equivalent occurrences
// elsewhere in the graph.
//
// The search grows partial mappings one pattern-node/candidate pair at a
// time on an explicit frame stack (no native recursion). A candidate is
// admitted only when (a) its edge structure against every already-mapped
// pair matches the pattern exactly in both orientations, parallel-edge
// multiplicities included, with no extra edges among mapped nodes, and
// (b) its in/out degree dominates the pattern node's (pruning). Exhausted
// frames backtrack. Cancellation and the work budget are checked at every
// admission step.
//
// Complexity:
//
//   - Time:   exponential in the worst case; MaxMatches and Budget are the
//     practical bounds on graphs with many symmetric repeats.
//   - Memory: O(pattern size + V) for the frame stack and candidate lists.
package isomorph

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/finlytics-lab/amlnet/txgraph"
)

// Internal stop causes distinguished from real failures.
var (
	errBudget = errors.New("admission budget exhausted")
	errCap    = errors.New("match cap reached")
)

// vframe holds the candidate list for one mapping depth plus a cursor.
type vframe struct {
	cands []string
	next  int
}

// searcher encapsulates mutable VF2 state.
type searcher struct {
	graph *txgraph.Graph
	pat   *Pattern
	opts  Options
	ctx   context.Context

	gNodes []string // all graph node IDs, sorted

	mapping map[string]string // pattern node → graph node
	used    map[string]bool   // graph nodes already claimed

	steps   uint64
	seen    map[string]struct{} // matched-node-set signatures
	matches []Match
}

// FindMatches extracts the pattern around seedID within radius hops and
// returns every structurally exact occurrence of it in the graph.
//
// Returns ErrNilGraph, ErrInvalidRadius, ErrUnknownNode, or
// ErrOptionViolation for invalid input. On budget or deadline exhaustion it
// returns the partial result collected so far (Complete=false) together
// with ErrTimeout; hitting MaxMatches truncates without error.
func FindMatches(g *txgraph.Graph, seedID string, radius int, opts ...Option) (*Result, error) {
	// 1) Build options and catch any invalid ones immediately
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	// 2) Extract the pattern (validates graph, radius, and seed)
	pat, err := ExtractPattern(g, seedID, radius)
	if err != nil {
		return nil, err
	}

	// 3) Run the state-space search
	s := &searcher{
		graph:   g,
		pat:     pat,
		opts:    o,
		ctx:     o.Ctx,
		gNodes:  g.Nodes(),
		mapping: make(map[string]string, len(pat.Nodes)),
		used:    make(map[string]bool, len(pat.Nodes)),
		seen:    make(map[string]struct{}),
	}
	if err := s.run(); err != nil {
		res := s.finish(false)
		switch {
		case errors.Is(err, errCap):
			// Truncated on request: partial but not a failure.
			return res, nil
		case errors.Is(err, errBudget):
			return res, fmt.Errorf("isomorph: FindMatches: %w after %d steps", ErrTimeout, s.steps)
		default:
			// Context cancellation or deadline.
			return res, fmt.Errorf("isomorph: FindMatches: %w: %v", ErrTimeout, err)
		}
	}

	return s.finish(true), nil
}

// run drives the explicit backtracking stack: one frame per mapping depth,
// each frame iterating its candidate list. Reaching full depth emits a
// match; an exhausted frame pops back to retry the previous depth.
func (s *searcher) run() error {
	if len(s.pat.order) == 0 {
		return nil
	}
	stack := []vframe{{cands: s.candidates(s.pat.order[0])}}

	for len(stack) > 0 {
		d := len(stack) - 1
		f := &stack[d]
		p := s.pat.order[d]

		// Undo this depth's previous assignment before trying the next
		if prev, ok := s.mapping[p]; ok {
			delete(s.mapping, p)
			delete(s.used, prev)
		}

		// Cursor exhausted: backtrack
		if f.next >= len(f.cands) {
			stack = stack[:d]
			continue
		}
		c := f.cands[f.next]
		f.next++

		// Cooperative cancellation, once per admission step
		select {
		case <-s.ctx.Done():
			return s.ctx.Err()
		default:
		}
		s.steps++
		if s.opts.Budget > 0 && s.steps > s.opts.Budget {
			return errBudget
		}

		s.mapping[p] = c
		s.used[c] = true

		// Full mapping: every pattern node is assigned
		if d+1 == len(s.pat.order) {
			if err := s.emit(); err != nil {
				return err
			}
			continue
		}
		stack = append(stack, vframe{cands: s.candidates(s.pat.order[d+1])})
	}

	return nil
}

// candidates returns, in sorted order, every unclaimed graph node that
// could play pattern node p against the current partial mapping.
func (s *searcher) candidates(p string) []string {
	pIn, pOut := s.pat.Degree(p)
	var out []string
	for _, c := range s.gNodes {
		if s.used[c] {
			continue
		}
		if !s.feasible(p, c, pIn, pOut) {
			continue
		}
		out = append(out, c)
	}

	return out
}

// feasible applies the two admission rules for mapping p onto c.
func (s *searcher) feasible(p, c string, pIn, pOut int) bool {
	// (b) Degree feasibility: candidate must dominate the pattern node
	cIn, cOut, err := s.graph.Degree(c)
	if err != nil || cIn < pIn || cOut < pOut {
		return false
	}
	// Self-loop multiplicity must match exactly
	if s.pat.Multiplicity(p, p) != s.graph.Multiplicity(c, c) {
		return false
	}
	// (a) Exact edge structure against every already-mapped pair, both
	// orientations, parallel multiplicities included
	for q, m := range s.mapping {
		if s.pat.Multiplicity(p, q) != s.graph.Multiplicity(c, m) {
			return false
		}
		if s.pat.Multiplicity(q, p) != s.graph.Multiplicity(m, c) {
			return false
		}
	}

	return true
}

// emit records the completed mapping, deduplicating by matched node set and
// excluding the pattern's own node set unless self-matching was requested.
func (s *searcher) emit() error {
	nodes := make([]string, 0, len(s.mapping))
	for _, gid := range s.mapping {
		nodes = append(nodes, gid)
	}
	sort.Strings(nodes)
	sig := joinIDs(nodes)

	if sig == s.pat.setSig && !s.opts.SelfMatch {
		return nil
	}
	if _, dup := s.seen[sig]; dup {
		return nil
	}
	s.seen[sig] = struct{}{}

	mapping := make(map[string]string, len(s.mapping))
	for p, gid := range s.mapping {
		mapping[p] = gid
	}
	s.matches = append(s.matches, Match{Mapping: mapping, Nodes: nodes})
	if s.opts.MaxMatches > 0 && len(s.matches) >= s.opts.MaxMatches {
		return errCap
	}

	return nil
}

// finish assembles the Result; matches are already in deterministic
// discovery order (sorted candidate enumeration at every depth).
func (s *searcher) finish(complete bool) *Result {
	return &Result{
		Pattern:  s.pat,
		Matches:  s.matches,
		Complete: complete,
		Steps:    s.steps,
	}
}
