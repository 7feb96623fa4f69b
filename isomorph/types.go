// Package isomorph defines types and options for seed-anchored subgraph
// isomorphism search: pattern extraction radius, match caps, work budgets,
// cancellation, and the self-match policy.
package isomorph

import (
	"context"
	"errors"
	"fmt"

	"github.com/finlytics-lab/amlnet/txgraph"
)

// DefaultMaxMatches bounds result size on graphs with many symmetric
// repeats; raise it explicitly when exhaustive enumeration is wanted.
const DefaultMaxMatches = 100

var (
	// ErrNilGraph is returned when a nil *txgraph.Graph is passed in.
	ErrNilGraph = errors.New("isomorph: graph is nil")

	// ErrUnknownNode indicates the requested seed node does not exist.
	ErrUnknownNode = errors.New("isomorph: seed node not found")

	// ErrInvalidRadius indicates a non-positive extraction radius.
	ErrInvalidRadius = errors.New("isomorph: radius must be at least 1")

	// ErrTimeout indicates the search exceeded its budget or deadline.
	// The partial Result returned alongside it is marked Complete=false.
	ErrTimeout = errors.New("isomorph: search budget exhausted")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("isomorph: invalid option supplied")
)

// Option configures optional behavior of the match search.
// Use with FindMatches(g, seedID, radius, opts...).
type Option func(*Options)

// Options holds configurable parameters for isomorphism search.
type Options struct {
	// Ctx allows cancellation or timeouts; defaults to context.Background().
	Ctx context.Context

	// MaxMatches caps the number of matches collected (DefaultMaxMatches
	// unless overridden; 0 means unlimited). Hitting the cap truncates the
	// result (Complete=false) without error.
	MaxMatches int

	// Budget, if > 0, bounds candidate-admission steps before the search
	// gives up with ErrTimeout. 0 means unlimited.
	Budget uint64

	// SelfMatch, if true, lets the pattern's own node set appear as a
	// match. Off by default: finding the seed's neighborhood where it was
	// extracted from is noise, not signal.
	SelfMatch bool

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with:
//   - Background context
//   - MaxMatches = DefaultMaxMatches
//   - no budget
//   - self-matching disabled
func DefaultOptions() Options {
	return Options{
		Ctx:        context.Background(),
		MaxMatches: DefaultMaxMatches,
	}
}

// WithContext sets the Context for the search.
// Passing a nil context has no effect (Background is retained).
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxMatches caps the number of collected matches.
//
//	n > 0: collect at most n
//	n == 0: explicit no cap
//	n < 0: invalid option → ErrOptionViolation
func WithMaxMatches(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxMatches cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxMatches = n
	}
}

// WithBudget bounds the search to n candidate-admission steps (0 = unlimited).
func WithBudget(n uint64) Option {
	return func(o *Options) {
		o.Budget = n
	}
}

// WithSelfMatch admits the trivial match of the pattern onto itself.
func WithSelfMatch() Option {
	return func(o *Options) {
		o.SelfMatch = true
	}
}

// Pattern is the induced subgraph within radius hops of a seed node:
// the typology template the search looks for elsewhere in the graph.
type Pattern struct {
	// Seed is the node the pattern was extracted around.
	Seed string

	// Radius is the k-hop extraction bound.
	Radius int

	// Nodes lists the pattern's node IDs in sorted order.
	Nodes []string

	// Edges lists every graph edge with both endpoints inside the pattern,
	// in insertion order.
	Edges []*txgraph.Edge

	// Derived indices for the matcher.
	mult   map[string]map[string]int // pair multiplicity inside the pattern
	inDeg  map[string]int            // per-node in-degree inside the pattern
	outDeg map[string]int            // per-node out-degree inside the pattern
	order  []string                  // mapping order: degree-descending, ID tiebreak
	setSig string                    // signature of the sorted node set
}

// Multiplicity returns the number of pattern edges on the ordered pair.
func (p *Pattern) Multiplicity(from, to string) int {
	return p.mult[from][to]
}

// Degree returns the pattern-internal in- and out-degree of id.
func (p *Pattern) Degree(id string) (in, out int) {
	return p.inDeg[id], p.outDeg[id]
}

// Match is one structurally-exact occurrence of the pattern.
//
// Mapping is a bijection from pattern node IDs onto the matched graph nodes
// preserving directed edge structure exactly (same orientations, same
// parallel-edge multiplicities, no extra edges among mapped nodes). Matches
// are deduplicated by matched node set: Mapping is the first-found
// representative for that set.
type Match struct {
	// Mapping maps pattern node ID → matched graph node ID.
	Mapping map[string]string

	// Nodes lists the matched graph node IDs in sorted order.
	Nodes []string
}

// Result captures the outcome of one isomorphism search.
type Result struct {
	// Pattern is the extracted template the matches correspond to.
	Pattern *Pattern

	// Matches lists deduplicated matches in deterministic discovery order.
	Matches []Match

	// Complete is false when the search was cut short by budget, deadline,
	// or the MaxMatches cap.
	Complete bool

	// Steps counts candidate-admission steps actually performed.
	Steps uint64
}
