// Package cycles defines types and options for bounded cycle detection,
// including cancellation, work budgets, result caps, and the flagging
// thresholds that mark candidate layering chains.
package cycles

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finlytics-lab/amlnet/txgraph"
)

// Default flagging thresholds. A hop count inside the suspicious band is the
// classic layering shape: long enough to obscure origin, short enough to
// stay fast.
const (
	// DefaultSuspiciousLo is the lower bound of the suspicious hop band.
	DefaultSuspiciousLo = 3

	// DefaultSuspiciousHi is the upper bound of the suspicious hop band.
	DefaultSuspiciousHi = 5
)

var (
	// ErrNilGraph is returned when a nil *txgraph.Graph is passed to FindCycles.
	ErrNilGraph = errors.New("cycles: graph is nil")

	// ErrInvalidBound indicates a non-positive maxHops bound.
	ErrInvalidBound = errors.New("cycles: maxHops must be at least 1")

	// ErrTimeout indicates the search exceeded its budget or deadline.
	// The partial Result returned alongside it is marked Complete=false.
	ErrTimeout = errors.New("cycles: search budget exhausted")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("cycles: invalid option supplied")
)

// Option configures optional behavior of cycle detection.
// Use with FindCycles(g, maxHops, opts...).
type Option func(*Options)

// Options holds configurable parameters for cycle detection.
// All flagging inputs are caller-supplied configuration, never hardcoded
// into the search itself.
type Options struct {
	// Ctx allows cancellation or timeouts; defaults to context.Background().
	// Cancelling the context aborts the search with ErrTimeout and a
	// partial, Complete=false result.
	Ctx context.Context

	// ValueThreshold, if non-nil, flags every cycle whose aggregate value
	// strictly exceeds it. Nil disables value flagging.
	ValueThreshold *decimal.Decimal

	// SuspiciousLo and SuspiciousHi bound the hop counts treated as a
	// layering signature: a cycle with SuspiciousLo <= Hops <= SuspiciousHi
	// is flagged. Defaults are 3 and 5.
	SuspiciousLo int
	SuspiciousHi int

	// Budget, if > 0, bounds the number of edge-expansion steps before the
	// search gives up with ErrTimeout. 0 means unlimited.
	Budget uint64

	// MaxCycles, if > 0, caps the number of multi-hop cycles collected.
	// Hitting the cap truncates the result (Complete=false) without error.
	MaxCycles int

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with:
//   - Background context
//   - value flagging disabled
//   - suspicious hop band [3, 5]
//   - no budget, no cycle cap
func DefaultOptions() Options {
	return Options{
		Ctx:          context.Background(),
		SuspiciousLo: DefaultSuspiciousLo,
		SuspiciousHi: DefaultSuspiciousHi,
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

// WithValueThreshold flags cycles whose aggregate value exceeds threshold.
func WithValueThreshold(threshold decimal.Decimal) Option {
	return func(o *Options) {
		o.ValueThreshold = &threshold
	}
}

// WithSuspiciousHops sets the inclusive hop band treated as suspicious.
//
//	lo >= 1 and hi >= lo: band [lo, hi]
//	anything else: invalid option → ErrOptionViolation
func WithSuspiciousHops(lo, hi int) Option {
	return func(o *Options) {
		if lo < 1 || hi < lo {
			o.err = fmt.Errorf("%w: suspicious hop band [%d, %d]", ErrOptionViolation, lo, hi)
			return
		}
		o.SuspiciousLo, o.SuspiciousHi = lo, hi
	}
}

// WithBudget bounds the search to n edge-expansion steps (0 = unlimited).
func WithBudget(n uint64) Option {
	return func(o *Options) {
		o.Budget = n
	}
}

// WithMaxCycles caps the number of collected multi-hop cycles.
//
//	n > 0: collect at most n
//	n == 0: explicit no cap
//	n < 0: invalid option → ErrOptionViolation
func WithMaxCycles(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxCycles cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxCycles = n
	}
}

// Cycle is one detected directed cycle in canonical form.
//
// Nodes is the closed sequence [v0, v1, ..., v0] rotated so the
// lexicographically smallest node ID leads; Edges[i] is the transaction
// traversed from Nodes[i] to Nodes[i+1]. The cycle is ephemeral: produced by
// FindCycles, consumed by scoring and reporting, never stored in the graph.
type Cycle struct {
	// Nodes is the closed node sequence (start == end, no internal repeats).
	Nodes []string

	// Edges lists the traversed transactions, aligned with Nodes.
	Edges []*txgraph.Edge

	// Hops is the number of edges traversed (== len(Edges)).
	Hops int

	// Value is the aggregate amount flowed around the cycle.
	Value decimal.Decimal

	// Flagged marks a candidate layering chain: aggregate value above the
	// configured threshold, or a hop count inside the suspicious band.
	Flagged bool
}

// Result captures the outcome of one cycle search.
type Result struct {
	// Cycles lists the distinct multi-hop cycles (Hops >= 2), sorted by
	// their canonical signature for deterministic output.
	Cycles []Cycle

	// SelfLoops lists degenerate hop-1 cycles, one per self-loop edge,
	// reported separately from multi-hop cycles.
	SelfLoops []Cycle

	// Complete is false when the search was cut short by budget, deadline,
	// or the MaxCycles cap; the lists above are then partial, never to be
	// treated as exhaustive.
	Complete bool

	// Steps counts edge-expansion steps actually performed (diagnostics).
	Steps uint64
}
