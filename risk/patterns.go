// Package risk: structuring-pattern detection. Three detectors over edge
// timestamps and transaction counts flag the classic smurfing and layering
// shapes: fan-in bursts (aggregators), fan-out bursts (dispersers), and
// thinly-used shell accounts forwarding to one another.
package risk

import (
	"fmt"
	"sort"
	"time"

	"github.com/finlytics-lab/amlnet/txgraph"
)

// Flags lists the accounts each detector fired on. Slices are sorted; use
// the Has* helpers for membership tests.
type Flags struct {
	// FanIn holds aggregator accounts: >= MinBurst incoming transactions
	// with some MinBurst-sized run inside Window.
	FanIn []string

	// FanOut holds disperser accounts, the outgoing mirror of FanIn.
	FanOut []string

	// Shells holds shell-layer accounts: total transaction count inside
	// the shell band, forwarding to (or receiving from) another such
	// account.
	Shells []string
}

// HasFanIn reports whether id was flagged as an aggregator.
func (f *Flags) HasFanIn(id string) bool { return containsSorted(f.FanIn, id) }

// HasFanOut reports whether id was flagged as a disperser.
func (f *Flags) HasFanOut(id string) bool { return containsSorted(f.FanOut, id) }

// HasShell reports whether id was flagged as a shell layer.
func (f *Flags) HasShell(id string) bool { return containsSorted(f.Shells, id) }

func containsSorted(ids []string, id string) bool {
	i := sort.SearchStrings(ids, id)

	return i < len(ids) && ids[i] == id
}

// DetectPatterns runs the fan-in, fan-out, and shell detectors over the
// whole graph and returns the flagged account sets.
//
// Burst rule: with the node's in- (or out-) edge timestamps sorted
// ascending, a window of MinBurst consecutive transactions spanning at most
// Window fires the detector. Shell rule: an account whose total
// transaction count falls inside [ShellLo, ShellHi] is a candidate; a
// candidate forwarding to another candidate flags both.
//
// Cancellation is checked once per node; on cancellation the partial Flags
// collected so far are returned together with ErrTimeout.
func DetectPatterns(g *txgraph.Graph, opts ...Option) (*Flags, error) {
	// 1) Validate the graph handle
	if g == nil {
		return nil, ErrNilGraph
	}

	// 2) Build options
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	fanIn := make(map[string]bool)
	fanOut := make(map[string]bool)
	shells := make(map[string]bool)
	nodes := g.Nodes()

	// 3) Burst detectors, one sweep per node over each edge direction
	for _, id := range nodes {
		select {
		case <-o.Ctx.Done():
			return buildFlags(fanIn, fanOut, shells),
				fmt.Errorf("risk: DetectPatterns: %w: %v", ErrTimeout, o.Ctx.Err())
		default:
		}

		in, err := g.Neighbors(id, txgraph.DirIn)
		if err != nil {
			return nil, fmt.Errorf("risk: DetectPatterns: %q: %w", id, err)
		}
		if hasBurst(timestamps(in), o.MinBurst, o.Window) {
			fanIn[id] = true
		}

		out, err := g.Neighbors(id, txgraph.DirOut)
		if err != nil {
			return nil, fmt.Errorf("risk: DetectPatterns: %q: %w", id, err)
		}
		if hasBurst(timestamps(out), o.MinBurst, o.Window) {
			fanOut[id] = true
		}
	}

	// 4) Shell candidates by total transaction count
	candidate := make(map[string]bool)
	for _, id := range nodes {
		n, err := g.Node(id)
		if err != nil {
			return nil, fmt.Errorf("risk: DetectPatterns: %q: %w", id, err)
		}
		total := n.InCount + n.OutCount
		if total >= o.ShellLo && total <= o.ShellHi {
			candidate[id] = true
		}
	}

	// 5) A candidate forwarding to a candidate flags both ends
	for _, id := range nodes {
		if !candidate[id] {
			continue
		}
		select {
		case <-o.Ctx.Done():
			return buildFlags(fanIn, fanOut, shells),
				fmt.Errorf("risk: DetectPatterns: %w: %v", ErrTimeout, o.Ctx.Err())
		default:
		}
		out, err := g.Neighbors(id, txgraph.DirOut)
		if err != nil {
			return nil, fmt.Errorf("risk: DetectPatterns: %q: %w", id, err)
		}
		for _, e := range out {
			if candidate[e.To] && e.To != id {
				shells[id] = true
				shells[e.To] = true
			}
		}
	}

	return buildFlags(fanIn, fanOut, shells), nil
}

// timestamps projects edge timestamps into a fresh slice.
func timestamps(edges []*txgraph.Edge) []time.Time {
	ts := make([]time.Time, len(edges))
	for i, e := range edges {
		ts[i] = e.Timestamp
	}

	return ts
}

// hasBurst reports whether some run of minBurst consecutive timestamps
// (sorted ascending) spans at most window.
func hasBurst(ts []time.Time, minBurst int, window time.Duration) bool {
	if len(ts) < minBurst {
		return false
	}
	sort.Slice(ts, func(i, j int) bool { return ts[i].Before(ts[j]) })
	for i := minBurst - 1; i < len(ts); i++ {
		if ts[i].Sub(ts[i-(minBurst-1)]) <= window {
			return true
		}
	}

	return false
}

// buildFlags freezes the detector sets into sorted slices.
func buildFlags(fanIn, fanOut, shells map[string]bool) *Flags {
	return &Flags{
		FanIn:  sortedKeys(fanIn),
		FanOut: sortedKeys(fanOut),
		Shells: sortedKeys(shells),
	}
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)

	return out
}
