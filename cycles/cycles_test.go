package cycles_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finlytics-lab/amlnet/cycles"
	"github.com/finlytics-lab/amlnet/txgraph"
)

var base = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// seed registers accounts so edge fixtures stay terse.
func seed(t *testing.T, g *txgraph.Graph, ids ...string) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, g.AddNode(id))
	}
}

// TestFindCycles_NilGraph verifies the nil guard.
func TestFindCycles_NilGraph(t *testing.T) {
	_, err := cycles.FindCycles(nil, 3)
	assert.ErrorIs(t, err, cycles.ErrNilGraph)
}

// TestFindCycles_InvalidBound verifies maxHops < 1 is rejected.
func TestFindCycles_InvalidBound(t *testing.T) {
	g := txgraph.NewGraph()
	seed(t, g, "A")

	_, err := cycles.FindCycles(g, 0)
	assert.ErrorIs(t, err, cycles.ErrInvalidBound)

	_, err = cycles.FindCycles(g, -2)
	assert.ErrorIs(t, err, cycles.ErrInvalidBound)
}

// TestFindCycles_Triangle covers the canonical layering ring:
//
//	A ──100──▶ B
//	▲          │100
//	└──100──── C
//
// Exactly one cycle [A,B,C,A] with aggregate value 300.
func TestFindCycles_Triangle(t *testing.T) {
	g := txgraph.NewGraph()
	seed(t, g, "A", "B", "C")
	_, _ = g.AddEdge("A", "B", base, dec(100))
	_, _ = g.AddEdge("B", "C", base.Add(time.Hour), dec(100))
	_, _ = g.AddEdge("C", "A", base.Add(2*time.Hour), dec(100))

	res, err := cycles.FindCycles(g, 3)
	require.NoError(t, err)
	assert.True(t, res.Complete)
	require.Len(t, res.Cycles, 1)

	c := res.Cycles[0]
	assert.Equal(t, []string{"A", "B", "C", "A"}, c.Nodes)
	assert.Equal(t, 3, c.Hops)
	assert.True(t, c.Value.Equal(dec(300)), "value = %s", c.Value)
	assert.True(t, c.Flagged) // 3 hops sits inside the default band
	require.Len(t, c.Edges, 3)
	assert.Equal(t, "A", c.Edges[0].From)
	assert.Equal(t, "B", c.Edges[0].To)
	assert.Equal(t, "C", c.Edges[2].From)
	assert.Empty(t, res.SelfLoops)
}

// TestFindCycles_RotationDedup verifies rotations of one physical cycle
// appear at most once even though the DFS launches from every node.
func TestFindCycles_RotationDedup(t *testing.T) {
	g := txgraph.NewGraph()
	seed(t, g, "X", "Y", "Z")
	_, _ = g.AddEdge("X", "Y", base, dec(10))
	_, _ = g.AddEdge("Y", "Z", base, dec(10))
	_, _ = g.AddEdge("Z", "X", base, dec(10))

	res, err := cycles.FindCycles(g, 5)
	require.NoError(t, err)
	require.Len(t, res.Cycles, 1)
	assert.Equal(t, []string{"X", "Y", "Z", "X"}, res.Cycles[0].Nodes)
}

// TestFindCycles_HopBound verifies a 4-hop ring is invisible under maxHops=3.
func TestFindCycles_HopBound(t *testing.T) {
	g := txgraph.NewGraph()
	seed(t, g, "A", "B", "C", "D")
	// A → B → C → D → A
	_, _ = g.AddEdge("A", "B", base, dec(10))
	_, _ = g.AddEdge("B", "C", base, dec(10))
	_, _ = g.AddEdge("C", "D", base, dec(10))
	_, _ = g.AddEdge("D", "A", base, dec(10))

	res, err := cycles.FindCycles(g, 3)
	require.NoError(t, err)
	assert.Empty(t, res.Cycles)

	res, err = cycles.FindCycles(g, 4)
	require.NoError(t, err)
	require.Len(t, res.Cycles, 1)
	assert.Equal(t, 4, res.Cycles[0].Hops)
}

// TestFindCycles_TwoNodeCycle verifies the minimal directed cycle A⇄B.
func TestFindCycles_TwoNodeCycle(t *testing.T) {
	g := txgraph.NewGraph()
	seed(t, g, "A", "B")
	_, _ = g.AddEdge("A", "B", base, dec(40))
	_, _ = g.AddEdge("B", "A", base.Add(time.Hour), dec(35))

	res, err := cycles.FindCycles(g, 2)
	require.NoError(t, err)
	require.Len(t, res.Cycles, 1)
	assert.Equal(t, []string{"A", "B", "A"}, res.Cycles[0].Nodes)
	assert.True(t, res.Cycles[0].Value.Equal(dec(75)))
	assert.False(t, res.Cycles[0].Flagged) // 2 hops below the default band
}

// TestFindCycles_SimpleCycleInvariant runs a figure-eight sharing node B and
// checks every returned cycle is simple and within the bound.
//
//	A ─▶ B ─▶ C        D ─▶ B keeps a second ring through B
//	▲    │    │        ▲
//	└────┘    ▼        │
//	     B ─▶ D ───────┘
func TestFindCycles_SimpleCycleInvariant(t *testing.T) {
	g := txgraph.NewGraph()
	seed(t, g, "A", "B", "C", "D")
	_, _ = g.AddEdge("A", "B", base, dec(10))
	_, _ = g.AddEdge("B", "A", base, dec(10))
	_, _ = g.AddEdge("B", "D", base, dec(10))
	_, _ = g.AddEdge("D", "B", base, dec(10))
	_, _ = g.AddEdge("B", "C", base, dec(10))
	_, _ = g.AddEdge("C", "D", base, dec(10))

	const bound = 4
	res, err := cycles.FindCycles(g, bound)
	require.NoError(t, err)
	require.NotEmpty(t, res.Cycles)

	for _, c := range res.Cycles {
		assert.LessOrEqual(t, c.Hops, bound)
		assert.Equal(t, c.Nodes[0], c.Nodes[len(c.Nodes)-1], "cycle must close on its start")
		interior := c.Nodes[:len(c.Nodes)-1]
		seen := make(map[string]bool, len(interior))
		for _, id := range interior {
			assert.False(t, seen[id], "repeated node %q in %v", id, c.Nodes)
			seen[id] = true
		}
		assert.Equal(t, c.Hops, len(c.Edges))
	}
}

// TestFindCycles_SelfLoopsSeparate verifies hop-1 loops never pollute the
// multi-hop list.
func TestFindCycles_SelfLoopsSeparate(t *testing.T) {
	g := txgraph.NewGraph()
	seed(t, g, "A", "B")
	_, _ = g.AddEdge("A", "A", base, dec(500))
	_, _ = g.AddEdge("A", "B", base, dec(10))
	_, _ = g.AddEdge("B", "A", base, dec(10))

	res, err := cycles.FindCycles(g, 3)
	require.NoError(t, err)
	require.Len(t, res.SelfLoops, 1)
	loop := res.SelfLoops[0]
	assert.Equal(t, []string{"A", "A"}, loop.Nodes)
	assert.Equal(t, 1, loop.Hops)
	assert.True(t, loop.Value.Equal(dec(500)))

	require.Len(t, res.Cycles, 1)
	assert.Equal(t, []string{"A", "B", "A"}, res.Cycles[0].Nodes)
}

// TestFindCycles_ValueThresholdFlag verifies value-based flagging alone.
func TestFindCycles_ValueThresholdFlag(t *testing.T) {
	g := txgraph.NewGraph()
	seed(t, g, "A", "B", "C")
	_, _ = g.AddEdge("A", "B", base, dec(100))
	_, _ = g.AddEdge("B", "C", base, dec(100))
	_, _ = g.AddEdge("C", "A", base, dec(100))

	// Push the suspicious band out of reach so only value can flag.
	res, err := cycles.FindCycles(g, 3,
		cycles.WithSuspiciousHops(6, 7),
		cycles.WithValueThreshold(dec(250)),
	)
	require.NoError(t, err)
	require.Len(t, res.Cycles, 1)
	assert.True(t, res.Cycles[0].Flagged, "300 exceeds the 250 threshold")

	// Threshold above the aggregate: nothing flags.
	res, err = cycles.FindCycles(g, 3,
		cycles.WithSuspiciousHops(6, 7),
		cycles.WithValueThreshold(dec(300)),
	)
	require.NoError(t, err)
	assert.False(t, res.Cycles[0].Flagged, "300 does not exceed 300")
}

// TestFindCycles_SuspiciousBand verifies hop-band flagging is configurable.
func TestFindCycles_SuspiciousBand(t *testing.T) {
	g := txgraph.NewGraph()
	seed(t, g, "A", "B", "C")
	_, _ = g.AddEdge("A", "B", base, dec(1))
	_, _ = g.AddEdge("B", "C", base, dec(1))
	_, _ = g.AddEdge("C", "A", base, dec(1))

	res, err := cycles.FindCycles(g, 3, cycles.WithSuspiciousHops(4, 5))
	require.NoError(t, err)
	assert.False(t, res.Cycles[0].Flagged)
}

// TestFindCycles_OptionViolation verifies bad options surface immediately.
func TestFindCycles_OptionViolation(t *testing.T) {
	g := txgraph.NewGraph()
	seed(t, g, "A")

	_, err := cycles.FindCycles(g, 3, cycles.WithSuspiciousHops(5, 3))
	assert.ErrorIs(t, err, cycles.ErrOptionViolation)

	_, err = cycles.FindCycles(g, 3, cycles.WithMaxCycles(-1))
	assert.ErrorIs(t, err, cycles.ErrOptionViolation)
}

// TestFindCycles_ParallelEdgesCollapse verifies parallel-edge variants of one
// node sequence report a single cycle.
func TestFindCycles_ParallelEdgesCollapse(t *testing.T) {
	g := txgraph.NewGraph()
	seed(t, g, "A", "B")
	_, _ = g.AddEdge("A", "B", base, dec(10))
	_, _ = g.AddEdge("A", "B", base.Add(time.Hour), dec(20))
	_, _ = g.AddEdge("B", "A", base.Add(2*time.Hour), dec(30))

	res, err := cycles.FindCycles(g, 2)
	require.NoError(t, err)
	require.Len(t, res.Cycles, 1)
	assert.Equal(t, []string{"A", "B", "A"}, res.Cycles[0].Nodes)
	// First-found edge path wins: the base-time transfer, not its twin.
	assert.True(t, res.Cycles[0].Value.Equal(dec(40)))
}

// TestFindCycles_BudgetTimeout verifies budget exhaustion returns a partial,
// explicitly-incomplete result together with ErrTimeout.
func TestFindCycles_BudgetTimeout(t *testing.T) {
	g := txgraph.NewGraph()
	seed(t, g, "A", "B", "C", "D", "E")
	// Two rings plus cross links generate plenty of expansion work.
	_, _ = g.AddEdge("A", "B", base, dec(1))
	_, _ = g.AddEdge("B", "C", base, dec(1))
	_, _ = g.AddEdge("C", "A", base, dec(1))
	_, _ = g.AddEdge("C", "D", base, dec(1))
	_, _ = g.AddEdge("D", "E", base, dec(1))
	_, _ = g.AddEdge("E", "C", base, dec(1))
	_, _ = g.AddEdge("E", "A", base, dec(1))

	res, err := cycles.FindCycles(g, 5, cycles.WithBudget(3))
	require.Error(t, err)
	assert.ErrorIs(t, err, cycles.ErrTimeout)
	require.NotNil(t, res)
	assert.False(t, res.Complete)
	assert.LessOrEqual(t, res.Steps, uint64(4))
}

// TestFindCycles_ContextCancelled verifies cancellation maps to ErrTimeout.
func TestFindCycles_ContextCancelled(t *testing.T) {
	g := txgraph.NewGraph()
	seed(t, g, "A", "B")
	_, _ = g.AddEdge("A", "B", base, dec(1))
	_, _ = g.AddEdge("B", "A", base, dec(1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // already expired before the search starts

	res, err := cycles.FindCycles(g, 3, cycles.WithContext(ctx))
	require.Error(t, err)
	assert.ErrorIs(t, err, cycles.ErrTimeout)
	require.NotNil(t, res)
	assert.False(t, res.Complete)
}

// TestFindCycles_MaxCyclesCap verifies the cap truncates without error.
func TestFindCycles_MaxCyclesCap(t *testing.T) {
	g := txgraph.NewGraph()
	seed(t, g, "A", "B", "C", "D")
	// Two disjoint 2-rings.
	_, _ = g.AddEdge("A", "B", base, dec(1))
	_, _ = g.AddEdge("B", "A", base, dec(1))
	_, _ = g.AddEdge("C", "D", base, dec(1))
	_, _ = g.AddEdge("D", "C", base, dec(1))

	res, err := cycles.FindCycles(g, 2, cycles.WithMaxCycles(1))
	require.NoError(t, err)
	assert.Len(t, res.Cycles, 1)
	assert.False(t, res.Complete)
}

// TestFindCycles_Deterministic verifies byte-identical repeated runs.
func TestFindCycles_Deterministic(t *testing.T) {
	g := txgraph.NewGraph()
	seed(t, g, "A", "B", "C", "D", "E")
	_, _ = g.AddEdge("A", "B", base, dec(5))
	_, _ = g.AddEdge("B", "C", base, dec(5))
	_, _ = g.AddEdge("C", "A", base, dec(5))
	_, _ = g.AddEdge("C", "D", base, dec(5))
	_, _ = g.AddEdge("D", "E", base, dec(5))
	_, _ = g.AddEdge("E", "C", base, dec(5))

	first, err := cycles.FindCycles(g, 4)
	require.NoError(t, err)
	second, err := cycles.FindCycles(g, 4)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// TestFindCycles_DisjointRings verifies sorted deterministic output across
// components.
func TestFindCycles_DisjointRings(t *testing.T) {
	g := txgraph.NewGraph()
	seed(t, g, "P", "Q", "R", "X", "Y", "Z")
	_, _ = g.AddEdge("X", "Y", base, dec(1))
	_, _ = g.AddEdge("Y", "Z", base, dec(1))
	_, _ = g.AddEdge("Z", "X", base, dec(1))
	_, _ = g.AddEdge("P", "Q", base, dec(1))
	_, _ = g.AddEdge("Q", "R", base, dec(1))
	_, _ = g.AddEdge("R", "P", base, dec(1))

	res, err := cycles.FindCycles(g, 3)
	require.NoError(t, err)
	require.Len(t, res.Cycles, 2)
	// Canonical signatures sort P-ring before X-ring.
	assert.Equal(t, []string{"P", "Q", "R", "P"}, res.Cycles[0].Nodes)
	assert.Equal(t, []string{"X", "Y", "Z", "X"}, res.Cycles[1].Nodes)
}
