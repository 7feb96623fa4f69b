package txgraph_test

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finlytics-lab/amlnet/txgraph"
)

// base is a fixed reference instant so every fixture is reproducible.
var base = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

// dec builds a decimal amount from an integer for terse fixtures.
func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// TestAddNode_Duplicate verifies re-adding an account is rejected, not merged.
func TestAddNode_Duplicate(t *testing.T) {
	g := txgraph.NewGraph()
	require.NoError(t, g.AddNode("A"))

	err := g.AddNode("A")
	assert.ErrorIs(t, err, txgraph.ErrDuplicateNode)
	assert.Equal(t, 1, g.NodeCount())
}

// TestAddNode_EmptyID verifies the empty-ID guard.
func TestAddNode_EmptyID(t *testing.T) {
	g := txgraph.NewGraph()
	assert.ErrorIs(t, g.AddNode(""), txgraph.ErrEmptyNodeID)
}

// TestAddNode_Options verifies label and metadata options land on the node.
func TestAddNode_Options(t *testing.T) {
	g := txgraph.NewGraph()
	md := map[string]string{"country": "LT"}
	require.NoError(t, g.AddNode("A", txgraph.WithLabel("Acme Ltd"), txgraph.WithMetadata(md)))

	n, err := g.Node("A")
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltd", n.Label)
	assert.Equal(t, "LT", n.Metadata["country"])
	assert.Equal(t, txgraph.TierUnscored, n.RiskTier)
}

// TestAddEdge_UnknownEndpoint verifies endpoints are never auto-created.
func TestAddEdge_UnknownEndpoint(t *testing.T) {
	g := txgraph.NewGraph()
	require.NoError(t, g.AddNode("A"))

	// destination missing
	_, err := g.AddEdge("A", "B", base, dec(100))
	assert.ErrorIs(t, err, txgraph.ErrUnknownNode)

	// source missing
	_, err = g.AddEdge("B", "A", base, dec(100))
	assert.ErrorIs(t, err, txgraph.ErrUnknownNode)

	assert.Equal(t, 0, g.EdgeCount())
}

// TestAddEdge_Validation covers the malformed-record guards.
func TestAddEdge_Validation(t *testing.T) {
	g := txgraph.NewGraph()
	require.NoError(t, g.AddNode("A"))
	require.NoError(t, g.AddNode("B"))

	_, err := g.AddEdge("A", "B", base, dec(-5))
	assert.ErrorIs(t, err, txgraph.ErrBadAmount)

	_, err = g.AddEdge("A", "B", time.Time{}, dec(5))
	assert.ErrorIs(t, err, txgraph.ErrBadTimestamp)

	_, err = g.AddEdge("", "B", base, dec(5))
	assert.ErrorIs(t, err, txgraph.ErrEmptyNodeID)
}

// TestAddEdge_ParallelEdgesKept verifies multigraph semantics: two transfers
// on the same pair stay two distinct edges.
func TestAddEdge_ParallelEdgesKept(t *testing.T) {
	g := txgraph.NewGraph()
	require.NoError(t, g.AddNode("A"))
	require.NoError(t, g.AddNode("B"))

	id1, err := g.AddEdge("A", "B", base, dec(100))
	require.NoError(t, err)
	id2, err := g.AddEdge("A", "B", base.Add(time.Hour), dec(250))
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 2, g.EdgeCount())
	assert.Equal(t, 2, g.Multiplicity("A", "B"))
	assert.True(t, g.HasEdge("A", "B"))
	assert.False(t, g.HasEdge("B", "A"))
}

// TestAggregates verifies incremental counters match the actual edge totals.
//
//	A ──100──▶ B ──40──▶ C
//	A ──250──▶ B
func TestAggregates(t *testing.T) {
	g := txgraph.NewGraph()
	for _, id := range []string{"A", "B", "C"} {
		require.NoError(t, g.AddNode(id))
	}
	_, _ = g.AddEdge("A", "B", base, dec(100))
	_, _ = g.AddEdge("A", "B", base.Add(2*time.Hour), dec(250))
	_, _ = g.AddEdge("B", "C", base.Add(time.Hour), dec(40))

	b, err := g.Node("B")
	require.NoError(t, err)
	assert.Equal(t, 2, b.InCount)
	assert.Equal(t, 1, b.OutCount)
	assert.True(t, b.InSum.Equal(dec(350)), "InSum = %s", b.InSum)
	assert.True(t, b.OutSum.Equal(dec(40)), "OutSum = %s", b.OutSum)
	assert.Equal(t, base, b.FirstSeen)
	assert.Equal(t, base.Add(2*time.Hour), b.LastSeen)

	in, out, err := g.Degree("B")
	require.NoError(t, err)
	assert.Equal(t, 2, in)
	assert.Equal(t, 1, out)
}

// TestAggregates_SelfLoop verifies a self-transfer counts on both sides.
func TestAggregates_SelfLoop(t *testing.T) {
	g := txgraph.NewGraph()
	require.NoError(t, g.AddNode("A"))
	_, err := g.AddEdge("A", "A", base, dec(77))
	require.NoError(t, err)

	a, err := g.Node("A")
	require.NoError(t, err)
	assert.Equal(t, 1, a.InCount)
	assert.Equal(t, 1, a.OutCount)
	assert.True(t, a.InSum.Equal(dec(77)))
	assert.True(t, a.OutSum.Equal(dec(77)))
}

// TestNeighbors_Directions verifies DirOut/DirIn/DirBoth views and that the
// returned edges preserve insertion order.
//
//	X ──▶ A ──▶ Y
//	      A ──▶ Z
func TestNeighbors_Directions(t *testing.T) {
	g := txgraph.NewGraph()
	for _, id := range []string{"A", "X", "Y", "Z"} {
		require.NoError(t, g.AddNode(id))
	}
	_, _ = g.AddEdge("A", "Y", base, dec(10))
	_, _ = g.AddEdge("X", "A", base.Add(time.Hour), dec(20))
	_, _ = g.AddEdge("A", "Z", base.Add(2*time.Hour), dec(30))

	out, err := g.Neighbors("A", txgraph.DirOut)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Y", out[0].To)
	assert.Equal(t, "Z", out[1].To)

	in, err := g.Neighbors("A", txgraph.DirIn)
	require.NoError(t, err)
	require.Len(t, in, 1)
	assert.Equal(t, "X", in[0].From)

	both, err := g.Neighbors("A", txgraph.DirBoth)
	require.NoError(t, err)
	assert.Len(t, both, 3)

	_, err = g.Neighbors("missing", txgraph.DirOut)
	assert.ErrorIs(t, err, txgraph.ErrUnknownNode)
}

// TestNodesSortedAndEdgesOrdered pins the deterministic enumeration contract.
func TestNodesSortedAndEdgesOrdered(t *testing.T) {
	g := txgraph.NewGraph()
	for _, id := range []string{"C", "A", "B"} {
		require.NoError(t, g.AddNode(id))
	}
	_, _ = g.AddEdge("C", "A", base, dec(1))
	_, _ = g.AddEdge("A", "B", base, dec(2))

	assert.Equal(t, []string{"A", "B", "C"}, g.Nodes())

	edges := g.Edges()
	require.Len(t, edges, 2)
	assert.Equal(t, "C", edges[0].From)
	assert.Equal(t, "A", edges[1].From)
	assert.True(t, g.TotalVolume().Equal(dec(3)))
}

// TestStampRisk verifies scoring results land on the node.
func TestStampRisk(t *testing.T) {
	g := txgraph.NewGraph()
	require.NoError(t, g.AddNode("A"))

	require.NoError(t, g.StampRisk("A", 82.5, txgraph.TierHigh))
	n, err := g.Node("A")
	require.NoError(t, err)
	assert.Equal(t, 82.5, n.RiskScore)
	assert.Equal(t, txgraph.TierHigh, n.RiskTier)
	assert.Equal(t, "High", n.RiskTier.String())

	assert.ErrorIs(t, g.StampRisk("missing", 1, txgraph.TierLow), txgraph.ErrUnknownNode)
}

// TestBuild_SeedsThenRecords covers the happy ingestion path.
func TestBuild_SeedsThenRecords(t *testing.T) {
	seeds := []txgraph.Seed{
		{ID: "A", Label: "Alfa"},
		{ID: "B"},
	}
	records := []txgraph.Record{
		{SourceID: "A", DestID: "B", Timestamp: base, Amount: dec(100), Currency: "EUR"},
		{SourceID: "B", DestID: "A", Timestamp: base.Add(time.Hour), Amount: dec(60), Kind: "wire"},
	}

	g, err := txgraph.Build(seeds, records)
	require.NoError(t, err)
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 2, g.EdgeCount())

	edges := g.Edges()
	assert.Equal(t, "EUR", edges[0].Currency)
	assert.Equal(t, "wire", edges[1].Kind)
}

// TestBuild_AbortsOnUnknownAccount verifies no partial graph escapes.
func TestBuild_AbortsOnUnknownAccount(t *testing.T) {
	records := []txgraph.Record{
		{SourceID: "A", DestID: "B", Timestamp: base, Amount: dec(100)},
	}

	g, err := txgraph.Build([]txgraph.Seed{{ID: "A"}}, records)
	assert.ErrorIs(t, err, txgraph.ErrUnknownNode)
	assert.Nil(t, g)
}

// TestBuild_DuplicateSeedAborts verifies duplicate seeds abort the build.
func TestBuild_DuplicateSeedAborts(t *testing.T) {
	g, err := txgraph.Build([]txgraph.Seed{{ID: "A"}, {ID: "A"}}, nil)
	assert.ErrorIs(t, err, txgraph.ErrDuplicateNode)
	assert.Nil(t, g)
}

// TestBuild_ImplicitNodes covers edge-list-only datasets.
func TestBuild_ImplicitNodes(t *testing.T) {
	records := []txgraph.Record{
		{SourceID: "A", DestID: "B", Timestamp: base, Amount: dec(100)},
		{SourceID: "B", DestID: "C", Timestamp: base.Add(time.Hour), Amount: dec(50)},
	}

	g, err := txgraph.Build(nil, records, txgraph.WithImplicitNodes())
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, g.Nodes())
	assert.Equal(t, 2, g.EdgeCount())
}

// TestConcurrentReaders exercises the read-shared discipline: many goroutines
// querying one finished graph must not race (run with -race).
func TestConcurrentReaders(t *testing.T) {
	g := txgraph.NewGraph()
	for _, id := range []string{"A", "B", "C"} {
		require.NoError(t, g.AddNode(id))
	}
	_, _ = g.AddEdge("A", "B", base, dec(10))
	_, _ = g.AddEdge("B", "C", base, dec(20))
	_, _ = g.AddEdge("C", "A", base, dec(30))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, _ = g.Neighbors("A", txgraph.DirBoth)
				_ = g.Multiplicity("A", "B")
				_ = g.Nodes()
				_ = g.EdgeCount()
			}
		}()
	}
	wg.Wait()
}
