// Package txgraph defines the central Graph, Node, and Edge types for
// transaction-network analytics, and provides thread-safe primitives for
// building and querying directed temporal multigraphs.
//
// Nodes are accounts/entities; edges are individual transactions carrying a
// timestamp and a monetary amount. Parallel edges between the same ordered
// pair are always kept (one edge per transaction), and the graph is
// append-only within a single analysis run: edges are immutable record rows.
//
// All txgraph APIs use separate sync.RWMutex locks internally (muNode for the
// node catalog, muEdgeAdj for edges and adjacency), so concurrent read-only
// analyses can share one Graph with minimal contention.
//
// This file declares Node, Edge, Graph, Tier, Direction, NodeOption,
// EdgeOption, sentinel errors, and the NewGraph constructor.
//
// Errors:
//
//	ErrEmptyNodeID   - node ID is the empty string.
//	ErrDuplicateNode - node ID is already present in the graph.
//	ErrUnknownNode   - referenced node ID does not exist.
//	ErrEdgeNotFound  - requested edge does not exist.
//	ErrBadAmount     - transaction amount is negative.
//	ErrBadTimestamp  - transaction timestamp is the zero time.
package txgraph

import (
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Sentinel errors for graph construction and lookups.
var (
	// ErrEmptyNodeID indicates an operation received an empty node ID.
	ErrEmptyNodeID = errors.New("txgraph: node ID is empty")

	// ErrDuplicateNode indicates AddNode was called with an ID already present.
	ErrDuplicateNode = errors.New("txgraph: duplicate node")

	// ErrUnknownNode indicates an operation referenced a non-existent node.
	ErrUnknownNode = errors.New("txgraph: unknown node")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("txgraph: edge not found")

	// ErrBadAmount indicates a transaction with a negative amount.
	ErrBadAmount = errors.New("txgraph: negative amount")

	// ErrBadTimestamp indicates a transaction with a zero timestamp.
	ErrBadTimestamp = errors.New("txgraph: zero timestamp")
)

// Tier is the discrete risk bucket assigned to a node by a scoring pass.
// The zero value is TierUnscored: a node stays unscored until stamped.
type Tier uint8

const (
	// TierUnscored marks a node no scoring pass has touched yet.
	TierUnscored Tier = iota

	// TierLow marks a node below the medium threshold.
	TierLow

	// TierMedium marks a node at or above the medium threshold.
	TierMedium

	// TierHigh marks a node at or above the high threshold.
	TierHigh
)

// String renders the tier the way the reporting layer spells it.
func (t Tier) String() string {
	switch t {
	case TierLow:
		return "Low"
	case TierMedium:
		return "Medium"
	case TierHigh:
		return "High"
	default:
		return "Unscored"
	}
}

// Direction selects which adjacency side Neighbors and degree queries read.
type Direction uint8

const (
	// DirOut selects outgoing edges (payments sent).
	DirOut Direction = iota

	// DirIn selects incoming edges (payments received).
	DirIn

	// DirBoth selects outgoing edges followed by incoming edges.
	DirBoth
)

// Node represents an account or entity in the transaction network.
//
// Aggregate counters (InCount/OutCount, InSum/OutSum, FirstSeen/LastSeen) are
// maintained incrementally by AddEdge and always equal the totals over the
// node's actual edges. RiskScore and RiskTier are stamped by a scoring pass
// via StampRisk; until then RiskTier == TierUnscored.
type Node struct {
	// ID is the unique identifier for this Node.
	ID string

	// Label is an optional human-readable name.
	Label string

	// Metadata stores arbitrary key-value annotations.
	Metadata map[string]string

	// InCount and OutCount are the number of incoming/outgoing transactions.
	InCount  int
	OutCount int

	// InSum and OutSum are the summed amounts over incoming/outgoing edges.
	InSum  decimal.Decimal
	OutSum decimal.Decimal

	// FirstSeen and LastSeen bound the node's active window: the earliest and
	// latest timestamp over all incident transactions. Zero until the first
	// incident edge arrives.
	FirstSeen time.Time
	LastSeen  time.Time

	// RiskScore is the last stamped 0-100 score; meaningful only once
	// RiskTier != TierUnscored.
	RiskScore float64

	// RiskTier is the last stamped risk bucket.
	RiskTier Tier
}

// Edge represents one transaction between two accounts.
//
// Edges are immutable once added: the graph never rewrites or deduplicates
// them, and parallel edges between the same ordered pair are kept distinct.
type Edge struct {
	// ID uniquely identifies this edge in the Graph.
	ID string

	// From is the paying account ID.
	From string

	// To is the receiving account ID.
	To string

	// Timestamp is when the transaction occurred.
	Timestamp time.Time

	// Amount is the transferred value.
	Amount decimal.Decimal

	// Currency is an optional ISO-4217 style tag.
	Currency string

	// Kind is an optional transaction type tag (wire, cash, ...).
	Kind string
}

// NodeOption configures properties of a node when it is added.
type NodeOption func(*Node)

// WithLabel sets the node's human-readable label.
func WithLabel(label string) NodeOption {
	return func(n *Node) { n.Label = label }
}

// WithMetadata replaces the node's metadata map.
// The map is stored as-is; callers must not mutate it afterwards.
func WithMetadata(md map[string]string) NodeOption {
	return func(n *Node) {
		if md != nil {
			n.Metadata = md
		}
	}
}

// EdgeOption configures properties of individual edges when added.
type EdgeOption func(*Edge)

// WithCurrency tags the edge with a currency code.
func WithCurrency(code string) EdgeOption {
	return func(e *Edge) { e.Currency = code }
}

// WithKind tags the edge with a transaction type.
func WithKind(kind string) EdgeOption {
	return func(e *Edge) { e.Kind = kind }
}

// Graph is the in-memory directed temporal multigraph.
//
// muNode protects the node catalog; muEdgeAdj protects edges, adjacency and
// the pair-multiplicity index. nextEdgeID is an atomic counter for unique
// Edge.ID generation. Adjacency keeps ordered slices per node (insertion
// order, so traversal order is deterministic and reproducible), while
// pairCount[from][to] gives O(1) HasEdge/Multiplicity lookups.
type Graph struct {
	muNode    sync.RWMutex // guards nodes
	muEdgeAdj sync.RWMutex // guards edges, adjacency, pairCount

	// Storage
	nextEdgeID uint64           // atomic edge ID generator
	nodes      map[string]*Node // node ID → Node
	edges      map[string]*Edge // edge ID → Edge
	edgeList   []*Edge          // all edges in insertion order

	// Ordered adjacency: out[id] / in[id] in insertion order.
	out map[string][]*Edge
	in  map[string][]*Edge

	// pairCount[from][to] = number of parallel edges on that ordered pair.
	pairCount map[string]map[string]int
}

// NewGraph creates an empty transaction graph.
// The graph is always directed, always a multigraph, and permits self-loops
// (an account wiring money to itself is a legitimate, reportable event).
// Complexity: O(1).
func NewGraph() *Graph {
	return &Graph{
		nodes:     make(map[string]*Node),
		edges:     make(map[string]*Edge),
		out:       make(map[string][]*Edge),
		in:        make(map[string][]*Edge),
		pairCount: make(map[string]map[string]int),
	}
}
