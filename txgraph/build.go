// Package txgraph: ingestion surface.
//
// Build turns externally-parsed, already-validated rows into a Graph in one
// shot. Seeds register accounts first, records add transactions second, and
// any failure aborts the whole build: analysis engines never see a
// partially-built graph.

package txgraph

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Seed registers one account before any transactions reference it.
type Seed struct {
	// ID is the unique account identifier.
	ID string

	// Label is an optional human-readable name.
	Label string

	// Metadata stores optional key-value annotations.
	Metadata map[string]string
}

// Record is one parsed transaction row, in the shape the surrounding system
// hands over after deduplication. The core does not parse raw files.
type Record struct {
	// SourceID is the paying account.
	SourceID string

	// DestID is the receiving account.
	DestID string

	// Timestamp is when the transaction occurred.
	Timestamp time.Time

	// Amount is the transferred value.
	Amount decimal.Decimal

	// Currency is an optional ISO-4217 style tag.
	Currency string

	// Kind is an optional transaction type tag.
	Kind string
}

// BuildOption configures graph construction.
type BuildOption func(*buildConfig)

// buildConfig aggregates the Build knobs.
type buildConfig struct {
	implicitNodes bool
}

// WithImplicitNodes lets Build auto-seed endpoints that no Seed declared.
// Use it for edge-list-only datasets; by default a record referencing an
// unseeded account aborts the build with ErrUnknownNode.
func WithImplicitNodes() BuildOption {
	return func(c *buildConfig) { c.implicitNodes = true }
}

// Build constructs a fresh Graph from seeds and records.
// Seeds are applied in order, then records in order; the first failure aborts
// the whole build and Build returns (nil, err). Duplicate seeds fail with
// ErrDuplicateNode, records referencing unseeded accounts fail with
// ErrUnknownNode unless WithImplicitNodes is given.
// Complexity: O(len(seeds) + len(records)).
func Build(seeds []Seed, records []Record, opts ...BuildOption) (*Graph, error) {
	var cfg buildConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	g := NewGraph()

	// 1) Register every seeded account
	for i, s := range seeds {
		var nopts []NodeOption
		if s.Label != "" {
			nopts = append(nopts, WithLabel(s.Label))
		}
		if s.Metadata != nil {
			nopts = append(nopts, WithMetadata(s.Metadata))
		}
		if err := g.AddNode(s.ID, nopts...); err != nil {
			return nil, fmt.Errorf("txgraph: Build: seed %d: %w", i, err)
		}
	}

	// 2) Record every transaction
	for i, r := range records {
		if cfg.implicitNodes {
			if err := g.ensureNode(r.SourceID); err != nil {
				return nil, fmt.Errorf("txgraph: Build: record %d: %w", i, err)
			}
			if err := g.ensureNode(r.DestID); err != nil {
				return nil, fmt.Errorf("txgraph: Build: record %d: %w", i, err)
			}
		}
		var eopts []EdgeOption
		if r.Currency != "" {
			eopts = append(eopts, WithCurrency(r.Currency))
		}
		if r.Kind != "" {
			eopts = append(eopts, WithKind(r.Kind))
		}
		if _, err := g.AddEdge(r.SourceID, r.DestID, r.Timestamp, r.Amount, eopts...); err != nil {
			return nil, fmt.Errorf("txgraph: Build: record %d: %w", i, err)
		}
	}

	return g, nil
}

// ensureNode adds id if absent; only Build's implicit-nodes path uses it.
func (g *Graph) ensureNode(id string) error {
	if g.HasNode(id) {
		return nil
	}

	return g.AddNode(id)
}
