// SPDX-License-Identifier: MIT
// Package: amlnet/netbuild
// File: netbuild/api.go
// Purpose: public construction surface — the Constructor contract, the
//          BuildNetwork orchestrator, and thin single-topology helpers.
//
// Contract:
//   - Constructor: applies exactly one topology onto g using cfg; must
//     be idempotent w.r.t. account registration (shared accounts across
//     constructors are legal) and must wrap failures in a sentinel.
//   - BuildNetwork: fresh graph + options + constructors in order; the
//     first failing constructor aborts with ErrConstructFailed context.
//   - Apply: same contract against a caller-owned graph, for layering
//     synthetic typologies onto imported data.
//
// Complexity: Σ over constructors of their documented cost; orchestration
// overhead is O(len(constructors)).
//
// Determinism: constructor order is execution order; with a seeded rng
// the entire network (IDs, timestamps, amounts) is reproducible.

package netbuild

import (
	"errors"
	"fmt"

	"github.com/finlytics-lab/amlnet/txgraph"
)

// Constructor applies one topology to g. Implementations receive cfg by
// value and may advance its timestamp cursor privately.
type Constructor func(g *txgraph.Graph, cfg netConfig) error

// BuildNetwork assembles a fresh transaction graph:
//  1. resolve options into a netConfig,
//  2. run each Constructor in order on a new graph,
//  3. abort on the first failure, naming the failing position.
//
// A nil Constructor is rejected up front with ErrConstructFailed.
func BuildNetwork(opts []NetOption, constructors ...Constructor) (*txgraph.Graph, error) {
	g := txgraph.NewGraph()
	if err := Apply(g, opts, constructors...); err != nil {
		return nil, fmt.Errorf("BuildNetwork: %w", err)
	}

	return g, nil
}

// Apply runs constructors against an existing graph under the same
// contract as BuildNetwork. It lets tests layer typologies onto graphs
// that already carry ingested records.
func Apply(g *txgraph.Graph, opts []NetOption, constructors ...Constructor) error {
	if g == nil {
		return netErrorf(ErrConstructFailed, "nil graph")
	}
	cfg := newNetConfig(opts...) // 1) resolve configuration once

	for i, build := range constructors { // 2) ordered application
		if build == nil {
			return netErrorf(ErrConstructFailed, "constructor #%d is nil", i)
		}
		if err := build(g, cfg); err != nil { // 3) abort on first failure
			return fmt.Errorf("constructor #%d: %w", i, err)
		}
	}

	return nil
}

// accountID derives the canonical synthetic account identifier for
// index i under prefix: "MULE" + 7 → "MULE007".
func accountID(prefix string, i int) string {
	return fmt.Sprintf("%s%03d", prefix, i)
}

// ensureAccount registers id, tolerating prior registration so topology
// constructors compose on shared graphs.
func ensureAccount(g *txgraph.Graph, id string) error {
	if err := g.AddNode(id); err != nil && !errors.Is(err, txgraph.ErrDuplicateNode) {
		return err
	}

	return nil
}

// transfer draws an amount from cfg and records one timestamped edge,
// wrapping any graph failure in ErrConstructFailed.
func transfer(g *txgraph.Graph, cfg netConfig, from, to string, seq int) error {
	amount := cfg.amountFn(cfg.rng)
	if _, err := g.AddEdge(from, to, cfg.stamp(seq), amount); err != nil {
		return netErrorf(ErrConstructFailed, "%s→%s: %v", from, to, err)
	}

	return nil
}
