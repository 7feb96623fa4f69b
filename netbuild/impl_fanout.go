// SPDX-License-Identifier: MIT
// Package: amlnet/netbuild
// File: netbuild/impl_fanout.go
// Purpose: one-to-many dispersion — a hub account spraying funds across
//          spoke accounts, the distribution mirror of FanIn.
//
// Contract:
//   - FanOut(prefix, spokes): hub prefix+hubSuffix, spokes
//     prefix000..prefix{spokes-1}, edge hub → spoke_i at tick i.
//   - spokes ≥ minSpokes; otherwise ErrTooFewAccounts.
//
// Complexity: O(spokes) registrations + O(spokes) edge insertions.
//
// Determinism: fixed iteration 0..spokes-1.

package netbuild

import (
	"github.com/finlytics-lab/amlnet/txgraph"
)

// methodFanOut tags error context emitted by the FanOut constructor.
const methodFanOut = "FanOut"

// FanOut returns a Constructor that wires one hub account paying out to
// spokes payee accounts under prefix.
func FanOut(prefix string, spokes int) Constructor {
	return func(g *txgraph.Graph, cfg netConfig) error {
		if spokes < minSpokes { // 1) shape guard
			return netErrorf(ErrTooFewAccounts, "%s(%q): need ≥ %d spokes, got %d",
				methodFanOut, prefix, minSpokes, spokes)
		}

		hub := prefix + hubSuffix
		if err := ensureAccount(g, hub); err != nil { // 2) hub first
			return netErrorf(ErrConstructFailed, "%s(%q): %v", methodFanOut, prefix, err)
		}

		for i := 0; i < spokes; i++ { // 3) hub pays outward, one per tick
			spoke := accountID(prefix, i)
			if err := ensureAccount(g, spoke); err != nil {
				return netErrorf(ErrConstructFailed, "%s(%q): %v", methodFanOut, prefix, err)
			}
			if err := transfer(g, cfg, hub, spoke, i); err != nil {
				return err
			}
		}

		return nil
	}
}
