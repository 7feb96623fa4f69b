// SPDX-License-Identifier: MIT
// Package: amlnet/netbuild
// File: netbuild/impl_fanin.go
// Purpose: many-to-one aggregation — spoke accounts paying into a single
//          hub, the smurfing/structuring collection shape.
//
// Contract:
//   - FanIn(prefix, spokes): hub prefix+hubSuffix, spokes
//     prefix000..prefix{spokes-1}, edge spoke_i → hub at tick i.
//   - spokes ≥ minSpokes; otherwise ErrTooFewAccounts.
//   - One-tick spacing keeps all transfers inside a burst window when
//     tick ≤ window/spokes, the shape burst detectors look for.
//
// Complexity: O(spokes) registrations + O(spokes) edge insertions.
//
// Determinism: fixed iteration 0..spokes-1.

package netbuild

import (
	"github.com/finlytics-lab/amlnet/txgraph"
)

// methodFanIn tags error context emitted by the FanIn constructor.
const methodFanIn = "FanIn"

// hubSuffix names the aggregation/dispersion center under a prefix.
const hubSuffix = "HUB"

// minSpokes is the smallest fan that is still a fan.
const minSpokes = 1

// FanIn returns a Constructor that wires spokes payer accounts into one
// hub account under prefix.
func FanIn(prefix string, spokes int) Constructor {
	return func(g *txgraph.Graph, cfg netConfig) error {
		if spokes < minSpokes { // 1) shape guard
			return netErrorf(ErrTooFewAccounts, "%s(%q): need ≥ %d spokes, got %d",
				methodFanIn, prefix, minSpokes, spokes)
		}

		hub := prefix + hubSuffix
		if err := ensureAccount(g, hub); err != nil { // 2) hub first
			return netErrorf(ErrConstructFailed, "%s(%q): %v", methodFanIn, prefix, err)
		}

		for i := 0; i < spokes; i++ { // 3) spokes pay inward, one per tick
			spoke := accountID(prefix, i)
			if err := ensureAccount(g, spoke); err != nil {
				return netErrorf(ErrConstructFailed, "%s(%q): %v", methodFanIn, prefix, err)
			}
			if err := transfer(g, cfg, spoke, hub, i); err != nil {
				return err
			}
		}

		return nil
	}
}
