// SPDX-License-Identifier: MIT
// Package: amlnet/netbuild
// File: netbuild/impl_ring.go
// Purpose: circular transfer chain — the canonical layering ring where
//          funds return to their origin account.
//
// Contract:
//   - Ring(prefix, n): accounts prefix000..prefix{n-1}, edges
//     i → (i+1) mod n, one per tick starting at baseTime.
//   - n ≥ minRingAccounts; smaller rings reject with ErrTooFewAccounts
//     (a two-account ring A→B→A is the smallest money round trip).
//
// Complexity: O(n) account registrations + O(n) edge insertions.
//
// Determinism: fixed iteration 0..n-1; amounts follow cfg.amountFn in
// that draw order.

package netbuild

import (
	"github.com/finlytics-lab/amlnet/txgraph"
)

// methodRing tags error context emitted by the Ring constructor.
const methodRing = "Ring"

// minRingAccounts is the smallest closed transfer loop.
const minRingAccounts = 2

// Ring returns a Constructor that wires n accounts into a single
// directed cycle under prefix.
func Ring(prefix string, n int) Constructor {
	return func(g *txgraph.Graph, cfg netConfig) error {
		if n < minRingAccounts { // 1) shape guard
			return netErrorf(ErrTooFewAccounts, "%s(%q): need ≥ %d, got %d",
				methodRing, prefix, minRingAccounts, n)
		}

		for i := 0; i < n; i++ { // 2) register the member accounts
			if err := ensureAccount(g, accountID(prefix, i)); err != nil {
				return netErrorf(ErrConstructFailed, "%s(%q): %v", methodRing, prefix, err)
			}
		}

		for i := 0; i < n; i++ { // 3) close the loop, one transfer per tick
			from := accountID(prefix, i)
			to := accountID(prefix, (i+1)%n)
			if err := transfer(g, cfg, from, to, i); err != nil {
				return err
			}
		}

		return nil
	}
}
