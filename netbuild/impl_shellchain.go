// SPDX-License-Identifier: MIT
// Package: amlnet/netbuild
// File: netbuild/impl_shellchain.go
// Purpose: thin pass-through chain — funds hop through low-activity
//          shell accounts, each touching money exactly twice.
//
// Contract:
//   - ShellChain(prefix, length): accounts prefix000..prefix{length-1},
//     edge i → i+1 at tick i; no closing edge (the chain is open).
//   - length ≥ minChainLinks; otherwise ErrTooFewAccounts.
//   - Interior accounts end with in+out degree 2, the band shell-layer
//     detectors search, while the endpoints stay at degree 1.
//
// Complexity: O(length) registrations + O(length−1) edge insertions.
//
// Determinism: fixed iteration 0..length-1.

package netbuild

import (
	"github.com/finlytics-lab/amlnet/txgraph"
)

// methodShellChain tags error context emitted by the ShellChain constructor.
const methodShellChain = "ShellChain"

// minChainLinks is the shortest open chain with at least one transfer.
const minChainLinks = 2

// ShellChain returns a Constructor that wires length accounts into an
// open forwarding chain under prefix.
func ShellChain(prefix string, length int) Constructor {
	return func(g *txgraph.Graph, cfg netConfig) error {
		if length < minChainLinks { // 1) shape guard
			return netErrorf(ErrTooFewAccounts, "%s(%q): need ≥ %d links, got %d",
				methodShellChain, prefix, minChainLinks, length)
		}

		for i := 0; i < length; i++ { // 2) register the chain accounts
			if err := ensureAccount(g, accountID(prefix, i)); err != nil {
				return netErrorf(ErrConstructFailed, "%s(%q): %v", methodShellChain, prefix, err)
			}
		}

		for i := 0; i < length-1; i++ { // 3) forward hop by hop
			if err := transfer(g, cfg, accountID(prefix, i), accountID(prefix, i+1), i); err != nil {
				return err
			}
		}

		return nil
	}
}
