// SPDX-License-Identifier: MIT
// Package: amlnet/netbuild
// File: netbuild/impl_scatter.go
// Purpose: random background traffic — ordinary transfers between n
//          accounts so typology fixtures do not sit in a vacuum.
//
// Contract:
//   - Scatter(prefix, n, p): accounts prefix000..prefix{n-1}; every
//     ordered pair (i,j), i≠j, gains edge i → j with probability p.
//   - Requires a seeded rng (WithSeed/WithRand): ErrNeedRandSource
//     otherwise. p must lie in [0,1]: ErrInvalidProbability otherwise.
//     n ≥ minScatterAccounts: ErrTooFewAccounts otherwise.
//   - Timestamps advance one tick per EMITTED edge, not per considered
//     pair, so generated timelines have no gaps.
//
// Complexity: O(n²) pair draws + O(p·n²) expected edge insertions.
//
// Determinism: pairs are visited in fixed (i, then j) ascending order;
// the rng stream alternates pair draws and amount draws in that order,
// so one seed fixes the whole emission.

package netbuild

import (
	"github.com/finlytics-lab/amlnet/txgraph"
)

// methodScatter tags error context emitted by the Scatter constructor.
const methodScatter = "Scatter"

// minScatterAccounts is the smallest population with an ordered pair.
const minScatterAccounts = 2

// Scatter returns a Constructor that sprays random transfers among n
// accounts under prefix with per-pair probability p.
func Scatter(prefix string, n int, p float64) Constructor {
	return func(g *txgraph.Graph, cfg netConfig) error {
		if n < minScatterAccounts { // 1) shape guard
			return netErrorf(ErrTooFewAccounts, "%s(%q): need ≥ %d, got %d",
				methodScatter, prefix, minScatterAccounts, n)
		}
		if p < 0 || p > 1 { // 2) probability guard
			return netErrorf(ErrInvalidProbability, "%s(%q): p=%v", methodScatter, prefix, p)
		}
		if cfg.rng == nil { // 3) randomized topology refuses to run unseeded
			return netErrorf(ErrNeedRandSource, "%s(%q): use WithSeed or WithRand", methodScatter, prefix)
		}

		for i := 0; i < n; i++ { // 4) register the population
			if err := ensureAccount(g, accountID(prefix, i)); err != nil {
				return netErrorf(ErrConstructFailed, "%s(%q): %v", methodScatter, prefix, err)
			}
		}

		seq := 0                     // timestamp cursor over emitted edges
		for i := 0; i < n; i++ {     // 5) fixed visiting order keeps the
			for j := 0; j < n; j++ { //    rng stream reproducible
				if i == j {
					continue
				}
				if cfg.rng.Float64() >= p { // 6) Bernoulli per ordered pair
					continue
				}
				if err := transfer(g, cfg, accountID(prefix, i), accountID(prefix, j), seq); err != nil {
					return err
				}
				seq++
			}
		}

		return nil
	}
}
