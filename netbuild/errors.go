// SPDX-License-Identifier: MIT
// Package: amlnet/netbuild
// File: netbuild/errors.go
// Purpose: canonical sentinel errors for network construction.
//
// Policy:
//   - Sentinel-only comparisons: callers must use errors.Is against the
//     exported sentinels below; never match on error strings.
//   - Constructors wrap sentinels with topology context (prefix, sizes)
//     via netErrorf; the sentinel stays the Is-target through the chain.
//   - Option-constructor misuse (nil fn, zero tick) is a programmer error
//     and panics at wiring time; sentinels cover runtime construction only.

package netbuild

import (
	"errors"
	"fmt"
)

// ErrTooFewAccounts is returned when a topology constructor is asked for
// fewer accounts than its shape needs (Ring needs ≥ 2, FanIn/FanOut need
// ≥ 1 spoke, ShellChain needs ≥ 2 links, Scatter needs ≥ 2 accounts).
var ErrTooFewAccounts = errors.New("netbuild: too few accounts for topology")

// ErrInvalidProbability is returned when an edge probability lies outside
// the closed interval [0,1].
var ErrInvalidProbability = errors.New("netbuild: probability out of [0,1]")

// ErrNeedRandSource is returned by randomized constructors (Scatter) when
// no RNG was supplied via WithSeed or WithRand. Randomized topologies
// refuse to run unseeded so fixtures stay reproducible by construction.
var ErrNeedRandSource = errors.New("netbuild: random source required")

// ErrConstructFailed is returned by BuildNetwork when a supplied
// Constructor is nil or the underlying graph mutation fails.
var ErrConstructFailed = errors.New("netbuild: construction failed")

// netErrorf wraps a sentinel with formatted context while preserving
// errors.Is matching on the sentinel.
func netErrorf(sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{sentinel}, args...)...)
}
