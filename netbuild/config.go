// SPDX-License-Identifier: MIT
// Package: amlnet/netbuild
// File: netbuild/config.go
// Purpose: internal configuration state shared by all topology
//          constructors, populated via functional options.
//
// Contract:
//   - netConfig is passed BY VALUE into each Constructor: a constructor
//     may advance its own timestamp cursor without affecting siblings.
//   - Zero rng is legal; deterministic constructors fall back to fixed
//     amounts, randomized ones reject with ErrNeedRandSource.
//   - Defaults are centralized here as named constants; option
//     constructors validate eagerly and panic on misuse.

package netbuild

import (
	"math/rand"
	"time"
)

// Default knobs applied by newNetConfig before options run.
const (
	// defaultTick spaces consecutive transfers one hour apart, inside the
	// burst windows the risk heuristics look for.
	defaultTick = time.Hour
)

// defaultBase anchors every generated timeline at a fixed instant so
// fixtures compare equal across runs and machines.
var defaultBase = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// netConfig carries every knob a Constructor needs. It is internal:
// callers shape it exclusively through NetOption values.
type netConfig struct {
	rng      *rand.Rand    // nil ⇒ deterministic fallbacks / ErrNeedRandSource
	baseTime time.Time     // timestamp of each constructor's first transfer
	tick     time.Duration // spacing between consecutive transfers
	amountFn AmountFn      // transfer amount distribution
}

// newNetConfig assembles the effective configuration:
//  1. start from package defaults,
//  2. apply the caller's options in order (later wins).
func newNetConfig(opts ...NetOption) netConfig {
	cfg := netConfig{
		rng:      nil,              // unseeded unless WithSeed/WithRand
		baseTime: defaultBase,      // fixed epoch for reproducibility
		tick:     defaultTick,      // 1h spacing
		amountFn: DefaultAmountFn,  // constant DefaultAmount
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// stamp returns the timestamp of the i-th transfer drawn by a constructor
// and is the single way constructors derive edge times.
func (c netConfig) stamp(i int) time.Time {
	return c.baseTime.Add(time.Duration(i) * c.tick)
}
