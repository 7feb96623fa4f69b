// SPDX-License-Identifier: MIT
// Package: amlnet/netbuild
// File: netbuild/options.go
// Purpose: functional options shaping netConfig before construction.
//
// Contract:
//   - Options apply in call order; the last write wins.
//   - Invalid parameters (nil rng, zero time, non-positive tick, nil
//     AmountFn) are programmer errors and panic at wiring time, keeping
//     construction itself sentinel-clean.
//
// AI-Hints:
//   - Prefer WithSeed over WithRand in tests: one integer in the test
//     body documents the whole stream.
//   - Combine WithBaseTime/WithTick to steer burst-window placement when
//     a fixture must land inside or outside a detector's window.

package netbuild

import (
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// NetOption mutates the internal netConfig prior to construction.
type NetOption func(*netConfig)

// WithSeed seeds a fresh deterministic RNG for randomized constructors
// and amount distributions.
func WithSeed(seed int64) NetOption {
	return func(cfg *netConfig) {
		cfg.rng = rand.New(rand.NewSource(seed)) // deterministic stream per seed
	}
}

// WithRand installs a caller-owned RNG. Panics on nil: pass WithSeed
// instead when you only have a seed.
func WithRand(rng *rand.Rand) NetOption {
	if rng == nil {
		panic("netbuild: WithRand: nil *rand.Rand")
	}
	return func(cfg *netConfig) {
		cfg.rng = rng
	}
}

// WithBaseTime anchors the first transfer of each constructor at t.
// Panics on the zero time, which would desync fixture timelines.
func WithBaseTime(t time.Time) NetOption {
	if t.IsZero() {
		panic("netbuild: WithBaseTime: zero time")
	}
	return func(cfg *netConfig) {
		cfg.baseTime = t.UTC() // normalized like every stored timestamp
	}
}

// WithTick sets the spacing between consecutive transfers drawn by one
// constructor. Panics if d ≤ 0.
func WithTick(d time.Duration) NetOption {
	if d <= 0 {
		panic("netbuild: WithTick: non-positive tick")
	}
	return func(cfg *netConfig) {
		cfg.tick = d
	}
}

// WithAmountFn installs a custom amount distribution. Panics on nil.
func WithAmountFn(fn AmountFn) NetOption {
	if fn == nil {
		panic("netbuild: WithAmountFn: nil AmountFn")
	}
	return func(cfg *netConfig) {
		cfg.amountFn = fn
	}
}

// WithConstantAmount is shorthand for
// WithAmountFn(ConstantAmountFn(decimal.NewFromFloat(v))).
func WithConstantAmount(v float64) NetOption {
	return WithAmountFn(ConstantAmountFn(decimal.NewFromFloat(v)))
}

// WithUniformAmount is shorthand for WithAmountFn(UniformAmountFn(min, max)).
func WithUniformAmount(min, max float64) NetOption {
	return WithAmountFn(UniformAmountFn(min, max))
}

// WithNormalAmount is shorthand for WithAmountFn(NormalAmountFn(mean, stddev)).
func WithNormalAmount(mean, stddev float64) NetOption {
	return WithAmountFn(NormalAmountFn(mean, stddev))
}
