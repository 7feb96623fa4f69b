// SPDX-License-Identifier: MIT
// Package: amlnet/netbuild
// File: netbuild/amount_fn.go
// Purpose: pluggable transfer-amount distributions used by every
//          topology constructor when it draws an edge amount.
//
// Contract:
//   - An AmountFn must return a positive, two-decimal monetary value.
//   - nil rng ⇒ deterministic fallback (DefaultAmount), never a panic:
//     unseeded builds stay legal for the deterministic constructors.
//   - Distribution parameters are validated eagerly; the returned
//     closures never fail at draw time.
//
// Determinism: with a seeded rng every AmountFn is reproducible; the
// draw order is fixed by the constructor that consumes it.

package netbuild

import (
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"
)

// DefaultAmount is the constant transfer amount (in base currency units)
// used when no distribution was configured or no rng is available.
const DefaultAmount = 100

// AmountFn draws one transfer amount. Implementations must tolerate a
// nil rng by returning a fixed deterministic value.
type AmountFn func(rng *rand.Rand) decimal.Decimal

// DefaultAmountFn returns DefaultAmount regardless of rng. It is the
// package-wide default distribution.
func DefaultAmountFn(_ *rand.Rand) decimal.Decimal {
	return decimal.NewFromInt(DefaultAmount)
}

// ConstantAmountFn returns an AmountFn that always yields value.
//
// Panics if value is not strictly positive: a zero or negative transfer
// is a fixture bug, caught at wiring time.
func ConstantAmountFn(value decimal.Decimal) AmountFn {
	if !value.IsPositive() { // 1) eager validation
		panic(fmt.Sprintf("netbuild: ConstantAmountFn: non-positive value %s", value))
	}
	return func(_ *rand.Rand) decimal.Decimal { // 2) rng is irrelevant here
		return value
	}
}

// UniformAmountFn returns an AmountFn drawing uniformly from [min,max],
// rounded to two decimal places.
//
// Panics if min ≤ 0 or max < min. With a nil rng the draw degrades to
// DefaultAmount.
func UniformAmountFn(min, max float64) AmountFn {
	if min <= 0 || max < min { // 1) eager validation
		panic(fmt.Sprintf("netbuild: UniformAmountFn: invalid range [%v,%v]", min, max))
	}
	return func(rng *rand.Rand) decimal.Decimal {
		if rng == nil { // 2) deterministic fallback
			return decimal.NewFromInt(DefaultAmount)
		}
		v := min + rng.Float64()*(max-min) // 3) uniform draw
		return decimal.NewFromFloat(v).Round(2)
	}
}

// NormalAmountFn returns an AmountFn drawing from N(mean, stddev²),
// clipped below at 0.01 so amounts stay positive, rounded to two
// decimal places.
//
// Panics if mean ≤ 0 or stddev < 0. With a nil rng the draw degrades to
// DefaultAmount.
func NormalAmountFn(mean, stddev float64) AmountFn {
	if mean <= 0 || stddev < 0 { // 1) eager validation
		panic(fmt.Sprintf("netbuild: NormalAmountFn: invalid params mean=%v stddev=%v", mean, stddev))
	}
	return func(rng *rand.Rand) decimal.Decimal {
		if rng == nil { // 2) deterministic fallback
			return decimal.NewFromInt(DefaultAmount)
		}
		v := mean + rng.NormFloat64()*stddev // 3) gaussian draw
		if v < 0.01 {                        // 4) clip to positive money
			v = 0.01
		}
		return decimal.NewFromFloat(v).Round(2)
	}
}
