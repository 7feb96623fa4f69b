// Package risk defines types and options for account risk scoring and
// structuring-pattern detection: component weights, tier thresholds, burst
// windows, and the shell-count band.
package risk

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finlytics-lab/amlnet/txgraph"
)

// Detection defaults, carried over from established AML heuristics: ten
// transactions inside three days is the canonical smurfing burst, and
// accounts touched only two or three times are the classic pass-through
// shell profile.
const (
	// DefaultWindow is the burst window for fan-in/fan-out detection.
	DefaultWindow = 72 * time.Hour

	// DefaultMinBurst is the minimum transaction count of a burst.
	DefaultMinBurst = 10

	// DefaultShellLo and DefaultShellHi bound the total transaction count
	// of a shell-layer candidate, inclusive.
	DefaultShellLo = 2
	DefaultShellHi = 3
)

var (
	// ErrNilGraph is returned when a nil *txgraph.Graph is passed in.
	ErrNilGraph = errors.New("risk: graph is nil")

	// ErrInvalidWeights indicates negative weights or a zero weight sum.
	ErrInvalidWeights = errors.New("risk: weights must be non-negative with a positive sum")

	// ErrInvalidThresholds indicates non-monotonic tier thresholds.
	ErrInvalidThresholds = errors.New("risk: thresholds must satisfy 0 <= Medium <= High")

	// ErrTimeout indicates pattern detection was cancelled mid-scan.
	ErrTimeout = errors.New("risk: detection cancelled")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("risk: invalid option supplied")
)

// Weights blends the three normalized risk components into one score.
// Individual weights may be zero to disable a component; the sum must be
// positive.
type Weights struct {
	Velocity   float64
	Cyclic     float64
	Centrality float64
}

// DefaultWeights weighs all three components equally.
func DefaultWeights() Weights {
	return Weights{Velocity: 1.0 / 3, Cyclic: 1.0 / 3, Centrality: 1.0 / 3}
}

// validate reports whether the weights form a usable blend.
func (w Weights) validate() error {
	if w.Velocity < 0 || w.Cyclic < 0 || w.Centrality < 0 {
		return ErrInvalidWeights
	}
	if w.Velocity+w.Cyclic+w.Centrality <= 0 {
		return ErrInvalidWeights
	}

	return nil
}

// Thresholds maps a 0-100 score onto a tier: score >= High is TierHigh,
// score >= Medium is TierMedium, anything below is TierLow.
type Thresholds struct {
	High   float64
	Medium float64
}

// DefaultThresholds returns the conventional 70/40 split.
func DefaultThresholds() Thresholds {
	return Thresholds{High: 70, Medium: 40}
}

// validate reports whether the thresholds are monotonic.
func (t Thresholds) validate() error {
	if t.Medium < 0 || t.High < t.Medium {
		return ErrInvalidThresholds
	}

	return nil
}

// Result carries one node's score, tier, and the normalized components the
// score was blended from. Components are each in [0, 1]; Score in [0, 100].
type Result struct {
	NodeID     string
	Score      float64
	Tier       txgraph.Tier
	Velocity   float64
	Cyclic     float64
	Centrality float64
}

// Option configures optional behavior of Score and DetectPatterns.
type Option func(*Options)

// Options holds configurable parameters for scoring and pattern detection.
type Options struct {
	// Ctx allows cancellation of pattern detection; defaults to
	// context.Background(). Scoring itself is not cancellable: it is a
	// bounded two-pass sweep.
	Ctx context.Context

	// Weights blends the score components. Defaults to equal thirds.
	Weights Weights

	// Thresholds maps scores onto tiers. Defaults to High 70, Medium 40.
	Thresholds Thresholds

	// Window is the burst window for fan-in/fan-out detection.
	Window time.Duration

	// MinBurst is the minimum number of transactions inside Window for a
	// node to count as an aggregator or disperser.
	MinBurst int

	// ShellLo and ShellHi bound (inclusive) the total transaction count of
	// a shell-layer candidate.
	ShellLo int
	ShellHi int

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with:
//   - Background context
//   - equal component weights
//   - tier thresholds High 70 / Medium 40
//   - 72h burst window, burst size 10
//   - shell band [2, 3]
func DefaultOptions() Options {
	return Options{
		Ctx:        context.Background(),
		Weights:    DefaultWeights(),
		Thresholds: DefaultThresholds(),
		Window:     DefaultWindow,
		MinBurst:   DefaultMinBurst,
		ShellLo:    DefaultShellLo,
		ShellHi:    DefaultShellHi,
	}
}

// WithContext sets the context used to cancel pattern detection.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithWeights overrides the component blend. Validation happens inside
// Score, so both hand-built and computed weights fail the same way.
func WithWeights(w Weights) Option {
	return func(o *Options) { o.Weights = w }
}

// WithThresholds overrides the tier thresholds.
func WithThresholds(t Thresholds) Option {
	return func(o *Options) { o.Thresholds = t }
}

// WithWindow overrides the burst window. Non-positive windows are invalid.
func WithWindow(d time.Duration) Option {
	return func(o *Options) {
		if d <= 0 {
			o.err = fmt.Errorf("%w: window must be positive (%v)", ErrOptionViolation, d)
			return
		}
		o.Window = d
	}
}

// WithMinBurst overrides the burst size. Bursts below 2 are meaningless.
func WithMinBurst(n int) Option {
	return func(o *Options) {
		if n < 2 {
			o.err = fmt.Errorf("%w: burst size must be at least 2 (%d)", ErrOptionViolation, n)
			return
		}
		o.MinBurst = n
	}
}

// WithShellBand overrides the inclusive shell-count band.
func WithShellBand(lo, hi int) Option {
	return func(o *Options) {
		if lo < 1 || hi < lo {
			o.err = fmt.Errorf("%w: shell band [%d, %d] must satisfy 1 <= lo <= hi", ErrOptionViolation, lo, hi)
			return
		}
		o.ShellLo, o.ShellHi = lo, hi
	}
}
