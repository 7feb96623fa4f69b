// Package analyzer: pipeline configuration.
package analyzer

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/finlytics-lab/amlnet/risk"
)

// Pipeline defaults. Engine-specific knobs reuse the engine defaults; the
// ones below belong to the pipeline itself.
const (
	// DefaultMaxHops bounds cycle search depth.
	DefaultMaxHops = 5

	// DefaultHighVelocity is the normalized velocity component above which
	// an account is tagged high_velocity in the report.
	DefaultHighVelocity = 0.8
)

// Config aggregates every knob of the analysis pipeline. The zero value of
// any field falls back to its default inside New, so Config{} runs the
// stock pipeline.
type Config struct {
	// MaxHops bounds cycle search depth. Default 5.
	MaxHops int

	// SuspiciousLo and SuspiciousHi bound the flagged hop band.
	// Defaults 3 and 5.
	SuspiciousLo int
	SuspiciousHi int

	// ValueThreshold, if non-nil, flags cycles whose aggregate value
	// strictly exceeds it. Default nil (hop-band flagging only).
	ValueThreshold *decimal.Decimal

	// Window, MinBurst, ShellLo, ShellHi parameterize pattern detection.
	// Defaults: 72h, 10, 2, 3.
	Window   time.Duration
	MinBurst int
	ShellLo  int
	ShellHi  int

	// Weights and Thresholds parameterize risk scoring.
	// Defaults: equal thirds, High 70 / Medium 40.
	Weights    risk.Weights
	Thresholds risk.Thresholds

	// HighVelocity is the velocity component cut-off for the
	// high_velocity report tag. Default 0.8.
	HighVelocity float64

	// Budget, if > 0, bounds cycle-search work. Default unlimited.
	Budget uint64

	// Logger receives structured pipeline events. Default no-op.
	Logger *zap.Logger
}

// DefaultConfig returns the stock pipeline configuration.
func DefaultConfig() Config {
	return Config{
		MaxHops:      DefaultMaxHops,
		SuspiciousLo: 3,
		SuspiciousHi: 5,
		Window:       risk.DefaultWindow,
		MinBurst:     risk.DefaultMinBurst,
		ShellLo:      risk.DefaultShellLo,
		ShellHi:      risk.DefaultShellHi,
		Weights:      risk.DefaultWeights(),
		Thresholds:   risk.DefaultThresholds(),
		HighVelocity: DefaultHighVelocity,
	}
}

// withDefaults fills zero-valued fields so a partially-populated Config
// behaves like DefaultConfig for everything left unset.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxHops < 1 {
		c.MaxHops = d.MaxHops
	}
	if c.SuspiciousLo < 1 || c.SuspiciousHi < c.SuspiciousLo {
		c.SuspiciousLo, c.SuspiciousHi = d.SuspiciousLo, d.SuspiciousHi
	}
	if c.Window <= 0 {
		c.Window = d.Window
	}
	if c.MinBurst < 2 {
		c.MinBurst = d.MinBurst
	}
	if c.ShellLo < 1 || c.ShellHi < c.ShellLo {
		c.ShellLo, c.ShellHi = d.ShellLo, d.ShellHi
	}
	if c.Weights == (risk.Weights{}) {
		c.Weights = d.Weights
	}
	if c.Thresholds == (risk.Thresholds{}) {
		c.Thresholds = d.Thresholds
	}
	if c.HighVelocity <= 0 {
		c.HighVelocity = d.HighVelocity
	}

	return c
}
