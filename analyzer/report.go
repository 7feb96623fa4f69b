// Package analyzer: structured report shapes. These are the serializable
// result types handed to the surrounding persistence/API layer; the wire
// encoding itself stays with the caller.
package analyzer

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/finlytics-lab/amlnet/cycles"
	"github.com/finlytics-lab/amlnet/risk"
	"github.com/finlytics-lab/amlnet/txgraph"
)

// Detected-pattern tags attached to suspicious accounts. Cycle tags carry
// the hop count, e.g. "cycle_length_3".
const (
	TagHighVelocity = "high_velocity"
	TagFanIn        = "fan_in_aggregator"
	TagFanOut       = "fan_out_disperser"
	TagShell        = "shell_layer"
)

// SuspiciousAccount is one flagged account in the report.
type SuspiciousAccount struct {
	AccountID        string   `json:"account_id"`
	SuspicionScore   float64  `json:"suspicion_score"`
	RiskLevel        string   `json:"risk_level"`
	DetectedPatterns []string `json:"detected_patterns"`
	RingID           string   `json:"ring_id,omitempty"`
}

// Ring is the report shape of one assembled fraud ring.
type Ring struct {
	RingID         string   `json:"ring_id"`
	MemberAccounts []string `json:"member_accounts"`
	PatternType    string   `json:"pattern_type"`
	RiskScore      float64  `json:"risk_score"`
}

// Summary aggregates run-level counts.
type Summary struct {
	TotalAccounts      int            `json:"total_accounts_analyzed"`
	SuspiciousAccounts int            `json:"suspicious_accounts_flagged"`
	RingsDetected      int            `json:"fraud_rings_detected"`
	HighRisk           int            `json:"high_risk_accounts"`
	MediumRisk         int            `json:"medium_risk_accounts"`
	PatternCounts      map[string]int `json:"pattern_counts"`
	ProcessingSeconds  float64        `json:"processing_time_seconds"`
}

// Report is the full structured output of one pipeline run.
type Report struct {
	RunID              string              `json:"run_id"`
	SuspiciousAccounts []SuspiciousAccount `json:"suspicious_accounts"`
	Rings              []Ring              `json:"fraud_rings"`
	Summary            Summary             `json:"summary"`
}

// buildReport assembles the structured output from the engine results.
// An account is suspicious when it carries at least one pattern tag or its
// tier reached Medium. Accounts sort by score descending, ID ascending on
// ties.
func buildReport(
	g *txgraph.Graph,
	cyc *cycles.Result,
	flags *risk.Flags,
	results []risk.Result,
	rings []risk.Ring,
	runID string,
	elapsed time.Duration,
	highVelocity float64,
) *Report {
	// First containing cycle wins the length tag, in canonical order.
	hopsOf := make(map[string]int)
	for _, c := range cyc.Cycles {
		for _, id := range c.Nodes {
			if _, ok := hopsOf[id]; !ok {
				hopsOf[id] = c.Hops
			}
		}
	}
	idx := risk.RingIndex(rings)

	var (
		accounts   []SuspiciousAccount
		highCount  int
		medCount   int
		cycleCount int
	)
	for _, r := range results {
		switch r.Tier {
		case txgraph.TierHigh:
			highCount++
		case txgraph.TierMedium:
			medCount++
		}

		var tags []string
		if hops, ok := hopsOf[r.NodeID]; ok {
			cycleCount++
			tags = append(tags, fmt.Sprintf("cycle_length_%d", hops))
		}
		if r.Velocity >= highVelocity || flags.HasFanIn(r.NodeID) || flags.HasFanOut(r.NodeID) {
			tags = append(tags, TagHighVelocity)
		}
		if flags.HasFanIn(r.NodeID) {
			tags = append(tags, TagFanIn)
		}
		if flags.HasFanOut(r.NodeID) {
			tags = append(tags, TagFanOut)
		}
		if flags.HasShell(r.NodeID) {
			tags = append(tags, TagShell)
		}

		if len(tags) == 0 && r.Tier != txgraph.TierMedium && r.Tier != txgraph.TierHigh {
			continue
		}
		accounts = append(accounts, SuspiciousAccount{
			AccountID:        r.NodeID,
			SuspicionScore:   round1(r.Score),
			RiskLevel:        r.Tier.String(),
			DetectedPatterns: tags,
			RingID:           idx[r.NodeID],
		})
	}
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].SuspicionScore != accounts[j].SuspicionScore {
			return accounts[i].SuspicionScore > accounts[j].SuspicionScore
		}

		return accounts[i].AccountID < accounts[j].AccountID
	})

	ringsOut := make([]Ring, len(rings))
	for i, r := range rings {
		ringsOut[i] = Ring{
			RingID:         r.ID,
			MemberAccounts: r.Members,
			PatternType:    r.Pattern,
			RiskScore:      r.Score,
		}
	}

	return &Report{
		RunID:              runID,
		SuspiciousAccounts: accounts,
		Rings:              ringsOut,
		Summary: Summary{
			TotalAccounts:      g.NodeCount(),
			SuspiciousAccounts: len(accounts),
			RingsDetected:      len(rings),
			HighRisk:           highCount,
			MediumRisk:         medCount,
			PatternCounts: map[string]int{
				risk.PatternCycle:  cycleCount,
				risk.PatternFanIn:  len(flags.FanIn),
				risk.PatternFanOut: len(flags.FanOut),
				risk.PatternShell:  len(flags.Shells),
			},
			ProcessingSeconds: math.Round(elapsed.Seconds()*100) / 100,
		},
	}
}

// round1 rounds to one decimal place, the report's score precision.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
