package service

import (
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/valueobject"
)

// Penalty weighting for the cloud-side signals. Penalties only ever raise
// the self-reported score, never lower it.
const (
	communityPenaltyPerThreat = 10
	communityPenaltyCap       = 20
	violationPenaltyPerEvent  = 2
	violationPenaltyCap       = 15
	maxScore                  = 100
)

// AggregationInput carries the self-reported scan result and the two
// cloud-side signal counts read for the device.
type AggregationInput struct {
	SelfScore        int
	CommunityThreats int
	RecentViolations int
}

// AggregationResult is the authoritative device risk after weighting.
// Level is always derived from Score; the self-reported level is discarded.
type AggregationResult struct {
	Level            valueobject.RiskLevel
	Score            int
	CommunityThreats int
	RecentViolations int
	CommunityPenalty int
	ViolationPenalty int
}

// RiskAggregator combines the on-device scan score with community-threat
// matches and recent permission violations under a bounded-penalty formula.
type RiskAggregator struct{}

// NewRiskAggregator creates a new RiskAggregator instance.
func NewRiskAggregator() *RiskAggregator {
	return &RiskAggregator{}
}

// Aggregate applies the penalty formula:
//
//	communityPenalty = min(20, threats * 10)
//	violationPenalty = min(15, violations * 2)
//	score            = min(100, selfScore + communityPenalty + violationPenalty)
//
// The function is pure; calling it twice with the same input yields the
// same result.
func (a *RiskAggregator) Aggregate(in AggregationInput) AggregationResult {
	communityPenalty := in.CommunityThreats * communityPenaltyPerThreat
	if communityPenalty > communityPenaltyCap {
		communityPenalty = communityPenaltyCap
	}

	violationPenalty := in.RecentViolations * violationPenaltyPerEvent
	if violationPenalty > violationPenaltyCap {
		violationPenalty = violationPenaltyCap
	}

	score := in.SelfScore + communityPenalty + violationPenalty
	if score > maxScore {
		score = maxScore
	}

	return AggregationResult{
		Score:            score,
		Level:            valueobject.RiskLevelFromScore(score),
		CommunityThreats: in.CommunityThreats,
		RecentViolations: in.RecentViolations,
		CommunityPenalty: communityPenalty,
		ViolationPenalty: violationPenalty,
	}
}
