package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Geeth0476/Vigilant-Backend/internal/domain/service"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/valueobject"
)

func TestRiskAggregator_CommunityPenaltyCap(t *testing.T) {
	agg := service.NewRiskAggregator()

	tests := []struct {
		threats int
		penalty int
	}{
		{0, 0},
		{1, 10},
		{2, 20},
		{10, 20}, // capped
	}

	for _, tt := range tests {
		out := agg.Aggregate(service.AggregationInput{SelfScore: 0, CommunityThreats: tt.threats})
		assert.Equal(t, tt.penalty, out.CommunityPenalty, "threats=%d", tt.threats)
	}
}

func TestRiskAggregator_ViolationPenaltyCap(t *testing.T) {
	agg := service.NewRiskAggregator()

	tests := []struct {
		violations int
		penalty    int
	}{
		{0, 0},
		{5, 10},
		{8, 15}, // 16 capped to 15
		{20, 15},
	}

	for _, tt := range tests {
		out := agg.Aggregate(service.AggregationInput{SelfScore: 0, RecentViolations: tt.violations})
		assert.Equal(t, tt.penalty, out.ViolationPenalty, "violations=%d", tt.violations)
	}
}

func TestRiskAggregator_ScoreBounds(t *testing.T) {
	agg := service.NewRiskAggregator()

	t.Run("penalties never reduce the score", func(t *testing.T) {
		for _, selfScore := range []int{0, 15, 50, 100} {
			out := agg.Aggregate(service.AggregationInput{
				SelfScore:        selfScore,
				CommunityThreats: 3,
				RecentViolations: 9,
			})
			assert.GreaterOrEqual(t, out.Score, selfScore)
			assert.LessOrEqual(t, out.Score, 100)
		}
	})

	t.Run("score is capped at 100", func(t *testing.T) {
		out := agg.Aggregate(service.AggregationInput{
			SelfScore:        95,
			CommunityThreats: 2,
			RecentViolations: 10,
		})
		assert.Equal(t, 100, out.Score)
	})
}

func TestRiskAggregator_LevelDerivedFromAggregateScore(t *testing.T) {
	agg := service.NewRiskAggregator()

	// Self-reported MEDIUM must not survive: the level always comes from the
	// aggregated score.
	out := agg.Aggregate(service.AggregationInput{
		SelfScore:        50,
		CommunityThreats: 2,
		RecentViolations: 6,
	})

	assert.Equal(t, 20, out.CommunityPenalty)
	assert.Equal(t, 12, out.ViolationPenalty)
	assert.Equal(t, 82, out.Score)
	assert.True(t, out.Level.Equal(valueobject.RiskLevelHigh))
}

func TestRiskAggregator_Idempotent(t *testing.T) {
	agg := service.NewRiskAggregator()
	in := service.AggregationInput{SelfScore: 42, CommunityThreats: 1, RecentViolations: 3}

	first := agg.Aggregate(in)
	second := agg.Aggregate(in)
	assert.Equal(t, first, second)
}
