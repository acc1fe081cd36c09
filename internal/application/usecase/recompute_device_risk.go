package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Geeth0476/Vigilant-Backend/internal/domain/port"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/service"
)

const violationWindow = 7 * 24 * time.Hour

// RecomputeDeviceRisk re-runs the aggregation formula against the current
// cloud-side signals, outside any completion transaction. Used for audit
// and for previewing how a self-reported score would be weighted today.
type RecomputeDeviceRisk struct {
	signals    port.RiskSignalReader
	aggregator *service.RiskAggregator
}

// NewRecomputeDeviceRisk creates a new RecomputeDeviceRisk use case.
func NewRecomputeDeviceRisk(signals port.RiskSignalReader, aggregator *service.RiskAggregator) *RecomputeDeviceRisk {
	return &RecomputeDeviceRisk{
		signals:    signals,
		aggregator: aggregator,
	}
}

// Execute reads both signal counts for the device and aggregates them with
// the given self-reported score.
func (uc *RecomputeDeviceRisk) Execute(ctx context.Context, deviceID uuid.UUID, selfScore int) (service.AggregationResult, error) {
	threats, err := uc.signals.CommunityThreatCount(ctx, deviceID)
	if err != nil {
		return service.AggregationResult{}, fmt.Errorf("failed to count community threats: %w", err)
	}

	violations, err := uc.signals.RecentViolationCount(ctx, deviceID, time.Now().UTC().Add(-violationWindow))
	if err != nil {
		return service.AggregationResult{}, fmt.Errorf("failed to count permission violations: %w", err)
	}

	return uc.aggregator.Aggregate(service.AggregationInput{
		SelfScore:        selfScore,
		CommunityThreats: threats,
		RecentViolations: violations,
	}), nil
}
