package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Geeth0476/Vigilant-Backend/internal/application/dto"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/port"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/valueobject"
)

const (
	alertWindow     = 24 * time.Hour
	summaryWindow   = 7 * 24 * time.Hour
	topRiskyAppsCap = 5
)

// GetDashboard is the use case for the device security overview: the
// cached aggregate risk, any still-running scan, recent alerts, the
// riskiest installed apps and a seven-day scan summary.
type GetDashboard struct {
	devices    port.DeviceRepository
	sessions   port.ScanSessionRepository
	riskScores port.DeviceRiskScoreRepository
	results    port.ScanResultRepository
	alerts     port.AlertRepository
}

// NewGetDashboard creates a new GetDashboard use case.
func NewGetDashboard(
	devices port.DeviceRepository,
	sessions port.ScanSessionRepository,
	riskScores port.DeviceRiskScoreRepository,
	results port.ScanResultRepository,
	alerts port.AlertRepository,
) *GetDashboard {
	return &GetDashboard{
		devices:    devices,
		sessions:   sessions,
		riskScores: riskScores,
		results:    results,
		alerts:     alerts,
	}
}

// Execute assembles the overview. A device that has never completed a scan
// reads as SAFE with a zero score.
func (uc *GetDashboard) Execute(ctx context.Context, req dto.DeviceScopedRequest) (dto.DashboardResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.DashboardResponse{}, err
	}

	deviceID, err := uc.devices.ResolveUUID(ctx, req.UserID, req.DeviceUUID)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	now := time.Now().UTC()

	resp := dto.DashboardResponse{
		DeviceID:     deviceID,
		RiskLevel:    valueobject.RiskLevelSafe.String(),
		TopRiskyApps: []dto.TopRiskyAppDTO{},
	}

	cached, err := uc.riskScores.Find(ctx, deviceID)
	if err != nil {
		return dto.DashboardResponse{}, fmt.Errorf("failed to load device risk score: %w", err)
	}
	if cached != nil {
		resp.RiskScore = cached.LastScore
		resp.RiskLevel = cached.LastLevel.String()
		lastScan := cached.LastUpdatedAt
		resp.LastScanAt = &lastScan
	}

	active, err := uc.sessions.ActiveForDevice(ctx, deviceID, req.UserID)
	if err != nil {
		return dto.DashboardResponse{}, fmt.Errorf("failed to load active scan: %w", err)
	}
	if active != nil {
		status := dto.ScanStatusFromModel(active)
		resp.ActiveScan = &status
	}

	resp.RecentAlerts, err = uc.alerts.CountRecentForDevice(ctx, deviceID, now.Add(-alertWindow))
	if err != nil {
		return dto.DashboardResponse{}, fmt.Errorf("failed to count alerts: %w", err)
	}

	topApps, err := uc.results.TopRiskyApps(ctx, deviceID, topRiskyAppsCap)
	if err != nil {
		return dto.DashboardResponse{}, fmt.Errorf("failed to load risky apps: %w", err)
	}
	for _, app := range topApps {
		resp.TopRiskyApps = append(resp.TopRiskyApps, dto.TopRiskyAppDTO{
			AppName:     app.AppName,
			PackageName: app.PackageName,
			TopFactor:   app.TopFactor,
			RiskLevel:   app.RiskLevel.String(),
			RiskScore:   app.RiskScore,
		})
	}

	summary, err := uc.sessions.HistorySummary(ctx, deviceID, req.UserID, now.Add(-summaryWindow))
	if err != nil {
		return dto.DashboardResponse{}, fmt.Errorf("failed to summarize scan history: %w", err)
	}
	resp.WeeklySummary = dto.WeeklySummaryDTO{
		TotalScans:    summary.TotalScans,
		HighRiskScans: summary.HighRiskScans,
	}
	if summary.AvgRiskScore != nil {
		resp.WeeklySummary.AvgRiskScore = summary.AvgRiskScore.Round(1).String()
	}

	return resp, nil
}
