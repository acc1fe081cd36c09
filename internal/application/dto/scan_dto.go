package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Geeth0476/Vigilant-Backend/internal/domain/model"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/service"
)

// StartScanRequest is the input DTO for the StartScan use case. UserID is
// taken from the authenticated caller, never from the request body.
type StartScanRequest struct {
	UserID     uuid.UUID `json:"-"`
	DeviceUUID string    `json:"device_uuid" validate:"required,max=128"`
	ScanMode   string    `json:"scan_mode"`
}

// Validate checks the request against its constraints.
func (r StartScanRequest) Validate() error { return validateStruct(r) }

// StartScanResponse is returned when a new scan session opens.
type StartScanResponse struct {
	StartedAt time.Time `json:"started_at"`
	ScanID    uuid.UUID `json:"scan_id"`
	DeviceID  uuid.UUID `json:"device_id"`
	Status    string    `json:"status"`
	ScanMode  string    `json:"scan_mode"`
}

// UpdateProgressRequest is the input DTO for the UpdateProgress use case.
// TotalApps is optional; when present it overwrites the expected app count.
type UpdateProgressRequest struct {
	TotalApps   *int      `json:"total_apps" validate:"omitempty,gte=0"`
	UserID      uuid.UUID `json:"-"`
	ScanID      uuid.UUID `json:"scan_id" validate:"required"`
	AppsScanned int       `json:"apps_scanned" validate:"gte=0"`
}

// Validate checks the request against its constraints.
func (r UpdateProgressRequest) Validate() error { return validateStruct(r) }

// UpdateProgressResponse acknowledges a progress write.
type UpdateProgressResponse struct {
	ScanID      uuid.UUID `json:"scan_id"`
	Status      string    `json:"status"`
	AppsScanned int       `json:"apps_scanned"`
}

// AppFindingInput is one per-app finding in a completion batch.
type AppFindingInput struct {
	RiskScore   *int              `json:"risk_score"`
	PackageName string            `json:"package_name"`
	AppName     string            `json:"app_name"`
	VersionName string            `json:"version_name"`
	RiskLevel   string            `json:"risk_level"`
	RiskFactors []RiskFactorInput `json:"risk_factors"`
	IsSystemApp bool              `json:"is_system_app"`
}

// ToRaw maps the wire finding into the domain's raw form without judging
// it; filtering of malformed entries happens during normalization.
func (a AppFindingInput) ToRaw() model.RawAppFinding {
	factors := make([]model.RiskFactor, 0, len(a.RiskFactors))
	for _, f := range a.RiskFactors {
		factors = append(factors, f.ToModel())
	}
	return model.RawAppFinding{
		PackageName: a.PackageName,
		AppName:     a.AppName,
		VersionName: a.VersionName,
		RiskLevel:   a.RiskLevel,
		RiskFactors: factors,
		RiskScore:   a.RiskScore,
		IsSystemApp: a.IsSystemApp,
	}
}

// CompleteScanRequest is the input DTO for the CompleteScan use case.
// RiskScore and RiskLevel are the device's self-reported totals; the
// server recomputes the authoritative values.
type CompleteScanRequest struct {
	RiskScore *int              `json:"risk_score" validate:"omitempty,gte=0,lte=100"`
	UserID    uuid.UUID         `json:"-"`
	ScanID    uuid.UUID         `json:"scan_id" validate:"required"`
	RiskLevel string            `json:"risk_level"`
	Findings  []AppFindingInput `json:"findings" validate:"max=2000"`
}

// Validate checks the request against its constraints.
func (r CompleteScanRequest) Validate() error { return validateStruct(r) }

// RawFindings maps the batch into the domain's raw form.
func (r CompleteScanRequest) RawFindings() []model.RawAppFinding {
	raw := make([]model.RawAppFinding, 0, len(r.Findings))
	for _, f := range r.Findings {
		raw = append(raw, f.ToRaw())
	}
	return raw
}

// SelfScore returns the self-reported score, defaulting to 0 when absent.
func (r CompleteScanRequest) SelfScore() int {
	if r.RiskScore == nil {
		return 0
	}
	return *r.RiskScore
}

// CompleteScanResponse carries the server-side assessment back to the
// device, including the aggregation breakdown.
type CompleteScanResponse struct {
	CompletedAt      time.Time `json:"completed_at"`
	ScanID           uuid.UUID `json:"scan_id"`
	Status           string    `json:"status"`
	RiskLevel        string    `json:"risk_level"`
	RiskScore        int       `json:"risk_score"`
	AppCount         int       `json:"app_count"`
	HighRiskCount    int       `json:"high_risk_count"`
	MediumRiskCount  int       `json:"medium_risk_count"`
	SafeCount        int       `json:"safe_count"`
	CommunityThreats int       `json:"community_threats"`
	RecentViolations int       `json:"recent_violations"`
}

// GetScanStatusRequest identifies a scan for the authenticated caller.
type GetScanStatusRequest struct {
	UserID uuid.UUID `json:"-"`
	ScanID uuid.UUID `json:"scan_id" validate:"required"`
}

// Validate checks the request against its constraints.
func (r GetScanStatusRequest) Validate() error { return validateStruct(r) }

// ScanStatusResponse is the projection of one session's current state.
type ScanStatusResponse struct {
	StartedAt       time.Time  `json:"started_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	ScanID          uuid.UUID  `json:"scan_id"`
	DeviceID        uuid.UUID  `json:"device_id"`
	Status          string     `json:"status"`
	ScanMode        string     `json:"scan_mode"`
	RiskLevel       string     `json:"risk_level"`
	RiskScore       int        `json:"risk_score"`
	AppCount        int        `json:"app_count"`
	AppsScanned     int        `json:"apps_scanned"`
	HighRiskCount   int        `json:"high_risk_count"`
	MediumRiskCount int        `json:"medium_risk_count"`
	SafeCount       int        `json:"safe_count"`
	ProgressPercent int        `json:"progress_percent"`
}

// DeviceScopedRequest identifies a device for the authenticated caller.
type DeviceScopedRequest struct {
	UserID     uuid.UUID `json:"-"`
	DeviceUUID string    `json:"device_uuid" validate:"required,max=128"`
}

// Validate checks the request against its constraints.
func (r DeviceScopedRequest) Validate() error { return validateStruct(r) }

// TopRiskyAppDTO is one risky-app row on the dashboard.
type TopRiskyAppDTO struct {
	AppName     string `json:"app_name"`
	PackageName string `json:"package_name"`
	TopFactor   string `json:"top_factor,omitempty"`
	RiskLevel   string `json:"risk_level"`
	RiskScore   int    `json:"risk_score"`
}

// WeeklySummaryDTO summarizes the last seven days of completed scans.
// AvgRiskScore is empty when the window holds no scans.
type WeeklySummaryDTO struct {
	AvgRiskScore  string `json:"avg_risk_score,omitempty"`
	TotalScans    int    `json:"total_scans"`
	HighRiskScans int    `json:"high_risk_scans"`
}

// DashboardResponse is the device security overview.
type DashboardResponse struct {
	LastScanAt    *time.Time          `json:"last_scan_at,omitempty"`
	ActiveScan    *ScanStatusResponse `json:"active_scan,omitempty"`
	DeviceID      uuid.UUID           `json:"device_id"`
	RiskLevel     string              `json:"risk_level"`
	TopRiskyApps  []TopRiskyAppDTO    `json:"top_risky_apps"`
	WeeklySummary WeeklySummaryDTO    `json:"weekly_summary"`
	RiskScore     int                 `json:"risk_score"`
	RecentAlerts  int                 `json:"recent_alerts"`
}

// ScanStatusFromModel maps a session aggregate to its status projection.
func ScanStatusFromModel(s *model.ScanSession) ScanStatusResponse {
	return ScanStatusResponse{
		ScanID:          s.ID(),
		DeviceID:        s.DeviceID(),
		Status:          s.Status().String(),
		ScanMode:        s.Mode().String(),
		RiskLevel:       s.RiskLevel().String(),
		RiskScore:       s.RiskScore(),
		AppCount:        s.AppCount(),
		AppsScanned:     s.AppsScanned(),
		HighRiskCount:   s.HighRiskCount(),
		MediumRiskCount: s.MediumRiskCount(),
		SafeCount:       s.SafeCount(),
		ProgressPercent: s.ProgressPercent(),
		StartedAt:       s.StartedAt(),
		CompletedAt:     s.CompletedAt(),
	}
}

// CompleteScanFromModel maps a completed session and its aggregation
// breakdown to the completion response.
func CompleteScanFromModel(s *model.ScanSession, agg service.AggregationResult) CompleteScanResponse {
	var completedAt time.Time
	if s.CompletedAt() != nil {
		completedAt = *s.CompletedAt()
	}
	return CompleteScanResponse{
		ScanID:           s.ID(),
		Status:           s.Status().String(),
		RiskLevel:        s.RiskLevel().String(),
		RiskScore:        s.RiskScore(),
		AppCount:         s.AppCount(),
		HighRiskCount:    s.HighRiskCount(),
		MediumRiskCount:  s.MediumRiskCount(),
		SafeCount:        s.SafeCount(),
		CommunityThreats: agg.CommunityThreats,
		RecentViolations: agg.RecentViolations,
		CompletedAt:      completedAt,
	}
}
