package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Geeth0476/Vigilant-Backend/internal/application/dto"
	"github.com/Geeth0476/Vigilant-Backend/internal/application/usecase"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/model"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/port"
	"github.com/Geeth0476/Vigilant-Backend/pkg/auth"
)

// userIDFromContext extracts the user ID from JWT claims in the context.
func userIDFromContext(ctx context.Context) (uuid.UUID, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return uuid.Nil, status.Error(codes.Unauthenticated, "authentication required")
	}
	return claims.UserID, nil
}

// Compile-time assertion that ScanServiceHandler implements ScanServiceServer.
var _ ScanServiceServer = (*ScanServiceHandler)(nil)

// ScanServiceHandler implements the gRPC ScanServiceServer interface.
type ScanServiceHandler struct {
	UnimplementedScanServiceServer
	startScan      *usecase.StartScan
	updateProgress *usecase.UpdateProgress
	completeScan   *usecase.CompleteScan
	getScanStatus  *usecase.GetScanStatus
	getLatestScan  *usecase.GetLatestScan
	getActiveScan  *usecase.GetActiveScan
	getDashboard   *usecase.GetDashboard
	logger         *slog.Logger
}

// NewScanServiceHandler creates a new gRPC handler.
func NewScanServiceHandler(
	startScan *usecase.StartScan,
	updateProgress *usecase.UpdateProgress,
	completeScan *usecase.CompleteScan,
	getScanStatus *usecase.GetScanStatus,
	getLatestScan *usecase.GetLatestScan,
	getActiveScan *usecase.GetActiveScan,
	getDashboard *usecase.GetDashboard,
	logger *slog.Logger,
) *ScanServiceHandler {
	return &ScanServiceHandler{
		startScan:      startScan,
		updateProgress: updateProgress,
		completeScan:   completeScan,
		getScanStatus:  getScanStatus,
		getLatestScan:  getLatestScan,
		getActiveScan:  getActiveScan,
		getDashboard:   getDashboard,
		logger:         logger,
	}
}

// Proto-aligned request/response message types.

// StartScanRequest represents the proto StartScanRequest message.
type StartScanRequest struct {
	DeviceUuid string `json:"device_uuid"`
	ScanMode   string `json:"scan_mode"`
}

// ScanSessionMsg represents the proto ScanSession message.
type ScanSessionMsg struct {
	ScanId          string `json:"scan_id"`
	DeviceId        string `json:"device_id"`
	Status          string `json:"status"`
	ScanMode        string `json:"scan_mode"`
	RiskLevel       string `json:"risk_level"`
	RiskScore       int32  `json:"risk_score"`
	AppCount        int32  `json:"app_count"`
	AppsScanned     int32  `json:"apps_scanned"`
	HighRiskCount   int32  `json:"high_risk_count"`
	MediumRiskCount int32  `json:"medium_risk_count"`
	SafeCount       int32  `json:"safe_count"`
	ProgressPercent int32  `json:"progress_percent"`
	StartedAt       string `json:"started_at"`
	CompletedAt     string `json:"completed_at,omitempty"`
}

// StartScanResponse represents the proto StartScanResponse message.
type StartScanResponse struct {
	Scan *ScanSessionMsg `json:"scan"`
}

// UpdateProgressRequest represents the proto UpdateProgressRequest message.
type UpdateProgressRequest struct {
	ScanId      string `json:"scan_id"`
	AppsScanned int32  `json:"apps_scanned"`
	TotalApps   *int32 `json:"total_apps,omitempty"`
}

// UpdateProgressResponse represents the proto UpdateProgressResponse message.
type UpdateProgressResponse struct {
	ScanId      string `json:"scan_id"`
	Status      string `json:"status"`
	AppsScanned int32  `json:"apps_scanned"`
}

// RiskFactorMsg represents the proto RiskFactor message.
type RiskFactorMsg struct {
	Description string `json:"description"`
	Type        string `json:"type"`
	Score       int32  `json:"score"`
}

// AppFindingMsg represents the proto AppFinding message.
type AppFindingMsg struct {
	PackageName string           `json:"package_name"`
	AppName     string           `json:"app_name"`
	VersionName string           `json:"version_name"`
	RiskLevel   string           `json:"risk_level"`
	RiskScore   *int32           `json:"risk_score,omitempty"`
	RiskFactors []*RiskFactorMsg `json:"risk_factors"`
	IsSystemApp bool             `json:"is_system_app"`
}

// CompleteScanRequest represents the proto CompleteScanRequest message.
type CompleteScanRequest struct {
	ScanId    string           `json:"scan_id"`
	RiskScore *int32           `json:"risk_score,omitempty"`
	RiskLevel string           `json:"risk_level"`
	Findings  []*AppFindingMsg `json:"findings"`
}

// CompleteScanResponse represents the proto CompleteScanResponse message.
type CompleteScanResponse struct {
	Scan             *ScanSessionMsg `json:"scan"`
	CommunityThreats int32           `json:"community_threats"`
	RecentViolations int32           `json:"recent_violations"`
}

// GetScanStatusRequest represents the proto GetScanStatusRequest message.
type GetScanStatusRequest struct {
	ScanId string `json:"scan_id"`
}

// GetScanStatusResponse represents the proto GetScanStatusResponse message.
type GetScanStatusResponse struct {
	Scan *ScanSessionMsg `json:"scan"`
}

// DeviceRequest identifies a device by its client UUID.
type DeviceRequest struct {
	DeviceUuid string `json:"device_uuid"`
}

// TopRiskyAppMsg represents the proto TopRiskyApp message.
type TopRiskyAppMsg struct {
	AppName     string `json:"app_name"`
	PackageName string `json:"package_name"`
	TopFactor   string `json:"top_factor"`
	RiskLevel   string `json:"risk_level"`
	RiskScore   int32  `json:"risk_score"`
}

// WeeklySummaryMsg represents the proto WeeklySummary message.
type WeeklySummaryMsg struct {
	TotalScans    int32  `json:"total_scans"`
	HighRiskScans int32  `json:"high_risk_scans"`
	AvgRiskScore  string `json:"avg_risk_score,omitempty"`
}

// GetDashboardResponse represents the proto GetDashboardResponse message.
type GetDashboardResponse struct {
	DeviceId      string            `json:"device_id"`
	RiskScore     int32             `json:"risk_score"`
	RiskLevel     string            `json:"risk_level"`
	LastScanAt    string            `json:"last_scan_at,omitempty"`
	RecentAlerts  int32             `json:"recent_alerts"`
	ActiveScan    *ScanSessionMsg   `json:"active_scan,omitempty"`
	TopRiskyApps  []*TopRiskyAppMsg `json:"top_risky_apps"`
	WeeklySummary *WeeklySummaryMsg `json:"weekly_summary"`
}

// StartScan opens a new scan session.
func (h *ScanServiceHandler) StartScan(ctx context.Context, req *StartScanRequest) (*StartScanResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	result, err := h.startScan.Execute(ctx, dto.StartScanRequest{
		UserID:     userID,
		DeviceUUID: req.DeviceUuid,
		ScanMode:   req.ScanMode,
	})
	if err != nil {
		return nil, h.mapError(err, "StartScan")
	}

	return &StartScanResponse{
		Scan: &ScanSessionMsg{
			ScanId:    result.ScanID.String(),
			DeviceId:  result.DeviceID.String(),
			Status:    result.Status,
			ScanMode:  result.ScanMode,
			StartedAt: result.StartedAt.Format(time.RFC3339),
		},
	}, nil
}

// UpdateProgress records the advisory progress counters.
func (h *ScanServiceHandler) UpdateProgress(ctx context.Context, req *UpdateProgressRequest) (*UpdateProgressResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	scanID, err := uuid.Parse(req.ScanId)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid scan_id: %v", err)
	}

	var totalApps *int
	if req.TotalApps != nil {
		v := int(*req.TotalApps)
		totalApps = &v
	}

	result, err := h.updateProgress.Execute(ctx, dto.UpdateProgressRequest{
		UserID:      userID,
		ScanID:      scanID,
		AppsScanned: int(req.AppsScanned),
		TotalApps:   totalApps,
	})
	if err != nil {
		return nil, h.mapError(err, "UpdateProgress")
	}

	return &UpdateProgressResponse{
		ScanId:      result.ScanID.String(),
		Status:      result.Status,
		AppsScanned: int32(result.AppsScanned),
	}, nil
}

// CompleteScan finalizes a scan with the submitted findings.
func (h *ScanServiceHandler) CompleteScan(ctx context.Context, req *CompleteScanRequest) (*CompleteScanResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	scanID, err := uuid.Parse(req.ScanId)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid scan_id: %v", err)
	}

	findings := make([]dto.AppFindingInput, 0, len(req.Findings))
	for _, f := range req.Findings {
		if f == nil {
			continue
		}
		finding := dto.AppFindingInput{
			PackageName: f.PackageName,
			AppName:     f.AppName,
			VersionName: f.VersionName,
			RiskLevel:   f.RiskLevel,
			IsSystemApp: f.IsSystemApp,
		}
		if f.RiskScore != nil {
			score := int(*f.RiskScore)
			finding.RiskScore = &score
		}
		for _, factor := range f.RiskFactors {
			if factor == nil {
				continue
			}
			finding.RiskFactors = append(finding.RiskFactors, dto.RiskFactorInput{
				Description: factor.Description,
				FactorType:  factor.Type,
				Score:       int(factor.Score),
			})
		}
		findings = append(findings, finding)
	}

	var selfScore *int
	if req.RiskScore != nil {
		v := int(*req.RiskScore)
		selfScore = &v
	}

	h.logger.Info("completing scan",
		slog.String("scan_id", scanID.String()),
		slog.Int("findings", len(findings)),
	)

	result, err := h.completeScan.Execute(ctx, dto.CompleteScanRequest{
		UserID:    userID,
		ScanID:    scanID,
		RiskScore: selfScore,
		RiskLevel: req.RiskLevel,
		Findings:  findings,
	})
	if err != nil {
		return nil, h.mapError(err, "CompleteScan")
	}

	return &CompleteScanResponse{
		Scan: &ScanSessionMsg{
			ScanId:          result.ScanID.String(),
			Status:          result.Status,
			RiskLevel:       result.RiskLevel,
			RiskScore:       int32(result.RiskScore),
			AppCount:        int32(result.AppCount),
			AppsScanned:     int32(result.AppCount),
			HighRiskCount:   int32(result.HighRiskCount),
			MediumRiskCount: int32(result.MediumRiskCount),
			SafeCount:       int32(result.SafeCount),
			ProgressPercent: 100,
			CompletedAt:     result.CompletedAt.Format(time.RFC3339),
		},
		CommunityThreats: int32(result.CommunityThreats),
		RecentViolations: int32(result.RecentViolations),
	}, nil
}

// GetScanStatus returns the state of one scan session.
func (h *ScanServiceHandler) GetScanStatus(ctx context.Context, req *GetScanStatusRequest) (*GetScanStatusResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	scanID, err := uuid.Parse(req.ScanId)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid scan_id: %v", err)
	}

	result, err := h.getScanStatus.Execute(ctx, dto.GetScanStatusRequest{
		UserID: userID,
		ScanID: scanID,
	})
	if err != nil {
		return nil, h.mapError(err, "GetScanStatus")
	}

	return &GetScanStatusResponse{Scan: sessionMsg(result)}, nil
}

// GetLatestScan returns the most recent completed scan of a device. A
// device without one answers with an absent scan, not an error.
func (h *ScanServiceHandler) GetLatestScan(ctx context.Context, req *DeviceRequest) (*GetScanStatusResponse, error) {
	result, err := h.deviceScoped(ctx, req, func(ctx context.Context, r dto.DeviceScopedRequest) (dto.ScanStatusResponse, error) {
		return h.getLatestScan.Execute(ctx, r)
	}, "GetLatestScan")
	if err != nil {
		return nil, err
	}
	return optionalSessionResponse(result), nil
}

// GetActiveScan returns the still-running scan of a device. Nothing running
// answers with an absent scan, not an error.
func (h *ScanServiceHandler) GetActiveScan(ctx context.Context, req *DeviceRequest) (*GetScanStatusResponse, error) {
	result, err := h.deviceScoped(ctx, req, func(ctx context.Context, r dto.DeviceScopedRequest) (dto.ScanStatusResponse, error) {
		return h.getActiveScan.Execute(ctx, r)
	}, "GetActiveScan")
	if err != nil {
		return nil, err
	}
	return optionalSessionResponse(result), nil
}

func optionalSessionResponse(result dto.ScanStatusResponse) *GetScanStatusResponse {
	if result.ScanID == uuid.Nil {
		return &GetScanStatusResponse{}
	}
	return &GetScanStatusResponse{Scan: sessionMsg(result)}
}

// GetDashboard returns the device security overview.
func (h *ScanServiceHandler) GetDashboard(ctx context.Context, req *DeviceRequest) (*GetDashboardResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	result, err := h.getDashboard.Execute(ctx, dto.DeviceScopedRequest{
		UserID:     userID,
		DeviceUUID: req.DeviceUuid,
	})
	if err != nil {
		return nil, h.mapError(err, "GetDashboard")
	}

	resp := &GetDashboardResponse{
		DeviceId:     result.DeviceID.String(),
		RiskScore:    int32(result.RiskScore),
		RiskLevel:    result.RiskLevel,
		RecentAlerts: int32(result.RecentAlerts),
		TopRiskyApps: make([]*TopRiskyAppMsg, 0, len(result.TopRiskyApps)),
		WeeklySummary: &WeeklySummaryMsg{
			TotalScans:    int32(result.WeeklySummary.TotalScans),
			HighRiskScans: int32(result.WeeklySummary.HighRiskScans),
			AvgRiskScore:  result.WeeklySummary.AvgRiskScore,
		},
	}
	if result.LastScanAt != nil {
		resp.LastScanAt = result.LastScanAt.Format(time.RFC3339)
	}
	if result.ActiveScan != nil {
		resp.ActiveScan = sessionMsg(*result.ActiveScan)
	}
	for _, app := range result.TopRiskyApps {
		resp.TopRiskyApps = append(resp.TopRiskyApps, &TopRiskyAppMsg{
			AppName:     app.AppName,
			PackageName: app.PackageName,
			TopFactor:   app.TopFactor,
			RiskLevel:   app.RiskLevel,
			RiskScore:   int32(app.RiskScore),
		})
	}
	return resp, nil
}

func (h *ScanServiceHandler) deviceScoped(
	ctx context.Context,
	req *DeviceRequest,
	exec func(context.Context, dto.DeviceScopedRequest) (dto.ScanStatusResponse, error),
	method string,
) (dto.ScanStatusResponse, error) {
	if req == nil {
		return dto.ScanStatusResponse{}, status.Error(codes.InvalidArgument, "request is required")
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return dto.ScanStatusResponse{}, err
	}

	result, err := exec(ctx, dto.DeviceScopedRequest{
		UserID:     userID,
		DeviceUUID: req.DeviceUuid,
	})
	if err != nil {
		return dto.ScanStatusResponse{}, h.mapError(err, method)
	}
	return result, nil
}

// mapError translates application errors to gRPC status codes. Unexpected
// errors are logged with detail and returned as an opaque Internal.
func (h *ScanServiceHandler) mapError(err error, method string) error {
	var vErr *dto.ValidationError
	switch {
	case errors.As(err, &vErr):
		return status.Error(codes.InvalidArgument, vErr.Error())
	case errors.Is(err, port.ErrScanNotFound), errors.Is(err, port.ErrDeviceNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, port.ErrScanForbidden):
		return status.Error(codes.PermissionDenied, "forbidden")
	case errors.Is(err, model.ErrScanAlreadyCompleted):
		return status.Error(codes.AlreadyExists, "scan already completed")
	default:
		h.logger.Error("request failed",
			slog.String("method", method),
			slog.String("error", err.Error()),
		)
		return status.Error(codes.Internal, "internal error")
	}
}

func sessionMsg(s dto.ScanStatusResponse) *ScanSessionMsg {
	msg := &ScanSessionMsg{
		ScanId:          s.ScanID.String(),
		DeviceId:        s.DeviceID.String(),
		Status:          s.Status,
		ScanMode:        s.ScanMode,
		RiskLevel:       s.RiskLevel,
		RiskScore:       int32(s.RiskScore),
		AppCount:        int32(s.AppCount),
		AppsScanned:     int32(s.AppsScanned),
		HighRiskCount:   int32(s.HighRiskCount),
		MediumRiskCount: int32(s.MediumRiskCount),
		SafeCount:       int32(s.SafeCount),
		ProgressPercent: int32(s.ProgressPercent),
		StartedAt:       s.StartedAt.Format(time.RFC3339),
	}
	if s.CompletedAt != nil {
		msg.CompletedAt = s.CompletedAt.Format(time.RFC3339)
	}
	return msg
}
