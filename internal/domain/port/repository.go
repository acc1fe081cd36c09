package port

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Geeth0476/Vigilant-Backend/internal/domain/model"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/service"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/valueobject"
	"github.com/Geeth0476/Vigilant-Backend/pkg/events"
)

// DeviceRepository resolves client device identifiers, scoped to their owner.
type DeviceRepository interface {
	// ResolveUUID maps a client device UUID to the internal device ID.
	// Returns ErrDeviceNotFound when the user has no such device.
	ResolveUUID(ctx context.Context, userID uuid.UUID, deviceUUID string) (uuid.UUID, error)

	// RegisterOrUpdate upserts a device registration keyed by (user, uuid).
	// On conflict the metadata and last-active timestamp are refreshed and
	// device.ID is set to the existing row's ID.
	RegisterOrUpdate(ctx context.Context, device *model.Device) error
}

// ScanSessionRepository persists scan sessions and their projections.
// Find methods return (nil, nil) when no matching row exists.
type ScanSessionRepository interface {
	// Create inserts a new RUNNING session.
	Create(ctx context.Context, session *model.ScanSession) error

	// FindForUser loads a session only if it belongs to the given user.
	FindForUser(ctx context.Context, scanID, userID uuid.UUID) (*model.ScanSession, error)

	// UpdateProgress sets the advisory counters with last-write-wins
	// semantics. Returns false when no session matched (scanID, userID).
	UpdateProgress(ctx context.Context, scanID, userID uuid.UUID, appsScanned int, totalApps *int) (bool, error)

	// LatestCompleted returns the most recently completed session for a device.
	LatestCompleted(ctx context.Context, deviceID uuid.UUID) (*model.ScanSession, error)

	// ActiveForDevice returns the most recent still-running session, if any.
	ActiveForDevice(ctx context.Context, deviceID, userID uuid.UUID) (*model.ScanSession, error)

	// HistorySummary summarizes completed sessions for a device since the
	// given time.
	HistorySummary(ctx context.Context, deviceID, userID uuid.UUID, since time.Time) (ScanHistorySummary, error)
}

// CompleteScanCommand is the input to the completion unit of work. Findings
// and the tally are already normalized by the domain.
type CompleteScanCommand struct {
	Findings  []model.AppFinding
	SelfLevel valueobject.RiskLevel
	ScanID    uuid.UUID
	UserID    uuid.UUID
	Tally     model.TierTally
	SelfScore int
	AppCount  int
}

// ScanCompletionStore runs the whole completion inside one database
// transaction: ownership check, registry upserts, batch result writes,
// signal reads, aggregation, session finalization and device-score upsert.
// Any error rolls everything back and leaves the session RUNNING.
//
// Errors: ErrScanNotFound, ErrScanForbidden, model.ErrScanAlreadyCompleted.
type ScanCompletionStore interface {
	Complete(ctx context.Context, cmd CompleteScanCommand) (*model.ScanSession, service.AggregationResult, error)
}

// RiskSignalReader exposes the two cloud-side aggregation signals outside
// the completion transaction, so aggregation can be re-run for auditing.
type RiskSignalReader interface {
	// CommunityThreatCount counts distinct installed apps on the device whose
	// package matches a HIGH or CRITICAL community threat.
	CommunityThreatCount(ctx context.Context, deviceID uuid.UUID) (int, error)

	// RecentViolationCount counts "used" permission events for the device's
	// apps since the given time.
	RecentViolationCount(ctx context.Context, deviceID uuid.UUID, since time.Time) (int, error)
}

// DeviceRiskScoreRepository reads the materialized per-device score cache.
// The cache is written only by the completion unit of work.
type DeviceRiskScoreRepository interface {
	// Find returns (nil, nil) when the device has no cached score yet.
	Find(ctx context.Context, deviceID uuid.UUID) (*model.DeviceRiskScore, error)
}

// ScanResultRepository reads per-app results for dashboard projections.
type ScanResultRepository interface {
	// TopRiskyApps returns up to limit apps at MEDIUM or above from
	// completed scans, most recent scan and highest score first.
	TopRiskyApps(ctx context.Context, deviceID uuid.UUID, limit int) ([]TopRiskyApp, error)
}

// AlertRepository reads security alerts raised by the alerting collaborator.
type AlertRepository interface {
	// CountRecentForDevice counts alerts for the device created since the
	// given time.
	CountRecentForDevice(ctx context.Context, deviceID uuid.UUID, since time.Time) (int, error)
}

// EventPublisher is the port for fire-and-forget domain event publishing.
type EventPublisher interface {
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}

// TopRiskyApp is a dashboard projection of one risky app.
type TopRiskyApp struct {
	AppName     string
	PackageName string
	TopFactor   string
	RiskLevel   valueobject.RiskLevel
	RiskScore   int
}

// ScanHistorySummary summarizes completed scans over a window.
// AvgRiskScore is nil when the window holds no scans.
type ScanHistorySummary struct {
	AvgRiskScore  *decimal.Decimal
	TotalScans    int
	HighRiskScans int
}
