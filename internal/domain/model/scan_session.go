package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Geeth0476/Vigilant-Backend/internal/domain/event"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/valueobject"
	"github.com/Geeth0476/Vigilant-Backend/pkg/events"
)

// ErrScanAlreadyCompleted is returned when a completion is attempted on a
// session that has already reached a terminal state.
var ErrScanAlreadyCompleted = errors.New("scan session already completed")

// ScanSession is the aggregate root for one run of the on-device risk
// assessment, from start to completion. It owns the per-tier app counters
// and the authoritative (aggregated) score once completed.
type ScanSession struct {
	startedAt       time.Time
	completedAt     *time.Time
	mode            valueobject.ScanMode
	status          valueobject.ScanStatus
	riskLevel       valueobject.RiskLevel
	domainEvents    []events.DomainEvent
	riskScore       int
	appCount        int
	appsScanned     int
	highRiskCount   int
	mediumRiskCount int
	safeCount       int
	userID          uuid.UUID
	deviceID        uuid.UUID
	id              uuid.UUID
}

// NewScanSession creates a RUNNING session with zeroed counters.
// An unrecognized mode string is coerced to quick.
func NewScanSession(userID, deviceID uuid.UUID, mode string) (*ScanSession, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user ID is required")
	}
	if deviceID == uuid.Nil {
		return nil, fmt.Errorf("device ID is required")
	}

	return &ScanSession{
		id:        uuid.New(),
		userID:    userID,
		deviceID:  deviceID,
		mode:      valueobject.ScanModeFromString(mode),
		status:    valueobject.ScanStatusRunning,
		riskScore: 0,
		riskLevel: valueobject.RiskLevelSafe,
		startedAt: time.Now().UTC(),
	}, nil
}

// RecordProgress sets the advisory progress counter. When totalApps is
// non-nil the expected app count is overwritten as well. Last write wins.
func (s *ScanSession) RecordProgress(appsScanned int, totalApps *int) error {
	if s.status.IsTerminal() {
		return ErrScanAlreadyCompleted
	}
	if appsScanned < 0 {
		return fmt.Errorf("apps scanned must not be negative")
	}

	s.appsScanned = appsScanned
	if totalApps != nil && *totalApps > 0 {
		s.appCount = *totalApps
	}
	return nil
}

// Complete transitions the session to COMPLETED with the aggregated score
// and the tier tally produced by the batch writer. A session can only be
// completed once; a second attempt returns ErrScanAlreadyCompleted.
func (s *ScanSession) Complete(score int, level valueobject.RiskLevel, tally TierTally, appCount int) error {
	if !s.status.CanTransitionTo(valueobject.ScanStatusCompleted) {
		return ErrScanAlreadyCompleted
	}
	if score < 0 || score > 100 {
		return fmt.Errorf("risk score must be between 0 and 100, got %d", score)
	}
	if level.IsZero() {
		return fmt.Errorf("risk level is required")
	}

	now := time.Now().UTC()
	s.status = valueobject.ScanStatusCompleted
	s.riskScore = score
	s.riskLevel = level
	s.appCount = appCount
	s.appsScanned = appCount
	s.highRiskCount = tally.High
	s.mediumRiskCount = tally.Medium
	s.safeCount = tally.Safe
	s.completedAt = &now

	s.record(event.NewScanCompleted(s.id, s.userID, s.deviceID, score, level.String(), tally.High, tally.Medium, tally.Safe, now))

	if level.AtLeast(valueobject.RiskLevelHigh) {
		s.record(event.NewHighRiskDetected(s.id, s.userID, s.deviceID, score, level.String(), now))
	}

	return nil
}

// ProgressPercent derives the UI-facing progress figure from the counters.
func (s *ScanSession) ProgressPercent() int {
	if s.status.Equal(valueobject.ScanStatusCompleted) {
		return 100
	}
	if s.appCount <= 0 {
		return 0
	}
	pct := s.appsScanned * 100 / s.appCount
	if pct > 100 {
		pct = 100
	}
	return pct
}

// ReconstructScanSession rebuilds a ScanSession from persisted data
// (no validation, no events).
func ReconstructScanSession(
	id, userID, deviceID uuid.UUID,
	mode valueobject.ScanMode,
	status valueobject.ScanStatus,
	riskScore int,
	riskLevel valueobject.RiskLevel,
	appCount, appsScanned, highRiskCount, mediumRiskCount, safeCount int,
	startedAt time.Time,
	completedAt *time.Time,
) *ScanSession {
	return &ScanSession{
		id:              id,
		userID:          userID,
		deviceID:        deviceID,
		mode:            mode,
		status:          status,
		riskScore:       riskScore,
		riskLevel:       riskLevel,
		appCount:        appCount,
		appsScanned:     appsScanned,
		highRiskCount:   highRiskCount,
		mediumRiskCount: mediumRiskCount,
		safeCount:       safeCount,
		startedAt:       startedAt,
		completedAt:     completedAt,
	}
}

func (s *ScanSession) record(payload events.DomainEvent) {
	s.domainEvents = append(s.domainEvents, payload)
}

// --- Accessors ---

func (s *ScanSession) ID() uuid.UUID                      { return s.id }
func (s *ScanSession) UserID() uuid.UUID                  { return s.userID }
func (s *ScanSession) DeviceID() uuid.UUID                { return s.deviceID }
func (s *ScanSession) Mode() valueobject.ScanMode         { return s.mode }
func (s *ScanSession) Status() valueobject.ScanStatus     { return s.status }
func (s *ScanSession) RiskScore() int                     { return s.riskScore }
func (s *ScanSession) RiskLevel() valueobject.RiskLevel   { return s.riskLevel }
func (s *ScanSession) AppCount() int                      { return s.appCount }
func (s *ScanSession) AppsScanned() int                   { return s.appsScanned }
func (s *ScanSession) HighRiskCount() int                 { return s.highRiskCount }
func (s *ScanSession) MediumRiskCount() int               { return s.mediumRiskCount }
func (s *ScanSession) SafeCount() int                     { return s.safeCount }
func (s *ScanSession) StartedAt() time.Time               { return s.startedAt }
func (s *ScanSession) CompletedAt() *time.Time            { return s.completedAt }

// DomainEvents returns all accumulated domain events and clears them.
func (s *ScanSession) DomainEvents() []events.DomainEvent {
	evts := s.domainEvents
	s.domainEvents = nil
	return evts
}
