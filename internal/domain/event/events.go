package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/Geeth0476/Vigilant-Backend/pkg/events"
)

const (
	// EventTypeScanCompleted is emitted when a scan session is finalized.
	EventTypeScanCompleted = "scan.completed"

	// EventTypeHighRiskDetected is emitted when the aggregated device level
	// reaches HIGH or CRITICAL, feeding the alerting collaborator.
	EventTypeHighRiskDetected = "scan.high_risk.detected"

	aggregateTypeScanSession = "scan_session"
)

// ScanCompleted is published when a scan session has been finalized with its
// aggregated score.
type ScanCompleted struct {
	events.BaseEvent
}

type scanCompletedPayload struct {
	ScanID          uuid.UUID `json:"scan_id"`
	UserID          uuid.UUID `json:"user_id"`
	DeviceID        uuid.UUID `json:"device_id"`
	RiskScore       int       `json:"risk_score"`
	RiskLevel       string    `json:"risk_level"`
	HighRiskCount   int       `json:"high_risk_count"`
	MediumRiskCount int       `json:"medium_risk_count"`
	SafeCount       int       `json:"safe_count"`
	CompletedAt     time.Time `json:"completed_at"`
}

// NewScanCompleted builds a ScanCompleted event.
func NewScanCompleted(scanID, userID, deviceID uuid.UUID, riskScore int, riskLevel string, high, medium, safe int, completedAt time.Time) ScanCompleted {
	payload, _ := json.Marshal(scanCompletedPayload{
		ScanID:          scanID,
		UserID:          userID,
		DeviceID:        deviceID,
		RiskScore:       riskScore,
		RiskLevel:       riskLevel,
		HighRiskCount:   high,
		MediumRiskCount: medium,
		SafeCount:       safe,
		CompletedAt:     completedAt,
	})
	return ScanCompleted{
		BaseEvent: events.NewBaseEvent(EventTypeScanCompleted, scanID, aggregateTypeScanSession, payload),
	}
}

// HighRiskDetected is published when a completed scan leaves the device at
// HIGH or CRITICAL aggregated risk. Consumers raise security alerts and
// notifications; delivery is not this service's concern.
type HighRiskDetected struct {
	events.BaseEvent
}

type highRiskDetectedPayload struct {
	ScanID     uuid.UUID `json:"scan_id"`
	UserID     uuid.UUID `json:"user_id"`
	DeviceID   uuid.UUID `json:"device_id"`
	RiskScore  int       `json:"risk_score"`
	RiskLevel  string    `json:"risk_level"`
	DetectedAt time.Time `json:"detected_at"`
}

// NewHighRiskDetected builds a HighRiskDetected event.
func NewHighRiskDetected(scanID, userID, deviceID uuid.UUID, riskScore int, riskLevel string, detectedAt time.Time) HighRiskDetected {
	payload, _ := json.Marshal(highRiskDetectedPayload{
		ScanID:     scanID,
		UserID:     userID,
		DeviceID:   deviceID,
		RiskScore:  riskScore,
		RiskLevel:  riskLevel,
		DetectedAt: detectedAt,
	})
	return HighRiskDetected{
		BaseEvent: events.NewBaseEvent(EventTypeHighRiskDetected, scanID, aggregateTypeScanSession, payload),
	}
}
