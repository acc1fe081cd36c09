package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/Geeth0476/Vigilant-Backend/internal/domain/valueobject"
)

// DeviceRiskScore is the materialized single-row-per-device cache of the
// last aggregated score. It is always derivable by re-running aggregation
// against the referenced scan; the last completed scan wins unconditionally,
// even when its score is lower than the cached one.
type DeviceRiskScore struct {
	LastUpdatedAt time.Time
	LastLevel     valueobject.RiskLevel
	DeviceID      uuid.UUID
	LastScanID    uuid.UUID
	LastScore     int
}
