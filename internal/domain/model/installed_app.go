package model

import (
	"time"

	"github.com/google/uuid"
)

// InstalledApp is the last-known snapshot of one application on one device.
// Rows are created on first sighting and refreshed on every later sighting;
// this subsystem never deletes them. Uniqueness is (DeviceID, PackageName).
type InstalledApp struct {
	FirstSeenAt time.Time
	LastSeenAt  time.Time
	PackageName string
	AppName     string
	VersionName string
	ID          uuid.UUID
	DeviceID    uuid.UUID
	IsSystemApp bool
}
