package model

import (
	"time"

	"github.com/google/uuid"
)

// Device is a registered client device, owned by exactly one user.
// DeviceUUID is the client-generated identifier; ID is the internal key.
type Device struct {
	RegisteredAt time.Time
	LastActiveAt time.Time
	DeviceUUID   string
	DeviceModel  string
	OSVersion    string
	ID           uuid.UUID
	UserID       uuid.UUID
}

// NewDevice creates a device registration with placeholder metadata, used
// when a scan start references a device the user never registered.
func NewDevice(userID uuid.UUID, deviceUUID string) *Device {
	now := time.Now().UTC()
	return &Device{
		ID:           uuid.New(),
		UserID:       userID,
		DeviceUUID:   deviceUUID,
		DeviceModel:  "Unknown",
		OSVersion:    "Unknown",
		RegisteredAt: now,
		LastActiveAt: now,
	}
}
