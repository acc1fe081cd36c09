package usecase

import (
	"context"
	"fmt"

	"github.com/Geeth0476/Vigilant-Backend/internal/application/dto"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/port"
)

// GetActiveScan is the use case behind scan recovery: after an app restart
// the client asks whether a scan is still running on the device.
type GetActiveScan struct {
	devices  port.DeviceRepository
	sessions port.ScanSessionRepository
}

// NewGetActiveScan creates a new GetActiveScan use case.
func NewGetActiveScan(devices port.DeviceRepository, sessions port.ScanSessionRepository) *GetActiveScan {
	return &GetActiveScan{
		devices:  devices,
		sessions: sessions,
	}
}

// Execute returns the newest still-running session for the device. Nothing
// running is the usual polling answer and comes back as a zero projection,
// not an error.
func (uc *GetActiveScan) Execute(ctx context.Context, req dto.DeviceScopedRequest) (dto.ScanStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.ScanStatusResponse{}, err
	}

	deviceID, err := uc.devices.ResolveUUID(ctx, req.UserID, req.DeviceUUID)
	if err != nil {
		return dto.ScanStatusResponse{}, err
	}

	session, err := uc.sessions.ActiveForDevice(ctx, deviceID, req.UserID)
	if err != nil {
		return dto.ScanStatusResponse{}, fmt.Errorf("failed to load active scan: %w", err)
	}
	if session == nil {
		return dto.ScanStatusResponse{}, nil
	}

	return dto.ScanStatusFromModel(session), nil
}
