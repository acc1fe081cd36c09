package usecase

import (
	"context"
	"fmt"

	"github.com/Geeth0476/Vigilant-Backend/internal/application/dto"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/port"
)

// GetLatestScan is the use case for fetching the most recent completed
// scan of a device.
type GetLatestScan struct {
	devices  port.DeviceRepository
	sessions port.ScanSessionRepository
}

// NewGetLatestScan creates a new GetLatestScan use case.
func NewGetLatestScan(devices port.DeviceRepository, sessions port.ScanSessionRepository) *GetLatestScan {
	return &GetLatestScan{
		devices:  devices,
		sessions: sessions,
	}
}

// Execute resolves the device for the caller and returns its most recent
// completed scan. A device that has never completed a scan is a normal
// answer, reported as a zero projection rather than an error.
func (uc *GetLatestScan) Execute(ctx context.Context, req dto.DeviceScopedRequest) (dto.ScanStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.ScanStatusResponse{}, err
	}

	deviceID, err := uc.devices.ResolveUUID(ctx, req.UserID, req.DeviceUUID)
	if err != nil {
		return dto.ScanStatusResponse{}, err
	}

	session, err := uc.sessions.LatestCompleted(ctx, deviceID)
	if err != nil {
		return dto.ScanStatusResponse{}, fmt.Errorf("failed to load latest scan: %w", err)
	}
	if session == nil {
		return dto.ScanStatusResponse{}, nil
	}

	return dto.ScanStatusFromModel(session), nil
}
