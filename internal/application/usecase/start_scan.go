package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Geeth0476/Vigilant-Backend/internal/application/dto"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/model"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/port"
)

// StartScan is the use case for opening a new scan session on a device.
type StartScan struct {
	devices  port.DeviceRepository
	sessions port.ScanSessionRepository
}

// NewStartScan creates a new StartScan use case.
func NewStartScan(devices port.DeviceRepository, sessions port.ScanSessionRepository) *StartScan {
	return &StartScan{
		devices:  devices,
		sessions: sessions,
	}
}

// Execute resolves the device for the caller, registering it on the fly
// when unknown, and opens a RUNNING session. Concurrent sessions per device
// are allowed; consumers treat the newest as current.
func (uc *StartScan) Execute(ctx context.Context, req dto.StartScanRequest) (dto.StartScanResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.StartScanResponse{}, err
	}

	deviceID, err := uc.devices.ResolveUUID(ctx, req.UserID, req.DeviceUUID)
	if errors.Is(err, port.ErrDeviceNotFound) {
		device := model.NewDevice(req.UserID, req.DeviceUUID)
		if err := uc.devices.RegisterOrUpdate(ctx, device); err != nil {
			return dto.StartScanResponse{}, fmt.Errorf("failed to register device: %w", err)
		}
		deviceID = device.ID
	} else if err != nil {
		return dto.StartScanResponse{}, fmt.Errorf("failed to resolve device: %w", err)
	}

	session, err := model.NewScanSession(req.UserID, deviceID, req.ScanMode)
	if err != nil {
		return dto.StartScanResponse{}, fmt.Errorf("failed to create scan session: %w", err)
	}

	if err := uc.sessions.Create(ctx, session); err != nil {
		return dto.StartScanResponse{}, fmt.Errorf("failed to save scan session: %w", err)
	}

	return dto.StartScanResponse{
		ScanID:    session.ID(),
		DeviceID:  session.DeviceID(),
		Status:    session.Status().String(),
		ScanMode:  session.Mode().String(),
		StartedAt: session.StartedAt(),
	}, nil
}
