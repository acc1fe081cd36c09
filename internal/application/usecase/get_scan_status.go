package usecase

import (
	"context"
	"fmt"

	"github.com/Geeth0476/Vigilant-Backend/internal/application/dto"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/port"
)

// GetScanStatus is the use case for polling one session's state.
type GetScanStatus struct {
	sessions port.ScanSessionRepository
}

// NewGetScanStatus creates a new GetScanStatus use case.
func NewGetScanStatus(sessions port.ScanSessionRepository) *GetScanStatus {
	return &GetScanStatus{sessions: sessions}
}

// Execute loads the session scoped to the caller. A scan owned by another
// user is reported as not found.
func (uc *GetScanStatus) Execute(ctx context.Context, req dto.GetScanStatusRequest) (dto.ScanStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.ScanStatusResponse{}, err
	}

	session, err := uc.sessions.FindForUser(ctx, req.ScanID, req.UserID)
	if err != nil {
		return dto.ScanStatusResponse{}, fmt.Errorf("failed to load scan session: %w", err)
	}
	if session == nil {
		return dto.ScanStatusResponse{}, port.ErrScanNotFound
	}

	return dto.ScanStatusFromModel(session), nil
}
