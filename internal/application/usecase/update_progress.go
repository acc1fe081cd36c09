package usecase

import (
	"context"
	"fmt"

	"github.com/Geeth0476/Vigilant-Backend/internal/application/dto"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/port"
)

// UpdateProgress is the use case for the advisory mid-scan progress write.
type UpdateProgress struct {
	sessions port.ScanSessionRepository
}

// NewUpdateProgress creates a new UpdateProgress use case.
func NewUpdateProgress(sessions port.ScanSessionRepository) *UpdateProgress {
	return &UpdateProgress{sessions: sessions}
}

// Execute records the caller's progress counters with last-write-wins
// semantics. The session must still be RUNNING and belong to the caller.
func (uc *UpdateProgress) Execute(ctx context.Context, req dto.UpdateProgressRequest) (dto.UpdateProgressResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.UpdateProgressResponse{}, err
	}

	session, err := uc.sessions.FindForUser(ctx, req.ScanID, req.UserID)
	if err != nil {
		return dto.UpdateProgressResponse{}, fmt.Errorf("failed to load scan session: %w", err)
	}
	if session == nil {
		return dto.UpdateProgressResponse{}, port.ErrScanNotFound
	}

	if err := session.RecordProgress(req.AppsScanned, req.TotalApps); err != nil {
		return dto.UpdateProgressResponse{}, err
	}

	matched, err := uc.sessions.UpdateProgress(ctx, req.ScanID, req.UserID, req.AppsScanned, req.TotalApps)
	if err != nil {
		return dto.UpdateProgressResponse{}, fmt.Errorf("failed to save progress: %w", err)
	}
	if !matched {
		return dto.UpdateProgressResponse{}, port.ErrScanNotFound
	}

	return dto.UpdateProgressResponse{
		ScanID:      session.ID(),
		Status:      session.Status().String(),
		AppsScanned: req.AppsScanned,
	}, nil
}
