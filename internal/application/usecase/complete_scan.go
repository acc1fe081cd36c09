package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Geeth0476/Vigilant-Backend/internal/application/dto"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/model"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/port"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/valueobject"
)

// CompleteScan is the use case for finalizing a scan session: it normalizes
// the submitted findings, runs the transactional completion unit of work,
// and publishes domain events after the transaction commits.
type CompleteScan struct {
	store     port.ScanCompletionStore
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewCompleteScan creates a new CompleteScan use case.
func NewCompleteScan(store port.ScanCompletionStore, publisher port.EventPublisher, logger *slog.Logger) *CompleteScan {
	return &CompleteScan{
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute finalizes the scan. Event publishing is fire-and-forget: a
// publish failure is logged and never rolls back a committed completion.
func (uc *CompleteScan) Execute(ctx context.Context, req dto.CompleteScanRequest) (dto.CompleteScanResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.CompleteScanResponse{}, err
	}

	findings, tally := model.NormalizeFindings(req.RawFindings())

	selfLevel, err := valueobject.RiskLevelFromString(req.RiskLevel)
	if err != nil {
		selfLevel = valueobject.RiskLevelFromScore(req.SelfScore())
	}

	// app_count reflects the submitted batch, not just the accepted
	// findings, so skipped malformed entries stay visible as a gap.
	session, agg, err := uc.store.Complete(ctx, port.CompleteScanCommand{
		ScanID:    req.ScanID,
		UserID:    req.UserID,
		Findings:  findings,
		Tally:     tally,
		SelfScore: req.SelfScore(),
		SelfLevel: selfLevel,
		AppCount:  len(req.Findings),
	})
	if err != nil {
		return dto.CompleteScanResponse{}, fmt.Errorf("failed to complete scan: %w", err)
	}

	if evts := session.DomainEvents(); len(evts) > 0 {
		if err := uc.publisher.Publish(ctx, evts...); err != nil {
			uc.logger.Error("failed to publish scan events",
				"scan_id", session.ID(),
				"error", err,
			)
		}
	}

	return dto.CompleteScanFromModel(session, agg), nil
}
