package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Geeth0476/Vigilant-Backend/internal/domain/model"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/valueobject"
)

// DeviceRiskScoreRepository implements port.DeviceRiskScoreRepository
// using PostgreSQL. The cache is written only by the completion unit of
// work; this repository is read-only.
type DeviceRiskScoreRepository struct {
	pool *pgxpool.Pool
}

// NewDeviceRiskScoreRepository creates a new score cache reader.
func NewDeviceRiskScoreRepository(pool *pgxpool.Pool) *DeviceRiskScoreRepository {
	return &DeviceRiskScoreRepository{pool: pool}
}

// Find returns (nil, nil) when the device has no cached score yet.
func (r *DeviceRiskScoreRepository) Find(ctx context.Context, deviceID uuid.UUID) (*model.DeviceRiskScore, error) {
	query := `
		SELECT device_id, last_scan_id, last_score, last_level, last_updated_at
		FROM device_risk_scores
		WHERE device_id = $1
	`

	var (
		score    model.DeviceRiskScore
		levelStr string
	)
	err := r.pool.QueryRow(ctx, query, deviceID).
		Scan(&score.DeviceID, &score.LastScanID, &score.LastScore, &levelStr, &score.LastUpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load device risk score: %w", err)
	}

	score.LastLevel, err = valueobject.RiskLevelFromString(levelStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt device risk score for %s: %w", deviceID, err)
	}
	return &score, nil
}
