package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AlertRepository implements port.AlertRepository using PostgreSQL.
type AlertRepository struct {
	pool *pgxpool.Pool
}

// NewAlertRepository creates a new PostgreSQL-backed alert reader.
func NewAlertRepository(pool *pgxpool.Pool) *AlertRepository {
	return &AlertRepository{pool: pool}
}

// CountRecentForDevice counts alerts for the device created since the
// given time.
func (r *AlertRepository) CountRecentForDevice(ctx context.Context, deviceID uuid.UUID, since time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM security_alerts WHERE device_id = $1 AND created_at >= $2`,
		deviceID, since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count security alerts: %w", err)
	}
	return count, nil
}
