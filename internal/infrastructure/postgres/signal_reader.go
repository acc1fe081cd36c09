package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	pgsql "github.com/Geeth0476/Vigilant-Backend/pkg/postgres"
)

// SignalReader implements port.RiskSignalReader against the live tables,
// outside any transaction. The completion unit of work reads the same
// signals through the shared helpers below, on its own transaction.
type SignalReader struct {
	pool *pgxpool.Pool
}

// NewSignalReader creates a new PostgreSQL-backed signal reader.
func NewSignalReader(pool *pgxpool.Pool) *SignalReader {
	return &SignalReader{pool: pool}
}

// CommunityThreatCount counts distinct installed apps on the device whose
// package matches a HIGH or CRITICAL community threat.
func (r *SignalReader) CommunityThreatCount(ctx context.Context, deviceID uuid.UUID) (int, error) {
	return communityThreatCount(ctx, r.pool, deviceID)
}

// RecentViolationCount counts "used" permission events for the device
// since the given time.
func (r *SignalReader) RecentViolationCount(ctx context.Context, deviceID uuid.UUID, since time.Time) (int, error) {
	return recentViolationCount(ctx, r.pool, deviceID, since)
}

func communityThreatCount(ctx context.Context, q pgsql.Querier, deviceID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(DISTINCT ia.package_name)
		FROM installed_apps ia
		JOIN community_threats ct ON ct.package_name = ia.package_name
		WHERE ia.device_id = $1 AND ct.risk_level IN ('HIGH', 'CRITICAL')
	`

	var count int
	if err := q.QueryRow(ctx, query, deviceID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count community threats: %w", err)
	}
	return count, nil
}

func recentViolationCount(ctx context.Context, q pgsql.Querier, deviceID uuid.UUID, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM permission_events
		WHERE device_id = $1 AND action = 'used' AND occurred_at >= $2
	`

	var count int
	if err := q.QueryRow(ctx, query, deviceID, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count permission violations: %w", err)
	}
	return count, nil
}
