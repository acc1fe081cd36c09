package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Geeth0476/Vigilant-Backend/internal/domain/model"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/port"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/valueobject"
	pgsql "github.com/Geeth0476/Vigilant-Backend/pkg/postgres"
)

const sessionColumns = `id, user_id, device_id, scan_mode, status,
	risk_score, risk_level, app_count, apps_scanned,
	high_risk_count, medium_risk_count, safe_count,
	started_at, completed_at`

// ScanSessionRepository implements port.ScanSessionRepository using PostgreSQL.
type ScanSessionRepository struct {
	pool *pgxpool.Pool
}

// NewScanSessionRepository creates a new PostgreSQL-backed session repository.
func NewScanSessionRepository(pool *pgxpool.Pool) *ScanSessionRepository {
	return &ScanSessionRepository{pool: pool}
}

// Create inserts a new RUNNING session.
func (r *ScanSessionRepository) Create(ctx context.Context, session *model.ScanSession) error {
	query := `
		INSERT INTO scan_sessions (
			id, user_id, device_id, scan_mode, status,
			risk_score, risk_level, app_count, apps_scanned,
			high_risk_count, medium_risk_count, safe_count,
			started_at, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.pool.Exec(ctx, query,
		session.ID(),
		session.UserID(),
		session.DeviceID(),
		session.Mode().String(),
		session.Status().String(),
		session.RiskScore(),
		session.RiskLevel().String(),
		session.AppCount(),
		session.AppsScanned(),
		session.HighRiskCount(),
		session.MediumRiskCount(),
		session.SafeCount(),
		session.StartedAt(),
		session.CompletedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert scan session: %w", err)
	}
	return nil
}

// FindForUser loads a session only if it belongs to the given user.
func (r *ScanSessionRepository) FindForUser(ctx context.Context, scanID, userID uuid.UUID) (*model.ScanSession, error) {
	query := fmt.Sprintf(`SELECT %s FROM scan_sessions WHERE id = $1 AND user_id = $2`, sessionColumns)
	return scanSessionRow(r.pool.QueryRow(ctx, query, scanID, userID))
}

// UpdateProgress writes the advisory counters with last-write-wins
// semantics. Only RUNNING sessions owned by the user match.
func (r *ScanSessionRepository) UpdateProgress(ctx context.Context, scanID, userID uuid.UUID, appsScanned int, totalApps *int) (bool, error) {
	query := `
		UPDATE scan_sessions
		SET apps_scanned = $3,
			app_count = COALESCE($4, app_count)
		WHERE id = $1 AND user_id = $2 AND status = 'RUNNING'
	`

	tag, err := r.pool.Exec(ctx, query, scanID, userID, appsScanned, totalApps)
	if err != nil {
		return false, fmt.Errorf("failed to update progress: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// LatestCompleted returns the most recently completed session for a device.
func (r *ScanSessionRepository) LatestCompleted(ctx context.Context, deviceID uuid.UUID) (*model.ScanSession, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM scan_sessions
		WHERE device_id = $1 AND status = 'COMPLETED'
		ORDER BY completed_at DESC
		LIMIT 1
	`, sessionColumns)
	return scanSessionRow(r.pool.QueryRow(ctx, query, deviceID))
}

// ActiveForDevice returns the newest still-running session for the device.
func (r *ScanSessionRepository) ActiveForDevice(ctx context.Context, deviceID, userID uuid.UUID) (*model.ScanSession, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM scan_sessions
		WHERE device_id = $1 AND user_id = $2 AND status = 'RUNNING'
		ORDER BY started_at DESC
		LIMIT 1
	`, sessionColumns)
	return scanSessionRow(r.pool.QueryRow(ctx, query, deviceID, userID))
}

// HistorySummary summarizes completed sessions for a device since the
// given time. AvgRiskScore stays nil when the window holds no scans.
func (r *ScanSessionRepository) HistorySummary(ctx context.Context, deviceID, userID uuid.UUID, since time.Time) (port.ScanHistorySummary, error) {
	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE risk_level IN ('HIGH', 'CRITICAL')),
			AVG(risk_score)
		FROM scan_sessions
		WHERE device_id = $1 AND user_id = $2
			AND status = 'COMPLETED' AND completed_at >= $3
	`

	var summary port.ScanHistorySummary
	err := r.pool.QueryRow(ctx, query, deviceID, userID, since).
		Scan(&summary.TotalScans, &summary.HighRiskScans, &summary.AvgRiskScore)
	if err != nil {
		return port.ScanHistorySummary{}, fmt.Errorf("failed to summarize scan history: %w", err)
	}
	return summary, nil
}

// scanSessionRow maps one scan_sessions row into the aggregate, returning
// (nil, nil) when the row does not exist.
func scanSessionRow(row pgx.Row) (*model.ScanSession, error) {
	var (
		id, userID, deviceID                        uuid.UUID
		modeStr, statusStr, levelStr                string
		riskScore, appCount, appsScanned            int
		highCount, mediumCount, safeCount           int
		startedAt                                   time.Time
		completedAt                                 *time.Time
	)

	err := row.Scan(
		&id, &userID, &deviceID, &modeStr, &statusStr,
		&riskScore, &levelStr, &appCount, &appsScanned,
		&highCount, &mediumCount, &safeCount,
		&startedAt, &completedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan session row: %w", err)
	}

	status, err := valueobject.ScanStatusFromString(statusStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt session %s: %w", id, err)
	}
	level, err := valueobject.RiskLevelFromString(levelStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt session %s: %w", id, err)
	}

	return model.ReconstructScanSession(
		id, userID, deviceID,
		valueobject.ScanModeFromString(modeStr),
		status,
		riskScore, level,
		appCount, appsScanned, highCount, mediumCount, safeCount,
		startedAt, completedAt,
	), nil
}

// lockSessionRow loads a session row FOR UPDATE inside a transaction.
func lockSessionRow(ctx context.Context, q pgsql.Querier, scanID uuid.UUID) (*model.ScanSession, error) {
	query := fmt.Sprintf(`SELECT %s FROM scan_sessions WHERE id = $1 FOR UPDATE`, sessionColumns)
	return scanSessionRow(q.QueryRow(ctx, query, scanID))
}
