package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Geeth0476/Vigilant-Backend/internal/domain/port"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/valueobject"
)

// ScanResultRepository implements port.ScanResultRepository using PostgreSQL.
type ScanResultRepository struct {
	pool *pgxpool.Pool
}

// NewScanResultRepository creates a new PostgreSQL-backed result reader.
func NewScanResultRepository(pool *pgxpool.Pool) *ScanResultRepository {
	return &ScanResultRepository{pool: pool}
}

// TopRiskyApps returns up to limit apps at MEDIUM or above from completed
// scans of the device, newest scan first, highest score first within it.
func (r *ScanResultRepository) TopRiskyApps(ctx context.Context, deviceID uuid.UUID, limit int) ([]port.TopRiskyApp, error) {
	query := `
		SELECT ia.app_name, ia.package_name, res.top_factor, res.risk_level, res.risk_score
		FROM app_scan_results res
		JOIN installed_apps ia ON ia.id = res.installed_app_id
		JOIN scan_sessions s ON s.id = res.scan_id
		WHERE res.device_id = $1
			AND s.status = 'COMPLETED'
			AND res.risk_score >= 40
		ORDER BY s.completed_at DESC, res.risk_score DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, deviceID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query risky apps: %w", err)
	}
	defer rows.Close()

	var apps []port.TopRiskyApp
	for rows.Next() {
		var (
			app      port.TopRiskyApp
			levelStr string
		)
		if err := rows.Scan(&app.AppName, &app.PackageName, &app.TopFactor, &levelStr, &app.RiskScore); err != nil {
			return nil, fmt.Errorf("failed to scan risky app row: %w", err)
		}
		app.RiskLevel, err = valueobject.RiskLevelFromString(levelStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt scan result for %s: %w", app.PackageName, err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read risky apps: %w", err)
	}
	return apps, nil
}
