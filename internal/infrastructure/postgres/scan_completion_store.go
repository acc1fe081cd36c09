package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Geeth0476/Vigilant-Backend/internal/domain/model"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/port"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/service"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/valueobject"
	pgsql "github.com/Geeth0476/Vigilant-Backend/pkg/postgres"
)

const violationWindow = 7 * 24 * time.Hour

// ScanCompletionStore implements port.ScanCompletionStore. The whole
// completion runs in one transaction: the session row is locked FOR UPDATE,
// ownership and state are checked, the app registry and results are
// written, the cloud-side signals are read on the same snapshot, and the
// session plus the device score cache are finalized. Any error rolls the
// transaction back and leaves the session RUNNING.
type ScanCompletionStore struct {
	db         pgsql.TxBeginner
	aggregator *service.RiskAggregator
}

// NewScanCompletionStore creates a new completion unit of work.
func NewScanCompletionStore(db pgsql.TxBeginner, aggregator *service.RiskAggregator) *ScanCompletionStore {
	return &ScanCompletionStore{
		db:         db,
		aggregator: aggregator,
	}
}

// Complete finalizes the scan identified by cmd.ScanID.
func (s *ScanCompletionStore) Complete(ctx context.Context, cmd port.CompleteScanCommand) (*model.ScanSession, service.AggregationResult, error) {
	var (
		session *model.ScanSession
		agg     service.AggregationResult
	)

	err := pgsql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		session, err = lockSessionRow(ctx, tx, cmd.ScanID)
		if err != nil {
			return err
		}
		if session == nil {
			return port.ErrScanNotFound
		}
		if session.UserID() != cmd.UserID {
			return port.ErrScanForbidden
		}
		if session.Status().IsTerminal() {
			return model.ErrScanAlreadyCompleted
		}

		deviceID := session.DeviceID()
		now := time.Now().UTC()

		appIDs, err := upsertInstalledApps(ctx, tx, deviceID, cmd.Findings, now)
		if err != nil {
			return err
		}
		if err := insertScanResults(ctx, tx, cmd.ScanID, deviceID, cmd.Findings, appIDs); err != nil {
			return err
		}

		threats, err := communityThreatCount(ctx, tx, deviceID)
		if err != nil {
			return err
		}
		violations, err := recentViolationCount(ctx, tx, deviceID, now.Add(-violationWindow))
		if err != nil {
			return err
		}

		agg = s.aggregator.Aggregate(service.AggregationInput{
			SelfScore:        cmd.SelfScore,
			CommunityThreats: threats,
			RecentViolations: violations,
		})

		if err := session.Complete(agg.Score, agg.Level, cmd.Tally, cmd.AppCount); err != nil {
			return err
		}

		if err := finalizeSessionRow(ctx, tx, session); err != nil {
			return err
		}
		if err := upsertDeviceScore(ctx, tx, session); err != nil {
			return err
		}
		if agg.Level.AtLeast(valueobject.RiskLevelHigh) {
			if err := insertHighRiskAlert(ctx, tx, session); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, service.AggregationResult{}, err
	}

	return session, agg, nil
}

// upsertInstalledApps refreshes the per-device app registry and returns the
// registry row id for each package, so result rows can reference it.
func upsertInstalledApps(ctx context.Context, q pgsql.Querier, deviceID uuid.UUID, findings []model.AppFinding, now time.Time) (map[string]uuid.UUID, error) {
	query := `
		INSERT INTO installed_apps (id, device_id, package_name, app_name, version_name, is_system_app, first_seen_at, last_seen_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (device_id, package_name) DO UPDATE SET
			app_name      = EXCLUDED.app_name,
			version_name  = EXCLUDED.version_name,
			is_system_app = EXCLUDED.is_system_app,
			last_seen_at  = EXCLUDED.last_seen_at
		RETURNING id
	`

	ids := make(map[string]uuid.UUID, len(findings))
	for _, f := range findings {
		var appID uuid.UUID
		err := q.QueryRow(ctx, query,
			uuid.New(), deviceID, f.PackageName, f.AppName, f.VersionName, f.IsSystemApp, now,
		).Scan(&appID)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert installed app %s: %w", f.PackageName, err)
		}
		ids[f.PackageName] = appID
	}
	return ids, nil
}

func insertScanResults(ctx context.Context, q pgsql.Querier, scanID, deviceID uuid.UUID, findings []model.AppFinding, appIDs map[string]uuid.UUID) error {
	resultQuery := `
		INSERT INTO app_scan_results (id, scan_id, device_id, installed_app_id, risk_score, risk_level, top_factor)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	factorQuery := `
		INSERT INTO risk_factors (result_id, description, factor_type, score)
		VALUES ($1, $2, $3, $4)
	`

	for _, f := range findings {
		resultID := uuid.New()
		_, err := q.Exec(ctx, resultQuery,
			resultID, scanID, deviceID, appIDs[f.PackageName],
			f.RiskScore, f.RiskLevel.String(), f.TopFactor,
		)
		if err != nil {
			return fmt.Errorf("failed to insert scan result for %s: %w", f.PackageName, err)
		}

		for _, factor := range f.RiskFactors {
			if _, err := q.Exec(ctx, factorQuery, resultID, factor.Description, factor.FactorType, factor.Score); err != nil {
				return fmt.Errorf("failed to insert risk factor for %s: %w", f.PackageName, err)
			}
		}
	}
	return nil
}

func finalizeSessionRow(ctx context.Context, q pgsql.Querier, session *model.ScanSession) error {
	query := `
		UPDATE scan_sessions
		SET status = $2, risk_score = $3, risk_level = $4,
			app_count = $5, apps_scanned = $6,
			high_risk_count = $7, medium_risk_count = $8, safe_count = $9,
			completed_at = $10
		WHERE id = $1
	`

	_, err := q.Exec(ctx, query,
		session.ID(),
		session.Status().String(),
		session.RiskScore(),
		session.RiskLevel().String(),
		session.AppCount(),
		session.AppsScanned(),
		session.HighRiskCount(),
		session.MediumRiskCount(),
		session.SafeCount(),
		session.CompletedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to finalize scan session: %w", err)
	}
	return nil
}

// upsertDeviceScore refreshes the per-device score cache. The latest
// completed scan wins unconditionally, even with a lower score.
func upsertDeviceScore(ctx context.Context, q pgsql.Querier, session *model.ScanSession) error {
	query := `
		INSERT INTO device_risk_scores (device_id, last_scan_id, last_score, last_level, last_updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (device_id) DO UPDATE SET
			last_scan_id    = EXCLUDED.last_scan_id,
			last_score      = EXCLUDED.last_score,
			last_level      = EXCLUDED.last_level,
			last_updated_at = EXCLUDED.last_updated_at
	`

	_, err := q.Exec(ctx, query,
		session.DeviceID(),
		session.ID(),
		session.RiskScore(),
		session.RiskLevel().String(),
		session.CompletedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert device risk score: %w", err)
	}
	return nil
}

func insertHighRiskAlert(ctx context.Context, q pgsql.Querier, session *model.ScanSession) error {
	query := `
		INSERT INTO security_alerts (id, device_id, scan_id, alert_type, severity, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	message := fmt.Sprintf("Device scan finished at %s risk (score %d)", session.RiskLevel().String(), session.RiskScore())
	_, err := q.Exec(ctx, query,
		uuid.New(),
		session.DeviceID(),
		session.ID(),
		"HIGH_RISK_SCAN",
		session.RiskLevel().String(),
		message,
		session.CompletedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert security alert: %w", err)
	}
	return nil
}
