package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Geeth0476/Vigilant-Backend/internal/domain/model"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/port"
)

// DeviceRepository implements port.DeviceRepository using PostgreSQL.
type DeviceRepository struct {
	pool *pgxpool.Pool
}

// NewDeviceRepository creates a new PostgreSQL-backed device repository.
func NewDeviceRepository(pool *pgxpool.Pool) *DeviceRepository {
	return &DeviceRepository{pool: pool}
}

// ResolveUUID maps a client device UUID to the internal device ID, scoped
// to the owning user.
func (r *DeviceRepository) ResolveUUID(ctx context.Context, userID uuid.UUID, deviceUUID string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx,
		`SELECT id FROM devices WHERE user_id = $1 AND device_uuid = $2`,
		userID, deviceUUID,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, port.ErrDeviceNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to resolve device: %w", err)
	}
	return id, nil
}

// RegisterOrUpdate upserts a device registration keyed by (user, uuid).
// On conflict only the metadata and last-active timestamp move; the row
// keeps its original ID, which is written back into device.ID.
func (r *DeviceRepository) RegisterOrUpdate(ctx context.Context, device *model.Device) error {
	query := `
		INSERT INTO devices (id, user_id, device_uuid, device_model, os_version, registered_at, last_active_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, device_uuid) DO UPDATE SET
			device_model   = EXCLUDED.device_model,
			os_version     = EXCLUDED.os_version,
			last_active_at = EXCLUDED.last_active_at
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		device.ID,
		device.UserID,
		device.DeviceUUID,
		device.DeviceModel,
		device.OSVersion,
		device.RegisteredAt,
		device.LastActiveAt,
	).Scan(&device.ID)
	if err != nil {
		return fmt.Errorf("failed to register device: %w", err)
	}
	return nil
}
