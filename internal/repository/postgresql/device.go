package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/device"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/pkg/database"
)

type deviceRepository struct {
	db *database.DB
}

func NewDeviceRepository(db *database.DB) device.DeviceRepository {
	return &deviceRepository{db: db}
}

// GetByCode implements device.DeviceRepository.
func (d *deviceRepository) GetByCode(ctx context.Context, code string) (device.Device, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT id, code, name, secret_hash, active, created_at, updated_at
		FROM devices
		WHERE code = $1
	`

	var dev device.Device
	err := q.QueryRow(ctx, query, code).Scan(
		&dev.ID, &dev.Code, &dev.Name, &dev.SecretHash, &dev.Active, &dev.CreatedAt, &dev.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return device.Device{}, device.ErrDeviceNotFound
		}
		return device.Device{}, fmt.Errorf("failed to get device by code: %w", err)
	}

	return dev, nil
}
