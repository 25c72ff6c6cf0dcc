package device

import (
	"context"
)

type DeviceRepository interface {
	GetByCode(ctx context.Context, code string) (Device, error)
}
