package auth

import (
	"context"
	"testing"

	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/device"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret    = "test-secret-key-for-jwt"
	testAccessExp = "1h"
)

type fakeDeviceRepo struct {
	devices map[string]device.Device
}

func (f *fakeDeviceRepo) GetByCode(_ context.Context, code string) (device.Device, error) {
	dev, ok := f.devices[code]
	if !ok {
		return device.Device{}, device.ErrDeviceNotFound
	}
	return dev, nil
}

func newAuthFixture(t *testing.T, active bool) device.AuthService {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("kiosk-secret"), bcrypt.DefaultCost)
	require.NoError(t, err)

	repo := &fakeDeviceRepo{devices: map[string]device.Device{
		"GATE-01": {
			ID:         "dev-1",
			Code:       "GATE-01",
			Name:       "Main Gate Kiosk",
			SecretHash: string(hash),
			Active:     active,
		},
	}}
	return NewAuthService(repo, jwt.NewJWTService(testSecret, testAccessExp))
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := newAuthFixture(t, true)

	resp, err := svc.Login(context.Background(), device.LoginRequest{
		DeviceCode: "GATE-01",
		Secret:     "kiosk-secret",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Greater(t, resp.ExpiresAt, int64(0))
	assert.Equal(t, "Main Gate Kiosk", resp.DeviceName)
}

func TestAuthService_Login_WrongSecret(t *testing.T) {
	svc := newAuthFixture(t, true)

	_, err := svc.Login(context.Background(), device.LoginRequest{
		DeviceCode: "GATE-01",
		Secret:     "wrong",
	})

	assert.ErrorIs(t, err, device.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownDevice(t *testing.T) {
	svc := newAuthFixture(t, true)

	_, err := svc.Login(context.Background(), device.LoginRequest{
		DeviceCode: "GATE-99",
		Secret:     "kiosk-secret",
	})

	assert.ErrorIs(t, err, device.ErrInvalidCredentials)
}

func TestAuthService_Login_DisabledDevice(t *testing.T) {
	svc := newAuthFixture(t, false)

	_, err := svc.Login(context.Background(), device.LoginRequest{
		DeviceCode: "GATE-01",
		Secret:     "kiosk-secret",
	})

	assert.ErrorIs(t, err, device.ErrDeviceDisabled)
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	svc := newAuthFixture(t, true)

	_, err := svc.Login(context.Background(), device.LoginRequest{})

	assert.Error(t, err)
}
