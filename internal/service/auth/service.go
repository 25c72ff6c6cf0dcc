package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/device"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	device.DeviceRepository
	jwtService jwt.Service
}

func NewAuthService(deviceRepo device.DeviceRepository, jwtService jwt.Service) device.AuthService {
	return &AuthServiceImpl{
		DeviceRepository: deviceRepo,
		jwtService:       jwtService,
	}
}

// Login implements device.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req device.LoginRequest) (device.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return device.LoginResponse{}, err
	}

	dev, err := a.DeviceRepository.GetByCode(ctx, req.DeviceCode)
	if err != nil {
		// An unknown device code is indistinguishable from a bad secret.
		if errors.Is(err, device.ErrDeviceNotFound) {
			return device.LoginResponse{}, device.ErrInvalidCredentials
		}
		return device.LoginResponse{}, fmt.Errorf("failed to get device: %w", err)
	}

	if !dev.Active {
		return device.LoginResponse{}, device.ErrDeviceDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(dev.SecretHash), []byte(req.Secret)); err != nil {
		return device.LoginResponse{}, device.ErrInvalidCredentials
	}

	token, expiresAt, err := a.jwtService.GenerateAccessToken(dev.ID, dev.Code)
	if err != nil {
		return device.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return device.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		DeviceName:  dev.Name,
	}, nil
}
