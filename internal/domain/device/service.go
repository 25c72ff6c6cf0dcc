package device

import (
	"context"
)

type AuthService interface {
	// Login authenticates a kiosk device and issues an access token.
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}
