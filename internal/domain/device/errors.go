package device

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid device code or secret")
	ErrDeviceNotFound     = errors.New("device not found")
	ErrDeviceDisabled     = errors.New("device is disabled")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
