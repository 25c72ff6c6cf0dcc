package device

import (
	"time"
)

// Device is a registered scan kiosk. Devices authenticate with a code
// and secret and receive a short-lived access token.
type Device struct {
	ID         string
	Code       string
	Name       string
	SecretHash string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
