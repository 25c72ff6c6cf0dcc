package device

import (
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	DeviceCode string `json:"device_code"`
	Secret     string `json:"secret"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DeviceCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "device_code",
			Message: "device_code is required",
		})
	}

	if validator.IsEmpty(r.Secret) {
		errs = append(errs, validator.ValidationError{
			Field:   "secret",
			Message: "secret is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
	DeviceName  string `json:"device_name"`
}
