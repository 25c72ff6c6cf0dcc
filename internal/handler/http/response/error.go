package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/attendance"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/cooldown"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/device"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/gatepass"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/roster"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/pkg/database"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Validators return
// typed results, so the UI can render a specific message without
// string-matching.
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Cooldown carries its remaining seconds
	var cooldownErr *cooldown.ActiveError
	if errors.As(err, &cooldownErr) {
		writeJSON(w, http.StatusTooEarly, Response{
			Success: false,
			Error: &ErrorDetail{
				Code:    "COOLDOWN_ACTIVE",
				Message: cooldownErr.Error(),
				Details: map[string]string{
					"remaining_seconds": fmt.Sprintf("%d", cooldownErr.RemainingSeconds),
					"session_type":      string(cooldownErr.SessionType),
				},
			},
		})
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrMaxActionsReached):
		Conflict(w, "MAX_ACTIONS_REACHED", err.Error())
	case errors.Is(err, attendance.ErrDuplicateTimestamp):
		Conflict(w, "DUPLICATE_TIMESTAMP", err.Error())
	case errors.Is(err, attendance.ErrSequenceViolation):
		UnprocessableEntity(w, "SEQUENCE_VIOLATION", err.Error())
	case errors.Is(err, attendance.ErrMinimumDurationNotMet):
		TooEarly(w, "MINIMUM_DURATION_NOT_MET", err.Error())
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, attendance.ErrCheckpointNotSet):
		BadRequest(w, err.Error(), nil)

	// Roster domain errors
	case errors.Is(err, roster.ErrRosterNotFound):
		NotFound(w, err.Error())

	// Gate pass domain errors
	case errors.Is(err, gatepass.ErrPassNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, gatepass.ErrPassAlreadyUsed):
		Gone(w, "PASS_ALREADY_USED", err.Error())
	case errors.Is(err, gatepass.ErrPassExpired):
		Gone(w, "PASS_EXPIRED", err.Error())
	case errors.Is(err, gatepass.ErrPassRevoked):
		Gone(w, "PASS_REVOKED", err.Error())
	case errors.Is(err, gatepass.ErrReturnBeforeExit):
		UnprocessableEntity(w, "RETURN_BEFORE_EXIT", err.Error())
	case errors.Is(err, gatepass.ErrPassNotActive):
		Conflict(w, "PASS_NOT_ACTIVE", err.Error())
	case errors.Is(err, gatepass.ErrCodeCollision):
		Conflict(w, "CODE_COLLISION", err.Error())

	// Device auth errors
	case errors.Is(err, device.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, device.ErrDeviceDisabled):
		Forbidden(w, err.Error())
	case errors.Is(err, device.ErrInvalidToken):
		Unauthorized(w, err.Error())

	// Optimistic concurrency
	case errors.Is(err, database.ErrConflict):
		Conflict(w, "STORE_CONFLICT", err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
