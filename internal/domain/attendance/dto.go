package attendance

import (
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type ScanRequest struct {
	EmployeeID string `json:"employee_id"`
}

func (r *ScanRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// LateSummary is the read-time, roster-relative lateness of a check-in.
type LateSummary struct {
	IsLate          bool   `json:"is_late"`
	LateMinutes     int    `json:"late_minutes"`
	GracePeriodUsed int    `json:"grace_period_used"`
	Severity        string `json:"severity"`
}

type RecordResponse struct {
	ID                   string       `json:"id"`
	EmployeeID           string       `json:"employee_id"`
	Date                 string       `json:"date"`
	FirstCheckIn         *string      `json:"first_check_in,omitempty"`
	FirstCheckOut        *string      `json:"first_check_out,omitempty"`
	SecondCheckIn        *string      `json:"second_check_in,omitempty"`
	SecondCheckOut       *string      `json:"second_check_out,omitempty"`
	Status               string       `json:"status"`
	BreakDurationMinutes *int         `json:"break_duration_minutes,omitempty"`
	TotalWorkedMinutes   *int         `json:"total_worked_minutes,omitempty"`
	Late                 *LateSummary `json:"late,omitempty"`
	NextAction           *string      `json:"next_action,omitempty"`
}

type ScanResponse struct {
	Action string         `json:"action"`
	Record RecordResponse `json:"record"`
}
