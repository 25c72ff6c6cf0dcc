package gatepass

import (
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/pkg/validator"
)

// ========================================
// GATE PASS DTOs
// ========================================

type CreatePassRequest struct {
	EmployeeID string `json:"employee_id"`
	Validity   string `json:"validity"`
	Kind       string `json:"kind"`
}

func (r *CreatePassRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsInSlice(r.Validity, []string{"single", "day", "week", "month"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "validity",
			Message: "validity must be one of: single, day, week, month",
		})
	}

	if !validator.IsInSlice(r.Kind, []string{"entry", "exit", "both"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of: entry, exit, both",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type VerifyRequest struct {
	Code string `json:"code"`
}

func (r *VerifyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecordUsageRequest struct {
	Kind string `json:"kind"` // "exit" or "return"
}

func (r *RecordUsageRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Kind, []string{"exit", "return"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of: exit, return",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PassResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	PassCode   string  `json:"pass_code"`
	Validity   string  `json:"validity"`
	Kind       string  `json:"kind"`
	Status     string  `json:"status"`
	ExpiresAt  string  `json:"expires_at"`
	UsedAt     *string `json:"used_at,omitempty"`
	ExitTime   *string `json:"exit_time,omitempty"`
	ReturnTime *string `json:"return_time,omitempty"`
	UseCount   int     `json:"use_count"`
}

type VerifyResponse struct {
	Verified bool          `json:"verified"`
	Message  string        `json:"message"`
	Pass     *PassResponse `json:"pass,omitempty"`
}
