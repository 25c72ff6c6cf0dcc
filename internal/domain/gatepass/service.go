package gatepass

import (
	"context"
)

// GatePassService defines business logic for gate pass operations
type GatePassService interface {
	// Create issues a pass with a freshly generated code and computed
	// expiry.
	Create(ctx context.Context, req CreatePassRequest) (PassResponse, error)

	// Verify matches raw scanned/typed text against the pass store using
	// the layered strategy and applies the status transition. A valid
	// single-validity pass is consumed in the same call.
	Verify(ctx context.Context, req VerifyRequest) (VerifyResponse, error)

	// RecordUsage records an exit or return on a multi-use pass. A
	// return requires a prior recorded exit.
	RecordUsage(ctx context.Context, passID string, req RecordUsageRequest) (PassResponse, error)

	// Revoke transitions an active pass to revoked.
	Revoke(ctx context.Context, passID string) (PassResponse, error)

	// ListByEmployee lists an employee's passes, with stored statuses
	// corrected against wall-clock expiry.
	ListByEmployee(ctx context.Context, employeeID string) ([]PassResponse, error)
}
