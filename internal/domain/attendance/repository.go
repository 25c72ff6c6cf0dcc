package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records.
// Writes are conditional on the expected prior state so a losing
// concurrent scan is rejected rather than silently overwriting.
type AttendanceRepository interface {
	// Create creates the day's record on first check-in. A record
	// already existing for (employee, date) surfaces as a conflict.
	Create(ctx context.Context, record Record) (Record, error)

	// GetByEmployeeAndDate retrieves the record for one employee on one
	// calendar date. Returns nil when no record exists yet.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Record, error)

	// ApplyCheckpoint writes the given checkpoint and the derived fields
	// carried on record, conditional on that checkpoint slot still being
	// empty. Returns database.ErrConflict when the slot was filled by a
	// concurrent write.
	ApplyCheckpoint(ctx context.Context, record Record, action Action) (Record, error)

	// Update rewrites a record unconditionally. Admin reset path only.
	Update(ctx context.Context, record Record) error

	// Delete removes a record. Admin reset of the first checkpoint.
	Delete(ctx context.Context, id string) error
}
