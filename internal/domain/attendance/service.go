package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// Scan applies the single legal next checkpoint for the employee,
	// vetting it against duplicate spacing, sequence/duration floors and
	// any active cooldown.
	Scan(ctx context.Context, req ScanRequest) (ScanResponse, error)

	// GetToday retrieves today's record with read-time lateness and the
	// next legal action.
	GetToday(ctx context.Context, employeeID string) (RecordResponse, error)

	// ResetCheckpoint clears the n-th checkpoint (1-4) and everything
	// downstream of it, including derived fields. Admin-only.
	ResetCheckpoint(ctx context.Context, employeeID string, n int) error
}
