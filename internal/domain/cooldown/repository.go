package cooldown

import (
	"context"
)

// Store persists cooldown snapshots so a countdown survives a process
// restart. At most one state exists per employee.
type Store interface {
	// Save upserts the employee's cooldown snapshot.
	Save(ctx context.Context, state State) error

	// Load retrieves the employee's snapshot. Returns nil when none is
	// persisted.
	Load(ctx context.Context, employeeID string) (*State, error)

	// Clear removes the employee's snapshot.
	Clear(ctx context.Context, employeeID string) error
}
