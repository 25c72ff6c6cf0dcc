package roster

import (
	"context"
)

// RosterRepository reads roster assignments. The attendance core
// consumes rosters but never writes them.
type RosterRepository interface {
	// GetByEmployeeID retrieves the current roster for an employee
	GetByEmployeeID(ctx context.Context, employeeID string) (Reference, error)
}
