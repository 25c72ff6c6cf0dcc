package cooldown

import (
	"context"

	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/attendance"
)

// CooldownService owns the mandatory wait between a check-in and its
// matching check-out.
type CooldownService interface {
	// Start begins a cooldown for the employee's session. Called
	// immediately after a check-in commits.
	Start(ctx context.Context, employeeID string, session SessionType) (State, error)

	// Current returns the employee's active cooldown, rehydrated
	// against the wall clock, or nil when none is active.
	Current(ctx context.Context, employeeID string) (*State, error)

	// CanPerformAction returns an *ActiveError when the candidate action
	// is the check-out blocked by the active cooldown. All other actions
	// pass.
	CanPerformAction(ctx context.Context, employeeID string, action attendance.Action) error

	// Clear removes the employee's cooldown explicitly.
	Clear(ctx context.Context, employeeID string) error

	// Subscribe registers for tick/expiry events for one employee and
	// returns the event channel with an unsubscribe handle.
	Subscribe(employeeID string) (<-chan Event, func())
}
