package cooldown

import "fmt"

// ActiveError rejects the check-out matching an active cooldown. It is
// recoverable by waiting and carries the remaining seconds so the UI
// can render a countdown.
type ActiveError struct {
	SessionType      SessionType
	RemainingSeconds int
}

func (e *ActiveError) Error() string {
	return fmt.Sprintf("cooldown active for %s session: %d seconds remaining", e.SessionType, e.RemainingSeconds)
}
