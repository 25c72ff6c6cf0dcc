package cooldown

import (
	"time"
)

// SessionType identifies which work session a cooldown belongs to.
type SessionType string

const (
	SessionFirst  SessionType = "first"
	SessionSecond SessionType = "second"
)

// State is one employee's active cooldown. Only (StartTime,
// DurationMinutes) are authoritative: RemainingSeconds is always
// recomputed against the wall clock, so a state reloaded after a
// process restart subtracts the real elapsed time.
type State struct {
	EmployeeID       string
	SessionType      SessionType
	StartTime        time.Time
	DurationMinutes  int
	RemainingSeconds int
}

// Remaining recomputes the seconds left at the given instant.
func (s State) Remaining(now time.Time) int {
	total := s.DurationMinutes * 60
	elapsed := int(now.Sub(s.StartTime).Seconds())
	remaining := total - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Expired reports whether the cooldown has fully elapsed.
func (s State) Expired(now time.Time) bool {
	return s.Remaining(now) == 0
}

// Event is published to subscribers on every tick and on expiry.
type Event struct {
	EmployeeID       string      `json:"employee_id"`
	SessionType      SessionType `json:"session_type"`
	RemainingSeconds int         `json:"remaining_seconds"`
	Expired          bool        `json:"expired"`
}
