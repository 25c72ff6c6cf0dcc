package attendance

import (
	"time"
)

// Action is one of the four ordered checkpoint events in a working day.
type Action string

const (
	ActionFirstCheckIn   Action = "first_check_in"
	ActionFirstCheckOut  Action = "first_check_out"
	ActionSecondCheckIn  Action = "second_check_in"
	ActionSecondCheckOut Action = "second_check_out"
)

// Record status values. Status is always derivable from which
// checkpoints are populated; the stored column is a cache.
const (
	StatusWorking  = "working"
	StatusOnBreak  = "on_break"
	StatusComplete = "complete"
)

// Record is one employee's attendance for one calendar date.
// Populated checkpoint timestamps are strictly increasing; a record
// with all four checkpoints is terminal for the day.
type Record struct {
	ID                   string
	EmployeeID           string
	Date                 time.Time
	FirstCheckIn         *time.Time
	FirstCheckOut        *time.Time
	SecondCheckIn        *time.Time
	SecondCheckOut       *time.Time
	Status               string
	MinutesLate          int
	BreakDurationMinutes *int
	TotalWorkedMinutes   *int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Checkpoints returns the populated checkpoint timestamps in order.
func (r *Record) Checkpoints() []time.Time {
	var out []time.Time
	for _, ts := range []*time.Time{r.FirstCheckIn, r.FirstCheckOut, r.SecondCheckIn, r.SecondCheckOut} {
		if ts != nil {
			out = append(out, *ts)
		}
	}
	return out
}

// Checkpoint returns the timestamp slot for the given action.
func (r *Record) Checkpoint(a Action) *time.Time {
	switch a {
	case ActionFirstCheckIn:
		return r.FirstCheckIn
	case ActionFirstCheckOut:
		return r.FirstCheckOut
	case ActionSecondCheckIn:
		return r.SecondCheckIn
	case ActionSecondCheckOut:
		return r.SecondCheckOut
	}
	return nil
}

// SetCheckpoint writes the timestamp slot for the given action.
func (r *Record) SetCheckpoint(a Action, ts *time.Time) {
	switch a {
	case ActionFirstCheckIn:
		r.FirstCheckIn = ts
	case ActionFirstCheckOut:
		r.FirstCheckOut = ts
	case ActionSecondCheckIn:
		r.SecondCheckIn = ts
	case ActionSecondCheckOut:
		r.SecondCheckOut = ts
	}
}

// DeriveStatus computes the status implied by the populated
// checkpoints.
func (r *Record) DeriveStatus() string {
	switch {
	case r.SecondCheckOut != nil:
		return StatusComplete
	case r.SecondCheckIn != nil:
		return StatusWorking
	case r.FirstCheckOut != nil:
		return StatusOnBreak
	default:
		return StatusWorking
	}
}
