package roster

import (
	"time"
)

// Reference is an employee's expected shift schedule. It is read-only
// input to the attendance core: StartTime and EndTime carry a time of
// day only, anchored to a concrete date at the point of use.
type Reference struct {
	EmployeeID                     string
	StartTime                      time.Time
	EndTime                        time.Time
	GracePeriodMinutes             int
	BreakDurationMinutes           int
	EarlyDepartureThresholdMinutes int
}

// StartOn anchors the roster start time of day onto the given date,
// in that date's location. Lateness is always measured against this
// instant, never against a stored flag, so a retroactive roster change
// is reflected on the next read.
func (r Reference) StartOn(date time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		r.StartTime.Hour(), r.StartTime.Minute(), 0, 0,
		date.Location(),
	)
}

// EndOn anchors the roster end time of day onto the given date.
func (r Reference) EndOn(date time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		r.EndTime.Hour(), r.EndTime.Minute(), 0, 0,
		date.Location(),
	)
}
