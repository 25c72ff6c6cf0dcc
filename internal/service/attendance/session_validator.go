package attendance

import (
	"time"

	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/attendance"
)

// SessionValidator enforces ordering and elapsed-time floors between
// consecutive checkpoints.
type SessionValidator struct {
	MinSessionDuration time.Duration
	MinBreakDuration   time.Duration
}

func NewSessionValidator(minSession, minBreak time.Duration) SessionValidator {
	return SessionValidator{
		MinSessionDuration: minSession,
		MinBreakDuration:   minBreak,
	}
}

// Validate fails with ErrSequenceViolation when the candidate precedes
// the checkpoint it must follow, or ErrMinimumDurationNotMet when an
// elapsed-time floor is violated. First check-ins have no predecessor.
func (v SessionValidator) Validate(action attendance.Action, rec *attendance.Record, candidate time.Time) error {
	var prev *time.Time
	var floor time.Duration

	switch action {
	case attendance.ActionFirstCheckIn:
		return nil
	case attendance.ActionFirstCheckOut:
		prev = rec.FirstCheckIn
		floor = v.MinSessionDuration
	case attendance.ActionSecondCheckIn:
		prev = rec.FirstCheckOut
		floor = v.MinBreakDuration
	case attendance.ActionSecondCheckOut:
		prev = rec.SecondCheckIn
		floor = v.MinSessionDuration
	}

	if prev == nil {
		// The resolver never hands out an action whose predecessor is
		// missing; treat it as a sequence problem if it happens.
		return attendance.ErrSequenceViolation
	}
	if candidate.Before(*prev) {
		return attendance.ErrSequenceViolation
	}
	if candidate.Sub(*prev) < floor {
		return attendance.ErrMinimumDurationNotMet
	}
	return nil
}

// BreakMinutes is the elapsed break recorded on a second check-in.
func BreakMinutes(rec *attendance.Record, secondCheckIn time.Time) int {
	if rec.FirstCheckOut == nil {
		return 0
	}
	return int(secondCheckIn.Sub(*rec.FirstCheckOut).Minutes())
}

// WorkedMinutes is the total worked time recorded on a second
// check-out: both sessions, break excluded.
func WorkedMinutes(rec *attendance.Record, secondCheckOut time.Time) int {
	if rec.FirstCheckIn == nil || rec.FirstCheckOut == nil || rec.SecondCheckIn == nil {
		return 0
	}
	first := rec.FirstCheckOut.Sub(*rec.FirstCheckIn)
	second := secondCheckOut.Sub(*rec.SecondCheckIn)
	return int((first + second).Minutes())
}
