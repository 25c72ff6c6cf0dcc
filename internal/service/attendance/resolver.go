package attendance

import (
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/attendance"
)

// NextAction returns the single legal next checkpoint for today's
// record. The five-case table is total and order-preserving: a
// checkpoint can never be skipped or repeated.
func NextAction(rec *attendance.Record) (attendance.Action, error) {
	switch {
	case rec == nil || rec.FirstCheckIn == nil:
		return attendance.ActionFirstCheckIn, nil
	case rec.FirstCheckOut == nil:
		return attendance.ActionFirstCheckOut, nil
	case rec.SecondCheckIn == nil:
		return attendance.ActionSecondCheckIn, nil
	case rec.SecondCheckOut == nil:
		return attendance.ActionSecondCheckOut, nil
	default:
		return "", attendance.ErrMaxActionsReached
	}
}
