package attendance

import (
	"math"
	"time"

	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/attendance"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/roster"
)

// Severity bands for display.
const (
	SeverityOnTime   = "on_time"
	SeverityMinor    = "minor"
	SeverityMajor    = "major"
	SeverityCritical = "critical"
)

// CalculateLateDuration computes the lateness of a check-in relative to
// the roster start on the check-in's calendar date. Derivable purely
// from (checkIn, rosterStart, gracePeriod): roster assignment can change
// retroactively, so no stored flag is consulted.
func CalculateLateDuration(checkIn time.Time, ros roster.Reference) attendance.LateSummary {
	rosterStart := ros.StartOn(checkIn)

	diff := checkIn.Sub(rosterStart).Minutes()
	lateMinutes := int(math.Floor(diff)) - ros.GracePeriodMinutes
	if lateMinutes < 0 {
		lateMinutes = 0
	}

	graceUsed := 0
	if diff > 0 {
		graceUsed = int(math.Floor(diff))
		if graceUsed > ros.GracePeriodMinutes {
			graceUsed = ros.GracePeriodMinutes
		}
	}

	return attendance.LateSummary{
		IsLate:          lateMinutes > 0,
		LateMinutes:     lateMinutes,
		GracePeriodUsed: graceUsed,
		Severity:        severityOf(lateMinutes),
	}
}

func severityOf(lateMinutes int) string {
	switch {
	case lateMinutes == 0:
		return SeverityOnTime
	case lateMinutes <= 15:
		return SeverityMinor
	case lateMinutes <= 30:
		return SeverityMajor
	default:
		return SeverityCritical
	}
}
