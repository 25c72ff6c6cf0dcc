package attendance

import (
	"time"

	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/attendance"
)

// DuplicateActionGuard rejects a candidate timestamp that collides with
// an already-recorded checkpoint within the minimum spacing window.
// Pure check: protects session boundaries from double-taps and network
// retries.
type DuplicateActionGuard struct {
	MinSpacing time.Duration
}

func NewDuplicateActionGuard(minSpacing time.Duration) DuplicateActionGuard {
	return DuplicateActionGuard{MinSpacing: minSpacing}
}

// Check fails with ErrDuplicateTimestamp when the candidate falls
// within MinSpacing (inclusive) of any recorded checkpoint.
func (g DuplicateActionGuard) Check(candidate time.Time, recorded []time.Time) error {
	for _, ts := range recorded {
		diff := candidate.Sub(ts)
		if diff < 0 {
			diff = -diff
		}
		if diff <= g.MinSpacing {
			return attendance.ErrDuplicateTimestamp
		}
	}
	return nil
}
