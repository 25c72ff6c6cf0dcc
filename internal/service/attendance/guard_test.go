package attendance

import (
	"testing"
	"time"

	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
)

func TestDuplicateActionGuard_WithinWindow(t *testing.T) {
	guard := NewDuplicateActionGuard(time.Minute)
	recorded := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	err := guard.Check(recorded.Add(30*time.Second), []time.Time{recorded})

	assert.ErrorIs(t, err, attendance.ErrDuplicateTimestamp)
}

func TestDuplicateActionGuard_ExactBoundaryIsRejected(t *testing.T) {
	guard := NewDuplicateActionGuard(time.Minute)
	recorded := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	// The window is inclusive.
	err := guard.Check(recorded.Add(time.Minute), []time.Time{recorded})

	assert.ErrorIs(t, err, attendance.ErrDuplicateTimestamp)
}

func TestDuplicateActionGuard_PastWindow(t *testing.T) {
	guard := NewDuplicateActionGuard(time.Minute)
	recorded := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	err := guard.Check(recorded.Add(time.Minute+time.Second), []time.Time{recorded})

	assert.NoError(t, err)
}

func TestDuplicateActionGuard_CandidateBeforeRecorded(t *testing.T) {
	guard := NewDuplicateActionGuard(time.Minute)
	recorded := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	// Spacing is an absolute difference, direction does not matter.
	err := guard.Check(recorded.Add(-45*time.Second), []time.Time{recorded})

	assert.ErrorIs(t, err, attendance.ErrDuplicateTimestamp)
}

func TestDuplicateActionGuard_ChecksAllCheckpoints(t *testing.T) {
	guard := NewDuplicateActionGuard(time.Minute)
	first := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	second := first.Add(3 * time.Hour)

	err := guard.Check(second.Add(20*time.Second), []time.Time{first, second})

	assert.ErrorIs(t, err, attendance.ErrDuplicateTimestamp)
}

func TestDuplicateActionGuard_NoCheckpoints(t *testing.T) {
	guard := NewDuplicateActionGuard(time.Minute)

	err := guard.Check(time.Now(), nil)

	assert.NoError(t, err)
}
