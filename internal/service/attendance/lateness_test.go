package attendance

import (
	"testing"
	"time"

	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/roster"
	"github.com/stretchr/testify/assert"
)

func testRoster(graceMinutes int) roster.Reference {
	return roster.Reference{
		EmployeeID:         "emp-1",
		StartTime:          time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
		EndTime:            time.Date(0, 1, 1, 17, 0, 0, 0, time.UTC),
		GracePeriodMinutes: graceMinutes,
	}
}

func TestCalculateLateDuration(t *testing.T) {
	ros := testRoster(10)

	tests := []struct {
		name         string
		checkIn      time.Time
		wantLate     bool
		wantMinutes  int
		wantGrace    int
		wantSeverity string
	}{
		{
			name:         "early arrival",
			checkIn:      at(8, 45),
			wantLate:     false,
			wantMinutes:  0,
			wantGrace:    0,
			wantSeverity: SeverityOnTime,
		},
		{
			name:         "exactly on time",
			checkIn:      at(9, 0),
			wantLate:     false,
			wantMinutes:  0,
			wantGrace:    0,
			wantSeverity: SeverityOnTime,
		},
		{
			name:         "within grace",
			checkIn:      at(9, 5),
			wantLate:     false,
			wantMinutes:  0,
			wantGrace:    5,
			wantSeverity: SeverityOnTime,
		},
		{
			name:         "grace fully consumed",
			checkIn:      at(9, 10),
			wantLate:     false,
			wantMinutes:  0,
			wantGrace:    10,
			wantSeverity: SeverityOnTime,
		},
		{
			name:         "fifteen minutes past grace",
			checkIn:      at(9, 25),
			wantLate:     true,
			wantMinutes:  15,
			wantGrace:    10,
			wantSeverity: SeverityMinor,
		},
		{
			name:         "just past the minor band",
			checkIn:      at(9, 26),
			wantLate:     true,
			wantMinutes:  16,
			wantGrace:    10,
			wantSeverity: SeverityMajor,
		},
		{
			name:         "top of the major band",
			checkIn:      at(9, 40),
			wantLate:     true,
			wantMinutes:  30,
			wantGrace:    10,
			wantSeverity: SeverityMajor,
		},
		{
			name:         "critical lateness",
			checkIn:      at(10, 0),
			wantLate:     true,
			wantMinutes:  50,
			wantGrace:    10,
			wantSeverity: SeverityCritical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateLateDuration(tt.checkIn, ros)

			assert.Equal(t, tt.wantLate, got.IsLate)
			assert.Equal(t, tt.wantMinutes, got.LateMinutes)
			assert.Equal(t, tt.wantGrace, got.GracePeriodUsed)
			assert.Equal(t, tt.wantSeverity, got.Severity)
		})
	}
}

func TestCalculateLateDuration_PartialMinutesFloored(t *testing.T) {
	ros := testRoster(10)

	// 10m59s past start: floored to 10 whole minutes, all absorbed by grace.
	checkIn := at(9, 10).Add(59 * time.Second)
	got := CalculateLateDuration(checkIn, ros)

	assert.False(t, got.IsLate)
	assert.Equal(t, 0, got.LateMinutes)
	assert.Equal(t, 10, got.GracePeriodUsed)
}

func TestCalculateLateDuration_ZeroGrace(t *testing.T) {
	ros := testRoster(0)

	got := CalculateLateDuration(at(9, 1), ros)

	assert.True(t, got.IsLate)
	assert.Equal(t, 1, got.LateMinutes)
	assert.Equal(t, 0, got.GracePeriodUsed)
}

func TestCalculateLateDuration_AnchorsToCheckInDate(t *testing.T) {
	ros := testRoster(10)

	// Same time of day on a different date; lateness must be identical.
	otherDay := time.Date(2026, 7, 14, 9, 25, 0, 0, time.UTC)
	got := CalculateLateDuration(otherDay, ros)

	assert.Equal(t, 15, got.LateMinutes)
}
