package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/roster"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/pkg/database"
)

type rosterRepository struct {
	db *database.DB
}

func NewRosterRepository(db *database.DB) roster.RosterRepository {
	return &rosterRepository{db: db}
}

// GetByEmployeeID implements roster.RosterRepository.
func (r *rosterRepository) GetByEmployeeID(ctx context.Context, employeeID string) (roster.Reference, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, start_time, end_time,
			   grace_period_minutes, break_duration_minutes, early_departure_threshold_minutes
		FROM rosters
		WHERE employee_id = $1
		LIMIT 1
	`

	var ref roster.Reference
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&ref.EmployeeID, &ref.StartTime, &ref.EndTime,
		&ref.GracePeriodMinutes, &ref.BreakDurationMinutes, &ref.EarlyDepartureThresholdMinutes,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return roster.Reference{}, roster.ErrRosterNotFound
		}
		return roster.Reference{}, fmt.Errorf("failed to get roster: %w", err)
	}

	return ref, nil
}
