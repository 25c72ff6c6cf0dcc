package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/cooldown"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/pkg/database"
)

type cooldownStore struct {
	db *database.DB
}

func NewCooldownStore(db *database.DB) cooldown.Store {
	return &cooldownStore{db: db}
}

// Save implements cooldown.Store. Only (start_time, duration_minutes)
// matter for resume; the remainder is never persisted as truth.
func (c *cooldownStore) Save(ctx context.Context, state cooldown.State) error {
	q := GetQuerier(ctx, c.db)

	query := `
		INSERT INTO cooldown_states (employee_id, session_type, start_time, duration_minutes)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id) DO UPDATE
		SET session_type = EXCLUDED.session_type,
			start_time = EXCLUDED.start_time,
			duration_minutes = EXCLUDED.duration_minutes
	`

	if _, err := q.Exec(ctx, query, state.EmployeeID, state.SessionType, state.StartTime, state.DurationMinutes); err != nil {
		return fmt.Errorf("failed to save cooldown state: %w", err)
	}
	return nil
}

// Load implements cooldown.Store.
func (c *cooldownStore) Load(ctx context.Context, employeeID string) (*cooldown.State, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT employee_id, session_type, start_time, duration_minutes
		FROM cooldown_states
		WHERE employee_id = $1
	`

	var state cooldown.State
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&state.EmployeeID, &state.SessionType, &state.StartTime, &state.DurationMinutes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load cooldown state: %w", err)
	}

	return &state, nil
}

// Clear implements cooldown.Store.
func (c *cooldownStore) Clear(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, c.db)

	if _, err := q.Exec(ctx, `DELETE FROM cooldown_states WHERE employee_id = $1`, employeeID); err != nil {
		return fmt.Errorf("failed to clear cooldown state: %w", err)
	}
	return nil
}
