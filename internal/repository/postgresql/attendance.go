package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/attendance"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// checkpointColumns maps each action to its timestamp column. Column
// names are fixed here, never derived from user input.
var checkpointColumns = map[attendance.Action]string{
	attendance.ActionFirstCheckIn:   "first_check_in",
	attendance.ActionFirstCheckOut:  "first_check_out",
	attendance.ActionSecondCheckIn:  "second_check_in",
	attendance.ActionSecondCheckOut: "second_check_out",
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			employee_id, date, first_check_in, status, minutes_late
		) VALUES (
			$1, $2, $3, $4, $5
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.EmployeeID,
		record.Date,
		record.FirstCheckIn,
		record.Status,
		record.MinutesLate,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		// 23505: a record for (employee, date) already exists; the
		// losing concurrent first check-in must not overwrite it.
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Record{}, database.ErrConflict
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return record, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, date,
			   first_check_in, first_check_out, second_check_in, second_check_out,
			   status, minutes_late, break_duration_minutes, total_worked_minutes,
			   created_at, updated_at
		FROM attendance_records
		WHERE employee_id = $1
		  AND date = $2
		LIMIT 1
	`

	var rec attendance.Record
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date,
		&rec.FirstCheckIn, &rec.FirstCheckOut, &rec.SecondCheckIn, &rec.SecondCheckOut,
		&rec.Status, &rec.MinutesLate, &rec.BreakDurationMinutes, &rec.TotalWorkedMinutes,
		&rec.CreatedAt, &rec.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No record yet today
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return &rec, nil
}

// ApplyCheckpoint implements attendance.AttendanceRepository. The write
// is conditional on the checkpoint slot still being empty, so of two
// racing scans only the first commits.
func (a *attendanceRepository) ApplyCheckpoint(ctx context.Context, record attendance.Record, action attendance.Action) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	column, ok := checkpointColumns[action]
	if !ok || action == attendance.ActionFirstCheckIn {
		return attendance.Record{}, fmt.Errorf("cannot apply checkpoint for action %q", action)
	}

	query := fmt.Sprintf(`
		UPDATE attendance_records
		SET %s = $1,
			status = $2,
			break_duration_minutes = $3,
			total_worked_minutes = $4,
			updated_at = NOW()
		WHERE id = $5
		  AND %s IS NULL
		RETURNING created_at, updated_at
	`, column, column)

	err := q.QueryRow(ctx, query,
		record.Checkpoint(action),
		record.Status,
		record.BreakDurationMinutes,
		record.TotalWorkedMinutes,
		record.ID,
	).Scan(&record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, database.ErrConflict
		}
		return attendance.Record{}, fmt.Errorf("failed to apply checkpoint: %w", err)
	}

	return record, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, record attendance.Record) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET first_check_in = $1,
			first_check_out = $2,
			second_check_in = $3,
			second_check_out = $4,
			status = $5,
			minutes_late = $6,
			break_duration_minutes = $7,
			total_worked_minutes = $8,
			updated_at = NOW()
		WHERE id = $9
	`

	tag, err := q.Exec(ctx, query,
		record.FirstCheckIn,
		record.FirstCheckOut,
		record.SecondCheckIn,
		record.SecondCheckOut,
		record.Status,
		record.MinutesLate,
		record.BreakDurationMinutes,
		record.TotalWorkedMinutes,
		record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}
