package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/attendance"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/cooldown"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/roster"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/pkg/clock"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/pkg/database"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	roster.RosterRepository
	tx        database.TxManager
	cooldowns cooldown.CooldownService
	guard     DuplicateActionGuard
	validator SessionValidator
	clk       clock.Clock
}

func NewAttendanceService(
	tx database.TxManager,
	attendanceRepo attendance.AttendanceRepository,
	rosterRepo roster.RosterRepository,
	cooldowns cooldown.CooldownService,
	guard DuplicateActionGuard,
	validator SessionValidator,
	clk clock.Clock,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		RosterRepository:     rosterRepo,
		tx:                   tx,
		cooldowns:            cooldowns,
		guard:                guard,
		validator:            validator,
		clk:                  clk,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// dateOf truncates an instant to its calendar date.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Scan implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Scan(ctx context.Context, req attendance.ScanRequest) (attendance.ScanResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ScanResponse{}, err
	}

	now := a.clk.Now()
	today := dateOf(now)

	rec, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, today)
	if err != nil {
		return attendance.ScanResponse{}, fmt.Errorf("failed to get today's record: %w", err)
	}

	action, err := NextAction(rec)
	if err != nil {
		return attendance.ScanResponse{}, err
	}

	if err := a.cooldowns.CanPerformAction(ctx, req.EmployeeID, action); err != nil {
		return attendance.ScanResponse{}, err
	}

	if rec != nil {
		if err := a.guard.Check(now, rec.Checkpoints()); err != nil {
			return attendance.ScanResponse{}, err
		}
		if err := a.validator.Validate(action, rec, now); err != nil {
			return attendance.ScanResponse{}, err
		}
	}

	committed, err := a.commit(ctx, req.EmployeeID, today, rec, action, now)
	if err != nil {
		return attendance.ScanResponse{}, err
	}

	// Cooldown starts only after the check-in is durably recorded.
	switch action {
	case attendance.ActionFirstCheckIn:
		if _, err := a.cooldowns.Start(ctx, req.EmployeeID, cooldown.SessionFirst); err != nil {
			slog.Error("Failed to start cooldown", "employee_id", req.EmployeeID, "error", err)
		}
	case attendance.ActionSecondCheckIn:
		if _, err := a.cooldowns.Start(ctx, req.EmployeeID, cooldown.SessionSecond); err != nil {
			slog.Error("Failed to start cooldown", "employee_id", req.EmployeeID, "error", err)
		}
	}

	resp := a.mapRecordToResponse(ctx, committed)
	return attendance.ScanResponse{
		Action: string(action),
		Record: resp,
	}, nil
}

// commit writes the checkpoint together with its derived fields.
func (a *AttendanceServiceImpl) commit(ctx context.Context, employeeID string, today time.Time, rec *attendance.Record, action attendance.Action, now time.Time) (attendance.Record, error) {
	if action == attendance.ActionFirstCheckIn {
		minutesLate := 0
		ros, err := a.RosterRepository.GetByEmployeeID(ctx, employeeID)
		if err != nil {
			if !errors.Is(err, roster.ErrRosterNotFound) {
				return attendance.Record{}, fmt.Errorf("failed to get roster: %w", err)
			}
		} else {
			minutesLate = CalculateLateDuration(now, ros).LateMinutes
		}

		newRec := attendance.Record{
			EmployeeID:   employeeID,
			Date:         today,
			FirstCheckIn: &now,
			MinutesLate:  minutesLate,
		}
		newRec.Status = newRec.DeriveStatus()

		created, err := a.AttendanceRepository.Create(ctx, newRec)
		if err != nil {
			return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
		}
		return created, nil
	}

	updated := *rec
	updated.SetCheckpoint(action, &now)

	switch action {
	case attendance.ActionSecondCheckIn:
		breakMins := BreakMinutes(rec, now)
		updated.BreakDurationMinutes = &breakMins
	case attendance.ActionSecondCheckOut:
		workedMins := WorkedMinutes(rec, now)
		updated.TotalWorkedMinutes = &workedMins
	}
	updated.Status = updated.DeriveStatus()

	committed, err := a.AttendanceRepository.ApplyCheckpoint(ctx, updated, action)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to apply checkpoint %s: %w", action, err)
	}
	return committed, nil
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context, employeeID string) (attendance.RecordResponse, error) {
	now := a.clk.Now()

	rec, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, dateOf(now))
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to get today's record: %w", err)
	}
	if rec == nil {
		return attendance.RecordResponse{}, attendance.ErrRecordNotFound
	}

	return a.mapRecordToResponse(ctx, *rec), nil
}

// ResetCheckpoint implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ResetCheckpoint(ctx context.Context, employeeID string, n int) error {
	if n < 1 || n > 4 {
		return attendance.ErrCheckpointNotSet
	}

	now := a.clk.Now()
	rec, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, dateOf(now))
	if err != nil {
		return fmt.Errorf("failed to get today's record: %w", err)
	}
	if rec == nil {
		return attendance.ErrRecordNotFound
	}

	order := []attendance.Action{
		attendance.ActionFirstCheckIn,
		attendance.ActionFirstCheckOut,
		attendance.ActionSecondCheckIn,
		attendance.ActionSecondCheckOut,
	}
	if rec.Checkpoint(order[n-1]) == nil {
		return attendance.ErrCheckpointNotSet
	}

	// The record write and the cooldown clear land atomically.
	// Resetting the first check-in removes the record for the day.
	err = a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if n == 1 {
			if err := a.AttendanceRepository.Delete(txCtx, rec.ID); err != nil {
				return fmt.Errorf("failed to delete attendance record: %w", err)
			}
		} else {
			for _, action := range order[n-1:] {
				rec.SetCheckpoint(action, nil)
			}
			// Derived fields downstream of the reset point are cleared too.
			if rec.SecondCheckIn == nil {
				rec.BreakDurationMinutes = nil
			}
			if rec.SecondCheckOut == nil {
				rec.TotalWorkedMinutes = nil
			}
			rec.Status = rec.DeriveStatus()

			if err := a.AttendanceRepository.Update(txCtx, *rec); err != nil {
				return fmt.Errorf("failed to update attendance record: %w", err)
			}
		}

		if err := a.cooldowns.Clear(txCtx, employeeID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Checkpoint reset", "employee_id", employeeID, "checkpoint", n)
	return nil
}

// mapRecordToResponse recomputes lateness from the current roster at
// read time: the stored minutes_late is a write-time snapshot and the
// roster is authoritative for display.
func (a *AttendanceServiceImpl) mapRecordToResponse(ctx context.Context, rec attendance.Record) attendance.RecordResponse {
	resp := attendance.RecordResponse{
		ID:                   rec.ID,
		EmployeeID:           rec.EmployeeID,
		Date:                 rec.Date.Format("2006-01-02"),
		FirstCheckIn:         timePtrToString(rec.FirstCheckIn),
		FirstCheckOut:        timePtrToString(rec.FirstCheckOut),
		SecondCheckIn:        timePtrToString(rec.SecondCheckIn),
		SecondCheckOut:       timePtrToString(rec.SecondCheckOut),
		Status:               rec.Status,
		BreakDurationMinutes: rec.BreakDurationMinutes,
		TotalWorkedMinutes:   rec.TotalWorkedMinutes,
	}

	if rec.FirstCheckIn != nil {
		if ros, err := a.RosterRepository.GetByEmployeeID(ctx, rec.EmployeeID); err == nil {
			late := CalculateLateDuration(*rec.FirstCheckIn, ros)
			resp.Late = &late
		}
	}

	if next, err := NextAction(&rec); err == nil {
		s := string(next)
		resp.NextAction = &s
	}

	return resp
}
