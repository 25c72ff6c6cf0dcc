package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/attendance"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/cooldown"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/roster"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/pkg/clock"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAttendanceRepo keeps one record per (employee, date) in memory and
// mirrors the conditional-write semantics of the real repository.
type fakeAttendanceRepo struct {
	records map[string]attendance.Record
	nextID  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Record)}
}

func (f *fakeAttendanceRepo) key(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(_ context.Context, record attendance.Record) (attendance.Record, error) {
	k := f.key(record.EmployeeID, record.Date)
	if _, exists := f.records[k]; exists {
		return attendance.Record{}, database.ErrConflict
	}
	f.nextID++
	record.ID = fmt.Sprintf("rec-%d", f.nextID)
	f.records[k] = record
	return record, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	rec, ok := f.records[f.key(employeeID, date)]
	if !ok {
		return nil, nil
	}
	copied := rec
	return &copied, nil
}

func (f *fakeAttendanceRepo) ApplyCheckpoint(_ context.Context, record attendance.Record, action attendance.Action) (attendance.Record, error) {
	k := f.key(record.EmployeeID, record.Date)
	stored, ok := f.records[k]
	if !ok {
		return attendance.Record{}, database.ErrConflict
	}
	if stored.Checkpoint(action) != nil {
		return attendance.Record{}, database.ErrConflict
	}
	f.records[k] = record
	return record, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, record attendance.Record) error {
	f.records[f.key(record.EmployeeID, record.Date)] = record
	return nil
}

func (f *fakeAttendanceRepo) Delete(_ context.Context, id string) error {
	for k, rec := range f.records {
		if rec.ID == id {
			delete(f.records, k)
			return nil
		}
	}
	return attendance.ErrRecordNotFound
}

type fakeRosterRepo struct {
	rosters map[string]roster.Reference
}

func (f *fakeRosterRepo) GetByEmployeeID(_ context.Context, employeeID string) (roster.Reference, error) {
	ros, ok := f.rosters[employeeID]
	if !ok {
		return roster.Reference{}, roster.ErrRosterNotFound
	}
	return ros, nil
}

// fakeTxManager runs the callback directly and counts invocations.
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

// fakeCooldowns records Start/Clear calls and blocks with blockErr when
// set.
type fakeCooldowns struct {
	blockErr error
	clearErr error
	started  []cooldown.SessionType
	cleared  int
}

func (f *fakeCooldowns) Start(_ context.Context, employeeID string, session cooldown.SessionType) (cooldown.State, error) {
	f.started = append(f.started, session)
	return cooldown.State{EmployeeID: employeeID, SessionType: session}, nil
}

func (f *fakeCooldowns) Current(context.Context, string) (*cooldown.State, error) {
	return nil, nil
}

func (f *fakeCooldowns) CanPerformAction(_ context.Context, _ string, _ attendance.Action) error {
	return f.blockErr
}

func (f *fakeCooldowns) Clear(context.Context, string) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cleared++
	return nil
}

func (f *fakeCooldowns) Subscribe(string) (<-chan cooldown.Event, func()) {
	ch := make(chan cooldown.Event)
	return ch, func() { close(ch) }
}

type attendanceFixture struct {
	service   attendance.AttendanceService
	repo      *fakeAttendanceRepo
	tx        *fakeTxManager
	cooldowns *fakeCooldowns
	clk       *clock.Mock
}

func newAttendanceFixture(t *testing.T) *attendanceFixture {
	t.Helper()

	repo := newFakeAttendanceRepo()
	rosters := &fakeRosterRepo{rosters: map[string]roster.Reference{
		"emp-1": testRoster(10),
	}}
	tx := &fakeTxManager{}
	cooldowns := &fakeCooldowns{}
	clk := clock.NewMock(at(9, 0))

	svc := NewAttendanceService(
		tx,
		repo,
		rosters,
		cooldowns,
		NewDuplicateActionGuard(time.Minute),
		NewSessionValidator(30*time.Minute, 15*time.Minute),
		clk,
	)
	return &attendanceFixture{service: svc, repo: repo, tx: tx, cooldowns: cooldowns, clk: clk}
}

func (fx *attendanceFixture) scan(t *testing.T) attendance.ScanResponse {
	t.Helper()
	resp, err := fx.service.Scan(context.Background(), attendance.ScanRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)
	return resp
}

func TestAttendanceService_Scan_FullDay(t *testing.T) {
	fx := newAttendanceFixture(t)

	// 09:00 first check-in
	resp := fx.scan(t)
	assert.Equal(t, string(attendance.ActionFirstCheckIn), resp.Action)
	assert.Equal(t, attendance.StatusWorking, resp.Record.Status)
	require.NotNil(t, resp.Record.Late)
	assert.False(t, resp.Record.Late.IsLate)

	// 12:00 first check-out
	fx.clk.Set(at(12, 0))
	resp = fx.scan(t)
	assert.Equal(t, string(attendance.ActionFirstCheckOut), resp.Action)
	assert.Equal(t, attendance.StatusOnBreak, resp.Record.Status)

	// 13:00 second check-in, break duration recorded
	fx.clk.Set(at(13, 0))
	resp = fx.scan(t)
	assert.Equal(t, string(attendance.ActionSecondCheckIn), resp.Action)
	assert.Equal(t, attendance.StatusWorking, resp.Record.Status)
	require.NotNil(t, resp.Record.BreakDurationMinutes)
	assert.Equal(t, 60, *resp.Record.BreakDurationMinutes)

	// 17:00 second check-out, total worked recorded
	fx.clk.Set(at(17, 0))
	resp = fx.scan(t)
	assert.Equal(t, string(attendance.ActionSecondCheckOut), resp.Action)
	assert.Equal(t, attendance.StatusComplete, resp.Record.Status)
	require.NotNil(t, resp.Record.TotalWorkedMinutes)
	assert.Equal(t, 420, *resp.Record.TotalWorkedMinutes)
	assert.Nil(t, resp.Record.NextAction)

	// Both check-ins started a cooldown.
	assert.Equal(t, []cooldown.SessionType{cooldown.SessionFirst, cooldown.SessionSecond}, fx.cooldowns.started)
}

func TestAttendanceService_Scan_FifthScanRejected(t *testing.T) {
	fx := newAttendanceFixture(t)

	for _, hm := range [][2]int{{9, 0}, {12, 0}, {13, 0}, {17, 0}} {
		fx.clk.Set(at(hm[0], hm[1]))
		fx.scan(t)
	}

	fx.clk.Set(at(18, 0))
	_, err := fx.service.Scan(context.Background(), attendance.ScanRequest{EmployeeID: "emp-1"})

	assert.ErrorIs(t, err, attendance.ErrMaxActionsReached)
}

func TestAttendanceService_Scan_DuplicateRetry(t *testing.T) {
	fx := newAttendanceFixture(t)
	fx.scan(t)

	// A retry 30 seconds later collides with the recorded check-in.
	fx.clk.Advance(30 * time.Second)
	_, err := fx.service.Scan(context.Background(), attendance.ScanRequest{EmployeeID: "emp-1"})

	assert.ErrorIs(t, err, attendance.ErrDuplicateTimestamp)
}

func TestAttendanceService_Scan_SessionTooShort(t *testing.T) {
	fx := newAttendanceFixture(t)
	fx.scan(t)

	fx.clk.Set(at(9, 20))
	_, err := fx.service.Scan(context.Background(), attendance.ScanRequest{EmployeeID: "emp-1"})

	assert.ErrorIs(t, err, attendance.ErrMinimumDurationNotMet)
}

func TestAttendanceService_Scan_BlockedByCooldown(t *testing.T) {
	fx := newAttendanceFixture(t)
	fx.scan(t)

	fx.cooldowns.blockErr = &cooldown.ActiveError{
		SessionType:      cooldown.SessionFirst,
		RemainingSeconds: 90,
	}
	fx.clk.Set(at(12, 0))
	_, err := fx.service.Scan(context.Background(), attendance.ScanRequest{EmployeeID: "emp-1"})

	var activeErr *cooldown.ActiveError
	assert.ErrorAs(t, err, &activeErr)
	assert.Equal(t, 90, activeErr.RemainingSeconds)
}

func TestAttendanceService_Scan_LateCheckIn(t *testing.T) {
	fx := newAttendanceFixture(t)

	fx.clk.Set(at(9, 25))
	resp := fx.scan(t)

	require.NotNil(t, resp.Record.Late)
	assert.True(t, resp.Record.Late.IsLate)
	assert.Equal(t, 15, resp.Record.Late.LateMinutes)
	assert.Equal(t, SeverityMinor, resp.Record.Late.Severity)
}

func TestAttendanceService_Scan_MissingEmployeeID(t *testing.T) {
	fx := newAttendanceFixture(t)

	_, err := fx.service.Scan(context.Background(), attendance.ScanRequest{})

	assert.Error(t, err)
}

func TestAttendanceService_GetToday_NoRecord(t *testing.T) {
	fx := newAttendanceFixture(t)

	_, err := fx.service.GetToday(context.Background(), "emp-1")

	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

func TestAttendanceService_GetToday_RecomputesLateness(t *testing.T) {
	fx := newAttendanceFixture(t)
	fx.clk.Set(at(9, 25))
	fx.scan(t)

	resp, err := fx.service.GetToday(context.Background(), "emp-1")

	require.NoError(t, err)
	require.NotNil(t, resp.Late)
	assert.Equal(t, 15, resp.Late.LateMinutes)
	require.NotNil(t, resp.NextAction)
	assert.Equal(t, string(attendance.ActionFirstCheckOut), *resp.NextAction)
}

func TestAttendanceService_ResetCheckpoint_FirstRemovesRecord(t *testing.T) {
	fx := newAttendanceFixture(t)
	fx.scan(t)

	err := fx.service.ResetCheckpoint(context.Background(), "emp-1", 1)

	require.NoError(t, err)
	rec, err := fx.repo.GetByEmployeeAndDate(context.Background(), "emp-1", at(0, 0))
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.Equal(t, 1, fx.cooldowns.cleared)
}

func TestAttendanceService_ResetCheckpoint_ClearsDownstream(t *testing.T) {
	fx := newAttendanceFixture(t)
	for _, hm := range [][2]int{{9, 0}, {12, 0}, {13, 0}, {17, 0}} {
		fx.clk.Set(at(hm[0], hm[1]))
		fx.scan(t)
	}

	// Resetting the first check-out clears everything after it too.
	err := fx.service.ResetCheckpoint(context.Background(), "emp-1", 2)

	require.NoError(t, err)
	rec, err := fx.repo.GetByEmployeeAndDate(context.Background(), "emp-1", at(0, 0))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.NotNil(t, rec.FirstCheckIn)
	assert.Nil(t, rec.FirstCheckOut)
	assert.Nil(t, rec.SecondCheckIn)
	assert.Nil(t, rec.SecondCheckOut)
	assert.Nil(t, rec.BreakDurationMinutes)
	assert.Nil(t, rec.TotalWorkedMinutes)
	assert.Equal(t, attendance.StatusWorking, rec.Status)
}

func TestAttendanceService_ResetCheckpoint_WritesTransactionally(t *testing.T) {
	fx := newAttendanceFixture(t)
	fx.scan(t)

	err := fx.service.ResetCheckpoint(context.Background(), "emp-1", 1)

	require.NoError(t, err)
	assert.Equal(t, 1, fx.tx.calls)
}

func TestAttendanceService_ResetCheckpoint_ClearFailureSurfaces(t *testing.T) {
	fx := newAttendanceFixture(t)
	fx.scan(t)

	fx.cooldowns.clearErr = fmt.Errorf("store unavailable")
	err := fx.service.ResetCheckpoint(context.Background(), "emp-1", 1)

	assert.Error(t, err)
	assert.Equal(t, 0, fx.cooldowns.cleared)
}

func TestAttendanceService_ResetCheckpoint_NotSet(t *testing.T) {
	fx := newAttendanceFixture(t)
	fx.scan(t)

	err := fx.service.ResetCheckpoint(context.Background(), "emp-1", 3)

	assert.ErrorIs(t, err, attendance.ErrCheckpointNotSet)
}

func TestAttendanceService_ResetCheckpoint_OutOfRange(t *testing.T) {
	fx := newAttendanceFixture(t)

	assert.ErrorIs(t, fx.service.ResetCheckpoint(context.Background(), "emp-1", 0), attendance.ErrCheckpointNotSet)
	assert.ErrorIs(t, fx.service.ResetCheckpoint(context.Background(), "emp-1", 5), attendance.ErrCheckpointNotSet)
}
