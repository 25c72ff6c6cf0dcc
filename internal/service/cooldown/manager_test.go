package cooldown

import (
	"context"
	"testing"
	"time"

	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/attendance"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/cooldown"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory cooldown.Store.
type fakeStore struct {
	states map[string]cooldown.State
}

func newFakeStore() *fakeStore {
	return &fakeStore{states: make(map[string]cooldown.State)}
}

func (f *fakeStore) Save(_ context.Context, state cooldown.State) error {
	f.states[state.EmployeeID] = state
	return nil
}

func (f *fakeStore) Load(_ context.Context, employeeID string) (*cooldown.State, error) {
	state, ok := f.states[employeeID]
	if !ok {
		return nil, nil
	}
	return &state, nil
}

func (f *fakeStore) Clear(_ context.Context, employeeID string) error {
	delete(f.states, employeeID)
	return nil
}

func newTestManager(store cooldown.Store, clk clock.Clock) *Manager {
	return NewManager(store, clk, 3*time.Minute, 2*time.Minute)
}

func TestManager_StartAndCurrent(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	m := newTestManager(newFakeStore(), clk)

	state, err := m.Start(ctx, "emp-1", cooldown.SessionFirst)
	require.NoError(t, err)
	assert.Equal(t, 180, state.RemainingSeconds)

	clk.Advance(70 * time.Second)
	current, err := m.Current(ctx, "emp-1")
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, 110, current.RemainingSeconds)
}

func TestManager_SecondSessionDuration(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMock(time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC))
	m := newTestManager(newFakeStore(), clk)

	state, err := m.Start(ctx, "emp-1", cooldown.SessionSecond)

	require.NoError(t, err)
	assert.Equal(t, 120, state.RemainingSeconds)
}

func TestManager_CurrentExpired(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	store := newFakeStore()
	m := newTestManager(store, clk)

	_, err := m.Start(ctx, "emp-1", cooldown.SessionFirst)
	require.NoError(t, err)

	clk.Advance(3 * time.Minute)
	current, err := m.Current(ctx, "emp-1")

	require.NoError(t, err)
	assert.Nil(t, current)
	// Expiry also removes the persisted snapshot.
	loaded, err := store.Load(ctx, "emp-1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestManager_RehydratesAfterRestart(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	store := newFakeStore()

	m1 := newTestManager(store, clk)
	_, err := m1.Start(ctx, "emp-1", cooldown.SessionFirst)
	require.NoError(t, err)

	// A fresh manager over the same store stands in for a restarted
	// process: the countdown resumes against the wall clock, not a
	// stored remainder.
	clk.Advance(100 * time.Second)
	m2 := newTestManager(store, clk)
	current, err := m2.Current(ctx, "emp-1")

	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, 80, current.RemainingSeconds)
}

func TestManager_RehydrationSkipsElapsedCooldown(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	store := newFakeStore()

	m1 := newTestManager(store, clk)
	_, err := m1.Start(ctx, "emp-1", cooldown.SessionFirst)
	require.NoError(t, err)

	clk.Advance(10 * time.Minute)
	m2 := newTestManager(store, clk)
	current, err := m2.Current(ctx, "emp-1")

	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestManager_CanPerformAction(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	m := newTestManager(newFakeStore(), clk)

	_, err := m.Start(ctx, "emp-1", cooldown.SessionFirst)
	require.NoError(t, err)

	// Only the matching check-out is blocked.
	err = m.CanPerformAction(ctx, "emp-1", attendance.ActionFirstCheckOut)
	var activeErr *cooldown.ActiveError
	require.ErrorAs(t, err, &activeErr)
	assert.Equal(t, cooldown.SessionFirst, activeErr.SessionType)
	assert.Equal(t, 180, activeErr.RemainingSeconds)

	assert.NoError(t, m.CanPerformAction(ctx, "emp-1", attendance.ActionSecondCheckOut))
	assert.NoError(t, m.CanPerformAction(ctx, "emp-1", attendance.ActionSecondCheckIn))

	// No cooldown, nothing is blocked.
	assert.NoError(t, m.CanPerformAction(ctx, "emp-2", attendance.ActionFirstCheckOut))
}

func TestManager_CanPerformAction_AfterExpiry(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	m := newTestManager(newFakeStore(), clk)

	_, err := m.Start(ctx, "emp-1", cooldown.SessionFirst)
	require.NoError(t, err)

	clk.Advance(3 * time.Minute)
	assert.NoError(t, m.CanPerformAction(ctx, "emp-1", attendance.ActionFirstCheckOut))
}

func TestManager_Clear(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	store := newFakeStore()
	m := newTestManager(store, clk)

	_, err := m.Start(ctx, "emp-1", cooldown.SessionFirst)
	require.NoError(t, err)

	require.NoError(t, m.Clear(ctx, "emp-1"))

	current, err := m.Current(ctx, "emp-1")
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestManager_SubscribeReceivesStartEvent(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	m := newTestManager(newFakeStore(), clk)

	ch, unsubscribe := m.Subscribe("emp-1")
	defer unsubscribe()

	_, err := m.Start(ctx, "emp-1", cooldown.SessionFirst)
	require.NoError(t, err)

	select {
	case event := <-ch:
		assert.Equal(t, "emp-1", event.EmployeeID)
		assert.Equal(t, cooldown.SessionFirst, event.SessionType)
		assert.Equal(t, 180, event.RemainingSeconds)
		assert.False(t, event.Expired)
	case <-time.After(time.Second):
		t.Fatal("expected a cooldown event")
	}
}

func TestManager_TickPublishesAndExpires(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	m := newTestManager(newFakeStore(), clk)

	_, err := m.Start(ctx, "emp-1", cooldown.SessionFirst)
	require.NoError(t, err)

	ch, unsubscribe := m.Subscribe("emp-1")
	defer unsubscribe()

	clk.Advance(time.Second)
	m.tick(ctx)
	event := <-ch
	assert.Equal(t, 179, event.RemainingSeconds)
	assert.False(t, event.Expired)

	clk.Advance(179 * time.Second)
	m.tick(ctx)
	event = <-ch
	assert.True(t, event.Expired)

	current, err := m.Current(ctx, "emp-1")
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestManager_UnsubscribeIsIdempotent(t *testing.T) {
	clk := clock.NewMock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	m := newTestManager(newFakeStore(), clk)

	_, unsubscribe := m.Subscribe("emp-1")
	unsubscribe()
	unsubscribe()
}

func TestManager_SlowSubscriberDoesNotBlockTick(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	m := newTestManager(newFakeStore(), clk)

	_, err := m.Start(ctx, "emp-1", cooldown.SessionFirst)
	require.NoError(t, err)

	ch, unsubscribe := m.Subscribe("emp-1")
	defer unsubscribe()

	// Fill the subscriber buffer without draining it; ticks must not
	// block.
	for i := 0; i < 15; i++ {
		clk.Advance(time.Second)
		m.tick(ctx)
	}
	assert.Equal(t, 10, len(ch))
}
