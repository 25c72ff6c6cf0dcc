package cooldown

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/attendance"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/cooldown"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/pkg/clock"
)

// Manager owns cooldown state: one active countdown per employee,
// persisted so a restart resumes from (startTime, duration) against the
// wall clock rather than a stored remainder. Explicit service object
// with injected clock and persistence; no package-level state.
type Manager struct {
	store     cooldown.Store
	clk       clock.Clock
	firstDur  time.Duration
	secondDur time.Duration

	mu          sync.RWMutex
	active      map[string]cooldown.State
	subscribers map[string]map[chan cooldown.Event]struct{}
}

func NewManager(store cooldown.Store, clk clock.Clock, firstDur, secondDur time.Duration) *Manager {
	return &Manager{
		store:       store,
		clk:         clk,
		firstDur:    firstDur,
		secondDur:   secondDur,
		active:      make(map[string]cooldown.State),
		subscribers: make(map[string]map[chan cooldown.Event]struct{}),
	}
}

// Start implements cooldown.CooldownService.
func (m *Manager) Start(ctx context.Context, employeeID string, session cooldown.SessionType) (cooldown.State, error) {
	dur := m.firstDur
	if session == cooldown.SessionSecond {
		dur = m.secondDur
	}

	now := m.clk.Now()
	state := cooldown.State{
		EmployeeID:      employeeID,
		SessionType:     session,
		StartTime:       now,
		DurationMinutes: int(dur.Minutes()),
	}
	state.RemainingSeconds = state.Remaining(now)

	if err := m.store.Save(ctx, state); err != nil {
		return cooldown.State{}, fmt.Errorf("failed to persist cooldown: %w", err)
	}

	m.mu.Lock()
	m.active[employeeID] = state
	m.mu.Unlock()

	m.publish(employeeID, cooldown.Event{
		EmployeeID:       employeeID,
		SessionType:      session,
		RemainingSeconds: state.RemainingSeconds,
	})

	slog.Info("Cooldown started", "employee_id", employeeID, "session", session, "duration_minutes", state.DurationMinutes)
	return state, nil
}

// Current implements cooldown.CooldownService. State not held in memory
// is rehydrated from the store, so countdowns survive a restart.
func (m *Manager) Current(ctx context.Context, employeeID string) (*cooldown.State, error) {
	now := m.clk.Now()

	m.mu.RLock()
	state, ok := m.active[employeeID]
	m.mu.RUnlock()

	if !ok {
		loaded, err := m.store.Load(ctx, employeeID)
		if err != nil {
			return nil, fmt.Errorf("failed to load cooldown: %w", err)
		}
		if loaded == nil {
			return nil, nil
		}
		state = *loaded
		m.mu.Lock()
		m.active[employeeID] = state
		m.mu.Unlock()
	}

	if state.Expired(now) {
		if err := m.expire(ctx, state); err != nil {
			return nil, err
		}
		return nil, nil
	}

	state.RemainingSeconds = state.Remaining(now)
	return &state, nil
}

// CanPerformAction implements cooldown.CooldownService. Only the
// check-out matching the active session type is blocked.
func (m *Manager) CanPerformAction(ctx context.Context, employeeID string, action attendance.Action) error {
	state, err := m.Current(ctx, employeeID)
	if err != nil {
		return err
	}
	if state == nil {
		return nil
	}

	blocked := attendance.ActionFirstCheckOut
	if state.SessionType == cooldown.SessionSecond {
		blocked = attendance.ActionSecondCheckOut
	}

	if action == blocked {
		return &cooldown.ActiveError{
			SessionType:      state.SessionType,
			RemainingSeconds: state.RemainingSeconds,
		}
	}
	return nil
}

// Clear implements cooldown.CooldownService.
func (m *Manager) Clear(ctx context.Context, employeeID string) error {
	m.mu.Lock()
	delete(m.active, employeeID)
	m.mu.Unlock()

	if err := m.store.Clear(ctx, employeeID); err != nil {
		return fmt.Errorf("failed to clear cooldown: %w", err)
	}
	return nil
}

// Subscribe implements cooldown.CooldownService.
func (m *Manager) Subscribe(employeeID string) (<-chan cooldown.Event, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan cooldown.Event, 10)

	if m.subscribers[employeeID] == nil {
		m.subscribers[employeeID] = make(map[chan cooldown.Event]struct{})
	}
	m.subscribers[employeeID][ch] = struct{}{}

	unsubscribe := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.subscribers[employeeID][ch]; !ok {
			return
		}
		delete(m.subscribers[employeeID], ch)
		close(ch)
		if len(m.subscribers[employeeID]) == 0 {
			delete(m.subscribers, employeeID)
		}
	}

	return ch, unsubscribe
}

// Run drives the 1 Hz tick until ctx is cancelled. The tick performs no
// I/O beyond clearing expired snapshots.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.tick(ctx)
		}
	}
}

// tick recomputes every active countdown, publishing an event per
// employee and expiring those that reached zero.
func (m *Manager) tick(ctx context.Context) {
	now := m.clk.Now()

	m.mu.RLock()
	states := make([]cooldown.State, 0, len(m.active))
	for _, s := range m.active {
		states = append(states, s)
	}
	m.mu.RUnlock()

	for _, state := range states {
		if state.Expired(now) {
			if err := m.expire(ctx, state); err != nil {
				slog.Error("Failed to expire cooldown", "employee_id", state.EmployeeID, "error", err)
			}
			continue
		}
		m.publish(state.EmployeeID, cooldown.Event{
			EmployeeID:       state.EmployeeID,
			SessionType:      state.SessionType,
			RemainingSeconds: state.Remaining(now),
		})
	}
}

func (m *Manager) expire(ctx context.Context, state cooldown.State) error {
	m.mu.Lock()
	delete(m.active, state.EmployeeID)
	m.mu.Unlock()

	if err := m.store.Clear(ctx, state.EmployeeID); err != nil {
		return fmt.Errorf("failed to clear expired cooldown: %w", err)
	}

	m.publish(state.EmployeeID, cooldown.Event{
		EmployeeID:  state.EmployeeID,
		SessionType: state.SessionType,
		Expired:     true,
	})

	slog.Info("Cooldown expired", "employee_id", state.EmployeeID, "session", state.SessionType)
	return nil
}

func (m *Manager) publish(employeeID string, event cooldown.Event) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for ch := range m.subscribers[employeeID] {
		select {
		case ch <- event:
		default:
			// Skip slow subscribers rather than block the tick.
		}
	}
}
