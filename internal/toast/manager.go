// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package toast manages the queue of transient notifications shown above
// the transcript. Each toast auto-dismisses after its duration; dismissal
// is idempotent so a manual dismiss racing the timer is harmless.
package toast

import (
	"sync"
	"time"
)

// DefaultDuration is how long a toast stays visible when the caller does
// not specify a duration.
const DefaultDuration = 5000 * time.Millisecond

// =============================================================================
// TOAST TYPES
// =============================================================================

// Level is the severity of a toast.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// Toast is a single queued notification.
type Toast struct {
	ID       int
	Message  string
	Level    Level
	Duration time.Duration
	Created  time.Time
}

// =============================================================================
// MANAGER
// =============================================================================

// Manager owns the toast queue. IDs are assigned from a counter that never
// resets for the life of the manager, so an ID uniquely names one toast.
//
// All methods are safe for concurrent use. Use pointers to avoid copying
// the mutex.
type Manager struct {
	mu          sync.Mutex
	nextID      int
	duration    time.Duration
	toasts      []*Toast
	timers      map[int]*time.Timer
	subscribers []func()
	disposed    bool
}

// NewManager creates an empty toast manager.
func NewManager() *Manager {
	return &Manager{
		nextID:   1,
		duration: DefaultDuration,
		timers:   make(map[int]*time.Timer),
	}
}

// SetDefaultDuration overrides the duration used by Push. Non-positive
// values are ignored.
func (m *Manager) SetDefaultDuration(d time.Duration) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	m.duration = d
	m.mu.Unlock()
}

// Push queues a toast with the manager's default duration and returns
// its ID.
func (m *Manager) Push(message string, level Level) int {
	m.mu.Lock()
	d := m.duration
	m.mu.Unlock()
	return m.PushFor(message, level, d)
}

// PushFor queues a toast with an explicit duration and returns its ID.
// A non-positive duration falls back to the default. Returns 0 if the
// manager has been disposed.
func (m *Manager) PushFor(message string, level Level, duration time.Duration) int {
	if duration <= 0 {
		duration = DefaultDuration
	}

	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return 0
	}
	id := m.nextID
	m.nextID++
	m.toasts = append(m.toasts, &Toast{
		ID:       id,
		Message:  message,
		Level:    level,
		Duration: duration,
		Created:  time.Now(),
	})
	m.timers[id] = time.AfterFunc(duration, func() {
		m.Dismiss(id)
	})
	subs := m.snapshotSubscribers()
	m.mu.Unlock()

	notify(subs)
	return id
}

// Dismiss removes the toast with the given ID and stops its timer. Unknown
// or already-dismissed IDs are ignored, so the auto-dismiss timer and a
// manual dismiss can both fire without harm.
func (m *Manager) Dismiss(id int) {
	m.mu.Lock()
	idx := -1
	for i, t := range m.toasts {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return
	}
	m.toasts = append(m.toasts[:idx], m.toasts[idx+1:]...)
	if timer, ok := m.timers[id]; ok {
		timer.Stop()
		delete(m.timers, id)
	}
	subs := m.snapshotSubscribers()
	m.mu.Unlock()

	notify(subs)
}

// DismissAll removes every queued toast and stops all timers.
func (m *Manager) DismissAll() {
	m.mu.Lock()
	if len(m.toasts) == 0 {
		m.mu.Unlock()
		return
	}
	m.toasts = nil
	for id, timer := range m.timers {
		timer.Stop()
		delete(m.timers, id)
	}
	subs := m.snapshotSubscribers()
	m.mu.Unlock()

	notify(subs)
}

// Active returns a snapshot of the queued toasts in arrival order.
func (m *Manager) Active() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Toast, len(m.toasts))
	for i, t := range m.toasts {
		out[i] = *t
	}
	return out
}

// Len returns the number of queued toasts.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.toasts)
}

// Subscribe registers a callback invoked after every queue change.
// Callbacks run outside the manager's lock and must not block.
func (m *Manager) Subscribe(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return
	}
	m.subscribers = append(m.subscribers, fn)
}

// Dispose stops all pending timers, clears the queue, and rejects further
// pushes. Safe to call more than once.
func (m *Manager) Dispose() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disposed = true
	m.toasts = nil
	m.subscribers = nil
	for id, timer := range m.timers {
		timer.Stop()
		delete(m.timers, id)
	}
}

func (m *Manager) snapshotSubscribers() []func() {
	subs := make([]func(), len(m.subscribers))
	copy(subs, m.subscribers)
	return subs
}

func notify(subs []func()) {
	for _, fn := range subs {
		fn()
	}
}
