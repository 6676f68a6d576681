package clock

import (
	"sync"
	"time"
)

// ManualClocker is a Clocker whose time only moves when Advance or Set is called.
type ManualClocker struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManual returns a ManualClocker starting at now.
func NewManual(now time.Time) *ManualClocker {
	return &ManualClocker{now: now}
}

// Now returns the current manual time.
func (m *ManualClocker) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.now
}

// Advance moves the clock forward by d.
func (m *ManualClocker) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// Set moves the clock to t.
func (m *ManualClocker) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}
