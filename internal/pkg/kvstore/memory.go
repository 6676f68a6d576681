package kvstore

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/shandysiswandi/otpgate/internal/pkg/clock"
	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
	"go.uber.org/atomic"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// Memory is an in-process Store for single-instance deployments and tests.
//
// Expired entries are dropped lazily when touched.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	clock   clock.Clocker
	closed  atomic.Bool
}

// NewMemory returns an empty in-memory store using clk as its time source.
func NewMemory(clk clock.Clocker) *Memory {
	if clk == nil {
		clk = clock.New()
	}

	return &Memory{
		entries: make(map[string]memoryEntry),
		clock:   clk,
	}
}

// lookup returns a live entry. Callers must hold m.mu.
func (m *Memory) lookup(key string) (memoryEntry, bool) {
	e, ok := m.entries[key]
	if !ok {
		return memoryEntry{}, false
	}
	if !e.expiresAt.IsZero() && !m.clock.Now().Before(e.expiresAt) {
		delete(m.entries, key)
		return memoryEntry{}, false
	}

	return e, true
}

func (m *Memory) deadline(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}

	return m.clock.Now().Add(ttl)
}

// Get returns the value stored at key or goerror.ErrNotFound.
func (m *Memory) Get(ctx context.Context, key string) (string, error) {
	if err := m.usable(ctx); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.lookup(key)
	if !ok {
		return "", goerror.ErrNotFound
	}

	return e.value, nil
}

// Exists reports whether key holds a live value.
func (m *Memory) Exists(ctx context.Context, key string) (bool, error) {
	if err := m.usable(ctx); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.lookup(key)
	return ok, nil
}

// Set stores value with the given TTL.
func (m *Memory) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := m.usable(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memoryEntry{value: value, expiresAt: m.deadline(ttl)}
	return nil
}

// Incr increments key, setting ttl when the counter is created.
func (m *Memory) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	if err := m.usable(ctx); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.lookup(key)
	if !ok {
		m.entries[key] = memoryEntry{value: "1", expiresAt: m.deadline(ttl)}
		return 1, nil
	}

	n, err := strconv.ParseInt(e.value, 10, 64)
	if err != nil {
		return 0, err
	}
	n++
	e.value = strconv.FormatInt(n, 10)
	m.entries[key] = e

	return n, nil
}

// Expire resets the TTL of an existing key.
func (m *Memory) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if err := m.usable(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.lookup(key)
	if !ok {
		return nil
	}
	e.expiresAt = m.deadline(ttl)
	m.entries[key] = e

	return nil
}

// Del removes keys.
func (m *Memory) Del(ctx context.Context, keys ...string) error {
	if err := m.usable(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.entries, key)
	}

	return nil
}

// Ping reports whether the store is still open.
func (m *Memory) Ping(ctx context.Context) error {
	return m.usable(ctx)
}

// Close drops every entry. Further calls fail with ErrClosed.
func (m *Memory) Close() error {
	if m.closed.Swap(true) {
		return nil
	}

	m.mu.Lock()
	m.entries = make(map[string]memoryEntry)
	m.mu.Unlock()

	return nil
}

func (m *Memory) usable(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.closed.Load() {
		return ErrClosed
	}

	return nil
}
