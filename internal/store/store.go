// Package store keeps calculation results so they can be fetched again by ID.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"renewable-invest/internal/engine"
)

// ErrNotFound is returned for unknown or expired IDs.
var ErrNotFound = errors.New("calculation not found")

// Record is a stored calculation.
type Record struct {
	ID        string         `json:"id"`
	Name      string         `json:"name,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	Result    *engine.Result `json:"result"`
}

type Store interface {
	Save(name string, res *engine.Result) (Record, error)
	Get(id string) (Record, error)
}

type entry struct {
	record    Record
	expiresAt time.Time
}

// Memory is an in-process Store with a fixed time to live.
type Memory struct {
	mu    sync.RWMutex
	items map[string]entry
	ttl   time.Duration
	now   func() time.Time
}

// NewMemory creates a store. A non-positive ttl defaults to 24 hours.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Memory{
		items: make(map[string]entry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (m *Memory) Save(name string, res *engine.Result) (Record, error) {
	if res == nil {
		return Record{}, errors.New("result is nil")
	}
	now := m.now()
	rec := Record{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now.UTC(),
		Result:    res,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[rec.ID] = entry{record: rec, expiresAt: now.Add(m.ttl)}
	return rec, nil
}

func (m *Memory) Get(id string) (Record, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Record{}, ErrNotFound
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.items[id]
	if !ok || !m.now().Before(e.expiresAt) {
		return Record{}, ErrNotFound
	}
	return e.record, nil
}

// Len reports the number of entries, expired or not.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Sweep drops expired entries and returns how many were removed.
func (m *Memory) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	removed := 0
	for id, e := range m.items {
		if !now.Before(e.expiresAt) {
			delete(m.items, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is cancelled.
func (m *Memory) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}
