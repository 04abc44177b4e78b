package session

import (
	"log"
	"sync"
	"time"

	"langlab/internal/models"
)

// Manager hands out sessions by ID and serializes access to each one.
// Different visitors are fully isolated: each owns its own Session, and the
// per-entry mutex means a slow assessment round trip for one visitor never
// blocks another.
type Manager struct {
	mu      sync.Mutex
	entries map[string]*entry

	pick func() models.VocabItem
	now  func() time.Time
	idle time.Duration
}

type entry struct {
	mu   sync.Mutex
	sess *Session
}

// NewManager creates a manager that evicts sessions idle for longer than
// idle. pick supplies vocabulary items for new sessions; a nil now falls
// back to time.Now. The eviction goroutine starts immediately.
func NewManager(pick func() models.VocabItem, now func() time.Time, idle time.Duration) *Manager {
	if now == nil {
		now = time.Now
	}
	m := &Manager{
		entries: make(map[string]*entry),
		pick:    pick,
		now:     now,
		idle:    idle,
	}
	go m.evictIdle()
	return m
}

// With runs fn against the session for id, creating the session on first
// use. fn runs under the session's lock, so every transition, including the
// multi-step attempt ingestion, is atomic with respect to other requests
// from the same visitor.
func (m *Manager) With(id string, fn func(*Session) error) error {
	m.mu.Lock()
	e, ok := m.entries[id]
	if !ok {
		e = &entry{sess: New(id, m.pick, m.now)}
		m.entries[id] = e
	}
	m.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.sess.LastSeen = m.now()
	return fn(e.sess)
}

// Remove drops a session entirely; the next request starts fresh
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
}

// Count returns the number of live sessions
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// evictIdle periodically removes sessions nobody has touched within the
// idle window, so abandoned visits do not accumulate
func (m *Manager) evictIdle() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := m.now().Add(-m.idle)
		removed := 0

		m.mu.Lock()
		for id, e := range m.entries {
			e.mu.Lock()
			idle := e.sess.LastSeen.Before(cutoff)
			e.mu.Unlock()
			if idle {
				delete(m.entries, id)
				removed++
			}
		}
		m.mu.Unlock()

		if removed > 0 {
			log.Printf("Evicted %d idle practice sessions", removed)
		}
	}
}
