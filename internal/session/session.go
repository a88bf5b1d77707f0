// Package session maps session ids to dialogue engines and serializes
// access so each conversation sees at most one turn in flight.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/collegechat/collegechat-go/internal/engine"
)

// session pairs an engine with its serialization lock. lastSeen is
// guarded by Manager.mu, not the per-session mutex.
type session struct {
	mu       sync.Mutex
	engine   *engine.Engine
	lastSeen time.Time
}

// Manager owns the session table. Unknown or empty ids get a fresh
// session with a generated uuid; idle sessions are evicted in the
// background.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session
	factory  func() *engine.Engine
	idleTTL  time.Duration
	onCount  func(n int)
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewManager creates a manager. factory builds a fresh engine per new
// session; idleTTL bounds how long an untouched session survives.
func NewManager(factory func() *engine.Engine, idleTTL time.Duration) *Manager {
	m := &Manager{
		sessions: make(map[string]*session),
		factory:  factory,
		idleTTL:  idleTTL,
		stopCh:   make(chan struct{}),
	}

	go m.evictLoop()

	return m
}

// OnCount registers a callback invoked with the live session count after
// every change. Must be set before traffic arrives.
func (m *Manager) OnCount(fn func(n int)) {
	m.onCount = fn
}

// Acquire returns the session id to use for a request. An empty or
// unknown id allocates a new session and returns its generated id.
func (m *Manager) Acquire(id string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id != "" {
		if s, ok := m.sessions[id]; ok {
			s.lastSeen = time.Now()
			return id
		}
	}

	id = uuid.NewString()
	m.sessions[id] = &session{
		engine:   m.factory(),
		lastSeen: time.Now(),
	}
	m.notifyLocked()
	return id
}

// Do runs fn against the session's engine while holding its lock. The
// id must come from Acquire; Do reports false if the session vanished
// in between (eviction race), in which case the caller should retry
// with a fresh Acquire.
func (m *Manager) Do(id string, fn func(e *engine.Engine)) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		s.lastSeen = time.Now()
	}
	m.mu.Unlock()
	if !ok {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.engine)
	return true
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// evictLoop drops sessions untouched for longer than idleTTL.
func (m *Manager) evictLoop() {
	period := m.idleTTL / 2
	if period < time.Second {
		period = time.Second
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
			m.evictIdle(time.Now())
		}
	}
}

func (m *Manager) evictIdle(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	changed := false
	for id, s := range m.sessions {
		if now.Sub(s.lastSeen) > m.idleTTL {
			delete(m.sessions, id)
			changed = true
		}
	}
	if changed {
		m.notifyLocked()
	}
}

// notifyLocked must be called with mu held.
func (m *Manager) notifyLocked() {
	if m.onCount != nil {
		m.onCount(len(m.sessions))
	}
}

// Stop terminates the eviction goroutine. Safe to call multiple times.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}
