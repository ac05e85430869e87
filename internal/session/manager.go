package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// DefaultIdleTimeout is how long an untouched session stays open
const DefaultIdleTimeout = 30 * time.Minute

type sessionKey struct {
	owner string
	id    string
}

// Manager keeps one session per owner and resume.
type Manager struct {
	gateway Gateway
	prefs   Preferences
	cfg     Config
	idle    time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[sessionKey]*Session
}

// NewManager creates a manager. prefs may be nil; idle <= 0 uses DefaultIdleTimeout.
func NewManager(gateway Gateway, prefs Preferences, cfg Config, idle time.Duration) *Manager {
	if idle <= 0 {
		idle = DefaultIdleTimeout
	}
	return &Manager{
		gateway:  gateway,
		prefs:    prefs,
		cfg:      cfg,
		idle:     idle,
		now:      time.Now,
		sessions: make(map[sessionKey]*Session),
	}
}

// Open returns the open session for the resume, loading it through the
// gateway when none exists. A missing resume yields ErrNotFound.
func (m *Manager) Open(ctx context.Context, owner, id string) (*Session, error) {
	key := sessionKey{owner: owner, id: id}
	m.mu.Lock()
	if s, ok := m.sessions[key]; ok {
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	data, err := m.gateway.Load(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrNotFound
	}
	if m.prefs != nil {
		data.Template = m.prefs.PreferredTemplate(ctx, owner, data.Template)
	}

	s := New(owner, id, data, m.gateway, m.prefs, m.cfg)

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.sessions[key]; ok {
		s.Close()
		return existing, nil
	}
	m.sessions[key] = s
	return s, nil
}

// Get returns an already open session.
func (m *Manager) Get(owner, id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionKey{owner: owner, id: id}]
	return s, ok
}

// Close closes and forgets the session for the resume, if open.
func (m *Manager) Close(owner, id string) {
	key := sessionKey{owner: owner, id: id}
	m.mu.Lock()
	s, ok := m.sessions[key]
	delete(m.sessions, key)
	m.mu.Unlock()
	if ok {
		s.Close()
	}
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep closes sessions idle for longer than the idle timeout. Sessions
// that are editing or have a save in flight are kept, so an unsaved draft
// is only ever dropped by Cancel.
func (m *Manager) Sweep() int {
	cutoff := m.now().Add(-m.idle)
	var stale []*Session

	m.mu.Lock()
	for key, s := range m.sessions {
		last, busy := s.idleSince()
		if busy || last.After(cutoff) {
			continue
		}
		delete(m.sessions, key)
		stale = append(stale, s)
	}
	m.mu.Unlock()

	for _, s := range stale {
		s.Close()
	}
	if len(stale) > 0 {
		log.Printf("[session] swept %d idle sessions", len(stale))
	}
	return len(stale)
}

// Run sweeps idle sessions every interval until ctx is done, then closes
// every remaining session.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			m.CloseAll()
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			m.Sweep()
		}
	}
}

// CloseAll closes and forgets every open session.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	all := make([]*Session, 0, len(m.sessions))
	for key, s := range m.sessions {
		all = append(all, s)
		delete(m.sessions, key)
	}
	m.mu.Unlock()
	for _, s := range all {
		s.Close()
	}
}
