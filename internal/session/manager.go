package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/proposaltoc/internal/config"
	"github.com/dgallion1/proposaltoc/internal/keybind"
	"github.com/dgallion1/proposaltoc/internal/toc"
	"github.com/google/uuid"
)

// Manager is a thread-safe in-memory session registry with idle eviction.
// Sessions are never persisted.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	ttl          time.Duration
	maxSessions  int
	historyLimit int
	log          *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewManager(cfg config.Config, log *slog.Logger) *Manager {
	return &Manager{
		sessions:     make(map[string]*Session),
		ttl:          cfg.SessionTTL,
		maxSessions:  cfg.MaxSessions,
		historyLimit: cfg.HistoryLimit,
		log:          log,
	}
}

// Start launches the idle-session janitor.
func (m *Manager) Start(ctx context.Context) {
	janitorCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	interval := m.ttl / 4
	if interval <= 0 || interval > 5*time.Minute {
		interval = 5 * time.Minute
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-janitorCtx.Done():
				return
			case <-ticker.C:
				if n := m.Cleanup(); n > 0 {
					m.log.Info("evicted idle sessions", "count", n)
				}
			}
		}
	}()
}

// Stop ends the janitor and closes every session.
func (m *Manager) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		s.Close()
		delete(m.sessions, id)
	}
}

// Create starts a new session over the normalized records. Each session is
// mounted on its own shortcut registry.
func (m *Manager) Create(title string, records []toc.Suggestion) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
		return nil, fmt.Errorf("session limit reached (%d)", m.maxSessions)
	}

	s := New(uuid.NewString(), title, records, Options{
		HistoryLimit: m.historyLimit,
		Log:          m.log,
	})
	s.Mount(keybind.NewRegistry())
	m.sessions[s.ID] = s
	m.log.Info("session created", "session_id", s.ID, "sections", s.tree.Count())
	return s, nil
}

// Get returns a live session and marks it used.
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	s := m.sessions[id]
	m.mu.Unlock()
	if s == nil {
		return nil
	}
	s.touch()
	return s
}

// Delete closes and forgets a session.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return false
	}
	s.Close()
	return true
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Cleanup closes sessions idle for longer than the TTL and returns how many
// were evicted.
func (m *Manager) Cleanup() int {
	if m.ttl <= 0 {
		return 0
	}
	now := time.Now()

	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if now.Sub(s.idleSince()) > m.ttl {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	return len(expired)
}
