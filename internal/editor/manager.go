// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package editor

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrSessionNotFound is returned for unknown or evicted session ids.
var ErrSessionNotFound = errors.New("editor: session not found")

// Manager owns all live sessions.
type Manager struct {
	mu            sync.RWMutex
	sessions      map[string]*Session
	autosaveDelay time.Duration
}

// NewManager creates an empty manager whose sessions debounce the autosave
// indicator by autosaveDelay.
func NewManager(autosaveDelay time.Duration) *Manager {
	return &Manager{
		sessions:      make(map[string]*Session),
		autosaveDelay: autosaveDelay,
	}
}

// Create starts a new empty session.
func (m *Manager) Create() *Session {
	s := newSession(m.autosaveDelay)
	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()
	return s
}

// Get looks up a session by id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete ends a session.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	s.close()
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep ends every session not accessed within idle and returns how many
// were removed.
func (m *Manager) Sweep(idle time.Duration) int {
	cutoff := time.Now().Add(-idle)

	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if s.idleSince().Before(cutoff) {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.close()
	}
	return len(expired)
}

// Run sweeps idle sessions every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(idle); n > 0 {
				slog.Info("idle sessions evicted", "count", n, "remaining", m.Len())
			}
		}
	}
}

// Close ends every session.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		s.close()
		delete(m.sessions, id)
	}
}
