package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Snapshot is the last accepted fetch outcome of a session.
type Snapshot struct {
	Token       uint64    `json:"token"`
	Query       string    `json:"query"`
	Temperature float64   `json:"temperature"`
	Description string    `json:"description,omitempty"`
	City        string    `json:"city,omitempty"`
	Error       string    `json:"error,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}

type slot struct {
	token   uint64
	cancel  context.CancelFunc
	latest  []byte
	touched time.Time
}

type Store interface {
	Begin(sessionID string, cancel context.CancelFunc) uint64
	Complete(sessionID string, token uint64, snapshot *Snapshot) (bool, error)
	Latest(sessionID string) (*Snapshot, bool, error)
	Release(sessionID string, token uint64)
	CancelAll()
	Close()
}

type InMemoryStore struct {
	slots           map[string]*slot
	nextToken       uint64
	mutex           sync.Mutex
	idleTTL         time.Duration
	cleanupInterval time.Duration
	done            chan struct{}
	closeOnce       sync.Once
}

func NewInMemoryStore(idleTTL, cleanupInterval time.Duration) *InMemoryStore {
	store := &InMemoryStore{
		slots:           make(map[string]*slot),
		idleTTL:         idleTTL,
		cleanupInterval: cleanupInterval,
		done:            make(chan struct{}),
	}

	go store.startCleanup()

	return store
}

// Begin registers a new request for the session and returns its token. The
// cancel func of the request it replaces, if still in flight, is called.
// Tokens are unique across sessions and strictly increasing.
func (m *InMemoryStore) Begin(sessionID string, cancel context.CancelFunc) uint64 {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	s, exists := m.slots[sessionID]
	if !exists {
		s = &slot{}
		m.slots[sessionID] = s
	}

	if s.cancel != nil {
		s.cancel()
	}

	m.nextToken++
	s.token = m.nextToken
	s.cancel = cancel
	s.touched = time.Now()

	return s.token
}

// Complete stores snapshot if token is still the session's latest request.
// It reports false when the request was superseded.
func (m *InMemoryStore) Complete(sessionID string, token uint64, snapshot *Snapshot) (bool, error) {
	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return false, err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	s, exists := m.slots[sessionID]
	if !exists || s.token != token {
		return false, nil
	}

	s.latest = jsonData
	s.cancel = nil
	s.touched = time.Now()

	return true, nil
}

// Release ends the request identified by token without recording an outcome.
// The session keeps its previous snapshot. Stale tokens are ignored.
func (m *InMemoryStore) Release(sessionID string, token uint64) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	s, exists := m.slots[sessionID]
	if !exists || s.token != token {
		return
	}

	s.cancel = nil
	s.touched = time.Now()
}

func (m *InMemoryStore) Latest(sessionID string) (*Snapshot, bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	s, exists := m.slots[sessionID]
	if !exists || s.latest == nil {
		return nil, false, nil
	}

	s.touched = time.Now()

	var data Snapshot
	if err := json.Unmarshal(s.latest, &data); err != nil {
		return nil, false, err
	}

	return &data, true, nil
}

func (m *InMemoryStore) CancelAll() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, s := range m.slots {
		if s.cancel != nil {
			s.cancel()
			s.cancel = nil
		}
	}
}

func (m *InMemoryStore) Close() {
	m.closeOnce.Do(func() {
		close(m.done)
	})
}

func (m *InMemoryStore) startCleanup() {
	ticker := time.NewTicker(m.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.removeIdle(time.Now())
		}
	}
}

// removeIdle drops sessions idle for longer than idleTTL. Sessions with a
// request in flight are kept.
func (m *InMemoryStore) removeIdle(now time.Time) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for k, v := range m.slots {
		if v.cancel == nil && now.Sub(v.touched) > m.idleTTL {
			delete(m.slots, k)
		}
	}
}
