// Package session keeps per-conversation transcripts behind a small store
// interface so the backend can be swapped without touching the HTTP layer.
package session

import (
	"context"
	"sync"
	"time"
)

// Turn is one message in a conversation transcript.
type Turn struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// Session is a transcript identified by the caller-supplied ID.
type Session struct {
	ID    string `json:"id"`
	Turns []Turn `json:"turns"`
}

// Store persists sessions. Get reports ok=false for an unknown ID.
type Store interface {
	Get(ctx context.Context, id string) (Session, bool, error)
	Put(ctx context.Context, id string, s Session) error
}

const defaultMaxTurns = 20

// MemoryStore is an in-process store. Transcripts are capped with a sliding
// window so a long-lived session cannot grow without bound.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	maxTurns int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		maxTurns: defaultMaxTurns,
	}
}

// Get returns a copy of the stored session.
func (s *MemoryStore) Get(ctx context.Context, id string) (Session, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, false, nil
	}
	out := Session{ID: sess.ID, Turns: make([]Turn, len(sess.Turns))}
	copy(out.Turns, sess.Turns)
	return out, true, nil
}

// Put stores the session, keeping only the most recent turns.
func (s *MemoryStore) Put(ctx context.Context, id string, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(sess.Turns) > s.maxTurns {
		sess.Turns = sess.Turns[len(sess.Turns)-s.maxTurns:]
	}
	stored := Session{ID: sess.ID, Turns: make([]Turn, len(sess.Turns))}
	copy(stored.Turns, sess.Turns)
	s.sessions[id] = stored
	return nil
}
