package session

import "sync"

// Store manages sessions for multiple chats.
type Store struct {
	sessions map[int64]*Session
	mu       sync.RWMutex
}

// NewStore creates a new session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*Session),
	}
}

// Get returns the session for this chat, creating an idle one on first use.
func (s *Store) Get(chatID int64) *Session {
	s.mu.RLock()
	sess, exists := s.sessions[chatID]
	s.mu.RUnlock()
	if exists {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, exists := s.sessions[chatID]; exists {
		return sess
	}
	sess = &Session{
		chatID: chatID,
		state:  StateIdle,
	}
	s.sessions[chatID] = sess
	return sess
}

// Length returns the number of known sessions.
func (s *Store) Length() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}
