package storage

import (
	"sync"
	"time"
)

// ChatSession is the per-chat state of the bot between messages.
type ChatSession struct {
	Letters   []string // pool of the current spelling round, nil when none
	TargetID  int64    // last quiz target, 0 when none
	UpdatedAt time.Time
}

// SessionStorage keeps ChatSession values by chat id.
type SessionStorage struct {
	mu       sync.RWMutex
	sessions map[int64]ChatSession
}

// NewSessionStorage creates a new SessionStorage.
func NewSessionStorage() *SessionStorage {
	return &SessionStorage{
		sessions: make(map[int64]ChatSession),
	}
}

// StoreLetters starts a spelling round for chatID.
func (s *SessionStorage) StoreLetters(chatID int64, letters []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.sessions[chatID]
	session.Letters = append([]string(nil), letters...)
	session.UpdatedAt = time.Now()
	s.sessions[chatID] = session
}

// TakeLetters returns and clears the spelling round of chatID.
func (s *SessionStorage) TakeLetters(chatID int64) ([]string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[chatID]
	if !ok || session.Letters == nil {
		return nil, false
	}

	letters := session.Letters
	session.Letters = nil
	s.sessions[chatID] = session
	return letters, true
}

// StoreTarget remembers the last quiz target of chatID.
func (s *SessionStorage) StoreTarget(chatID, vocabID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.sessions[chatID]
	session.TargetID = vocabID
	session.UpdatedAt = time.Now()
	s.sessions[chatID] = session
}

// Target returns the last quiz target of chatID.
func (s *SessionStorage) Target(chatID int64) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[chatID]
	if !ok || session.TargetID == 0 {
		return 0, false
	}
	return session.TargetID, true
}

// Delete removes all state of chatID.
func (s *SessionStorage) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}
