package storage

import (
	"encoding/json"
	"fmt"
	"sync"
)

// SessionStore is an ephemeral key-value store scoped to one browsing
// session. It carries short-lived state such as the buy-now hand-off and
// is gone when the process ends.
type SessionStore struct {
	mu   sync.RWMutex
	data map[string]json.RawMessage
}

func NewSessionStore() *SessionStore {
	return &SessionStore{data: make(map[string]json.RawMessage)}
}

// Get decodes the value at key into out, reporting whether it existed.
func (s *SessionStore) Get(key string, out any) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("failed to decode value: %w", err)
	}
	return true, nil
}

// Put stores value under key.
func (s *SessionStore) Put(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
	return nil
}

// Delete removes key.
func (s *SessionStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}
