package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophconsole/internal/common"
)

// MemoryStore keeps the session in process memory. It backs tests and the
// "memory" session backend.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Save(_ context.Context, credential string, profile Profile) error {
	raw, err := encodeProfile(profile)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[common.TokenKey] = []byte(credential)
	m.data[common.UserKey] = raw
	return nil
}

func (m *MemoryStore) SaveProfile(_ context.Context, profile Profile) error {
	raw, err := encodeProfile(profile)
	if err != nil {
		return err
	}
	m.Set(common.UserKey, raw)
	return nil
}

func (m *MemoryStore) Load(_ context.Context) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Session{
		Credential: string(m.data[common.TokenKey]),
		Profile:    decodeProfile(m.data[common.UserKey]),
	}, nil
}

func (m *MemoryStore) Token(_ context.Context) (string, error) {
	return string(m.Get(common.TokenKey)), nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.remove(sessionKeys...)
	return nil
}

func (m *MemoryStore) Purge(_ context.Context) error {
	m.remove(allKeys...)
	return nil
}

func (m *MemoryStore) RememberEmail(_ context.Context, email string) error {
	m.Set(common.RememberedEmailKey, []byte(email))
	return nil
}

func (m *MemoryStore) RememberedEmail(_ context.Context) (string, error) {
	return string(m.Get(common.RememberedEmailKey)), nil
}

func (m *MemoryStore) Close() error { return nil }

// Get returns a copy of the raw value under key.
func (m *MemoryStore) Get(key string) []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil
	}
	return append([]byte(nil), v...)
}

// Set stores a raw value; tests use it to plant corrupt data.
func (m *MemoryStore) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
}

// Len reports how many keys are stored.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

func (m *MemoryStore) remove(keys ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
}
