package credstore

import (
	"encoding/json"
	"sync"

	"github.com/bandungjournal/bandung-client/users"
)

var _ Store = (*MemStore)(nil)

// MemStore is an in-memory Store. It round-trips the user record through
// JSON so that it behaves exactly like the file store, including treating an
// undecodable record as logged-out. Used in tests and anywhere persistence
// across runs is not wanted.
type MemStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string][]byte)}
}

func (m *MemStore) Save(user *users.User, accessToken string) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[userKey] = raw
	m.values[tokenKey] = []byte(accessToken)
	return nil
}

func (m *MemStore) SaveToken(accessToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[tokenKey] = []byte(accessToken)
	return nil
}

func (m *MemStore) Load() (*users.User, string) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	token, ok := m.values[tokenKey]
	if !ok || len(token) == 0 {
		return nil, ""
	}
	raw, ok := m.values[userKey]
	if !ok {
		return nil, ""
	}

	var user users.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, ""
	}
	return &user, string(token)
}

func (m *MemStore) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return string(m.values[tokenKey])
}

func (m *MemStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, tokenKey)
	delete(m.values, userKey)
}

// SetRaw stores an arbitrary value under the user record key. Test hook for
// exercising corrupt-record handling.
func (m *MemStore) SetRaw(userRecord, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[userKey] = []byte(userRecord)
	m.values[tokenKey] = []byte(token)
}
